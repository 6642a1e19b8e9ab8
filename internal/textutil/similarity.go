package textutil

// EditDistance returns the Levenshtein distance between a and b, counting
// insertions, deletions and substitutions at cost 1 each. It operates on
// runes, not bytes.
func EditDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// Similarity returns 1 - EditDistance(a,b)/max(len(a),len(b)), a score in
// [0,1]. Two empty strings are defined as identical (1.0).
func Similarity(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))
	longest := max(la, lb)
	if longest == 0 {
		return 1.0
	}
	return 1.0 - float64(EditDistance(a, b))/float64(longest)
}
