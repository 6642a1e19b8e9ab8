package textutil

import (
	"regexp"
	"strings"
)

// quantityPattern matches a leading quantity token on a free-text ingredient
// line: one or more of digits, "/", "." and whitespace, an optional unit word,
// and the whitespace that separates the token from the product name. Units
// without a number ("cups flour") are deliberately not treated as quantities.
var quantityPattern = regexp.MustCompile(`(?i)^[\d/.]+(?:[\s\d/.]+)*(?:\s*(?:g|kg|ml|l|cups?|tbsp|tsp|cans?|tins?|packets?)\b)?\s+`)

// NormalizeKey lowercases and trims text. It is the identity key used for
// shopping-list dedup, mapping lookups and usage counters.
func NormalizeKey(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// CleanIngredientName strips any leading quantity token from an ingredient
// line and returns the lowercased, trimmed product name. Stripping repeats
// until the text is stable, so the function is idempotent even for lines
// like "1 packet 2 minute noodles".
func CleanIngredientName(line string) string {
	s := strings.TrimSpace(line)
	for {
		stripped := quantityPattern.ReplaceAllString(s, "")
		if stripped == s {
			break
		}
		s = strings.TrimSpace(stripped)
	}
	return strings.ToLower(s)
}

// SplitQuantity separates an ingredient line into its leading quantity token
// (possibly empty) and the remaining product text. The quantity portion is
// returned verbatim, including trailing whitespace, so callers can rewrite
// the product name without losing the amount. Stripping repeats until stable
// so that product always agrees with CleanIngredientName up to casing.
func SplitQuantity(line string) (quantity, product string) {
	rest := line
	for {
		loc := quantityPattern.FindStringIndex(rest)
		if loc == nil || loc[1] == 0 {
			break
		}
		rest = rest[loc[1]:]
	}
	return line[:len(line)-len(rest)], rest
}
