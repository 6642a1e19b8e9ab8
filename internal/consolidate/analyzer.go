package consolidate

import (
	"sort"
	"strings"

	"shopmate/internal/catalog"
	"shopmate/internal/meal"
	"shopmate/internal/textutil"
)

// similarityFloor is the exclusive cutoff below which a catalog name is not
// worth suggesting. Matching never renames anything on its own; every
// suggestion is confirmed by the user before Apply runs.
const similarityFloor = 0.5

// maxSuggestions caps how many catalog names are offered per ingredient.
const maxSuggestions = 3

// Suggestion is a candidate catalog name for an unmatched ingredient.
type Suggestion struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Mismatch is an ingredient used by meals that does not appear verbatim in
// the master catalog but is close enough to at least one catalog name.
type Mismatch struct {
	Ingredient string       `json:"ingredient"`
	MealsCount int          `json:"mealsCount"`
	MealNames  []string     `json:"mealNames"`
	Suggested  []Suggestion `json:"suggestedMatches"`
}

// Change is one confirmed rename, from a cleaned ingredient name to a
// canonical catalog name.
type Change struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// FindMismatches cross-references every cleaned ingredient name used across
// meals against the catalog and returns the near-misses, most-used
// ingredients first (ties keep discovery order). Ingredients with no catalog
// name above the similarity floor are omitted: there is nothing actionable
// to show for them.
func FindMismatches(meals []meal.Meal, products []catalog.Product) []Mismatch {
	catalogNames := make(map[string]bool, len(products))
	for _, p := range products {
		catalogNames[strings.ToLower(p.Name)] = true
	}

	var order []string
	usedBy := make(map[string][]string)
	for _, m := range meal.Sorted(meals) {
		seenInMeal := make(map[string]bool)
		for _, line := range m.Ingredients {
			name := textutil.CleanIngredientName(line)
			if name == "" || seenInMeal[name] {
				continue
			}
			seenInMeal[name] = true
			if _, ok := usedBy[name]; !ok {
				order = append(order, name)
			}
			usedBy[name] = append(usedBy[name], m.Name)
		}
	}

	var out []Mismatch
	for _, name := range order {
		if catalogNames[name] {
			continue
		}

		var suggestions []Suggestion
		for _, p := range products {
			score := textutil.Similarity(name, strings.ToLower(p.Name))
			if score > similarityFloor {
				suggestions = append(suggestions, Suggestion{Name: p.Name, Score: score})
			}
		}
		if len(suggestions) == 0 {
			continue
		}

		sort.SliceStable(suggestions, func(i, j int) bool {
			return suggestions[i].Score > suggestions[j].Score
		})
		if len(suggestions) > maxSuggestions {
			suggestions = suggestions[:maxSuggestions]
		}

		out = append(out, Mismatch{
			Ingredient: name,
			MealsCount: len(usedBy[name]),
			MealNames:  usedBy[name],
			Suggested:  suggestions,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MealsCount > out[j].MealsCount
	})
	return out
}

// Apply rewrites meal ingredient lines in place: every line whose cleaned
// form matches a change's From gets its product portion replaced with To,
// keeping the leading quantity token. The catalog is never touched. Returns
// the number of lines changed.
func Apply(meals []meal.Meal, changes []Change) int {
	renames := make(map[string]string, len(changes))
	for _, c := range changes {
		renames[textutil.NormalizeKey(c.From)] = c.To
	}

	changed := 0
	for i := range meals {
		for j, line := range meals[i].Ingredients {
			to, ok := renames[textutil.CleanIngredientName(line)]
			if !ok {
				continue
			}
			qty, _ := textutil.SplitQuantity(line)
			next := qty + to
			if next != line {
				meals[i].Ingredients[j] = next
				changed++
			}
		}
	}
	return changed
}
