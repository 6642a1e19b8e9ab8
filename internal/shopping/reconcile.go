package shopping

import (
	"strings"

	"shopmate/internal/category"
	"shopmate/internal/meal"
	"shopmate/internal/textutil"
)

// Recompute derives a fresh shopping list from the current meal selection
// while preserving user state in the existing list. It is a pure function:
// callers replace their list with the returned slice in one step.
//
// The pass works in four stages:
//
//   - every ingredient line of every selected meal becomes an unchecked
//     meal-sourced candidate (display text keeps its quantity; only
//     categorization uses the cleaned form);
//   - manual and quick-add items are retained verbatim, as are checked
//     meal-sourced items ("already bought" survives deselection);
//   - candidates and retained items are concatenated in that order;
//   - the combined sequence is deduplicated by normalized text.
//
// A selected id without a matching meal is skipped: the meal was deleted
// out-of-band and the selection entry is stale. Ingredient lines that clean
// to an empty string are still emitted; dropping user text silently is worse
// than an odd-looking list entry.
func Recompute(selectedIDs []string, meals []meal.Meal, existing []Item, mappings category.Mappings) []Item {
	var candidates []Item
	for _, id := range selectedIDs {
		m := meal.ByID(meals, id)
		if m == nil {
			continue
		}
		for _, line := range m.Ingredients {
			candidates = append(candidates, Item{
				Text:     strings.TrimSpace(line),
				Category: category.Resolve(textutil.CleanIngredientName(line), mappings),
				Checked:  false,
				Source:   SourceMeal,
			})
		}
	}

	for _, item := range existing {
		if item.Source == SourceManual || item.Source == SourceCategory {
			candidates = append(candidates, item)
		}
	}
	for _, item := range existing {
		if item.Source == SourceMeal && item.Checked {
			candidates = append(candidates, item)
		}
	}

	return Dedupe(candidates)
}

// Dedupe collapses items sharing a normalized text key, in iteration order.
// The first-seen item for a key wins and keeps its checked state and source;
// later meal-sourced duplicates only bump its count. First occurrence of a
// key starts at count 1 regardless of the incoming item's Count field.
func Dedupe(items []Item) []Item {
	index := make(map[string]int, len(items))
	out := make([]Item, 0, len(items))

	for _, item := range items {
		key := textutil.NormalizeKey(item.Text)
		if at, ok := index[key]; ok {
			if item.Source == SourceMeal {
				out[at].Count++
			}
			continue
		}
		item.Count = 1
		index[key] = len(out)
		out = append(out, item)
	}
	return out
}
