package meal

import (
	"sort"
	"strings"
)

// Meal is a named dish with free-text ingredient lines, one per line as the
// user typed them (optionally quantity-prefixed, e.g. "2 cups flour").
type Meal struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	SortOrder   int      `json:"sortOrder"`
}

// Sorted returns a copy of meals ordered by SortOrder, ties broken by the
// original slice position (stable insertion order).
func Sorted(meals []Meal) []Meal {
	out := make([]Meal, len(meals))
	copy(out, meals)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortOrder < out[j].SortOrder
	})
	return out
}

// SortAlphabetically orders meals by case-insensitive name and reassigns
// dense sort orders to match.
func SortAlphabetically(meals []Meal) {
	sort.SliceStable(meals, func(i, j int) bool {
		return strings.ToLower(meals[i].Name) < strings.ToLower(meals[j].Name)
	})
	for i := range meals {
		meals[i].SortOrder = i
	}
}

// ByID returns the meal with the given id, or nil when it does not exist.
func ByID(meals []Meal, id string) *Meal {
	for i := range meals {
		if meals[i].ID == id {
			return &meals[i]
		}
	}
	return nil
}
