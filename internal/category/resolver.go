package category

import (
	"strings"

	"shopmate/internal/textutil"
)

// Mapping is a user-authored override from an ingredient (or a substring
// keyword of one) to an aisle label.
type Mapping struct {
	Ingredient string `json:"ingredient"`
	Category   string `json:"category"`
}

// Mappings is an insertion-ordered mapping table. Order matters: when several
// keywords match the same ingredient, the first-inserted mapping wins.
type Mappings []Mapping

// Get returns the category for an exact (normalized) ingredient match.
func (m Mappings) Get(ingredient string) (string, bool) {
	key := textutil.NormalizeKey(ingredient)
	for _, entry := range m {
		if entry.Ingredient == key {
			return entry.Category, true
		}
	}
	return "", false
}

// Set adds a mapping, or updates the category in place when the normalized
// ingredient is already present (insertion order is preserved on update).
func (m Mappings) Set(ingredient, category string) Mappings {
	key := textutil.NormalizeKey(ingredient)
	for i, entry := range m {
		if entry.Ingredient == key {
			m[i].Category = category
			return m
		}
	}
	return append(m, Mapping{Ingredient: key, Category: category})
}

// Remove deletes the mapping for the normalized ingredient, if present.
func (m Mappings) Remove(ingredient string) Mappings {
	key := textutil.NormalizeKey(ingredient)
	for i, entry := range m {
		if entry.Ingredient == key {
			return append(m[:i:i], m[i+1:]...)
		}
	}
	return m
}

// Resolve maps a raw ingredient line to an aisle label. Precedence, first
// match wins:
//
//  1. exact mapping for the normalized text
//  2. mapping whose key appears as a substring, in insertion order
//  3. built-in keyword rules, in rule order
//  4. DefaultCategory
//
// Resolve is pure: identical input and table state always give the same label.
func Resolve(raw string, mappings Mappings) string {
	text := textutil.NormalizeKey(raw)

	if cat, ok := mappings.Get(text); ok {
		return cat
	}

	for _, entry := range mappings {
		if entry.Ingredient != "" && strings.Contains(text, entry.Ingredient) {
			return entry.Category
		}
	}

	for _, r := range defaultRules {
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				return r.category
			}
		}
	}

	return DefaultCategory
}
