// Package export implements the file interchange formats: whole-plan JSON
// backups, a pipe-delimited meals CSV, and standalone mapping and product
// catalog files. Imports shape-check the top-level key and reject the whole
// file on mismatch rather than guessing at the payload.
package export

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"shopmate/internal/catalog"
	"shopmate/internal/category"
	"shopmate/internal/meal"
	"shopmate/internal/shopping"
)

// Backup is the whole-plan export payload.
type Backup struct {
	Meals      []meal.Meal              `json:"meals"`
	Categories []shopping.QuickAddGroup `json:"categories"`
	ExportDate time.Time                `json:"exportDate"`
}

// MarshalBackup renders a whole-plan backup.
func MarshalBackup(meals []meal.Meal, groups []shopping.QuickAddGroup, now time.Time) ([]byte, error) {
	b := Backup{Meals: meals, Categories: groups, ExportDate: now.UTC()}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal backup: %w", err)
	}
	return data, nil
}

// ParseBackup parses a whole-plan backup, rejecting files that do not carry
// a top-level "meals" field.
func ParseBackup(data []byte) (Backup, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return Backup{}, fmt.Errorf("failed to parse backup: %w", err)
	}
	if _, ok := keys["meals"]; !ok {
		return Backup{}, fmt.Errorf("not a backup file: missing top-level \"meals\" field")
	}
	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return Backup{}, fmt.Errorf("failed to parse backup: %w", err)
	}
	return b, nil
}

// MealsCSV renders one line per meal: the meal name, a pipe, then the
// ingredient lines joined with ", ".
func MealsCSV(meals []meal.Meal) []byte {
	lines := make([]string, 0, len(meals))
	for _, m := range meals {
		lines = append(lines, m.Name+"|"+strings.Join(m.Ingredients, ", "))
	}
	return []byte(strings.Join(lines, "\n"))
}

type mappingsFile struct {
	IngredientMappings map[string]string `json:"ingredientMappings"`
	ExportDate         time.Time         `json:"exportDate"`
	Count              int               `json:"count"`
}

// MarshalMappings renders the ingredient mapping export file.
func MarshalMappings(mappings category.Mappings, now time.Time) ([]byte, error) {
	f := mappingsFile{
		IngredientMappings: make(map[string]string, len(mappings)),
		ExportDate:         now.UTC(),
		Count:              len(mappings),
	}
	for _, m := range mappings {
		f.IngredientMappings[m.Ingredient] = m.Category
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal mappings: %w", err)
	}
	return data, nil
}

// ParseMappings parses a mapping export file. Files without a top-level
// "ingredientMappings" object are rejected wholesale. Entries come back
// sorted by ingredient so imports are deterministic.
func ParseMappings(data []byte) (category.Mappings, error) {
	var f mappingsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse mappings: %w", err)
	}
	if f.IngredientMappings == nil {
		return nil, fmt.Errorf("not a mappings file: missing top-level \"ingredientMappings\" field")
	}

	keys := make([]string, 0, len(f.IngredientMappings))
	for k := range f.IngredientMappings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(category.Mappings, 0, len(keys))
	for _, k := range keys {
		out = append(out, category.Mapping{Ingredient: k, Category: f.IngredientMappings[k]})
	}
	return out, nil
}

// ParseMappingLines parses the bulk-edit text format: one mapping per line,
// "ingredient | category". Blank lines are skipped.
func ParseMappingLines(text string) (category.Mappings, error) {
	var out category.Mappings
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ingredient, cat, ok := strings.Cut(line, "|")
		ingredient = strings.ToLower(strings.TrimSpace(ingredient))
		cat = strings.TrimSpace(cat)
		if !ok || ingredient == "" || cat == "" {
			return nil, fmt.Errorf("line %d: expected \"ingredient | category\", got %q", i+1, line)
		}
		out = out.Set(ingredient, cat)
	}
	return out, nil
}

type productsFile struct {
	MasterProductList []catalog.Product `json:"masterProductList"`
	ExportDate        time.Time         `json:"exportDate"`
	Count             int               `json:"count"`
}

// MarshalProducts renders the product catalog export file.
func MarshalProducts(products []catalog.Product, now time.Time) ([]byte, error) {
	f := productsFile{MasterProductList: products, ExportDate: now.UTC(), Count: len(products)}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal products: %w", err)
	}
	return data, nil
}

// ParseProducts parses a product catalog export file. Files without a
// top-level "masterProductList" array are rejected wholesale.
func ParseProducts(data []byte) ([]catalog.Product, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("failed to parse products: %w", err)
	}
	if _, ok := keys["masterProductList"]; !ok {
		return nil, fmt.Errorf("not a products file: missing top-level \"masterProductList\" field")
	}
	var f productsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse products: %w", err)
	}
	return f.MasterProductList, nil
}
