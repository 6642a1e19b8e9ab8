package display_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmate/internal/catalog"
	"shopmate/internal/category"
	"shopmate/internal/consolidate"
	"shopmate/internal/display"
	"shopmate/internal/meal"
	"shopmate/internal/shopping"
	"shopmate/internal/store"
)

func sampleItems() []shopping.Item {
	return []shopping.Item{
		{Text: "500g mince", Category: "Meat/Chilled", Source: shopping.SourceMeal, Count: 2},
		{Text: "Ice cream", Category: "Frozen", Checked: true, Source: shopping.SourceManual, Count: 1},
		{Text: "Bananas", Category: "Fruit/Veg", Source: shopping.SourceManual, Count: 1},
	}
}

func TestPrintShoppingList_GroupsInAisleOrder(t *testing.T) {
	var buf bytes.Buffer
	display.PrintShoppingList(&buf, sampleItems(), catalog.DefaultAisles())
	output := buf.String()

	assert.Contains(t, output, "Shopping List")
	assert.Contains(t, output, "2 of 3 remaining")
	assert.Contains(t, output, "500g mince")
	assert.Contains(t, output, "×2")
	assert.Contains(t, output, "[x]")

	// Default aisle walk puts Fruit/Veg before Meat/Chilled before Frozen.
	fruit := strings.Index(output, "Fruit/Veg")
	meat := strings.Index(output, "Meat/Chilled")
	frozen := strings.Index(output, "Frozen")
	require.True(t, fruit >= 0 && meat >= 0 && frozen >= 0)
	assert.Less(t, fruit, meat)
	assert.Less(t, meat, frozen)
}

func TestPrintShoppingList_UnknownCategoryLast(t *testing.T) {
	items := []shopping.Item{
		{Text: "Mystery thing", Category: "Hardware", Source: shopping.SourceManual, Count: 1},
		{Text: "Bananas", Category: "Fruit/Veg", Source: shopping.SourceManual, Count: 1},
	}

	var buf bytes.Buffer
	display.PrintShoppingList(&buf, items, catalog.DefaultAisles())
	output := buf.String()

	assert.Less(t, strings.Index(output, "Fruit/Veg"), strings.Index(output, "Hardware"))
}

func TestPrintShoppingListJSON(t *testing.T) {
	var buf bytes.Buffer
	err := display.PrintShoppingListJSON(&buf, sampleItems())
	require.NoError(t, err)

	var out []display.ItemJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 3)
	assert.Equal(t, "500g mince", out[0].Text)
	assert.Equal(t, "meal", out[0].Source)
	assert.Equal(t, 2, out[0].Count)
	assert.True(t, out[1].Checked)
}

func TestPrintMeals(t *testing.T) {
	meals := []meal.Meal{
		{ID: "m1", Name: "Tacos", Ingredients: []string{"500g mince", "8 taco shells"}},
		{ID: "m2", Name: "Stir Fry", Ingredients: []string{"2 chicken breasts"}},
	}

	var buf bytes.Buffer
	display.PrintMeals(&buf, meals, func(id string) bool { return id == "m1" })
	output := buf.String()

	assert.Contains(t, output, "2 meals")
	assert.Contains(t, output, "Tacos")
	assert.Contains(t, output, "(2 ingredients)")
	assert.Contains(t, output, "Stir Fry")
}

func TestPrintMealsJSON(t *testing.T) {
	meals := []meal.Meal{{ID: "m1", Name: "Toast"}}

	var buf bytes.Buffer
	err := display.PrintMealsJSON(&buf, meals, func(string) bool { return true })
	require.NoError(t, err)

	var out []display.MealJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 1)
	assert.True(t, out[0].Selected)
	assert.NotNil(t, out[0].Ingredients)
}

func TestPrintMappings(t *testing.T) {
	mappings := category.Mappings{
		{Ingredient: "passata", Category: "Pantry"},
		{Ingredient: "mince", Category: "Meat/Chilled"},
	}

	var buf bytes.Buffer
	display.PrintMappings(&buf, mappings)
	output := buf.String()

	assert.Contains(t, output, "2 mappings")
	// Rendered alphabetically regardless of insertion order.
	assert.Less(t, strings.Index(output, "mince"), strings.Index(output, "passata"))
}

func TestPrintMismatches(t *testing.T) {
	mismatches := []consolidate.Mismatch{
		{
			Ingredient: "tomatos",
			MealsCount: 2,
			MealNames:  []string{"Pasta", "Salad"},
			Suggested:  []consolidate.Suggestion{{Name: "tomatoes", Score: 0.875}},
		},
		{Ingredient: "weird thing", MealsCount: 1, MealNames: []string{"Stew"}},
	}

	var buf bytes.Buffer
	display.PrintMismatches(&buf, mismatches)
	output := buf.String()

	assert.Contains(t, output, "2 found")
	assert.Contains(t, output, "tomatos")
	assert.Contains(t, output, "tomatoes")
	assert.Contains(t, output, "88%")
	assert.Contains(t, output, "no close matches")
}

func TestPrintMismatchesEmpty(t *testing.T) {
	var buf bytes.Buffer
	display.PrintMismatches(&buf, nil)
	assert.Contains(t, buf.String(), "match the product catalog")
}

func TestPrintTopItems(t *testing.T) {
	var buf bytes.Buffer
	display.PrintTopItems(&buf, []store.ItemUsage{{Text: "milk", Count: 7}})
	output := buf.String()

	assert.Contains(t, output, "milk")
	assert.Contains(t, output, "×7")
}
