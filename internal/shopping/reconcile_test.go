package shopping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmate/internal/category"
	"shopmate/internal/meal"
	"shopmate/internal/textutil"
)

func testMeals() []meal.Meal {
	return []meal.Meal{
		{ID: "m1", Name: "Tacos", Ingredients: []string{"2 cups mince", "1 tortilla wrap"}, SortOrder: 0},
		{ID: "m2", Name: "Spag Bol", Ingredients: []string{"500g mince", "spaghetti", "passata"}, SortOrder: 1},
		{ID: "m3", Name: "Mince on Toast", Ingredients: []string{"2 cups mince", "bread"}, SortOrder: 2},
	}
}

func findItem(t *testing.T, items []Item, text string) Item {
	t.Helper()
	for _, it := range items {
		if textutil.NormalizeKey(it.Text) == textutil.NormalizeKey(text) {
			return it
		}
	}
	t.Fatalf("item %q not in list %v", text, items)
	return Item{}
}

func TestRecomputeTacosScenario(t *testing.T) {
	list := Recompute([]string{"m1"}, testMeals(), nil, nil)

	require.Len(t, list, 2)

	mince := findItem(t, list, "2 cups mince")
	assert.Equal(t, "Meat/Chilled", mince.Category)
	assert.Equal(t, SourceMeal, mince.Source)
	assert.Equal(t, 1, mince.Count)
	assert.False(t, mince.Checked)

	wrap := findItem(t, list, "1 tortilla wrap")
	assert.Equal(t, "Pasta/Noodles/Stock/Sauces/Tacos/Rice", wrap.Category)
	assert.Equal(t, SourceMeal, wrap.Source)
	assert.Equal(t, 1, wrap.Count)
}

func TestRecomputeAggregatesCountsAcrossMeals(t *testing.T) {
	// m1 and m3 both contribute "2 cups mince".
	list := Recompute([]string{"m1", "m3"}, testMeals(), nil, nil)

	mince := findItem(t, list, "2 cups mince")
	assert.Equal(t, 2, mince.Count)

	// Different quantity keeps a separate entry.
	list = Recompute([]string{"m1", "m2"}, testMeals(), nil, nil)
	assert.Equal(t, 1, findItem(t, list, "2 cups mince").Count)
	assert.Equal(t, 1, findItem(t, list, "500g mince").Count)
}

func TestRecomputeIdempotent(t *testing.T) {
	selected := []string{"m1", "m2"}
	meals := testMeals()

	first := Recompute(selected, meals, nil, nil)
	second := Recompute(selected, meals, first, nil)
	assert.Equal(t, first, second)

	third := Recompute(selected, meals, second, nil)
	assert.Equal(t, second, third)
}

func TestRecomputeDedupInvariant(t *testing.T) {
	existing := []Item{
		{Text: "Bread", Source: SourceManual, Category: "Bread/Buns"},
		{Text: "bread ", Source: SourceManual, Category: "Bread/Buns"},
	}
	list := Recompute([]string{"m3"}, testMeals(), existing, nil)

	seen := map[string]bool{}
	for _, it := range list {
		key := textutil.NormalizeKey(it.Text)
		assert.False(t, seen[key], "duplicate key %q", key)
		seen[key] = true
	}
}

func TestRecomputeManualItemsSurvive(t *testing.T) {
	existing := []Item{
		{Text: "Dish soap", Category: "Cleaning/Washing products", Source: SourceManual, Count: 1},
		{Text: "Cat food", Category: "Pet Things", Source: SourceCategory, Count: 1, Checked: true},
	}

	list := Recompute([]string{"m1"}, testMeals(), existing, nil)
	list = Recompute(nil, testMeals(), list, nil)
	list = Recompute([]string{"m2", "m3"}, testMeals(), list, nil)

	soap := findItem(t, list, "dish soap")
	assert.Equal(t, SourceManual, soap.Source)
	cat := findItem(t, list, "cat food")
	assert.Equal(t, SourceCategory, cat.Source)
	assert.True(t, cat.Checked)
}

func TestRecomputeCheckedMealItemSurvivesDeselection(t *testing.T) {
	list := Recompute([]string{"m1"}, testMeals(), nil, nil)

	// The user buys the mince and checks it off.
	for i := range list {
		if textutil.NormalizeKey(list[i].Text) == "2 cups mince" {
			list[i].Checked = true
		}
	}

	// Deselecting the meal must not wipe the checked item.
	list = Recompute(nil, testMeals(), list, nil)
	mince := findItem(t, list, "2 cups mince")
	assert.True(t, mince.Checked)
	assert.Equal(t, SourceMeal, mince.Source)

	// The unchecked wrap from the same meal is gone.
	for _, it := range list {
		assert.NotEqual(t, "1 tortilla wrap", it.Text)
	}
}

func TestRecomputeSkipsStaleSelection(t *testing.T) {
	list := Recompute([]string{"m1", "gone"}, testMeals(), nil, nil)
	assert.Len(t, list, 2)
}

func TestRecomputeUsesMappingsForCategory(t *testing.T) {
	var m category.Mappings
	m = m.Set("mince", "Butchery")

	list := Recompute([]string{"m1"}, testMeals(), nil, m)
	assert.Equal(t, "Butchery", findItem(t, list, "2 cups mince").Category)
}

func TestDedupeFirstOccurrenceWins(t *testing.T) {
	items := []Item{
		{Text: "Milk", Source: SourceMeal, Checked: false},
		{Text: "milk", Source: SourceManual, Checked: true},
	}
	out := Dedupe(items)

	require.Len(t, out, 1)
	// First-seen item keeps its state; the later checked duplicate does not
	// flip it. Intentional "first occurrence wins, count aggregates" policy.
	assert.False(t, out[0].Checked)
	assert.Equal(t, SourceMeal, out[0].Source)
	assert.Equal(t, 1, out[0].Count)
}

func TestDedupeCountsOnlyMealDuplicates(t *testing.T) {
	items := []Item{
		{Text: "bread", Source: SourceManual},
		{Text: "Bread", Source: SourceMeal},
		{Text: "BREAD", Source: SourceMeal},
		{Text: "bread", Source: SourceCategory},
	}
	out := Dedupe(items)

	require.Len(t, out, 1)
	assert.Equal(t, SourceManual, out[0].Source)
	assert.Equal(t, 3, out[0].Count) // 1 initial + 2 meal duplicates
}
