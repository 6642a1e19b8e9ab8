package consolidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmate/internal/catalog"
	"shopmate/internal/meal"
)

func products(names ...string) []catalog.Product {
	out := make([]catalog.Product, len(names))
	for i, n := range names {
		out[i] = catalog.Product{ID: n, Name: n, Aisle: "Misc"}
	}
	return out
}

func TestFindMismatchesSuggestsCloseNames(t *testing.T) {
	meals := []meal.Meal{
		{ID: "m1", Name: "Pasta Bake", Ingredients: []string{"2 tomatos", "penne"}},
	}
	cat := products("tomatoes", "penne")

	got := FindMismatches(meals, cat)

	require.Len(t, got, 1)
	m := got[0]
	assert.Equal(t, "tomatos", m.Ingredient)
	assert.Equal(t, 1, m.MealsCount)
	assert.Equal(t, []string{"Pasta Bake"}, m.MealNames)
	require.NotEmpty(t, m.Suggested)
	assert.Equal(t, "tomatoes", m.Suggested[0].Name)
	assert.Greater(t, m.Suggested[0].Score, 0.5)
}

func TestFindMismatchesOmitsBelowThreshold(t *testing.T) {
	meals := []meal.Meal{
		{ID: "m1", Name: "Odd Meal", Ingredients: []string{"xylophone"}},
	}
	// Nothing in the catalog is anywhere near "xylophone".
	got := FindMismatches(meals, products("bread", "milk"))
	assert.Empty(t, got)
}

func TestFindMismatchesSkipsExactCatalogNames(t *testing.T) {
	meals := []meal.Meal{
		{ID: "m1", Name: "Toast", Ingredients: []string{"2 Bread"}},
	}
	got := FindMismatches(meals, products("bread"))
	assert.Empty(t, got)
}

func TestFindMismatchesCapsSuggestionsAtThree(t *testing.T) {
	meals := []meal.Meal{
		{ID: "m1", Name: "Soup", Ingredients: []string{"tomato"}},
	}
	cat := products("tomatoes", "tomato paste", "tomato sauce", "tomatillo")

	got := FindMismatches(meals, cat)
	require.Len(t, got, 1)
	assert.LessOrEqual(t, len(got[0].Suggested), 3)
	// Descending by similarity.
	for i := 1; i < len(got[0].Suggested); i++ {
		assert.GreaterOrEqual(t, got[0].Suggested[i-1].Score, got[0].Suggested[i].Score)
	}
}

func TestFindMismatchesSortsByMealImpact(t *testing.T) {
	meals := []meal.Meal{
		{ID: "m1", Name: "A", Ingredients: []string{"tomatos"}, SortOrder: 0},
		{ID: "m2", Name: "B", Ingredients: []string{"brocolli", "tomatos"}, SortOrder: 1},
		{ID: "m3", Name: "C", Ingredients: []string{"tomatos"}, SortOrder: 2},
	}
	cat := products("tomatoes", "broccoli")

	got := FindMismatches(meals, cat)
	require.Len(t, got, 2)
	assert.Equal(t, "tomatos", got[0].Ingredient)
	assert.Equal(t, 3, got[0].MealsCount)
	assert.ElementsMatch(t, []string{"A", "B", "C"}, got[0].MealNames)
	assert.Equal(t, "brocolli", got[1].Ingredient)
	assert.Equal(t, 1, got[1].MealsCount)
}

func TestFindMismatchesCountsMealOncePerIngredient(t *testing.T) {
	meals := []meal.Meal{
		{ID: "m1", Name: "Double", Ingredients: []string{"1 tomatos", "2 tomatos"}},
	}
	got := FindMismatches(meals, products("tomatoes"))
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].MealsCount)
}

func TestApplyRewritesProductPortion(t *testing.T) {
	meals := []meal.Meal{
		{ID: "m1", Name: "A", Ingredients: []string{"2 cups tomatos", "penne"}},
		{ID: "m2", Name: "B", Ingredients: []string{"400g tomatos", "Tomatos"}},
	}

	n := Apply(meals, []Change{{From: "tomatos", To: "tomatoes"}})

	assert.Equal(t, 4, n)
	assert.Equal(t, "2 cups tomatoes", meals[0].Ingredients[0])
	assert.Equal(t, "penne", meals[0].Ingredients[1])
	assert.Equal(t, "400g tomatoes", meals[1].Ingredients[0])
	assert.Equal(t, "tomatoes", meals[1].Ingredients[1])
}

func TestApplyNoMatchesChangesNothing(t *testing.T) {
	meals := []meal.Meal{
		{ID: "m1", Name: "A", Ingredients: []string{"bread"}},
	}
	n := Apply(meals, []Change{{From: "tomatos", To: "tomatoes"}})
	assert.Equal(t, 0, n)
	assert.Equal(t, "bread", meals[0].Ingredients[0])
}
