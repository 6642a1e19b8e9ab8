package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveBuiltinRules(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"2 cups mince", "Meat/Chilled"},
		{"chicken breast", "Meat/Chilled"},
		{"1 tortilla wrap", "Pasta/Noodles/Stock/Sauces/Tacos/Rice"},
		{"2 tomatoes", "Fruit/Veg"},
		{"400g can tomatoes", "Fruit/Veg"}, // produce rule outranks canned rule
		{"tomato paste", "Fruit/Veg"},
		{"soy sauce", "Canned/Seasoning/Sauces"},
		{"frozen peas", "Frozen"},
		{"bread rolls", "Bread/Buns"},
		{"high grade flour", "Baking/Choc Sauce/Dried Fruits"},
		{"ice cream", "Frozen"},
		{"washing powder", "Misc"},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, Resolve(tc.raw, nil))
		})
	}
}

func TestResolveExactMappingBeatsBuiltin(t *testing.T) {
	var m Mappings
	m = m.Set("Milk", "Dairy")

	// "milk" would hit the Meat/Chilled rule without the override.
	assert.Equal(t, "Dairy", Resolve("Milk", m))
	assert.Equal(t, "Dairy", Resolve("  milk ", m))
}

func TestResolveSubstringMappingFirstInsertedWins(t *testing.T) {
	var m Mappings
	m = m.Set("choc", "Treats")
	m = m.Set("chip", "Chips")

	// "choc chip biscuits" matches both keywords; insertion order decides.
	assert.Equal(t, "Treats", Resolve("choc chip biscuits", m))

	var reversed Mappings
	reversed = reversed.Set("chip", "Chips")
	reversed = reversed.Set("choc", "Treats")
	assert.Equal(t, "Chips", Resolve("choc chip biscuits", reversed))
}

func TestResolveSubstringMappingBeatsBuiltin(t *testing.T) {
	var m Mappings
	m = m.Set("oat", "Breakfast/Condiments")

	assert.Equal(t, "Breakfast/Condiments", Resolve("rolled oats", m))
}

func TestResolveDefault(t *testing.T) {
	assert.Equal(t, "Misc", Resolve("mystery item", nil))
	assert.Equal(t, "Misc", Resolve("", nil))
}

func TestMappingsSetUpdatesInPlace(t *testing.T) {
	var m Mappings
	m = m.Set("milk", "Dairy")
	m = m.Set("bread", "Bakery")
	m = m.Set("Milk", "Chilled")

	assert.Len(t, m, 2)
	cat, ok := m.Get("milk")
	assert.True(t, ok)
	assert.Equal(t, "Chilled", cat)
	// Updating must not disturb insertion order.
	assert.Equal(t, "milk", m[0].Ingredient)
}

func TestMappingsRemove(t *testing.T) {
	var m Mappings
	m = m.Set("milk", "Dairy")
	m = m.Set("bread", "Bakery")
	m = m.Remove("MILK")

	assert.Len(t, m, 1)
	_, ok := m.Get("milk")
	assert.False(t, ok)
}
