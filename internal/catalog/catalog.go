package catalog

import (
	"time"
)

// Product is a canonical purchasable item in the master catalog, assigned to
// exactly one aisle.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Aisle     string    `json:"aisle"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DefaultAisles is the seed walking order for a fresh install. Aisle names
// are plain labels; products may reference aisles missing from this list and
// such items simply sort last.
func DefaultAisles() []string {
	return []string{
		"Fruit/Veg",
		"Meat/Chilled",
		"Pet Things",
		"Chips",
		"Coffee/Drinks/Tea",
		"Breakfast/Condiments",
		"Baking/Choc Sauce/Dried Fruits",
		"Bars/Chips/Pretzels/Popcorn",
		"Canned/Seasoning/Sauces",
		"Pasta/Noodles/Stock/Sauces/Tacos/Rice",
		"Paper Towels/Nappy Things/TP",
		"Biscuits/Crackers",
		"Cleaning/Washing products",
		"Frozen",
		"Bread/Buns",
		"Womens Products/Shampoo/Soap/Oral",
		"Misc",
	}
}

// AisleRank maps each aisle name to its position in the walking order.
// Unknown aisles get a rank past the end so they group after configured ones.
func AisleRank(aisles []string) func(name string) int {
	rank := make(map[string]int, len(aisles))
	for i, a := range aisles {
		rank[a] = i
	}
	return func(name string) int {
		if r, ok := rank[name]; ok {
			return r
		}
		return len(aisles)
	}
}
