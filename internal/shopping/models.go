package shopping

// Source records where a shopping-list item came from. It decides what the
// reconciler preserves across recomputation.
type Source string

const (
	// SourceMeal marks items derived from a selected meal's ingredients.
	SourceMeal Source = "meal"
	// SourceManual marks items the user typed directly into the list.
	SourceManual Source = "manual"
	// SourceCategory marks items pushed from a quick-add group.
	SourceCategory Source = "category"
)

// Item is a single shopping-list entry. Identity is the case-insensitive,
// trimmed Text; there is no separate id. Count is the number of selected
// meals that contributed the same normalized text in the latest
// reconciliation pass.
type Item struct {
	Text     string `json:"text"`
	Category string `json:"category"`
	Checked  bool   `json:"checked"`
	Source   Source `json:"source"`
	Count    int    `json:"count"`
}

// QuickAddGroup is a reusable bundle of products ("Kids Food", "Cleaning")
// that can be pushed onto the shopping list in one tap. Every item lands in
// the group's aisle with SourceCategory.
type QuickAddGroup struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Icon  string   `json:"icon"`
	Aisle string   `json:"aisle"`
	Items []string `json:"items"`
}

// DefaultQuickAddGroups seeds a fresh install with the starter groups.
func DefaultQuickAddGroups() []QuickAddGroup {
	return []QuickAddGroup{
		{
			ID:    "kids-food",
			Name:  "Kids Food",
			Icon:  "👶",
			Aisle: "Breakfast/Condiments",
			Items: []string{"Weetbix", "Up n Go 12pack", "Pouches (yogurt etc)", "Yogurt", "Fruit cups 1", "Custards 1L"},
		},
		{
			ID:    "pet-supplies",
			Name:  "Pet Supplies",
			Icon:  "🐱",
			Aisle: "Pet Things",
			Items: []string{"Cat food", "Litter"},
		},
		{
			ID:    "cleaning",
			Name:  "Cleaning",
			Icon:  "🧹",
			Aisle: "Cleaning/Washing products",
			Items: []string{"Dishwasher tablet", "Washing powder", "Dish washing liquid", "Multi purpose spray", "Paper towels", "Sponge"},
		},
		{
			ID:    "baking-basics",
			Name:  "Baking Basics",
			Icon:  "🎂",
			Aisle: "Baking/Choc Sauce/Dried Fruits",
			Items: []string{"High grade flour", "Sugar", "Eggs", "Butter", "Baking powder"},
		},
	}
}
