package category

// DefaultCategory is returned when no mapping or built-in rule matches.
const DefaultCategory = "Misc"

// rule ties an ordered keyword set to an aisle label. Rules are checked in
// order and the first rule with any matching keyword wins, so broad keywords
// (e.g. "can") must come after the more specific food groups.
type rule struct {
	category string
	keywords []string
}

var defaultRules = []rule{
	{
		category: "Fruit/Veg",
		keywords: []string{
			"apple", "banana", "lettuce", "tomato", "cucumber", "onion", "garlic",
			"carrot", "potato", "broccoli", "cauliflower", "spinach", "capsicum",
			"mushroom", "celery", "ginger", "leek", "cabbage", "pumpkin", "kumara",
			"corn", "bean", "lemon", "grape", "mandarin",
		},
	},
	{
		category: "Meat/Chilled",
		keywords: []string{
			"egg", "milk", "cream", "cheese", "yogurt", "butter", "sausage",
			"steak", "chicken", "beef", "pork", "mince", "ham", "salami", "tofu",
			"mozzarella", "parmesan", "feta", "halloumi",
		},
	},
	{
		category: "Pasta/Noodles/Stock/Sauces/Tacos/Rice",
		keywords: []string{
			"pasta", "spaghetti", "rice", "noodle", "macaroni", "penne", "risoni",
			"lasagna", "tortilla", "wrap",
		},
	},
	{
		category: "Canned/Seasoning/Sauces",
		keywords: []string{
			"can", "tin", "sauce", "stock", "paste", "pickle", "olive", "chutney",
			"passata",
		},
	},
	{
		category: "Frozen",
		keywords: []string{"frozen", "ice cream"},
	},
	{
		category: "Bread/Buns",
		keywords: []string{"bread", "bun", "roll", "muffin"},
	},
	{
		category: "Baking/Choc Sauce/Dried Fruits",
		keywords: []string{"flour", "sugar", "baking", "yeast", "oil", "coconut"},
	},
}
