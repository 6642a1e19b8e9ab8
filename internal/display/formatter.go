package display

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"shopmate/internal/catalog"
	"shopmate/internal/category"
	"shopmate/internal/consolidate"
	"shopmate/internal/meal"
	"shopmate/internal/shopping"
	"shopmate/internal/store"
)

// Styles for terminal output.
var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))  // green
	aisleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))  // cyan
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))  // magenta
	countStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))             // yellow
	checkedStyle  = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// ItemJSON is the JSON output shape for a shopping list item.
type ItemJSON struct {
	Text     string `json:"text"`
	Category string `json:"category"`
	Checked  bool   `json:"checked"`
	Source   string `json:"source"`
	Count    int    `json:"count"`
}

// MealJSON is the JSON output shape for a meal.
type MealJSON struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	Selected    bool     `json:"selected"`
}

// PrintShoppingList renders the list grouped by category, categories in
// aisle order, unknown categories last.
func PrintShoppingList(w io.Writer, items []shopping.Item, aisles []string) {
	remaining := 0
	for _, it := range items {
		if !it.Checked {
			remaining++
		}
	}
	fmt.Fprintf(w, "\n%s — %s\n\n",
		headerStyle.Render("Shopping List"),
		dimStyle.Render(fmt.Sprintf("%d of %d remaining", remaining, len(items))),
	)

	rank := catalog.AisleRank(aisles)
	groups := make(map[string][]shopping.Item)
	var order []string
	for _, it := range items {
		if _, ok := groups[it.Category]; !ok {
			order = append(order, it.Category)
		}
		groups[it.Category] = append(groups[it.Category], it)
	}
	sort.SliceStable(order, func(i, j int) bool { return rank(order[i]) < rank(order[j]) })

	for _, cat := range order {
		fmt.Fprintf(w, "  %s\n", aisleStyle.Render(cat))
		for _, it := range groups[cat] {
			fmt.Fprintf(w, "    %s\n", formatItem(it))
		}
		fmt.Fprintln(w)
	}
}

func formatItem(it shopping.Item) string {
	mark := "[ ]"
	text := it.Text
	if it.Count > 1 {
		text += " " + countStyle.Render(fmt.Sprintf("×%d", it.Count))
	}
	if it.Source == shopping.SourceManual {
		text += " " + dimStyle.Render("(manual)")
	}
	if it.Checked {
		mark = "[x]"
		text = checkedStyle.Render(it.Text)
		if it.Count > 1 {
			text += " " + dimStyle.Render(fmt.Sprintf("×%d", it.Count))
		}
	}
	return mark + " " + text
}

// PrintShoppingListJSON renders the list as JSON.
func PrintShoppingListJSON(w io.Writer, items []shopping.Item) error {
	out := make([]ItemJSON, 0, len(items))
	for _, it := range items {
		out = append(out, ItemJSON{
			Text:     it.Text,
			Category: it.Category,
			Checked:  it.Checked,
			Source:   string(it.Source),
			Count:    it.Count,
		})
	}
	return json.NewEncoder(w).Encode(out)
}

// PrintMeals renders the meal library with selection markers.
func PrintMeals(w io.Writer, meals []meal.Meal, isSelected func(id string) bool) {
	fmt.Fprintf(w, "\n%s — %s\n\n",
		headerStyle.Render("Meals"),
		dimStyle.Render(fmt.Sprintf("%d meals", len(meals))),
	)
	for i, m := range meals {
		mark := " "
		name := titleStyle.Render(m.Name)
		if isSelected(m.ID) {
			mark = selectedStyle.Render("●")
			name = selectedStyle.Render(m.Name)
		}
		fmt.Fprintf(w, "  %s %2d. %s %s\n", mark, i+1, name,
			dimStyle.Render(fmt.Sprintf("(%d ingredients)", len(m.Ingredients))))
	}
	fmt.Fprintln(w)
}

// PrintMealsJSON renders meals as JSON.
func PrintMealsJSON(w io.Writer, meals []meal.Meal, isSelected func(id string) bool) error {
	out := make([]MealJSON, 0, len(meals))
	for _, m := range meals {
		ingredients := m.Ingredients
		if ingredients == nil {
			ingredients = []string{}
		}
		out = append(out, MealJSON{
			ID:          m.ID,
			Name:        m.Name,
			Ingredients: ingredients,
			Selected:    isSelected(m.ID),
		})
	}
	return json.NewEncoder(w).Encode(out)
}

// PrintMeal renders one meal with its ingredient lines.
func PrintMeal(w io.Writer, m meal.Meal) {
	fmt.Fprintf(w, "\n%s\n", titleStyle.Render(m.Name))
	for _, line := range m.Ingredients {
		fmt.Fprintf(w, "  - %s\n", line)
	}
	fmt.Fprintln(w)
}

// PrintMappings renders ingredient mappings sorted by ingredient.
func PrintMappings(w io.Writer, mappings category.Mappings) {
	sorted := make(category.Mappings, len(mappings))
	copy(sorted, mappings)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Ingredient < sorted[j].Ingredient })

	fmt.Fprintf(w, "\n%s — %s\n\n",
		headerStyle.Render("Ingredient Mappings"),
		dimStyle.Render(fmt.Sprintf("%d mappings", len(sorted))),
	)
	for _, m := range sorted {
		fmt.Fprintf(w, "  %s %s %s\n", m.Ingredient, dimStyle.Render("→"), aisleStyle.Render(m.Category))
	}
	fmt.Fprintln(w)
}

// PrintProducts renders the product catalog grouped by aisle, aisles in
// their configured order.
func PrintProducts(w io.Writer, products []catalog.Product, aisles []string) {
	fmt.Fprintf(w, "\n%s — %s\n\n",
		headerStyle.Render("Product Catalog"),
		dimStyle.Render(fmt.Sprintf("%d products", len(products))),
	)

	rank := catalog.AisleRank(aisles)
	groups := make(map[string][]catalog.Product)
	var order []string
	for _, p := range products {
		if _, ok := groups[p.Aisle]; !ok {
			order = append(order, p.Aisle)
		}
		groups[p.Aisle] = append(groups[p.Aisle], p)
	}
	sort.SliceStable(order, func(i, j int) bool { return rank(order[i]) < rank(order[j]) })

	for _, aisle := range order {
		fmt.Fprintf(w, "  %s\n", aisleStyle.Render(aisle))
		names := groups[aisle]
		sort.Slice(names, func(i, j int) bool { return names[i].Name < names[j].Name })
		for _, p := range names {
			fmt.Fprintf(w, "    %s\n", p.Name)
		}
	}
	fmt.Fprintln(w)
}

// PrintAisles renders the aisle walk order.
func PrintAisles(w io.Writer, aisles []string) {
	fmt.Fprintf(w, "\n%s\n\n", headerStyle.Render("Aisle Order"))
	for i, a := range aisles {
		fmt.Fprintf(w, "  %2d. %s\n", i+1, a)
	}
	fmt.Fprintln(w)
}

// PrintMismatches renders consolidation candidates with their suggestions.
func PrintMismatches(w io.Writer, mismatches []consolidate.Mismatch) {
	if len(mismatches) == 0 {
		fmt.Fprintf(w, "\n%s\n\n", dimStyle.Render("All meal ingredients match the product catalog."))
		return
	}

	fmt.Fprintf(w, "\n%s — %s\n\n",
		headerStyle.Render("Unmatched Ingredients"),
		dimStyle.Render(fmt.Sprintf("%d found", len(mismatches))),
	)
	for _, m := range mismatches {
		fmt.Fprintf(w, "  %s %s\n",
			titleStyle.Render(m.Ingredient),
			dimStyle.Render(fmt.Sprintf("(used in %d: %s)", m.MealsCount, strings.Join(m.MealNames, ", "))),
		)
		if len(m.Suggested) == 0 {
			fmt.Fprintf(w, "    %s\n", dimStyle.Render("no close matches"))
			continue
		}
		for _, s := range m.Suggested {
			fmt.Fprintf(w, "    %s %s\n", aisleStyle.Render(s.Name),
				dimStyle.Render(fmt.Sprintf("%.0f%%", s.Score*100)))
		}
	}
	fmt.Fprintln(w)
}

// PrintTopItems renders the most frequently added items.
func PrintTopItems(w io.Writer, usage []store.ItemUsage) {
	fmt.Fprintf(w, "\n%s\n\n", headerStyle.Render("Frequently Added"))
	for _, u := range usage {
		fmt.Fprintf(w, "  %s %s\n", u.Text, countStyle.Render(fmt.Sprintf("×%d", u.Count)))
	}
	fmt.Fprintln(w)
}

// PrintError prints a styled error message.
func PrintError(w io.Writer, msg string) {
	fmt.Fprintln(w, errorStyle.Render(msg))
}

// PrintWarning prints a styled warning message.
func PrintWarning(w io.Writer, msg string) {
	fmt.Fprintln(w, warningStyle.Render(msg))
}
