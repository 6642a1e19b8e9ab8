package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"shopmate/internal/display"
	"shopmate/internal/store"
)

var (
	flagIngredients     []string
	flagIngredientsFile string
	flagRename          string
)

var mealsCmd = &cobra.Command{
	Use:   "meals",
	Short: "Manage the meal library and weekly selection",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		return printMeals(cmd, st)
	},
}

var mealsAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a meal with its ingredient lines",
	Args:  cobra.ExactArgs(1),
	Example: `  shopmate meals add "Tacos" --ingredient "500g mince" --ingredient "8 taco shells"
  shopmate meals add "Stir Fry" --ingredients-file stirfry.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}

		ingredients := flagIngredients
		if flagIngredientsFile != "" {
			lines, err := readLines(flagIngredientsFile)
			if err != nil {
				return err
			}
			ingredients = append(ingredients, lines...)
		}

		m, err := st.AddMeal(args[0], ingredients)
		if err != nil {
			return err
		}
		display.PrintMeal(cmd.OutOrStdout(), m)
		return nil
	},
}

var mealsShowCmd = &cobra.Command{
	Use:   "show MEAL",
	Short: "Show one meal's ingredient lines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		m, err := resolveMeal(st, args[0])
		if err != nil {
			return err
		}
		display.PrintMeal(cmd.OutOrStdout(), m)
		return nil
	},
}

var mealsUpdateCmd = &cobra.Command{
	Use:   "update MEAL",
	Short: "Rename a meal or replace its ingredient lines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		m, err := resolveMeal(st, args[0])
		if err != nil {
			return err
		}

		var fields store.MealFields
		if flagRename != "" {
			fields.Name = &flagRename
		}
		ingredients := flagIngredients
		if flagIngredientsFile != "" {
			lines, err := readLines(flagIngredientsFile)
			if err != nil {
				return err
			}
			ingredients = append(ingredients, lines...)
		}
		if len(ingredients) > 0 {
			fields.Ingredients = ingredients
		}

		if err := st.UpdateMeal(m.ID, fields); err != nil {
			return err
		}
		updated, err := resolveMeal(st, m.ID)
		if err != nil {
			return err
		}
		display.PrintMeal(cmd.OutOrStdout(), updated)
		return nil
	},
}

var mealsDeleteCmd = &cobra.Command{
	Use:   "delete MEAL",
	Short: "Delete a meal; its ingredients leave the shopping list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		m, err := resolveMeal(st, args[0])
		if err != nil {
			return err
		}
		if err := st.DeleteMeal(m.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", m.Name)
		return nil
	},
}

var mealsSelectCmd = &cobra.Command{
	Use:   "select MEAL",
	Short: "Toggle a meal in or out of this week's selection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		m, err := resolveMeal(st, args[0])
		if err != nil {
			return err
		}
		if err := st.ToggleMealSelection(m.ID); err != nil {
			return err
		}
		return printMeals(cmd, st)
	},
}

var mealsClearCmd = &cobra.Command{
	Use:   "clear-selected",
	Short: "Unselect all meals; their ingredients leave the shopping list",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		st.ClearSelectedMeals()
		return printMeals(cmd, st)
	},
}

var mealsReorderCmd = &cobra.Command{
	Use:   "reorder FROM TO",
	Short: "Move a meal from one position to another (1-based)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid position %q", args[0])
		}
		to, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid position %q", args[1])
		}

		st, _, err := openStore()
		if err != nil {
			return err
		}
		if err := st.ReorderMeal(from-1, to-1); err != nil {
			return err
		}
		return printMeals(cmd, st)
	},
}

var mealsSortCmd = &cobra.Command{
	Use:   "sort",
	Short: "Sort the meal library alphabetically",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		st.SortMealsAlphabetically()
		return printMeals(cmd, st)
	},
}

func printMeals(cmd *cobra.Command, st *store.Store) error {
	if flagJSON {
		return display.PrintMealsJSON(cmd.OutOrStdout(), st.Meals(), st.IsSelected)
	}
	display.PrintMeals(cmd.OutOrStdout(), st.Meals(), st.IsSelected)
	return nil
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return splitLines(string(data)), nil
}

func init() {
	mealsAddCmd.Flags().StringArrayVarP(&flagIngredients, "ingredient", "i", nil, "Ingredient line (repeatable)")
	mealsAddCmd.Flags().StringVar(&flagIngredientsFile, "ingredients-file", "", "File with one ingredient line per row")
	mealsUpdateCmd.Flags().StringArrayVarP(&flagIngredients, "ingredient", "i", nil, "Replacement ingredient line (repeatable)")
	mealsUpdateCmd.Flags().StringVar(&flagIngredientsFile, "ingredients-file", "", "File with one replacement line per row")
	mealsUpdateCmd.Flags().StringVar(&flagRename, "name", "", "New meal name")

	mealsCmd.AddCommand(mealsAddCmd, mealsShowCmd, mealsUpdateCmd, mealsDeleteCmd,
		mealsSelectCmd, mealsClearCmd, mealsReorderCmd, mealsSortCmd)
	rootCmd.AddCommand(mealsCmd)
}
