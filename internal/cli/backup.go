package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"shopmate/internal/export"
)

var flagCSV bool

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a backup of meals and quick-add groups",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}

		now := time.Now()
		if flagCSV {
			path := flagOutput
			if path == "" {
				path = fmt.Sprintf("meal-planner-backup-%s.csv", now.Format("2006-01-02"))
			}
			if err := os.WriteFile(path, export.MealsCSV(st.Meals()), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d meals to %s\n", len(st.Meals()), path)
			return nil
		}

		data, err := export.MarshalBackup(st.Meals(), st.QuickAddGroups(), now)
		if err != nil {
			return err
		}
		path := flagOutput
		if path == "" {
			path = fmt.Sprintf("meal-planner-backup-%s.json", now.Format("2006-01-02"))
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d meals and %d groups to %s\n",
			len(st.Meals()), len(st.QuickAddGroups()), path)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Restore meals and quick-add groups from a backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		b, err := export.ParseBackup(data)
		if err != nil {
			return err
		}

		st, _, err := openStore()
		if err != nil {
			return err
		}

		added := 0
		for _, m := range b.Meals {
			if _, err := st.AddMeal(m.Name, m.Ingredients); err != nil {
				return fmt.Errorf("meal %q: %w", m.Name, err)
			}
			added++
		}
		groups := 0
		for _, g := range b.Categories {
			if _, err := st.AddQuickAddGroup(g.Name, g.Icon, g.Aisle, g.Items); err != nil {
				return fmt.Errorf("group %q: %w", g.Name, err)
			}
			groups++
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d meals and %d groups\n", added, groups)
		return nil
	},
}

func init() {
	exportCmd.Flags().BoolVar(&flagCSV, "csv", false, "Write a meals CSV instead of the JSON backup")
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file path")

	rootCmd.AddCommand(exportCmd, importCmd)
}
