package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"shopmate/internal/consolidate"
	"shopmate/internal/display"
)

var consolidateCmd = &cobra.Command{
	Use:   "consolidate",
	Short: "Find meal ingredients that almost match the product catalog",
	Long: "Compares every meal ingredient against the product catalog and lists the\n" +
		"ones with no exact match, with close catalog names as suggestions.\n" +
		"Ingredients used in more meals are listed first.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		display.PrintMismatches(cmd.OutOrStdout(), st.Mismatches())
		return nil
	},
}

var consolidateApplyCmd = &cobra.Command{
	Use:   "apply FROM TO",
	Short: "Rewrite an ingredient to a catalog name across all meals",
	Example: `  shopmate consolidate apply tomatos tomatoes`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		n := st.ApplyConsolidation([]consolidate.Change{{From: args[0], To: args[1]}})
		fmt.Fprintf(cmd.OutOrStdout(), "Rewrote %d ingredient lines\n", n)
		return nil
	},
}

func init() {
	consolidateCmd.AddCommand(consolidateApplyCmd)
	rootCmd.AddCommand(consolidateCmd)
}
