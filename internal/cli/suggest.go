package cli

import (
	"github.com/spf13/cobra"

	"shopmate/internal/display"
)

var flagTop int

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Show the items you add most often",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		display.PrintTopItems(cmd.OutOrStdout(), st.TopItems(flagTop))
		return nil
	},
}

func init() {
	suggestCmd.Flags().IntVarP(&flagTop, "top", "n", 10, "How many items to show")
	rootCmd.AddCommand(suggestCmd)
}
