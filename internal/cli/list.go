package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"shopmate/internal/display"
	"shopmate/internal/store"
)

var flagCategory string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the shopping list in aisle walking order",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runShowList(cmd)
	},
}

var listAddCmd = &cobra.Command{
	Use:   "add TEXT",
	Short: "Add an item; the category is guessed unless --category is set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		if err := st.AddManualItem(args[0], flagCategory); err != nil {
			return err
		}
		return printList(cmd, st)
	},
}

var listCheckCmd = &cobra.Command{
	Use:   "check TEXT",
	Short: "Toggle an item's checked-off state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		if err := st.ToggleItemChecked(args[0]); err != nil {
			return err
		}
		return printList(cmd, st)
	},
}

var listRemoveCmd = &cobra.Command{
	Use:   "remove TEXT",
	Short: "Remove an item from the list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		if err := st.RemoveItem(args[0]); err != nil {
			return err
		}
		return printList(cmd, st)
	},
}

var listClearCheckedCmd = &cobra.Command{
	Use:   "clear-checked",
	Short: "Remove every checked-off item",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		st.ClearCheckedItems()
		return printList(cmd, st)
	},
}

var listClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the shopping list",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		st.ClearAllItems()
		fmt.Fprintln(cmd.OutOrStdout(), "Shopping list cleared.")
		return nil
	},
}

var listRecomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Rebuild the list from the selected meals and current mappings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		st.RecomputeList()
		return printList(cmd, st)
	},
}

func runShowList(cmd *cobra.Command) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	return printList(cmd, st)
}

func printList(cmd *cobra.Command, st *store.Store) error {
	if flagJSON {
		return display.PrintShoppingListJSON(cmd.OutOrStdout(), st.List())
	}
	display.PrintShoppingList(cmd.OutOrStdout(), st.List(), st.Aisles())
	return nil
}

func init() {
	listAddCmd.Flags().StringVarP(&flagCategory, "category", "c", "", "Aisle category for the item")

	listCmd.AddCommand(listAddCmd, listCheckCmd, listRemoveCmd,
		listClearCheckedCmd, listClearCmd, listRecomputeCmd)
	rootCmd.AddCommand(listCmd)
}
