package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shopmate/internal/shopping"
)

var (
	flagIcon       string
	flagGroupAisle string
	flagGroupItems []string
)

var quickaddCmd = &cobra.Command{
	Use:   "quickadd",
	Short: "Manage quick-add groups of regular items",
	Long: "Quick-add groups bundle the items you buy on most trips (pet food,\n" +
		"cleaning supplies) so one command pushes them all onto the list.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		printGroups(cmd, st.QuickAddGroups())
		return nil
	},
}

var quickaddPushCmd = &cobra.Command{
	Use:   "push GROUP",
	Short: "Add a group's items to the shopping list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		g, err := resolveGroup(st.QuickAddGroups(), args[0])
		if err != nil {
			return err
		}
		if err := st.AddGroupItems(g.ID); err != nil {
			return err
		}
		return printList(cmd, st)
	},
}

var quickaddCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a quick-add group",
	Example: `  shopmate quickadd create "School Lunches" --icon 🎒 --aisle Misc \
    --item "Muesli bars" --item "Juice boxes"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		g, err := st.AddQuickAddGroup(args[0], flagIcon, flagGroupAisle, flagGroupItems)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s with %d items\n", g.Icon, g.Name, len(g.Items))
		return nil
	},
}

var quickaddDeleteCmd = &cobra.Command{
	Use:   "delete GROUP",
	Short: "Delete a quick-add group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		g, err := resolveGroup(st.QuickAddGroups(), args[0])
		if err != nil {
			return err
		}
		if err := st.DeleteQuickAddGroup(g.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", g.Name)
		return nil
	},
}

// resolveGroup accepts a group id or a case-insensitive name.
func resolveGroup(groups []shopping.QuickAddGroup, arg string) (shopping.QuickAddGroup, error) {
	for _, g := range groups {
		if g.ID == arg {
			return g, nil
		}
	}
	for _, g := range groups {
		if strings.EqualFold(g.Name, arg) {
			return g, nil
		}
	}
	return shopping.QuickAddGroup{}, fmt.Errorf("no quick-add group named %q", arg)
}

func printGroups(cmd *cobra.Command, groups []shopping.QuickAddGroup) {
	out := cmd.OutOrStdout()
	for _, g := range groups {
		fmt.Fprintf(out, "%s %s (%s) — %d items\n", g.Icon, g.Name, g.Aisle, len(g.Items))
		for _, item := range g.Items {
			fmt.Fprintf(out, "    %s\n", item)
		}
	}
}

func init() {
	quickaddCreateCmd.Flags().StringVar(&flagIcon, "icon", "🛒", "Emoji shown next to the group")
	quickaddCreateCmd.Flags().StringVarP(&flagGroupAisle, "aisle", "a", "Misc", "Aisle the group's items default to")
	quickaddCreateCmd.Flags().StringArrayVar(&flagGroupItems, "item", nil, "Item in the group (repeatable)")

	quickaddCmd.AddCommand(quickaddPushCmd, quickaddCreateCmd, quickaddDeleteCmd)
	rootCmd.AddCommand(quickaddCmd)
}
