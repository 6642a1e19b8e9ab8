// Package cli implements the shopmate command tree. Every invocation loads
// the collections from the local data directory, applies one operation, and
// relies on the store's persister to write the changed collections back.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"shopmate/internal/config"
	"shopmate/internal/display"
	"shopmate/internal/meal"
	"shopmate/internal/storage"
	"shopmate/internal/store"
)

var flagJSON bool

var rootCmd = &cobra.Command{
	Use:   "shopmate",
	Short: "Meal planning and shopping list manager",
	Long: "Manage a meal library, pick meals for the week, and keep a shopping list\n" +
		"that stays in sync with your selections. Items are grouped by supermarket\n" +
		"aisle so the list reads in walking order.",
	Example: `  shopmate list
  shopmate list add "2L milk"
  shopmate meals add "Tacos" --ingredient "500g mince" --ingredient "8 taco shells"
  shopmate meals select Tacos
  shopmate consolidate`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runShowList(cmd)
	},
}

func init() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		display.PrintError(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// openStore loads every persisted collection into a store wired to write
// changes back to the local data directory.
func openStore() (*store.Store, *config.Config, error) {
	cfg, err := config.NewFromEnv()
	if err != nil {
		return nil, nil, err
	}

	local, err := storage.NewLocal(cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}

	st := store.New(store.WithPersister(local))
	for _, key := range store.AllKeys {
		data, err := local.LoadCollection(key)
		if err != nil {
			return nil, nil, err
		}
		if data == nil {
			continue
		}
		if err := st.Load(key, data); err != nil {
			return nil, nil, err
		}
	}
	return st, cfg, nil
}

// resolveMeal accepts a meal id or a case-insensitive name.
func resolveMeal(st *store.Store, arg string) (meal.Meal, error) {
	meals := st.Meals()
	if m := meal.ByID(meals, arg); m != nil {
		return *m, nil
	}
	for _, m := range meals {
		if strings.EqualFold(m.Name, arg) {
			return m, nil
		}
	}
	return meal.Meal{}, fmt.Errorf("no meal named %q", arg)
}

// splitLines breaks text into trimmed, non-empty lines.
func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
