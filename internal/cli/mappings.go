package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"shopmate/internal/display"
	"shopmate/internal/export"
)

var (
	flagReplace bool
	flagOutput  string
)

var mappingsCmd = &cobra.Command{
	Use:   "mappings",
	Short: "Manage ingredient-to-category mappings",
	Long: "Mappings override the built-in category rules. An exact match on the\n" +
		"cleaned ingredient name wins; otherwise the first mapping whose key\n" +
		"appears inside the name is used.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		display.PrintMappings(cmd.OutOrStdout(), st.Mappings())
		return nil
	},
}

var mappingsAddCmd = &cobra.Command{
	Use:   "add INGREDIENT CATEGORY",
	Short: "Map an ingredient to a category and rebuild the list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		if err := st.AddIngredientMapping(args[0], args[1]); err != nil {
			return err
		}
		st.RecomputeList()
		display.PrintMappings(cmd.OutOrStdout(), st.Mappings())
		return nil
	},
}

var mappingsRemoveCmd = &cobra.Command{
	Use:   "remove INGREDIENT",
	Short: "Remove a mapping and rebuild the list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		if err := st.RemoveIngredientMapping(args[0]); err != nil {
			return err
		}
		st.RecomputeList()
		display.PrintMappings(cmd.OutOrStdout(), st.Mappings())
		return nil
	},
}

var mappingsBulkCmd = &cobra.Command{
	Use:   "bulk FILE",
	Short: "Replace all mappings from an \"ingredient | category\" text file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		mappings, err := export.ParseMappingLines(string(data))
		if err != nil {
			return err
		}

		st, _, err := openStore()
		if err != nil {
			return err
		}
		st.ReplaceMappings(mappings)
		st.RecomputeList()
		display.PrintMappings(cmd.OutOrStdout(), st.Mappings())
		return nil
	},
}

var mappingsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the mappings to a JSON file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		data, err := export.MarshalMappings(st.Mappings(), time.Now())
		if err != nil {
			return err
		}

		path := flagOutput
		if path == "" {
			path = fmt.Sprintf("ingredient-mappings-%s.json", time.Now().Format("2006-01-02"))
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d mappings to %s\n", len(st.Mappings()), path)
		return nil
	},
}

var mappingsImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import mappings from a JSON export (merge by default)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		mappings, err := export.ParseMappings(data)
		if err != nil {
			return err
		}

		st, _, err := openStore()
		if err != nil {
			return err
		}
		if flagReplace {
			st.ReplaceMappings(mappings)
		} else {
			st.MergeMappings(mappings)
		}
		st.RecomputeList()
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d mappings, %d total\n", len(mappings), len(st.Mappings()))
		return nil
	},
}

func init() {
	mappingsImportCmd.Flags().BoolVar(&flagReplace, "replace", false, "Replace all existing mappings instead of merging")
	mappingsExportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file path")

	mappingsCmd.AddCommand(mappingsAddCmd, mappingsRemoveCmd, mappingsBulkCmd,
		mappingsExportCmd, mappingsImportCmd)
	rootCmd.AddCommand(mappingsCmd)
}
