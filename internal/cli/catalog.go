package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"shopmate/internal/display"
	"shopmate/internal/export"
	"shopmate/internal/store"
)

var (
	flagProductAisle string
	flagMoveAisle    string
	flagNewName      string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the master product catalog",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		display.PrintProducts(cmd.OutOrStdout(), st.Products(), st.Aisles())
		return nil
	},
}

var catalogAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a product to the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		p, err := st.AddProduct(args[0], flagProductAisle)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %q in aisle %q\n", p.Name, p.Aisle)
		return nil
	},
}

var catalogUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Rename a product or move it to another aisle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}

		var fields store.ProductFields
		if cmd.Flags().Changed("name") {
			fields.Name = &flagNewName
		}
		if cmd.Flags().Changed("aisle") {
			fields.Aisle = &flagMoveAisle
		}
		if err := st.UpdateProduct(args[0], fields); err != nil {
			return err
		}
		display.PrintProducts(cmd.OutOrStdout(), st.Products(), st.Aisles())
		return nil
	},
}

var catalogDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a product from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		return st.DeleteProduct(args[0])
	},
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the product catalog to a JSON file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		data, err := export.MarshalProducts(st.Products(), time.Now())
		if err != nil {
			return err
		}

		path := flagOutput
		if path == "" {
			path = fmt.Sprintf("master-products-%s.json", time.Now().Format("2006-01-02"))
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d products to %s\n", len(st.Products()), path)
		return nil
	},
}

var catalogImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import products from a JSON export (merge by default)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		products, err := export.ParseProducts(data)
		if err != nil {
			return err
		}

		st, _, err := openStore()
		if err != nil {
			return err
		}
		if flagReplace {
			st.ReplaceProducts(products)
			fmt.Fprintf(cmd.OutOrStdout(), "Replaced catalog with %d products\n", len(st.Products()))
			return nil
		}
		added := st.MergeProducts(products)
		fmt.Fprintf(cmd.OutOrStdout(), "Merged %d new products, %d total\n", added, len(st.Products()))
		return nil
	},
}

var aislesCmd = &cobra.Command{
	Use:   "aisles",
	Short: "Manage the aisle walking order",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		display.PrintAisles(cmd.OutOrStdout(), st.Aisles())
		return nil
	},
}

var aislesAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Append an aisle to the walking order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		if err := st.AddAisle(args[0]); err != nil {
			return err
		}
		display.PrintAisles(cmd.OutOrStdout(), st.Aisles())
		return nil
	},
}

var aislesRenameCmd = &cobra.Command{
	Use:   "rename OLD NEW",
	Short: "Rename an aisle; products and quick-add groups follow",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		if err := st.RenameAisle(args[0], args[1]); err != nil {
			return err
		}
		display.PrintAisles(cmd.OutOrStdout(), st.Aisles())
		return nil
	},
}

var aislesDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete an empty aisle from the walking order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		if err := st.DeleteAisle(args[0]); err != nil {
			return err
		}
		display.PrintAisles(cmd.OutOrStdout(), st.Aisles())
		return nil
	},
}

func init() {
	catalogAddCmd.Flags().StringVarP(&flagProductAisle, "aisle", "a", "Misc", "Aisle the product lives in")
	catalogUpdateCmd.Flags().StringVar(&flagNewName, "name", "", "New product name")
	catalogUpdateCmd.Flags().StringVarP(&flagMoveAisle, "aisle", "a", "", "New aisle")
	catalogImportCmd.Flags().BoolVar(&flagReplace, "replace", false, "Replace the catalog instead of merging")
	catalogExportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file path")

	catalogCmd.AddCommand(catalogAddCmd, catalogUpdateCmd, catalogDeleteCmd,
		catalogExportCmd, catalogImportCmd)
	aislesCmd.AddCommand(aislesAddCmd, aislesRenameCmd, aislesDeleteCmd)
	rootCmd.AddCommand(catalogCmd, aislesCmd)
}
