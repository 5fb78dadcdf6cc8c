// Package products provides commands that read and manage records on the
// product API directly.
package products

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dreammattress/storefront/cmd/application"
	"github.com/dreammattress/storefront/internal/cmd/emoji"
	"github.com/dreammattress/storefront/internal/cmd/output"
	"github.com/dreammattress/storefront/internal/config"
	"github.com/dreammattress/storefront/pkg/errors"
	"github.com/dreammattress/storefront/pkg/products"
)

// NewCommand creates the products command and its subcommands.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		GroupID: "core",
		Short:   "List and manage products on the product API",
	}
	cmd.PersistentFlags().String("api-url", "", "Product API base URL")
	config.MapFlag(cmd.PersistentFlags(), "api-url", "api.base_url")

	cmd.AddCommand(newListCommand(app), newGetCommand(app), newDeleteCommand(app))
	return cmd
}

func newListCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List products",
		Example: `  storefront products list
  storefront products list -o wide
  storefront products list -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}
			list, err := fetch(cmd, app)
			if err != nil {
				return err
			}
			if len(list) == 0 && (format == "" || format == output.FormatTable) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No products found.")
				return nil
			}
			return output.WriteProducts(cmd.OutOrStdout(), list, output.DetectFormat(string(format)))
		},
	}
}

func newGetCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}
			list, err := fetch(cmd, app)
			if err != nil {
				return err
			}
			p, ok := products.Find(list, args[0])
			if !ok {
				return errors.NewNotFoundError("product", args[0])
			}
			if format == "" {
				format = output.FormatYAML
			}
			return writeOne(cmd.OutOrStdout(), p, format)
		},
	}
}

func newDeleteCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, err := cmd.Flags().GetBool("yes")
			if err != nil {
				return err
			}
			if !yes {
				return errors.NewValidationError("yes", false, "deleting a product requires --yes")
			}
			api, err := app.ProductAPI()
			if err != nil {
				return err
			}
			if err := api.Delete(cmd.Context(), args[0]); err != nil {
				return errors.WrapResource("delete", "product", args[0], err)
			}
			app.Logger().Info().Str("product_id", args[0]).Msg("Product deleted")
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted product %s\n", emoji.Success, args[0])
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Confirm the deletion")
	return cmd
}

func fetch(cmd *cobra.Command, app application.Application) ([]products.Product, error) {
	api, err := app.ProductAPI()
	if err != nil {
		return nil, err
	}
	list, err := api.List(cmd.Context())
	if err != nil {
		return nil, errors.WrapResource("list", "products", "", err)
	}
	return list, nil
}

func writeOne(w io.Writer, p products.Product, format output.Format) error {
	if format == output.FormatTable || format == output.FormatWide {
		return output.WriteProducts(w, []products.Product{p}, output.FormatWide)
	}
	return output.NewFormatter(format).Format(w, p)
}
