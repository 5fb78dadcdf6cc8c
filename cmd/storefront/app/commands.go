package app

import (
	"github.com/spf13/cobra"

	"github.com/dreammattress/storefront/cmd/storefront/cmd/devapi"
	"github.com/dreammattress/storefront/cmd/storefront/cmd/products"
	"github.com/dreammattress/storefront/cmd/storefront/cmd/serve"
	"github.com/dreammattress/storefront/cmd/storefront/cmd/version"
)

func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(serve.NewCommand(a))
	rootCmd.AddCommand(products.NewCommand(a))
	rootCmd.AddCommand(devapi.NewCommand(a))
	rootCmd.AddCommand(version.NewCommand(a))
}
