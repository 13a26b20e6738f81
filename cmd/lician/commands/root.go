package commands

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lician",
	Short: "lician.com backend - comparison sitemaps and ticker roster",
	Long: `lician backend CLI

Serves the comparison sitemap endpoints and manages the ticker roster
they are generated from.

Usage:
  go run ./cmd/lician [command]

Examples:
  go run ./cmd/lician api
  go run ./cmd/lician sync
  go run ./cmd/lician sitemap --variant quarterly --page 3
  go run ./cmd/lician status`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}
