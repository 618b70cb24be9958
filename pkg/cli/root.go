// Package cli assembles the provision command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/provision-dev/provision/internal/cli"
)

// Root builds the root command with all subcommands registered.
func Root() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "provision",
		Short: "Turn natural language into reviewable infrastructure changes",
		Long: `provision resolves natural language infrastructure requests into
Crossplane YAML documents and publishes them as pull requests for review.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(cli.RequestCmd)
	rootCmd.AddCommand(cli.InteractiveCmd)
	rootCmd.AddCommand(cli.ServeCmd)
	rootCmd.AddCommand(cli.VersionCmd)

	return rootCmd
}
