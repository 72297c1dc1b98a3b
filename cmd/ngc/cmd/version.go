package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ng-lang/ng/internal/cli"
	"github.com/ng-lang/ng/internal/frontend"
)

var versionJSON bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.PrintVersion(cmd.OutOrStdout(), "ngc", cli.GetVersionInfo(frontend.LanguageVersion), versionJSON)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "print as JSON")
}
