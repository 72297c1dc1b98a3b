package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ng-lang/ng/internal/format"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <file> [path]...",
	Short: "Look up qualified names in a file",
	Long: `resolve analyzes a file and looks up each path, such as fact::x.
Without paths it lists the top-level names.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	unit, err := analyze(cmd, args[0])
	if err != nil {
		return err
	}
	paths := args[1:]
	if len(paths) == 0 {
		paths = unit.Symbols.Root().Names()
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	defer w.Flush()
	failed := false
	for _, path := range paths {
		node, err := unit.Symbols.Lookup(path)
		switch {
		case err != nil:
			logger.Error("%v", err)
			failed = true
		case node == nil:
			fmt.Fprintf(w, "%s\t-\tnot found\n", path)
		default:
			fmt.Fprintf(w, "%s\t%s\t%s\n", path, node.Kind(), format.Node(node))
		}
	}
	if failed {
		return errReported
	}
	return nil
}
