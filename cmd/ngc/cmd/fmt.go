package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ng-lang/ng/internal/cli"
	"github.com/ng-lang/ng/internal/format"
)

var (
	fmtWrite bool
	fmtDiff  bool
	fmtList  bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>...",
	Short: "Print ng source in canonical form",
	Long: `fmt parses each file and prints it in canonical form. A file that
does not parse is reported and only has its whitespace cleaned.

Examples:
  ngc fmt main.ng
  ngc fmt -w main.ng lib.ng
  ngc fmt -d main.ng`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write result to the source file")
	fmtCmd.Flags().BoolVarP(&fmtDiff, "diff", "d", false, "print a unified diff instead of the result")
	fmtCmd.Flags().BoolVarP(&fmtList, "list", "l", false, "list files whose formatting differs")
}

func runFmt(cmd *cobra.Command, args []string) error {
	failed := false
	for _, path := range args {
		if err := fmtFile(cmd, path); err != nil {
			if err != errReported {
				logger.Error("%s: %v", path, err)
			}
			failed = true
		}
	}
	if failed {
		return errReported
	}
	return nil
}

func fmtFile(cmd *cobra.Command, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	src := string(data)
	formatted, diff, parseErr := format.SourceWithDiff(path, src, format.DefaultOptions(), format.DefaultDiffOptions())
	if parseErr != nil {
		cli.RenderDiagnostic(cmd.ErrOrStderr(), logger.Renderer(), parseErr, src)
		logger.Warn("%s does not parse; only whitespace is cleaned", path)
		formatted, diff = format.TextWithDiff(path, src, format.DefaultOptions(), format.DefaultDiffOptions())
	}

	out := cmd.OutOrStdout()
	changed := formatted != src
	switch {
	case fmtList:
		if changed {
			fmt.Fprintln(out, path)
		}
	case fmtDiff:
		fmt.Fprint(out, diff)
	case fmtWrite:
		if !changed {
			break
		}
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
			return err
		}
		logger.Info("formatted %s", path)
	default:
		fmt.Fprint(out, formatted)
	}
	if parseErr != nil {
		return errReported
	}
	return nil
}
