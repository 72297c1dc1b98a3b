package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ng-lang/ng/internal/index"
)

var indexDB string

var indexCmd = &cobra.Command{
	Use:   "index <file>",
	Short: "Store the scope tree of a file in the symbol database",
	Long: `index analyzes a file and stores its scopes and bindings in a SQLite
database under a new run id.

Examples:
  ngc index main.ng
  ngc index runs
  ngc index lookup <run-id> fact::x`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

var indexRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List stored runs",
	Args:  cobra.NoArgs,
	RunE:  runIndexRuns,
}

var indexLookupCmd = &cobra.Command{
	Use:   "lookup <run-id> <path>...",
	Short: "Look up qualified names in a stored run",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runIndexLookup,
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.AddCommand(indexRunsCmd)
	indexCmd.AddCommand(indexLookupCmd)
	indexCmd.PersistentFlags().StringVar(&indexDB, "db", "", "database path (default from config)")
}

func openIndex() (*index.Index, error) {
	path := cfg.Index.Path
	if indexDB != "" {
		path = indexDB
	}
	logger.Debug("opening index %s", path)
	return index.Open(path)
}

func runIndex(cmd *cobra.Command, args []string) error {
	unit, err := analyze(cmd, args[0])
	if err != nil {
		return err
	}
	idx, err := openIndex()
	if err != nil {
		return err
	}
	defer idx.Close()

	runID, err := idx.Save(cmd.Context(), unit.Name, unit.Symbols)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), runID)
	return err
}

func runIndexRuns(cmd *cobra.Command, args []string) error {
	idx, err := openIndex()
	if err != nil {
		return err
	}
	defer idx.Close()

	runs, err := idx.Runs(cmd.Context())
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tUNIT\tCREATED\tNODES\tSCOPES\tSYMBOLS")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n", r.ID, r.Unit, r.CreatedAt.Local().Format(time.DateTime), r.Nodes, r.Scopes, r.Symbols)
	}
	return w.Flush()
}

func runIndexLookup(cmd *cobra.Command, args []string) error {
	idx, err := openIndex()
	if err != nil {
		return err
	}
	defer idx.Close()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	defer w.Flush()
	for _, path := range args[1:] {
		sym, err := idx.Resolve(cmd.Context(), args[0], path)
		switch {
		case err != nil:
			return err
		case sym == nil:
			fmt.Fprintf(w, "%s\t-\tnot found\n", path)
		default:
			fmt.Fprintf(w, "%s\t%s\t%s\n", path, sym.Kind, sym.Text)
		}
	}
	return nil
}
