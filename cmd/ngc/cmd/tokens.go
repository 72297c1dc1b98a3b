package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ng-lang/ng/internal/ast"
	"github.com/ng-lang/ng/internal/frontend"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Print the token stream of a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Print the syntax tree of a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(parseCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	unit, err := analyze(cmd, args[0], frontend.UpTo(frontend.StageLex))
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, tok := range unit.Tokens {
		value := ""
		if tok.Value != "" {
			value = strconv.Quote(tok.Value)
		}
		fmt.Fprintf(w, "%d:%d\t%s\t%s\n", tok.Pos.Line, tok.Pos.Column, tok.Type, value)
	}
	return w.Flush()
}

func runParse(cmd *cobra.Command, args []string) error {
	unit, err := analyze(cmd, args[0], frontend.UpTo(frontend.StageParse))
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), ast.Dump(unit.Program))
	return err
}
