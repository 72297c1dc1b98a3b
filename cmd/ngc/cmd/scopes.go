package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/ng-lang/ng/internal/resolver"
)

var scopesCmd = &cobra.Command{
	Use:   "scopes <file>",
	Short: "Print the scope tree of a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runScopes,
}

func init() {
	rootCmd.AddCommand(scopesCmd)
}

func runScopes(cmd *cobra.Command, args []string) error {
	unit, err := analyze(cmd, args[0])
	if err != nil {
		return err
	}
	r := lipgloss.NewRenderer(cmd.OutOrStdout())
	r.SetColorProfile(logger.Renderer().ColorProfile())
	_, err = fmt.Fprintln(cmd.OutOrStdout(), renderScopes(r, unit.Symbols))
	return err
}

type scopeStyles struct {
	scope  lipgloss.Style
	name   lipgloss.Style
	kind   lipgloss.Style
	branch lipgloss.Style
}

func newScopeStyles(r *lipgloss.Renderer) scopeStyles {
	return scopeStyles{
		scope:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		name:   r.NewStyle().Foreground(lipgloss.Color("#10B981")),
		kind:   r.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		branch: r.NewStyle().Foreground(lipgloss.Color("#6B7280")).MarginRight(1),
	}
}

// renderScopes draws every scope of dict. A scope opened by a named
// declaration hangs below that name; other scopes, such as the ones opened
// by if expressions, hang below their parent scope after its names.
func renderScopes(r *lipgloss.Renderer, dict *resolver.SymbolDict) string {
	st := newScopeStyles(r)
	children := make(map[resolver.ScopeID][]*resolver.Scope)
	for _, s := range dict.Scopes() {
		if p := s.Parent(); p != nil {
			children[p.ID()] = append(children[p.ID()], s)
		}
	}

	var build func(s *resolver.Scope, label string) *tree.Tree
	build = func(s *resolver.Scope, label string) *tree.Tree {
		t := tree.Root(label).
			Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(st.branch)
		placed := make(map[resolver.ScopeID]bool)
		for _, name := range s.Names() {
			node := s.LookupLocal(name)
			entry := st.name.Render(name) + " " + st.kind.Render(node.Kind().String())
			if cs, ok := dict.ScopeOf(node); ok && cs.Parent() == s {
				placed[cs.ID()] = true
				t.Child(build(cs, entry+" "+scopeLabel(st, cs)))
				continue
			}
			t.Child(entry)
		}
		for _, cs := range children[s.ID()] {
			if !placed[cs.ID()] {
				t.Child(build(cs, scopeLabel(st, cs)))
			}
		}
		return t
	}
	return build(dict.Root(), scopeLabel(st, dict.Root())).String()
}

func scopeLabel(st scopeStyles, s *resolver.Scope) string {
	return st.scope.Render(fmt.Sprintf("%s#%d", s.Kind(), s.ID()))
}
