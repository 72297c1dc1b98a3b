package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ng-lang/ng/internal/frontend"
	"github.com/ng-lang/ng/internal/vfs"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-analyze a file whenever it changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	path := args[0]
	cache := frontend.NewCache(0)
	check := func() {
		unit, err := analyze(cmd, path, frontend.WithCache(cache))
		if err != nil {
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d declarations, %d scopes\n", path, len(unit.Program.Decls), unit.Symbols.Tree().Len())
	}

	check()
	return watchFile(ctx, path, func(vfs.Event) { check() })
}

// watchFile follows path with the configured debounce until ctx is done.
func watchFile(ctx context.Context, path string, fn func(vfs.Event)) error {
	debounce := cfg.Watch.Debounce.Duration
	logger.Info("watching %s (debounce %s)", path, debounce)
	return vfs.WatchFile(ctx, vfs.NewWatcher(debounce), path, debounce, fn)
}
