package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ng-lang/ng/internal/cli"
	"github.com/ng-lang/ng/internal/frontend"
)

var (
	cfgFile   string
	verbose   bool
	debug     bool
	colorMode string

	cfg    *cli.Config
	logger *cli.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ngc",
	Short: "ng language front end",
	Long: `ngc lexes, parses and resolves ng programs.

Commands:
  tokens   - print the token stream
  parse    - print the syntax tree
  fmt      - print or rewrite canonical source
  resolve  - look up qualified names such as fact::x
  scopes   - print the scope tree
  watch    - re-analyze a file whenever it changes
  serve    - answer lookups over HTTP/3
  index    - store scope trees in a SQLite database`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the command tree. On failure the error is reported and the
// process exits with status 1.
func Execute() {
	cli.HandleError(rootCmd.Execute(), logger)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug output")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "", "color mode: auto, always or never")
}

// setup loads the configuration, lets flags override it and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = cli.LoadConfig(cfgFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
	if flags.Changed("debug") {
		cfg.Debug = debug
	}
	if flags.Changed("color") {
		cfg.Color = colorMode
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger = cli.NewLogger(cfg.Verbose, cfg.Debug)
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetColor(cfg.ColorEnabled(cmd.ErrOrStderr()))
	logger.Debug("config: %+v", *cfg)

	return cfg.CheckLanguage(frontend.LanguageVersion)
}

var errReported = cli.ErrReported

// analyze runs the front end over path, rendering a diagnostic on failure.
func analyze(cmd *cobra.Command, path string, opts ...frontend.Option) (*frontend.Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}
	opts = append([]frontend.Option{frontend.WithLogger(logger)}, opts...)
	unit, err := frontend.Analyze(path, string(data), opts...)
	if err != nil {
		cli.RenderDiagnostic(cmd.ErrOrStderr(), logger.Renderer(), err, string(data))
		return nil, errReported
	}
	return unit, nil
}
