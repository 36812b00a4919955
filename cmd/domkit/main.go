package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/vango-dev/domkit/internal/config"
	"github.com/vango-dev/domkit/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries state shared by all commands.
type app struct {
	configDir string
	logLevel  string
	logFormat string
	noColor   bool

	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "domkit",
		Short: "Render HTML templates from declarative render maps",
		Long: `domkit populates HTML templates from YAML or JSON render maps.

Commands:

  • render   Render a template file with a data file
  • serve    Start the preview server
  • fetch    Issue a request and print the response
  • version  Print version information

Settings are read from domkit.json in the working directory when present.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configDir, "config", "c", ".", "Directory containing domkit.json")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (default from domkit.json)")
	flags.StringVar(&a.logFormat, "log-format", "", "Log format: text or json (default from domkit.json)")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		renderCmd(a),
		serveCmd(a),
		fetchCmd(a),
		versionCmd(),
	)
	return rootCmd
}

// setup loads configuration, applies global flags and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadOrDefault(a.configDir)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	if a.noColor || os.Getenv("NO_COLOR") != "" || !isTerminal(cmd.OutOrStdout()) {
		errors.DisableColors()
		color.NoColor = true
	}

	a.logger = newLogger(cmd.ErrOrStderr(), cfg)
	slog.SetDefault(a.logger)
	return nil
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}
	if cfg.JSONLogs() {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", color.GreenString("✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
