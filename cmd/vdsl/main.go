package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vango-dev/vdsl/internal/config"
	"github.com/vango-dev/vdsl/internal/document"
	"github.com/vango-dev/vdsl/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

// options are the persistent flags shared by all commands.
type options struct {
	config  string
	verbose bool
	noColor bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "vdsl",
		Short: "Render declarative element documents",
		Long: `vdsl builds element trees from YAML or JSON documents and renders
them to HTML.

A document describes a tree of tags, text, markdown and reusable
components. Every document renders in a component scope, so it must
produce exactly one element or string.

Examples:
  vdsl init shop --template=showcase
  vdsl render card
  vdsl render ./components/card.yaml --pretty
  vdsl check
  vdsl serve --port=8080`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				errors.DisableColors()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.config, "config", "c", "", "Config file (default: vdsl.yaml in the project root)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log render details")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored error output")

	rootCmd.AddCommand(
		initCmd(),
		renderCmd(opts),
		checkCmd(opts),
		serveCmd(opts),
		versionCmd(),
	)
	return rootCmd
}

// loadConfig reads the --config file, or the config of the enclosing
// project, or the defaults when there is none.
func (o *options) loadConfig() (*config.Config, error) {
	if o.config != "" {
		return config.LoadFile(o.config)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	root, err := config.FindProjectRoot(wd)
	if err != nil {
		return config.New(), nil
	}
	return config.Load(root)
}

func (o *options) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openDocument treats arg as a file path when it names an existing file,
// and as a document name in store otherwise.
func openDocument(store *document.Store, arg string) (*document.Document, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		return document.ParseFile(arg)
	}
	if filepath.Ext(arg) != "" {
		return nil, errors.New("E133").WithDetailf("No document file at %s.", arg)
	}
	return store.Open(arg)
}

// mark colors a status symbol unless colors are disabled.
func mark(code, symbol string) string {
	if !errors.ColorsEnabled() {
		return symbol
	}
	return code + symbol + "\033[0m"
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", mark("\033[32m", "✓"), fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", mark("\033[33m", "⚠"), fmt.Sprintf(format, args...))
}

// failure prints an error message.
func failure(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", mark("\033[31m", "✗"), fmt.Sprintf(format, args...))
}
