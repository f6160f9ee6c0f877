package main

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/vango-dev/vdsl/internal/config"
	"github.com/vango-dev/vdsl/internal/document"
	"github.com/vango-dev/vdsl/pkg/dsl"
	"github.com/vango-dev/vdsl/pkg/render"
	"github.com/vango-dev/vdsl/pkg/telemetry"
	"github.com/vango-dev/vdsl/pkg/vdom"
)

type renderFlags struct {
	output      string
	page        bool
	pretty      bool
	strict      bool
	markWaiting bool
}

func renderCmd(opts *options) *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render <document>",
		Short: "Render a document to HTML",
		Long: `Render a document to HTML.

The argument is a path to a .yaml, .yml or .json file, or the name of a
document in the project's documents directory.

Examples:
  vdsl render card
  vdsl render card --page -o card.html
  vdsl render ./card.yaml --pretty --mark-waiting
  vdsl render card --strict`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			applyRenderFlags(cmd, cfg, &flags)
			return runRender(cmd, opts, cfg, flags, args[0])
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Write HTML to a file instead of stdout")
	cmd.Flags().BoolVar(&flags.page, "page", false, "Wrap the element in a complete HTML page")
	cmd.Flags().BoolVar(&flags.pretty, "pretty", false, "Indent the output (default from config)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "Fail if an element is waiting on resources (default from config)")
	cmd.Flags().BoolVar(&flags.markWaiting, "mark-waiting", false, "Mark elements waiting on resources (default from config)")

	return cmd
}

// applyRenderFlags lets flags that were set explicitly override cfg.
func applyRenderFlags(cmd *cobra.Command, cfg *config.Config, flags *renderFlags) {
	if cmd.Flags().Changed("pretty") {
		cfg.Render.Pretty = flags.pretty
	}
	if cmd.Flags().Changed("mark-waiting") {
		cfg.Render.MarkWaiting = flags.markWaiting
	}
	if cmd.Flags().Changed("strict") {
		cfg.Strict = flags.strict
	}
}

func runRender(cmd *cobra.Command, opts *options, cfg *config.Config, flags renderFlags, arg string) error {
	doc, err := openDocument(document.NewStore(cfg.DocumentsPath()), arg)
	if err != nil {
		return err
	}

	el, err := renderDocument(cmd.Context(), opts, cfg, doc, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	r := render.NewRenderer(rendererConfig(cfg))
	var buf bytes.Buffer
	if flags.page {
		title := doc.Title
		if title == "" {
			title = doc.Name
		}
		err = r.RenderPage(&buf, render.PageData{Title: title, Body: el})
	} else {
		err = r.RenderToWriter(&buf, el)
		if !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
			buf.WriteByte('\n')
		}
	}
	if err != nil {
		return err
	}

	if flags.output == "" {
		_, err = cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(flags.output, buf.Bytes(), 0644); err != nil {
		return err
	}
	success(cmd.ErrOrStderr(), "Wrote %s", flags.output)
	return nil
}

// renderDocument plays doc in a fresh context traced under the configured
// tracer name.
func renderDocument(ctx context.Context, opts *options, cfg *config.Config, doc *document.Document, logs io.Writer) (*vdom.VNode, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	strict := cfg.Strict
	if doc.Strict != nil {
		strict = *doc.Strict
	}
	c := dsl.NewContext(
		dsl.WithStrict(strict),
		dsl.WithLogger(opts.logger(logs).With("document", doc.Name)),
		dsl.WithObserver(telemetry.OpenTelemetry(telemetry.WithTracerName(cfg.Telemetry.Tracer))),
		dsl.WithStdContext(ctx),
	)
	return doc.Render(c)
}

func rendererConfig(cfg *config.Config) render.RendererConfig {
	return render.RendererConfig{
		Pretty:      cfg.Render.Pretty,
		Indent:      cfg.Render.Indent,
		MarkWaiting: cfg.Render.MarkWaiting,
	}
}
