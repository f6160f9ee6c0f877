package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vango-dev/vdsl/internal/config"
	"github.com/vango-dev/vdsl/internal/document"
	"github.com/vango-dev/vdsl/internal/errors"
)

func checkCmd(opts *options) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check [document...]",
		Short: "Render documents and report problems",
		Long: `Render every document in the documents directory, or the named
ones, and report each one that fails to parse or does not produce
exactly one element.

Documents that render but are still waiting on resources are reported
as warnings, or as failures with --strict.

Examples:
  vdsl check
  vdsl check card table
  vdsl check --strict`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("strict") {
				cfg.Strict = strict
			}

			store := document.NewStore(cfg.DocumentsPath())
			names := args
			if len(names) == 0 {
				if names, err = store.List(); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, name := range names {
				pending, err := checkDocument(cmd, opts, cfg, store, name)
				switch {
				case err != nil:
					failed++
					failure(out, "%s", name)
					errors.Fprint(out, err)
				case pending:
					warn(out, "%s is waiting on resources", name)
				default:
					success(out, "%s", name)
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d documents failed", failed, len(names))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail documents waiting on resources (default from config)")

	return cmd
}

// checkDocument renders one document and reports whether its element is
// still waiting on resources.
func checkDocument(cmd *cobra.Command, opts *options, cfg *config.Config, store *document.Store, name string) (bool, error) {
	doc, err := openDocument(store, name)
	if err != nil {
		return false, err
	}
	el, err := renderDocument(cmd.Context(), opts, cfg, doc, cmd.ErrOrStderr())
	if err != nil {
		return false, err
	}
	return el.Pending(), nil
}
