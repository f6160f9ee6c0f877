package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vango-dev/vdsl/internal/errors"
	"github.com/vango-dev/vdsl/internal/templates"
)

func initCmd() *cobra.Command {
	var (
		template string
		title    string
		strict   bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a vdsl project",
		Long: `Create a vdsl.yaml and starter documents in dir (default: the
current directory). Existing files are never overwritten.

Templates:
  ` + templateList() + `

Examples:
  vdsl init
  vdsl init shop --template=showcase
  vdsl init shop --title="Shop components" --strict`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			abs, err := filepath.Abs(dir)
			if err != nil {
				return err
			}

			tmpl, err := templates.Get(template)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(abs, 0755); err != nil {
				return errors.New("E141").Wrap(err)
			}
			if err := tmpl.Create(abs, templates.Config{
				ProjectName: filepath.Base(abs),
				Title:       title,
				Strict:      strict,
			}); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, path := range tmpl.Paths() {
				success(out, "Created %s", filepath.Join(dir, path))
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "  To preview:")
			fmt.Fprintln(out)
			if dir != "." {
				fmt.Fprintf(out, "    cd %s\n", dir)
			}
			fmt.Fprintln(out, "    vdsl serve")
			return nil
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "minimal", "Project template ("+strings.Join(templates.List(), ", ")+")")
	cmd.Flags().StringVar(&title, "title", "", "Preview title (default: the directory name)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail renders while elements wait on resources")

	return cmd
}

func templateList() string {
	var lines []string
	for _, name := range templates.List() {
		tmpl, _ := templates.Get(name)
		lines = append(lines, fmt.Sprintf("%-10s %s", name, tmpl.Description))
	}
	return strings.Join(lines, "\n  ")
}
