package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/vango-dev/vdsl/internal/errors"
)

// Config contains template configuration.
type Config struct {
	// ProjectName is the name of the project.
	ProjectName string

	// Title is the preview page title. Defaults to ProjectName.
	Title string

	// Strict makes renders fail while elements wait on resources.
	Strict bool
}

// Template represents a project template.
type Template struct {
	// Name is the template name.
	Name string

	// Description describes the template.
	Description string

	// Files maps paths relative to the project directory to their
	// template source.
	Files map[string]string
}

var templates = map[string]*Template{
	"minimal":  minimalTemplate(),
	"showcase": showcaseTemplate(),
}

// Get returns the template called name.
func Get(name string) (*Template, error) {
	t, ok := templates[name]
	if !ok {
		return nil, errors.New("E140").
			WithDetailf("Unknown template %q.", name).
			WithSuggestion("Available templates: " + strings.Join(List(), ", "))
	}
	return t, nil
}

// List returns all available template names, sorted.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Paths returns the template's file paths, sorted.
func (t *Template) Paths() []string {
	paths := make([]string, 0, len(t.Files))
	for path := range t.Files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Create writes the template's files below dir. Nothing is written if any
// of them exists.
func (t *Template) Create(dir string, cfg Config) error {
	if cfg.Title == "" {
		cfg.Title = cfg.ProjectName
	}

	for _, relPath := range t.Paths() {
		fullPath := filepath.Join(dir, relPath)
		if _, err := os.Stat(fullPath); err == nil {
			return errors.New("E141").
				WithDetailf("%s already exists.", fullPath).
				WithSuggestion("Choose an empty directory")
		}
	}

	for _, relPath := range t.Paths() {
		fullPath := filepath.Join(dir, relPath)
		tmpl, err := template.New(relPath).Parse(t.Files[relPath])
		if err != nil {
			return errors.Newf(errors.CategoryCLI, "invalid template %s: %v", relPath, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return errors.Newf(errors.CategoryCLI, "template execute error %s: %v", relPath, err)
		}

		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
			return err
		}
	}

	return nil
}

const configFile = `# vdsl project configuration
documents: components
strict: {{.Strict}}

render:
  pretty: true
  markWaiting: true

preview:
  port: 7070
  title: {{printf "%q" .Title}}

telemetry:
  namespace: vdsl
`

func minimalTemplate() *Template {
	return &Template{
		Name:        "minimal",
		Description: "A config file and one document",
		Files: map[string]string{
			"vdsl.yaml": configFile,
			"components/hello.yaml": `title: Hello
body:
  tag: main
  children:
    - tag: h1
      text: {{printf "%q" .ProjectName}}
    - tag: p
      text: Edit components/hello.yaml and reload the preview.
`,
		},
	}
}

func showcaseTemplate() *Template {
	return &Template{
		Name:        "showcase",
		Description: "Documents using components, markdown and pending data",
		Files: map[string]string{
			"vdsl.yaml": configFile,
			"components/page.yaml": `title: Welcome
components:
  nav:
    tag: nav
    children:
      - tag: a
        attrs: {href: /components/page}
        text: Home
      - tag: a
        attrs: {href: /components/orders}
        text: Orders
body:
  tag: div
  attrs: {class: page}
  children:
    - use: nav
    - tag: article
      markdown: |
        # {{.Title}}

        Documents are trees of **tags**, text and markdown.
        Every document must render exactly one element.
`,
			"components/orders.yaml": `title: Orders
components:
  row:
    - tag: tr
      children:
        - tag: td
          text: Loading…
          pending: true
        - tag: td
          text: "-"
body:
  tag: table
  children:
    - tag: thead
      children:
        - tag: tr
          children:
            - {tag: th, text: Order}
            - {tag: th, text: Total}
    - tag: tbody
      children:
        - use: row
`,
			"components/badge.yaml": `body: new
`,
		},
	}
}
