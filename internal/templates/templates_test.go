package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/vdsl/internal/config"
	"github.com/vango-dev/vdsl/internal/document"
	"github.com/vango-dev/vdsl/internal/errors"
	"github.com/vango-dev/vdsl/pkg/dsl"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"minimal", false},
		{"showcase", false},
		{"nonexistent", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Get(tt.name)
			if tt.wantErr {
				if !errors.Is(err, errors.New("E140")) {
					t.Errorf("error = %v, want E140", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tmpl.Name != tt.name {
				t.Errorf("Name = %q, want %q", tmpl.Name, tt.name)
			}
		})
	}
}

func TestList(t *testing.T) {
	got := strings.Join(List(), ",")
	if got != "minimal,showcase" {
		t.Errorf("List() = %s", got)
	}
}

// Every template must produce a loadable config and documents that render
// in a strict context once their pending data is ignored.
func TestCreatedProjectsRender(t *testing.T) {
	for _, name := range List() {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			tmpl, _ := Get(name)
			if err := tmpl.Create(dir, Config{ProjectName: "shop: main"}); err != nil {
				t.Fatalf("Create: %v", err)
			}

			cfg, err := config.Load(dir)
			if err != nil {
				t.Fatalf("config: %v", err)
			}
			if cfg.Preview.Title != "shop: main" {
				t.Errorf("title = %q", cfg.Preview.Title)
			}

			store := document.NewStore(cfg.DocumentsPath())
			names, err := store.List()
			if err != nil || len(names) == 0 {
				t.Fatalf("List() = %v, %v", names, err)
			}
			for _, doc := range names {
				d, err := store.Open(doc)
				if err != nil {
					t.Fatalf("%s: %v", doc, err)
				}
				if _, err := d.Render(dsl.NewContext()); err != nil {
					t.Errorf("%s: %v", doc, err)
				}
			}
		})
	}
}

func TestCreateRefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "vdsl.yaml"), []byte("strict: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tmpl, _ := Get("minimal")
	err := tmpl.Create(dir, Config{ProjectName: "shop"})
	if !errors.Is(err, errors.New("E141")) {
		t.Fatalf("error = %v, want E141", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "components")); !os.IsNotExist(err) {
		t.Error("no file should be written when one exists")
	}
	data, _ := os.ReadFile(filepath.Join(dir, "vdsl.yaml"))
	if string(data) != "strict: true\n" {
		t.Errorf("existing file was changed: %q", data)
	}
}

func TestStrictVariable(t *testing.T) {
	dir := t.TempDir()
	tmpl, _ := Get("minimal")
	if err := tmpl.Create(dir, Config{ProjectName: "shop", Strict: true}); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Strict {
		t.Error("Strict should be written to the config")
	}
}
