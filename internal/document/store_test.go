package document

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"card.yaml":   "body: {tag: div, text: card}\n",
		"row.json":    `{"body": {"tag": "tr"}}`,
		"notes.txt":   "not a document",
		"card.json":   `{"body": "shadowed"}`,
		".hidden.yml": "body: x\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.yaml"), 0755); err != nil {
		t.Fatal(err)
	}

	store := NewStore(dir)
	names, err := store.List()
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	want := []string{"card", "row"}
	if len(names) != len(want) {
		t.Fatalf("List() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	doc, err := store.Open("card")
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if doc.Path != filepath.Join(dir, "card.yaml") {
		t.Errorf("Open should prefer .yaml, got %s", doc.Path)
	}

	for _, name := range []string{"missing", "../card", "", ".hidden", "a/b"} {
		if _, err := store.Open(name); codeOf(t, err).Code != "E133" {
			t.Errorf("Open(%q): err = %v, want E133", name, err)
		}
	}
}

func TestStoreMissingDir(t *testing.T) {
	_, err := NewStore(filepath.Join(t.TempDir(), "nope")).List()
	if codeOf(t, err).Code != "E133" {
		t.Errorf("err = %v, want E133", err)
	}
}
