package document

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vango-dev/vdsl/internal/errors"
)

// Extensions are the file extensions recognized as documents, in lookup
// order.
var Extensions = []string{".yaml", ".yml", ".json"}

// Store reads documents from a directory.
type Store struct {
	dir string
}

// NewStore creates a store for dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store's directory.
func (s *Store) Dir() string { return s.dir }

// List returns the names of all documents, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.New("E133").
			WithDetailf("The documents directory %s cannot be read.", s.dir).
			Wrap(err)
	}

	seen := make(map[string]bool)
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") || !isDocument(entry.Name()) {
			continue
		}
		name := NameOf(entry.Name())
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Open parses the document called name.
func (s *Store) Open(name string) (*Document, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return nil, errors.New("E133").WithDetailf("%q is not a document name.", name)
	}
	for _, ext := range Extensions {
		path := filepath.Join(s.dir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return ParseFile(path)
		}
	}
	return nil, errors.New("E133").
		WithDetailf("No document %q in %s.", name, s.dir).
		WithSuggestion("Create " + filepath.Join(s.dir, name+".yaml"))
}

func isDocument(file string) bool {
	ext := strings.ToLower(filepath.Ext(file))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
