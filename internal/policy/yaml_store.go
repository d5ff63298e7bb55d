package policy

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DirStore loads policy documents from YAML files in a directory. Each
// *.yaml file holds one document (id, title, description, rules). Documents
// are read fresh per call; they are immutable for a run's duration, so no
// invalidation is needed.
type DirStore struct {
	dir string
}

// NewDirStore creates a store over the given directory.
func NewDirStore(dir string) (*DirStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("policy directory is required")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("policy directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("policy directory %q is not a directory", dir)
	}
	return &DirStore{dir: dir}, nil
}

// ListIndex implements Store.
func (s *DirStore) ListIndex(ctx context.Context) ([]Info, error) {
	docs, err := s.loadAll()
	if err != nil {
		return nil, err
	}
	out := make([]Info, 0, len(docs))
	for _, d := range docs {
		out = append(out, Info{ID: d.ID, Title: d.Title, Description: d.Description})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Load implements Store.
func (s *DirStore) Load(ctx context.Context, id string) (Document, error) {
	docs, err := s.loadAll()
	if err != nil {
		return Document{}, err
	}
	for _, d := range docs {
		if d.ID == id {
			return d, nil
		}
	}
	return Document{}, fmt.Errorf("%w: %q", ErrDocumentNotFound, id)
}

func (s *DirStore) loadAll() ([]Document, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read policy directory: %w", err)
	}

	docs := make([]Document, 0, len(entries))
	seen := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			return nil, fmt.Errorf("read policy document %s: %w", name, err)
		}

		var doc Document
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parse policy document %s: %w", name, err)
		}
		if doc.ID == "" {
			return nil, fmt.Errorf("policy document %s: id is required", name)
		}
		if prev, dup := seen[doc.ID]; dup {
			return nil, fmt.Errorf("policy document id %q defined in both %s and %s", doc.ID, prev, name)
		}
		seen[doc.ID] = name
		docs = append(docs, doc)
	}
	return docs, nil
}
