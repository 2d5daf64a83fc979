package loam

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/autoquote/pkg/domain"
	"github.com/aretw0/loam"
)

// ext is the document extension; the blob is kept as frontmatter.
const ext = ".md"

// Store implements ports.SettingsStore on a Loam document repository.
// Each blob is one markdown document whose metadata holds the settings keys.
type Store struct {
	dir  string
	repo *loam.TypedRepository[map[string]any]
}

// Open initializes an unversioned Loam repository in dir, creating it if needed.
func Open(dir string) (*Store, error) {
	if dir == "" {
		dir = filepath.Join(".autoquote", "loam")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to ensure loam directory: %w", err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve loam directory: %w", err)
	}

	repo, err := loam.Init(abs, loam.WithVersioning(false))
	if err != nil {
		return nil, fmt.Errorf("failed to init loam: %w", err)
	}
	return &Store{dir: abs, repo: loam.NewTypedRepository[map[string]any](repo)}, nil
}

// Dir returns the repository directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the blob as the metadata of the document for name.
func (s *Store) Save(ctx context.Context, name string, blob map[string]any) error {
	if err := validName(name); err != nil {
		return err
	}

	data := make(map[string]any, len(blob))
	for k, v := range blob {
		data[k] = v
	}
	err := s.repo.Save(ctx, &loam.DocumentModel[map[string]any]{
		ID:      name + ext,
		Content: name + " settings",
		Data:    data,
	})
	if err != nil {
		return fmt.Errorf("loam save failed for %s: %w", name, err)
	}
	return nil
}

// Load retrieves the blob of name.
func (s *Store) Load(ctx context.Context, name string) (map[string]any, error) {
	if err := validName(name); err != nil {
		return nil, err
	}

	doc, err := s.repo.Get(ctx, name+ext)
	if err != nil {
		if !s.exists(name) {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("loam get failed for %s: %w", name, err)
	}

	blob := make(map[string]any, len(doc.Data))
	for k, v := range doc.Data {
		blob[k] = v
	}
	return blob, nil
}

// Delete removes the document of name. The repository is unversioned, so the
// document is its file.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := validName(name); err != nil {
		return err
	}

	err := os.Remove(s.path(name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete loam document: %w", err)
	}
	return nil
}

// List returns the names of every settings document, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	docs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		id := filepath.ToSlash(doc.ID)
		if strings.Contains(id, "/") {
			continue
		}
		names = append(names, strings.TrimSuffix(id, ext))
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+ext)
}

func (s *Store) exists(name string) bool {
	_, err := os.Stat(s.path(name))
	return err == nil
}

func validName(name string) error {
	if name == "" {
		return fmt.Errorf("settings name cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid settings name %q", name)
	}
	return nil
}
