// Package jsonstore persists the catalog as JSON files on disk: a
// catalog.json index plus, per table, a meta.json (schema, views, explorer
// configs) and a data.json (records). Every file is written to a temp path
// and atomically renamed into place.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dataweave/dataweave/internal/catalog"
	"github.com/dataweave/dataweave/internal/domain/data"
	"github.com/dataweave/dataweave/internal/domain/schema"
	"github.com/dataweave/dataweave/internal/domain/view"
	"github.com/dataweave/dataweave/internal/storage"
)

type catalogMeta struct {
	Version int      `json:"version"`
	Tables  []string `json:"tables"` // table ids in catalog order
}

type tableMeta struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Fields      []*schema.Field      `json:"fields"`
	Views       []*view.TableView    `json:"views"`
	Explorers   []*view.ExplorerView `json:"explorers"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// Store is the JSON-file implementation of storage.Store.
type Store struct {
	dir string
}

// New creates a store rooted at dir. The directory is created on first
// save.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes the full catalog snapshot.
func (s *Store) Save(c *catalog.Catalog) error {
	tablesDir := filepath.Join(s.dir, "tables")
	if err := os.MkdirAll(tablesDir, 0o755); err != nil {
		return storage.NewPersistenceError("save", tablesDir, err)
	}

	ids := make([]string, 0, len(c.Tables))
	for _, t := range c.Tables {
		if err := s.saveTable(c, t); err != nil {
			return err
		}
		ids = append(ids, t.ID)
	}

	meta := catalogMeta{Version: 1, Tables: ids}
	metaPath := filepath.Join(s.dir, "catalog.json")
	if err := writeJSONAtomic(metaPath, meta); err != nil {
		return storage.NewPersistenceError("save", metaPath, err)
	}

	if err := s.pruneDeleted(tablesDir, ids); err != nil {
		return err
	}

	slog.Info("catalog saved",
		slog.String("path", s.dir),
		slog.Int("table_count", len(c.Tables)),
	)
	return nil
}

// Load reads the catalog back. A missing catalog.json means a fresh data
// directory and yields an empty catalog, not an error.
func (s *Store) Load() (*catalog.Catalog, error) {
	metaPath := filepath.Join(s.dir, "catalog.json")

	metaBytes, err := os.ReadFile(metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			return catalog.New(), nil
		}
		return nil, storage.NewPersistenceError("load", metaPath, err)
	}

	var meta catalogMeta
	if err := json.Unmarshal(metaBytes, &meta); err != nil {
		return nil, storage.NewPersistenceError("load", metaPath, err)
	}

	c := catalog.New()
	for _, id := range meta.Tables {
		if err := s.loadTable(c, id); err != nil {
			return nil, err
		}
	}

	slog.Info("catalog loaded",
		slog.String("path", s.dir),
		slog.Int("table_count", len(c.Tables)),
	)
	return c, nil
}

func (s *Store) saveTable(c *catalog.Catalog, t *schema.Table) error {
	dir := filepath.Join(s.dir, "tables", t.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return storage.NewPersistenceError("save", dir, err)
	}

	meta := tableMeta{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Fields:      t.Fields,
		Views:       c.ViewsFor(t.ID),
		Explorers:   c.ExplorersFor(t.ID),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if meta.Views == nil {
		meta.Views = []*view.TableView{}
	}
	if meta.Explorers == nil {
		meta.Explorers = []*view.ExplorerView{}
	}

	metaPath := filepath.Join(dir, "meta.json")
	if err := writeJSONAtomic(metaPath, meta); err != nil {
		return storage.NewPersistenceError("save", metaPath, err)
	}

	dataPath := filepath.Join(dir, "data.json")
	if err := writeJSONAtomic(dataPath, t.Records); err != nil {
		return storage.NewPersistenceError("save", dataPath, err)
	}
	return nil
}

func (s *Store) loadTable(c *catalog.Catalog, id string) error {
	dir := filepath.Join(s.dir, "tables", id)
	metaPath := filepath.Join(dir, "meta.json")
	dataPath := filepath.Join(dir, "data.json")

	metaBytes, err := os.ReadFile(metaPath)
	if err != nil {
		return storage.NewPersistenceError("load", metaPath, err)
	}

	var meta tableMeta
	if err := json.Unmarshal(metaBytes, &meta); err != nil {
		return storage.NewPersistenceError("load", metaPath, err)
	}

	t := &schema.Table{
		ID:          meta.ID,
		Name:        meta.Name,
		Description: meta.Description,
		Fields:      meta.Fields,
		Records:     []*data.Record{},
		CreatedAt:   meta.CreatedAt,
		UpdatedAt:   meta.UpdatedAt,
	}
	if t.Fields == nil {
		t.Fields = []*schema.Field{}
	}

	if dataBytes, err := os.ReadFile(dataPath); err == nil {
		if err := json.Unmarshal(dataBytes, &t.Records); err != nil {
			return storage.NewPersistenceError("load", dataPath, err)
		}
	} else if !os.IsNotExist(err) {
		return storage.NewPersistenceError("load", dataPath, err)
	}
	for _, r := range t.Records {
		if r.Values == nil {
			r.Values = make(map[string]string)
		}
	}

	c.Tables = append(c.Tables, t)
	if len(meta.Views) > 0 {
		c.Views[t.ID] = meta.Views
	}
	if len(meta.Explorers) > 0 {
		c.Explorers[t.ID] = meta.Explorers
	}
	return nil
}

// pruneDeleted removes table directories that are no longer in the catalog
// index, so a deleted table cannot linger on disk.
func (s *Store) pruneDeleted(tablesDir string, ids []string) error {
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}

	entries, err := os.ReadDir(tablesDir)
	if err != nil {
		return storage.NewPersistenceError("save", tablesDir, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() || keep[entry.Name()] {
			continue
		}
		stale := filepath.Join(tablesDir, entry.Name())
		if err := os.RemoveAll(stale); err != nil {
			return storage.NewPersistenceError("save", stale, err)
		}
		slog.Debug("pruned stale table directory", "path", stale)
	}
	return nil
}

// writeJSONAtomic marshals v and writes it via temp file + atomic rename.
func writeJSONAtomic(path string, v interface{}) error {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, bytes, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
