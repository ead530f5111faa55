// Package sqlitestore persists the catalog in a single SQLite database
// file. Record value maps and view filter/sort lists are stored as JSON
// columns; each Save replaces the previous snapshot inside one transaction.
package sqlitestore

import (
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dataweave/dataweave/internal/catalog"
	"github.com/dataweave/dataweave/internal/domain/data"
	"github.com/dataweave/dataweave/internal/domain/schema"
	"github.com/dataweave/dataweave/internal/domain/view"
	"github.com/dataweave/dataweave/internal/storage"
)

//go:embed schema.sql
var schemaFS embed.FS

// timeLayout preserves timestamps to nanosecond precision across restarts.
const timeLayout = time.RFC3339Nano

// Store is the SQLite implementation of storage.Store.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the database file and applies the schema.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, storage.NewPersistenceError("open", path, fmt.Errorf("sqlite path is required"))
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, storage.NewPersistenceError("open", path, err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, storage.NewPersistenceError("open", path, err)
	}

	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		_ = db.Close()
		return nil, storage.NewPersistenceError("open", path, fmt.Errorf("read schema: %w", err))
	}
	if _, err := db.Exec(string(schemaSQL)); err != nil {
		_ = db.Close()
		return nil, storage.NewPersistenceError("open", path, fmt.Errorf("apply schema: %w", err))
	}

	return &Store{db: db, path: path}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the stored snapshot with the catalog's current state.
func (s *Store) Save(c *catalog.Catalog) error {
	tx, err := s.db.Begin()
	if err != nil {
		return storage.NewPersistenceError("save", s.path, err)
	}
	defer func() { _ = tx.Rollback() }()

	// Snapshot semantics: wipe and rewrite. Deleting tables cascades to
	// every dependent row.
	if _, err := tx.Exec("DELETE FROM tables"); err != nil {
		return storage.NewPersistenceError("save", s.path, err)
	}

	for pos, t := range c.Tables {
		if err := insertTable(tx, t, pos); err != nil {
			return storage.NewPersistenceError("save", s.path, err)
		}
		for _, v := range c.ViewsFor(t.ID) {
			if err := insertView(tx, t.ID, v); err != nil {
				return storage.NewPersistenceError("save", s.path, err)
			}
		}
		for _, e := range c.ExplorersFor(t.ID) {
			if err := insertExplorer(tx, t.ID, e); err != nil {
				return storage.NewPersistenceError("save", s.path, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return storage.NewPersistenceError("save", s.path, err)
	}

	slog.Info("catalog saved",
		slog.String("path", s.path),
		slog.Int("table_count", len(c.Tables)),
	)
	return nil
}

// Load reads the stored snapshot. An empty database yields an empty
// catalog.
func (s *Store) Load() (*catalog.Catalog, error) {
	c := catalog.New()

	tables, err := s.loadTables()
	if err != nil {
		return nil, err
	}
	c.Tables = tables

	for _, t := range c.Tables {
		if err := s.loadFields(t); err != nil {
			return nil, err
		}
		if err := s.loadRecords(t); err != nil {
			return nil, err
		}
		views, err := s.loadViews(t.ID)
		if err != nil {
			return nil, err
		}
		if len(views) > 0 {
			c.Views[t.ID] = views
		}
		explorers, err := s.loadExplorers(t.ID)
		if err != nil {
			return nil, err
		}
		if len(explorers) > 0 {
			c.Explorers[t.ID] = explorers
		}
	}

	slog.Info("catalog loaded",
		slog.String("path", s.path),
		slog.Int("table_count", len(c.Tables)),
	)
	return c, nil
}

func insertTable(tx *sql.Tx, t *schema.Table, pos int) error {
	_, err := tx.Exec(
		`INSERT INTO tables (id, name, description, position, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Description, pos,
		t.CreatedAt.Format(timeLayout), t.UpdatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert table %s: %w", t.Name, err)
	}

	for i, f := range t.Fields {
		_, err := tx.Exec(
			`INSERT INTO fields (id, table_id, name, type, is_required, default_value,
			                     sort_index, show_in_list, hide_if_empty, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			f.ID, t.ID, f.Name, string(f.Type), boolInt(f.IsRequired), f.DefaultValue,
			f.SortIndex, boolInt(f.ShowInList), boolInt(f.HideIfEmpty), i,
		)
		if err != nil {
			return fmt.Errorf("insert field %s.%s: %w", t.Name, f.Name, err)
		}
	}

	for i, r := range t.Records {
		valuesJSON, err := json.Marshal(r.Values)
		if err != nil {
			return fmt.Errorf("marshal record values: %w", err)
		}
		_, err = tx.Exec(
			`INSERT INTO records (id, table_id, values_json, created_at, updated_at, position)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			r.ID, t.ID, string(valuesJSON),
			r.CreatedAt.Format(timeLayout), r.UpdatedAt.Format(timeLayout), i,
		)
		if err != nil {
			return fmt.Errorf("insert record %s: %w", r.ID, err)
		}
	}
	return nil
}

func insertView(tx *sql.Tx, tableID string, v *view.TableView) error {
	filtersJSON, err := json.Marshal(v.Filters)
	if err != nil {
		return fmt.Errorf("marshal view filters: %w", err)
	}
	sortsJSON, err := json.Marshal(v.SortOrders)
	if err != nil {
		return fmt.Errorf("marshal view sorts: %w", err)
	}
	hiddenJSON, err := json.Marshal(v.HiddenFields)
	if err != nil {
		return fmt.Errorf("marshal hidden fields: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO views (id, table_id, name, sort_index, filters_json, sorts_json, hidden_fields_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		v.ID, tableID, v.Name, v.SortIndex,
		string(filtersJSON), string(sortsJSON), string(hiddenJSON),
	)
	if err != nil {
		return fmt.Errorf("insert view %s: %w", v.Name, err)
	}
	return nil
}

func insertExplorer(tx *sql.Tx, tableID string, e *view.ExplorerView) error {
	configJSON, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal explorer config: %w", err)
	}
	_, err = tx.Exec(
		`INSERT INTO explorer_views (id, table_id, sort_index, config_json)
		 VALUES (?, ?, ?, ?)`,
		e.ID, tableID, e.SortIndex, string(configJSON),
	)
	if err != nil {
		return fmt.Errorf("insert explorer view %s: %w", e.Name, err)
	}
	return nil
}

func (s *Store) loadTables() ([]*schema.Table, error) {
	rows, err := s.db.Query(
		`SELECT id, name, description, created_at, updated_at FROM tables ORDER BY position`)
	if err != nil {
		return nil, storage.NewPersistenceError("load", s.path, err)
	}
	defer rows.Close()

	var tables []*schema.Table
	for rows.Next() {
		var t schema.Table
		var created, updated string
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &created, &updated); err != nil {
			return nil, storage.NewPersistenceError("load", s.path, err)
		}
		if t.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return nil, storage.NewPersistenceError("load", s.path, err)
		}
		if t.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
			return nil, storage.NewPersistenceError("load", s.path, err)
		}
		t.Fields = []*schema.Field{}
		t.Records = []*data.Record{}
		tables = append(tables, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.NewPersistenceError("load", s.path, err)
	}
	return tables, nil
}

func (s *Store) loadFields(t *schema.Table) error {
	rows, err := s.db.Query(
		`SELECT id, name, type, is_required, default_value, sort_index, show_in_list, hide_if_empty
		 FROM fields WHERE table_id = ? ORDER BY position`, t.ID)
	if err != nil {
		return storage.NewPersistenceError("load", s.path, err)
	}
	defer rows.Close()

	for rows.Next() {
		var f schema.Field
		var fieldType string
		var required, showInList, hideIfEmpty int
		if err := rows.Scan(&f.ID, &f.Name, &fieldType, &required, &f.DefaultValue,
			&f.SortIndex, &showInList, &hideIfEmpty); err != nil {
			return storage.NewPersistenceError("load", s.path, err)
		}
		f.Type = schema.FieldType(fieldType)
		f.IsRequired = required != 0
		f.ShowInList = showInList != 0
		f.HideIfEmpty = hideIfEmpty != 0
		t.Fields = append(t.Fields, &f)
	}
	return rows.Err()
}

func (s *Store) loadRecords(t *schema.Table) error {
	rows, err := s.db.Query(
		`SELECT id, values_json, created_at, updated_at
		 FROM records WHERE table_id = ? ORDER BY position`, t.ID)
	if err != nil {
		return storage.NewPersistenceError("load", s.path, err)
	}
	defer rows.Close()

	for rows.Next() {
		r := &data.Record{TableID: t.ID}
		var valuesJSON, created, updated string
		if err := rows.Scan(&r.ID, &valuesJSON, &created, &updated); err != nil {
			return storage.NewPersistenceError("load", s.path, err)
		}
		if err := json.Unmarshal([]byte(valuesJSON), &r.Values); err != nil {
			return storage.NewPersistenceError("load", s.path, err)
		}
		if r.Values == nil {
			r.Values = make(map[string]string)
		}
		if r.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return storage.NewPersistenceError("load", s.path, err)
		}
		if r.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
			return storage.NewPersistenceError("load", s.path, err)
		}
		t.Records = append(t.Records, r)
	}
	return rows.Err()
}

func (s *Store) loadViews(tableID string) ([]*view.TableView, error) {
	rows, err := s.db.Query(
		`SELECT id, name, sort_index, filters_json, sorts_json, hidden_fields_json
		 FROM views WHERE table_id = ? ORDER BY sort_index`, tableID)
	if err != nil {
		return nil, storage.NewPersistenceError("load", s.path, err)
	}
	defer rows.Close()

	var views []*view.TableView
	for rows.Next() {
		v := &view.TableView{}
		var filtersJSON, sortsJSON, hiddenJSON string
		if err := rows.Scan(&v.ID, &v.Name, &v.SortIndex, &filtersJSON, &sortsJSON, &hiddenJSON); err != nil {
			return nil, storage.NewPersistenceError("load", s.path, err)
		}
		if err := json.Unmarshal([]byte(filtersJSON), &v.Filters); err != nil {
			return nil, storage.NewPersistenceError("load", s.path, err)
		}
		if err := json.Unmarshal([]byte(sortsJSON), &v.SortOrders); err != nil {
			return nil, storage.NewPersistenceError("load", s.path, err)
		}
		if err := json.Unmarshal([]byte(hiddenJSON), &v.HiddenFields); err != nil {
			return nil, storage.NewPersistenceError("load", s.path, err)
		}
		if v.Filters == nil {
			v.Filters = []*view.Filter{}
		}
		if v.SortOrders == nil {
			v.SortOrders = []*view.SortOrder{}
		}
		if v.HiddenFields == nil {
			v.HiddenFields = []string{}
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

func (s *Store) loadExplorers(tableID string) ([]*view.ExplorerView, error) {
	rows, err := s.db.Query(
		`SELECT config_json FROM explorer_views WHERE table_id = ? ORDER BY sort_index`, tableID)
	if err != nil {
		return nil, storage.NewPersistenceError("load", s.path, err)
	}
	defer rows.Close()

	var explorers []*view.ExplorerView
	for rows.Next() {
		var configJSON string
		if err := rows.Scan(&configJSON); err != nil {
			return nil, storage.NewPersistenceError("load", s.path, err)
		}
		e := &view.ExplorerView{}
		if err := json.Unmarshal([]byte(configJSON), e); err != nil {
			return nil, storage.NewPersistenceError("load", s.path, err)
		}
		explorers = append(explorers, e)
	}
	return explorers, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
