// Package storage defines the persistence collaborator boundary. The core
// only requires durable save/load of the whole catalog with bit-for-bit
// round-tripping of every entity attribute; it does not mandate a format.
package storage

import (
	"fmt"

	"github.com/dataweave/dataweave/internal/catalog"
)

// Store persists a catalog snapshot. Save is synchronous and best-effort:
// on failure the in-memory state has still been mutated and the caller
// decides whether to retry or report ("committed in memory, not yet
// durable"). Failures are never swallowed.
type Store interface {
	Save(c *catalog.Catalog) error
	Load() (*catalog.Catalog, error)
}

// PersistenceError represents a failed storage commit or load.
type PersistenceError struct {
	Op   string // "save" or "load"
	Path string // file, directory, or DSN involved
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("storage %s failed at %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func NewPersistenceError(op, path string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Path: path, Err: err}
}
