package data

import (
	"time"

	"github.com/google/uuid"
)

// Record is one row of a user-defined table. Values are raw strings keyed by
// field id; the record itself knows nothing about field types. A missing key
// means "no value set", which is distinguishable from an explicitly stored
// empty string only through HasValue.
type Record struct {
	ID        string            `json:"id"`
	TableID   string            `json:"table_id"`
	Values    map[string]string `json:"values"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NewRecord creates an empty record owned by the given table.
func NewRecord(tableID string) *Record {
	now := time.Now()
	return &Record{
		ID:        uuid.NewString(),
		TableID:   tableID,
		Values:    make(map[string]string),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GetValue returns the raw value stored under fieldID, or "" if none is set.
func (r *Record) GetValue(fieldID string) string {
	return r.Values[fieldID]
}

// SetValue stores raw under fieldID as-is. No type validation happens here;
// interpretation is the caller's concern.
func (r *Record) SetValue(fieldID, raw string) {
	r.Values[fieldID] = raw
	r.UpdatedAt = time.Now()
}

// HasValue reports whether any value (including "") is stored under fieldID.
func (r *Record) HasValue(fieldID string) bool {
	_, ok := r.Values[fieldID]
	return ok
}

// ClearValue removes the entry for fieldID, returning the record to the
// "no value set" state for that field.
func (r *Record) ClearValue(fieldID string) {
	if _, ok := r.Values[fieldID]; !ok {
		return
	}
	delete(r.Values, fieldID)
	r.UpdatedAt = time.Now()
}

// Copy creates a deep copy of the record to prevent mutation of shared state.
func (r *Record) Copy() *Record {
	values := make(map[string]string, len(r.Values))
	for k, v := range r.Values {
		values[k] = v
	}
	return &Record{
		ID:        r.ID,
		TableID:   r.TableID,
		Values:    values,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
