package schema

import (
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dataweave/dataweave/internal/domain/data"
	"github.com/dataweave/dataweave/internal/domain/errors"
)

// Table owns an ordered set of typed fields and the records populated
// against them. Deleting a table deletes its fields and records; records
// reference the table by id only and never extend its lifetime.
type Table struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Fields      []*Field       `json:"fields"`
	Records     []*data.Record `json:"records"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// NewTable creates an empty table.
func NewTable(name, description string) *Table {
	now := time.Now()
	return &Table{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Fields:      []*Field{},
		Records:     []*data.Record{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Touch bumps the table's modification timestamp. Called by every field or
// record mutation reachable through the table.
func (t *Table) Touch() {
	t.UpdatedAt = time.Now()
}

// FieldByID resolves a field id against the current schema.
func (t *Table) FieldByID(id string) (*Field, bool) {
	for _, f := range t.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return nil, false
}

// FieldByName returns the first field with the given display name. Names are
// not unique, so this is a convenience for interactive callers only.
func (t *Table) FieldByName(name string) (*Field, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// FieldsInOrder returns the fields ordered by SortIndex. Duplicate or gapped
// indices are tolerated; ties keep insertion order.
func (t *Table) FieldsInOrder() []*Field {
	ordered := make([]*Field, len(t.Fields))
	copy(ordered, t.Fields)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SortIndex < ordered[j].SortIndex
	})
	return ordered
}

// AddField appends a new field with SortIndex equal to the current field
// count. Duplicate field names are permitted.
func (t *Table) AddField(name string, ft FieldType, required bool, defaultValue string) *Field {
	f := NewField(name, ft, required, defaultValue)
	f.SortIndex = len(t.Fields)
	t.Fields = append(t.Fields, f)
	t.Touch()

	slog.Debug("field added", "table", t.Name, "field", name, "type", string(ft))
	return f
}

// ReorderFields reassigns SortIndex sequentially to match newOrder, which
// must be a permutation of the table's current field ids. On failure the
// field order is left unchanged.
func (t *Table) ReorderFields(newOrder []string) error {
	if len(newOrder) != len(t.Fields) {
		return errors.NewInvalidArgument(t.Name, "field order must list every field exactly once")
	}

	seen := make(map[string]bool, len(newOrder))
	reordered := make([]*Field, 0, len(newOrder))
	for _, id := range newOrder {
		if seen[id] {
			return errors.NewInvalidArgument(t.Name, "duplicate field id in order: "+id)
		}
		seen[id] = true

		f, ok := t.FieldByID(id)
		if !ok {
			return errors.NewInvalidArgument(t.Name, "unknown field id in order: "+id)
		}
		reordered = append(reordered, f)
	}

	for i, f := range reordered {
		f.SortIndex = i
	}
	t.Fields = reordered
	t.Touch()
	return nil
}

// RenameField updates the display label. Stored values are unaffected since
// they are keyed by field id.
func (t *Table) RenameField(f *Field, name string) {
	f.Name = name
	t.Touch()
}

// SetRequired toggles the required flag.
func (t *Table) SetRequired(f *Field, required bool) {
	f.IsRequired = required
	t.Touch()
}

// SetDefaultValue updates the value new records are seeded with. Empty means
// no default.
func (t *Table) SetDefaultValue(f *Field, defaultValue string) {
	f.DefaultValue = defaultValue
	t.Touch()
}

// ChangeFieldType relabels the field's type. Values are stored as opaque
// strings so no migration happens, but the change is refused once any record
// holds a non-empty value for the field.
func (t *Table) ChangeFieldType(f *Field, newType FieldType) error {
	if !newType.Valid() {
		return errors.NewInvalidArgument(t.Name, "unknown field type: "+string(newType))
	}
	if t.FilledCount(f) > 0 {
		return errors.NewFieldTypeLocked(t.Name, f.Name)
	}
	f.Type = newType
	t.Touch()
	return nil
}

// DeleteField removes the field from the schema. Refused while any record
// holds a non-empty value for it. Values already stored under the id stay on
// their records but become unreachable.
func (t *Table) DeleteField(f *Field) error {
	if t.FilledCount(f) > 0 {
		return errors.NewFieldInUse(t.Name, f.Name)
	}

	for i, existing := range t.Fields {
		if existing.ID == f.ID {
			t.Fields = append(t.Fields[:i], t.Fields[i+1:]...)
			t.Touch()
			slog.Debug("field deleted", "table", t.Name, "field", f.Name)
			return nil
		}
	}
	return errors.NewInvalidArgument(t.Name, "field does not belong to this table: "+f.Name)
}

// FilledCount reports how many records hold a non-empty value for the field.
func (t *Table) FilledCount(f *Field) int {
	count := 0
	for _, r := range t.Records {
		if r.GetValue(f.ID) != "" {
			count++
		}
	}
	return count
}

// CreateRecord appends an empty record, seeded with each field's default
// value where one is set.
func (t *Table) CreateRecord() *data.Record {
	r := data.NewRecord(t.ID)
	for _, f := range t.Fields {
		if f.DefaultValue != "" {
			r.SetValue(f.ID, f.DefaultValue)
		}
	}
	t.Records = append(t.Records, r)
	t.Touch()
	return r
}

// RecordByID resolves a record id within the table.
func (t *Table) RecordByID(id string) (*data.Record, bool) {
	for _, r := range t.Records {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// SetValue stores a raw value on the record and bumps both the record's and
// the table's modification timestamps. The string is accepted as-is.
func (t *Table) SetValue(r *data.Record, f *Field, raw string) {
	r.SetValue(f.ID, raw)
	t.Touch()
}

// DeleteRecord removes the record from the table. Returns false if the id is
// not present.
func (t *Table) DeleteRecord(id string) bool {
	for i, r := range t.Records {
		if r.ID == id {
			t.Records = append(t.Records[:i], t.Records[i+1:]...)
			t.Touch()
			return true
		}
	}
	return false
}

// IsValidRecord checks that every required field has a present, non-empty
// value. This is a pre-commit check for callers; the store itself never
// rejects an incomplete record.
func (t *Table) IsValidRecord(r *data.Record) bool {
	for _, f := range t.Fields {
		if f.IsRequired && r.GetValue(f.ID) == "" {
			return false
		}
	}
	return true
}
