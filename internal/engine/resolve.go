package engine

import (
	"github.com/dataweave/dataweave/internal/domain/data"
	"github.com/dataweave/dataweave/internal/domain/schema"
)

// Reserved tokens addressable by filters and sorts without being real
// schema fields.
const (
	SystemFieldCreated  = "creation_date"
	SystemFieldModified = "modified_date"
)

// timestampLayout renders the system date fields for comparison. The layout
// sorts lexicographically in chronological order, so date sorts stay sane
// under the engine's uniform string comparison.
const timestampLayout = "2006-01-02 15:04:05"

// IsSystemField reports whether fieldID is one of the reserved tokens.
func IsSystemField(fieldID string) bool {
	return fieldID == SystemFieldCreated || fieldID == SystemFieldModified
}

// fieldIndex builds an id lookup over the table's current field list.
func fieldIndex(fields []*schema.Field) map[string]*schema.Field {
	byID := make(map[string]*schema.Field, len(fields))
	for _, f := range fields {
		byID[f.ID] = f
	}
	return byID
}

// resolveValue returns the raw string a filter or sort key sees for a
// record. System tokens resolve to formatted timestamps. A field id that no
// longer resolves in the schema (deleted while a view still references it)
// degrades to "" rather than erroring; a vanished field behaves exactly
// like a field with no value.
func resolveValue(r *data.Record, fieldID string, fields map[string]*schema.Field) string {
	switch fieldID {
	case SystemFieldCreated:
		return r.CreatedAt.Format(timestampLayout)
	case SystemFieldModified:
		return r.UpdatedAt.Format(timestampLayout)
	}

	if _, ok := fields[fieldID]; !ok {
		return ""
	}
	return r.GetValue(fieldID)
}
