package schema

import "github.com/google/uuid"

// Field is one typed column definition within a table's schema. Ids are
// generated once at creation and never reused; renaming a field keeps its id
// and therefore keeps every stored value reachable.
type Field struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Type         FieldType `json:"type"`
	IsRequired   bool      `json:"is_required"`
	DefaultValue string    `json:"default_value,omitempty"`
	SortIndex    int       `json:"sort_index"`
	ShowInList   bool      `json:"show_in_list"`
	HideIfEmpty  bool      `json:"hide_if_empty"`
}

// NewField creates a field with a fresh id. SortIndex is assigned by the
// owning table when the field is appended.
func NewField(name string, ft FieldType, required bool, defaultValue string) *Field {
	return &Field{
		ID:           uuid.NewString(),
		Name:         name,
		Type:         ft,
		IsRequired:   required,
		DefaultValue: defaultValue,
		ShowInList:   true,
	}
}
