package view

import "github.com/google/uuid"

// SortOrder is one key of a view's multi-key sort. Index is the key's
// priority within the view; lower index wins, evaluated left-to-right.
type SortOrder struct {
	ID        string `json:"id"`
	FieldID   string `json:"field_id"`
	Ascending bool   `json:"ascending"`
	Index     int    `json:"index"`
}

// NewSortOrder creates a sort key with a fresh id. Index is assigned by the
// owning view.
func NewSortOrder(fieldID string, ascending bool) *SortOrder {
	return &SortOrder{
		ID:        uuid.NewString(),
		FieldID:   fieldID,
		Ascending: ascending,
	}
}
