package view

import (
	"github.com/google/uuid"

	"github.com/dataweave/dataweave/internal/domain/errors"
)

// TableView is a saved browsing configuration for one table: filters
// (logical AND), a multi-key sort, and a hidden-field set. Mutations are
// explicit save operations by the caller, not auto-persisted per keystroke.
type TableView struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	SortIndex    int          `json:"sort_index"`
	Filters      []*Filter    `json:"filters"`
	SortOrders   []*SortOrder `json:"sort_orders"`
	HiddenFields []string     `json:"hidden_fields"`
}

// NewTableView creates an empty view. SortIndex orders the view among its
// table's views.
func NewTableView(name string, sortIndex int) *TableView {
	return &TableView{
		ID:           uuid.NewString(),
		Name:         name,
		SortIndex:    sortIndex,
		Filters:      []*Filter{},
		SortOrders:   []*SortOrder{},
		HiddenFields: []string{},
	}
}

// AddFilter appends a filter predicate.
func (v *TableView) AddFilter(fieldID string, op FilterOperation, value string) *Filter {
	f := NewFilter(fieldID, op, value)
	v.Filters = append(v.Filters, f)
	return f
}

// RemoveFilter deletes the filter with the given id. Returns false if it is
// not part of this view.
func (v *TableView) RemoveFilter(id string) bool {
	for i, f := range v.Filters {
		if f.ID == id {
			v.Filters = append(v.Filters[:i], v.Filters[i+1:]...)
			return true
		}
	}
	return false
}

// AddSort appends a sort key with the next priority index.
func (v *TableView) AddSort(fieldID string, ascending bool) *SortOrder {
	s := NewSortOrder(fieldID, ascending)
	s.Index = len(v.SortOrders)
	v.SortOrders = append(v.SortOrders, s)
	return s
}

// RemoveSort deletes the sort key with the given id and renumbers the
// remaining keys so indices stay dense.
func (v *TableView) RemoveSort(id string) bool {
	for i, s := range v.SortOrders {
		if s.ID == id {
			v.SortOrders = append(v.SortOrders[:i], v.SortOrders[i+1:]...)
			v.renumberSorts()
			return true
		}
	}
	return false
}

// ReorderSort rearranges the sort keys to match newOrder, which must be a
// permutation of the current sort ids, and renumbers every key to its new
// position. Stale or duplicate indices never survive a reorder.
func (v *TableView) ReorderSort(newOrder []string) error {
	if len(newOrder) != len(v.SortOrders) {
		return errors.NewInvalidArgument(v.Name, "sort order must list every sort key exactly once")
	}

	byID := make(map[string]*SortOrder, len(v.SortOrders))
	for _, s := range v.SortOrders {
		byID[s.ID] = s
	}

	reordered := make([]*SortOrder, 0, len(newOrder))
	for _, id := range newOrder {
		s, ok := byID[id]
		if !ok {
			return errors.NewInvalidArgument(v.Name, "unknown sort id in order: "+id)
		}
		delete(byID, id)
		reordered = append(reordered, s)
	}

	v.SortOrders = reordered
	v.renumberSorts()
	return nil
}

func (v *TableView) renumberSorts() {
	for i, s := range v.SortOrders {
		s.Index = i
	}
}

// SetHiddenFields replaces the hidden-field set. Hidden fields are masked
// from the view's projection, not removed from the underlying records.
func (v *TableView) SetHiddenFields(fieldIDs []string) {
	hidden := make([]string, len(fieldIDs))
	copy(hidden, fieldIDs)
	v.HiddenFields = hidden
}

// IsHidden reports whether the view masks the given field.
func (v *TableView) IsHidden(fieldID string) bool {
	for _, id := range v.HiddenFields {
		if id == fieldID {
			return true
		}
	}
	return false
}
