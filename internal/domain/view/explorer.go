package view

import (
	"time"

	"github.com/google/uuid"
)

// ViewMode selects the explorer's layout.
type ViewMode string

const (
	ModeGrid ViewMode = "grid"
	ModeCard ViewMode = "card"
)

// ExplorerView is the display-oriented sibling of TableView used by the
// browse screen: grid or card layout configuration plus a single optional
// sort field and its own filter rules.
type ExplorerView struct {
	ID      string `json:"id"`
	TableID string `json:"table_id"`
	Name    string `json:"name"`

	ViewMode ViewMode `json:"view_mode"`

	// Grid layout
	ColumnWidths map[string]float64 `json:"column_widths"`
	ColumnOrder  []string           `json:"column_order"`

	// Card layout
	ColumnsCount  int      `json:"columns_count"`
	CardSize      float64  `json:"card_size"`
	DisplayFields []string `json:"display_fields"`

	// SortField is a schema field id or system token; empty means unsorted.
	SortField     string    `json:"sort_field,omitempty"`
	SortAscending bool      `json:"sort_ascending"`
	FilterRules   []*Filter `json:"filter_rules"`

	// SortIndex orders the config among its table's explorer configs.
	SortIndex int `json:"sort_index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewExplorerView creates an explorer config with the stock grid defaults.
func NewExplorerView(tableID, name string) *ExplorerView {
	now := time.Now()
	return &ExplorerView{
		ID:            uuid.NewString(),
		TableID:       tableID,
		Name:          name,
		ViewMode:      ModeGrid,
		ColumnWidths:  map[string]float64{},
		ColumnOrder:   []string{},
		ColumnsCount:  3,
		CardSize:      200,
		DisplayFields: []string{},
		SortAscending: true,
		FilterRules:   []*Filter{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Touch bumps the config's modification timestamp.
func (e *ExplorerView) Touch() {
	e.UpdatedAt = time.Now()
}

// AddFilterRule appends a filter rule.
func (e *ExplorerView) AddFilterRule(fieldID string, op FilterOperation, value string) *Filter {
	f := NewFilter(fieldID, op, value)
	e.FilterRules = append(e.FilterRules, f)
	e.Touch()
	return f
}

// RemoveFilterRule deletes the rule with the given id.
func (e *ExplorerView) RemoveFilterRule(id string) bool {
	for i, f := range e.FilterRules {
		if f.ID == id {
			e.FilterRules = append(e.FilterRules[:i], e.FilterRules[i+1:]...)
			e.Touch()
			return true
		}
	}
	return false
}
