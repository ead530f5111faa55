package view

import (
	"strings"

	"github.com/google/uuid"
)

// FilterOperation is the closed set of predicate operations a view filter
// can apply. The string tag is persisted with the view.
type FilterOperation string

const (
	OpEquals      FilterOperation = "equals"
	OpNotEquals   FilterOperation = "notEquals"
	OpContains    FilterOperation = "contains"
	OpNotContains FilterOperation = "notContains"
	OpStartsWith  FilterOperation = "startsWith"
	OpEndsWith    FilterOperation = "endsWith"
	OpIsEmpty     FilterOperation = "isEmpty"
	OpIsNotEmpty  FilterOperation = "isNotEmpty"
	OpGreaterThan FilterOperation = "greaterThan"
	OpLessThan    FilterOperation = "lessThan"
)

// FilterOperations lists every supported operation in display order.
var FilterOperations = []FilterOperation{
	OpEquals, OpNotEquals, OpContains, OpNotContains,
	OpStartsWith, OpEndsWith, OpIsEmpty, OpIsNotEmpty,
	OpGreaterThan, OpLessThan,
}

// Valid reports whether op is one of the supported operations.
func (op FilterOperation) Valid() bool {
	switch op {
	case OpEquals, OpNotEquals, OpContains, OpNotContains,
		OpStartsWith, OpEndsWith, OpIsEmpty, OpIsNotEmpty,
		OpGreaterThan, OpLessThan:
		return true
	}
	return false
}

// Filter is a single predicate within a view. FieldID references a schema
// field id or one of the reserved system tokens ("creation_date",
// "modified_date"). Value is the comparand and is ignored by the emptiness
// operations.
type Filter struct {
	ID        string          `json:"id"`
	FieldID   string          `json:"field_id"`
	Operation FilterOperation `json:"operation"`
	Value     string          `json:"value"`
}

// NewFilter creates a filter with a fresh id.
func NewFilter(fieldID string, op FilterOperation, value string) *Filter {
	return &Filter{
		ID:        uuid.NewString(),
		FieldID:   fieldID,
		Operation: op,
		Value:     value,
	}
}

// Matches applies the operation to a resolved raw value. Callers resolve an
// absent value to "" before calling; absence and the empty string are
// equivalent for every operation here. All comparisons are case-sensitive
// and greaterThan/lessThan compare lexicographically, even for numeric
// fields ("9" > "10").
func (f *Filter) Matches(value string) bool {
	switch f.Operation {
	case OpEquals:
		return value == f.Value
	case OpNotEquals:
		return value != f.Value
	case OpContains:
		return strings.Contains(value, f.Value)
	case OpNotContains:
		return !strings.Contains(value, f.Value)
	case OpStartsWith:
		return strings.HasPrefix(value, f.Value)
	case OpEndsWith:
		return strings.HasSuffix(value, f.Value)
	case OpIsEmpty:
		return value == ""
	case OpIsNotEmpty:
		return value != ""
	case OpGreaterThan:
		return value > f.Value
	case OpLessThan:
		return value < f.Value
	}
	return false
}
