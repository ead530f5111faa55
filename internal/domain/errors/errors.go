package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Constraint names carried by SchemaError. Persisted nowhere; these exist so
// callers can branch on the violated precondition without string-matching
// error messages.
const (
	ConstraintFieldTypeLocked = "field_type_locked"
	ConstraintFieldInUse      = "field_in_use"
	ConstraintInvalidArgument = "invalid_argument"
)

// SchemaError represents a violated schema-mutation precondition
// (type change or delete on a field with data, malformed reorder, etc.).
// The failed operation is always a no-op on the in-memory model.
type SchemaError struct {
	Table      string // table name (empty if unknown)
	Field      string // field name (empty for table-level violations)
	Constraint string // one of the Constraint* values
	Reason     string // human-readable explanation
}

func (e *SchemaError) Error() string {
	var parts []string

	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("schema violation in %s.%s", e.Table, e.Field))
	} else {
		parts = append(parts, fmt.Sprintf("schema violation in %s", e.Table))
	}

	if e.Constraint != "" {
		parts = append(parts, fmt.Sprintf("(%s)", e.Constraint))
	}

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	return strings.Join(parts, " - ")
}

func NewFieldTypeLocked(table, field string) *SchemaError {
	return &SchemaError{
		Table:      table,
		Field:      field,
		Constraint: ConstraintFieldTypeLocked,
		Reason:     "cannot change the type of a field with existing data",
	}
}

func NewFieldInUse(table, field string) *SchemaError {
	return &SchemaError{
		Table:      table,
		Field:      field,
		Constraint: ConstraintFieldInUse,
		Reason:     "cannot delete a field with existing data",
	}
}

func NewInvalidArgument(table, reason string) *SchemaError {
	return &SchemaError{
		Table:      table,
		Constraint: ConstraintInvalidArgument,
		Reason:     reason,
	}
}

// IsFieldTypeLocked reports whether err is a field_type_locked violation.
func IsFieldTypeLocked(err error) bool {
	return hasConstraint(err, ConstraintFieldTypeLocked)
}

// IsFieldInUse reports whether err is a field_in_use violation.
func IsFieldInUse(err error) bool {
	return hasConstraint(err, ConstraintFieldInUse)
}

// IsInvalidArgument reports whether err is an invalid_argument violation.
func IsInvalidArgument(err error) bool {
	return hasConstraint(err, ConstraintInvalidArgument)
}

func hasConstraint(err error, constraint string) bool {
	var se *SchemaError
	return stderrors.As(err, &se) && se.Constraint == constraint
}
