package testutil

import (
	"testing"

	"github.com/dataweave/dataweave/internal/domain/data"
)

// AssertRecordCount checks if the result has the expected number of records
func AssertRecordCount(t *testing.T, actual, expected int, context string) {
	t.Helper()
	if actual != expected {
		t.Errorf("%s: expected %d records, got %d", context, expected, actual)
	}
}

// AssertFieldCount checks if a table has the expected number of fields
func AssertFieldCount(t *testing.T, actual, expected int, context string) {
	t.Helper()
	if actual != expected {
		t.Errorf("%s: expected %d fields, got %d", context, expected, actual)
	}
}

// AssertNoError checks that an error is nil
func AssertNoError(t *testing.T, err error, context string) {
	t.Helper()
	if err != nil {
		t.Errorf("%s: expected no error, got: %v", context, err)
	}
}

// AssertError checks that an error is not nil
func AssertError(t *testing.T, err error, context string) {
	t.Helper()
	if err == nil {
		t.Errorf("%s: expected an error, got nil", context)
	}
}

// AssertTrue checks that a condition holds
func AssertTrue(t *testing.T, condition bool, context string) {
	t.Helper()
	if !condition {
		t.Errorf("%s: expected true, got false", context)
	}
}

// AssertFalse checks that a condition does not hold
func AssertFalse(t *testing.T, condition bool, context string) {
	t.Helper()
	if condition {
		t.Errorf("%s: expected false, got true", context)
	}
}

// AssertEqual checks that two strings match
func AssertEqual(t *testing.T, actual, expected, context string) {
	t.Helper()
	if actual != expected {
		t.Errorf("%s: expected %q, got %q", context, expected, actual)
	}
}

// AssertRecordOrder checks that records resolve to the expected values for
// a field, in order
func AssertRecordOrder(t *testing.T, records []*data.Record, fieldID string, expected []string, context string) {
	t.Helper()
	if len(records) != len(expected) {
		t.Errorf("%s: expected %d records, got %d", context, len(expected), len(records))
		return
	}
	for i, r := range records {
		if got := r.GetValue(fieldID); got != expected[i] {
			t.Errorf("%s: position %d: expected %q, got %q", context, i, expected[i], got)
		}
	}
}
