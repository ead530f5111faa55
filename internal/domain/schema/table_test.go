package schema_test

import (
	"testing"

	"github.com/dataweave/dataweave/internal/domain/errors"
	"github.com/dataweave/dataweave/internal/domain/schema"
	"github.com/dataweave/dataweave/internal/testutil"
)

// TestAddField_SortIndexAssignment tests that fields are appended with
// sequential sort indices
func TestAddField_SortIndexAssignment(t *testing.T) {
	table := schema.NewTable("tasks", "")

	first := table.AddField("Title", schema.FieldTypeText, true, "")
	second := table.AddField("Done", schema.FieldTypeBoolean, false, "false")

	if first.SortIndex != 0 || second.SortIndex != 1 {
		t.Errorf("expected sort indices 0 and 1, got %d and %d", first.SortIndex, second.SortIndex)
	}
}

// TestAddField_DuplicateNamesPermitted tests that field name uniqueness is
// deliberately not enforced
func TestAddField_DuplicateNamesPermitted(t *testing.T) {
	table := schema.NewTable("tasks", "")
	table.AddField("Notes", schema.FieldTypeText, false, "")
	table.AddField("Notes", schema.FieldTypeText, false, "")

	testutil.AssertFieldCount(t, len(table.Fields), 2, "duplicate names")
}

// TestReorderFields tests a valid permutation and sequential renumbering
func TestReorderFields(t *testing.T) {
	table := schema.NewTable("tasks", "")
	a := table.AddField("A", schema.FieldTypeText, false, "")
	b := table.AddField("B", schema.FieldTypeText, false, "")
	c := table.AddField("C", schema.FieldTypeText, false, "")

	err := table.ReorderFields([]string{c.ID, a.ID, b.ID})
	testutil.AssertNoError(t, err, "reorder")

	ordered := table.FieldsInOrder()
	if ordered[0].ID != c.ID || ordered[1].ID != a.ID || ordered[2].ID != b.ID {
		t.Error("fields not in requested order")
	}
	for i, f := range ordered {
		if f.SortIndex != i {
			t.Errorf("field %s: expected sort index %d, got %d", f.Name, i, f.SortIndex)
		}
	}
}

// TestReorderFields_MissingField tests that an incomplete permutation fails
// with InvalidArgument and leaves the field order unchanged
func TestReorderFields_MissingField(t *testing.T) {
	table := schema.NewTable("tasks", "")
	a := table.AddField("A", schema.FieldTypeText, false, "")
	table.AddField("B", schema.FieldTypeText, false, "")

	err := table.ReorderFields([]string{a.ID})
	testutil.AssertError(t, err, "short permutation")
	if !errors.IsInvalidArgument(err) {
		t.Errorf("expected invalid_argument, got %v", err)
	}

	ordered := table.FieldsInOrder()
	if ordered[0].Name != "A" || ordered[1].Name != "B" {
		t.Error("field order changed after failed reorder")
	}
}

// TestReorderFields_UnknownAndDuplicateIDs tests the remaining malformed
// permutations
func TestReorderFields_UnknownAndDuplicateIDs(t *testing.T) {
	table := schema.NewTable("tasks", "")
	a := table.AddField("A", schema.FieldTypeText, false, "")
	b := table.AddField("B", schema.FieldTypeText, false, "")

	err := table.ReorderFields([]string{a.ID, "no-such-id"})
	if !errors.IsInvalidArgument(err) {
		t.Errorf("unknown id: expected invalid_argument, got %v", err)
	}

	err = table.ReorderFields([]string{a.ID, a.ID})
	if !errors.IsInvalidArgument(err) {
		t.Errorf("duplicate id: expected invalid_argument, got %v", err)
	}
	_ = b
}

// TestChangeFieldType_LockedByData tests that a type change fails
// deterministically once any record holds a non-empty value
func TestChangeFieldType_LockedByData(t *testing.T) {
	table, _, age := testutil.CreateContactsTable()

	err := table.ChangeFieldType(age, schema.FieldTypeText)
	testutil.AssertError(t, err, "type change with data")
	if !errors.IsFieldTypeLocked(err) {
		t.Errorf("expected field_type_locked, got %v", err)
	}
	if age.Type != schema.FieldTypeNumber {
		t.Error("field type changed despite lock")
	}
}

// TestChangeFieldType_EmptyField tests that a data-free field can be
// relabeled freely
func TestChangeFieldType_EmptyField(t *testing.T) {
	table := testutil.CreateEmptyTable("notes")
	f, _ := table.FieldByName("Count")

	err := table.ChangeFieldType(f, schema.FieldTypeDecimal)
	testutil.AssertNoError(t, err, "type change without data")
	if f.Type != schema.FieldTypeDecimal {
		t.Error("field type not updated")
	}
}

// TestDeleteField_InUse tests spec scenario: deleting a field a record holds
// "30" for fails with FieldInUse and leaves the field list unchanged
func TestDeleteField_InUse(t *testing.T) {
	table, _, age := testutil.CreateContactsTable()
	before := len(table.Fields)

	err := table.DeleteField(age)
	testutil.AssertError(t, err, "delete field with data")
	if !errors.IsFieldInUse(err) {
		t.Errorf("expected field_in_use, got %v", err)
	}
	testutil.AssertFieldCount(t, len(table.Fields), before, "after failed delete")
}

// TestDeleteField_OrphanedValuesSurvive tests that values stored under a
// deleted field id stay on records but become unreachable
func TestDeleteField_OrphanedValuesSurvive(t *testing.T) {
	table := testutil.CreateEmptyTable("notes")
	f, _ := table.FieldByName("Title")
	r := table.CreateRecord()
	table.SetValue(r, f, "hello")

	// Empty the field so the delete is allowed
	table.SetValue(r, f, "")
	err := table.DeleteField(f)
	testutil.AssertNoError(t, err, "delete emptied field")

	if !r.HasValue(f.ID) {
		t.Error("orphaned value was purged; it should simply be unreachable")
	}
	if _, ok := table.FieldByID(f.ID); ok {
		t.Error("deleted field still resolves")
	}
}

// TestCreateRecord_SeedsDefaults tests that new records pick up field
// default values
func TestCreateRecord_SeedsDefaults(t *testing.T) {
	table := schema.NewTable("tasks", "")
	status := table.AddField("Status", schema.FieldTypeSelect, false, "open")
	notes := table.AddField("Notes", schema.FieldTypeText, false, "")

	r := table.CreateRecord()
	testutil.AssertEqual(t, r.GetValue(status.ID), "open", "seeded default")
	if r.HasValue(notes.ID) {
		t.Error("field without default should not be seeded")
	}
}

// TestIsValidRecord tests the pre-commit required-field check
func TestIsValidRecord(t *testing.T) {
	table := schema.NewTable("tasks", "")
	title := table.AddField("Title", schema.FieldTypeText, true, "")
	table.AddField("Notes", schema.FieldTypeText, false, "")

	r := table.CreateRecord()
	testutil.AssertFalse(t, table.IsValidRecord(r), "missing required value")

	table.SetValue(r, title, "")
	testutil.AssertFalse(t, table.IsValidRecord(r), "explicit empty required value")

	table.SetValue(r, title, "write spec")
	testutil.AssertTrue(t, table.IsValidRecord(r), "required value present")
}

// TestFieldsInOrder_ToleratesDuplicateIndices tests that duplicate sort
// indices fall back to stable insertion order
func TestFieldsInOrder_ToleratesDuplicateIndices(t *testing.T) {
	table := schema.NewTable("tasks", "")
	a := table.AddField("A", schema.FieldTypeText, false, "")
	b := table.AddField("B", schema.FieldTypeText, false, "")
	c := table.AddField("C", schema.FieldTypeText, false, "")

	// Simulate an externally corrupted ordering
	a.SortIndex = 5
	b.SortIndex = 5
	c.SortIndex = 0

	ordered := table.FieldsInOrder()
	if ordered[0].ID != c.ID || ordered[1].ID != a.ID || ordered[2].ID != b.ID {
		t.Error("expected C first, then A and B in insertion order")
	}
}

// TestTouch_UpdatedAtBumps tests that mutations reachable through the table
// bump its modification timestamp
func TestTouch_UpdatedAtBumps(t *testing.T) {
	table := schema.NewTable("tasks", "")
	before := table.UpdatedAt

	table.AddField("Title", schema.FieldTypeText, false, "")
	if table.UpdatedAt.Before(before) {
		t.Error("UpdatedAt moved backwards")
	}
}
