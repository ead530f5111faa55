package engine_test

import (
	"testing"
	"time"

	"github.com/dataweave/dataweave/internal/domain/view"
	"github.com/dataweave/dataweave/internal/engine"
	"github.com/dataweave/dataweave/internal/testutil"
)

// TestEvaluate_LexicographicGreaterThan tests the documented string
// comparison on number fields: with ages 30, 9 and 100, every value is
// > "10" lexicographically ("9" wins on the first byte, "100" extends the
// shared prefix), while > "50" keeps only "9".
func TestEvaluate_LexicographicGreaterThan(t *testing.T) {
	table, _, age := testutil.CreateContactsTable()

	v := view.NewTableView("adults", 0)
	v.AddFilter(age.ID, view.OpGreaterThan, "10")

	out := engine.Evaluate(table.Records, v, "", table.Fields)
	testutil.AssertRecordCount(t, len(out), 3, "age > 10 lexicographic")

	v2 := view.NewTableView("nines", 0)
	v2.AddFilter(age.ID, view.OpGreaterThan, "50")

	out = engine.Evaluate(table.Records, v2, "", table.Fields)
	testutil.AssertRecordCount(t, len(out), 1, "age > 50 lexicographic")
	testutil.AssertEqual(t, out[0].GetValue(age.ID), "9", "only 9 exceeds 50 as a string")
}

// TestEvaluate_ContainsIsCaseSensitive tests that contains "a" keeps only
// Carl among Alice, Bob and Carl.
func TestEvaluate_ContainsIsCaseSensitive(t *testing.T) {
	table, name, _ := testutil.CreateContactsTable()

	v := view.NewTableView("with-a", 0)
	v.AddFilter(name.ID, view.OpContains, "a")

	out := engine.Evaluate(table.Records, v, "", table.Fields)

	testutil.AssertRecordCount(t, len(out), 1, "contains a")
	testutil.AssertEqual(t, out[0].GetValue(name.ID), "Carl", "match")
}

// TestEvaluate_FiltersAreANDed tests that every filter must match.
func TestEvaluate_FiltersAreANDed(t *testing.T) {
	table, name, age := testutil.CreateContactsTable()

	v := view.NewTableView("narrow", 0)
	v.AddFilter(name.ID, view.OpContains, "l")
	v.AddFilter(age.ID, view.OpEquals, "30")

	out := engine.Evaluate(table.Records, v, "", table.Fields)

	testutil.AssertRecordCount(t, len(out), 1, "AND of two filters")
	testutil.AssertEqual(t, out[0].GetValue(name.ID), "Alice", "match")
}

// TestEvaluate_AbsentValueFilters tests that a record with no stored value
// behaves exactly like one holding "".
func TestEvaluate_AbsentValueFilters(t *testing.T) {
	table, name, _ := testutil.CreateContactsTable()
	blank := table.CreateRecord()

	v := view.NewTableView("empty-names", 0)
	v.AddFilter(name.ID, view.OpIsEmpty, "")

	out := engine.Evaluate(table.Records, v, "", table.Fields)

	testutil.AssertRecordCount(t, len(out), 1, "isEmpty on absent value")
	testutil.AssertEqual(t, out[0].ID, blank.ID, "matched record")
}

// TestEvaluate_SystemFieldNeverEmpty tests that creation_date resolves for
// every record, so an isEmpty filter on it excludes everything.
func TestEvaluate_SystemFieldNeverEmpty(t *testing.T) {
	table, _, _ := testutil.CreateContactsTable()

	v := view.NewTableView("impossible", 0)
	v.AddFilter(engine.SystemFieldCreated, view.OpIsEmpty, "")

	out := engine.Evaluate(table.Records, v, "", table.Fields)
	testutil.AssertRecordCount(t, len(out), 0, "isEmpty on creation_date")
}

// TestEvaluate_DanglingFieldDegrades tests that a filter referencing a
// deleted field treats every record as having no value instead of erroring.
func TestEvaluate_DanglingFieldDegrades(t *testing.T) {
	table, _, _ := testutil.CreateContactsTable()

	v := view.NewTableView("stale", 0)
	v.AddFilter("no-such-field", view.OpIsNotEmpty, "")

	out := engine.Evaluate(table.Records, v, "", table.Fields)
	testutil.AssertRecordCount(t, len(out), 0, "dangling field id")

	v2 := view.NewTableView("stale-sorted", 0)
	v2.AddSort("no-such-field", true)
	out = engine.Evaluate(table.Records, v2, "", table.Fields)
	testutil.AssertRecordCount(t, len(out), 3, "dangling sort key passes through")
}

// TestEvaluate_SortAscendingLexicographic tests the single-key sort,
// including the "9" after "100" number-as-string ordering.
func TestEvaluate_SortAscendingLexicographic(t *testing.T) {
	table, _, age := testutil.CreateContactsTable()

	v := view.NewTableView("by-age", 0)
	v.AddSort(age.ID, true)

	out := engine.Evaluate(table.Records, v, "", table.Fields)
	testutil.AssertRecordOrder(t, out, age.ID, []string{"100", "30", "9"}, "ascending lexicographic")

	v.SortOrders[0].Ascending = false
	out = engine.Evaluate(table.Records, v, "", table.Fields)
	testutil.AssertRecordOrder(t, out, age.ID, []string{"9", "30", "100"}, "descending lexicographic")
}

// TestEvaluate_SortIsStable tests that records tying on every sort key keep
// their insertion order.
func TestEvaluate_SortIsStable(t *testing.T) {
	table, name, age := testutil.CreateContactsTable()

	dup := table.CreateRecord()
	table.SetValue(dup, name, "Alice")
	table.SetValue(dup, age, "5")

	v := view.NewTableView("by-name", 0)
	v.AddSort(name.ID, true)

	out := engine.Evaluate(table.Records, v, "", table.Fields)
	testutil.AssertRecordCount(t, len(out), 4, "all records")
	testutil.AssertEqual(t, out[0].GetValue(age.ID), "30", "original Alice first")
	testutil.AssertEqual(t, out[1].GetValue(age.ID), "5", "duplicate Alice keeps input order")
}

// TestEvaluate_MultiKeySortPrecedence tests that the second key only breaks
// ties left by the first.
func TestEvaluate_MultiKeySortPrecedence(t *testing.T) {
	table, name, age := testutil.CreateContactsTable()

	dup := table.CreateRecord()
	table.SetValue(dup, name, "Alice")
	table.SetValue(dup, age, "5")

	v := view.NewTableView("by-name-age", 0)
	v.AddSort(name.ID, true)
	v.AddSort(age.ID, true)

	out := engine.Evaluate(table.Records, v, "", table.Fields)
	testutil.AssertRecordOrder(t, out, age.ID, []string{"30", "5", "9", "100"}, "tie broken by age")
}

// TestEvaluate_SearchIsCaseInsensitive tests free-text search across all
// stored values.
func TestEvaluate_SearchIsCaseInsensitive(t *testing.T) {
	table, name, _ := testutil.CreateContactsTable()

	out := engine.Evaluate(table.Records, nil, "ALI", table.Fields)
	testutil.AssertRecordCount(t, len(out), 1, "case-insensitive search")
	testutil.AssertEqual(t, out[0].GetValue(name.ID), "Alice", "match")

	out = engine.Evaluate(table.Records, nil, "0", table.Fields)
	testutil.AssertRecordCount(t, len(out), 2, "search spans every field")
}

// TestEvaluate_SearchCombinesWithFilters tests that search narrows the
// filtered set rather than replacing it.
func TestEvaluate_SearchCombinesWithFilters(t *testing.T) {
	table, name, age := testutil.CreateContactsTable()

	v := view.NewTableView("narrow", 0)
	v.AddFilter(age.ID, view.OpIsNotEmpty, "")

	out := engine.Evaluate(table.Records, v, "bo", table.Fields)
	testutil.AssertRecordCount(t, len(out), 1, "filter AND search")
	testutil.AssertEqual(t, out[0].GetValue(name.ID), "Bob", "match")
}

// TestEvaluate_NilViewPassesThrough tests that a nil view with no search
// returns every record unchanged without mutating the input slice.
func TestEvaluate_NilViewPassesThrough(t *testing.T) {
	table, _, _ := testutil.CreateContactsTable()

	out := engine.Evaluate(table.Records, nil, "", table.Fields)
	testutil.AssertRecordCount(t, len(out), 3, "nil view")
	if &out[0] == &table.Records[0] {
		t.Error("evaluation must not alias the input slice")
	}
}

// TestEvaluate_InputOrderPreserved tests that evaluation never reorders the
// table's own record slice.
func TestEvaluate_InputOrderPreserved(t *testing.T) {
	table, _, age := testutil.CreateContactsTable()

	v := view.NewTableView("by-age", 0)
	v.AddSort(age.ID, true)
	engine.Evaluate(table.Records, v, "", table.Fields)

	testutil.AssertRecordOrder(t, table.Records, age.ID, []string{"30", "9", "100"}, "input untouched")
}

// TestEvaluate_SortByCreationDate tests the system token as a sort key.
func TestEvaluate_SortByCreationDate(t *testing.T) {
	table, name, _ := testutil.CreateContactsTable()

	// Spread creation times far enough apart for the second-resolution
	// timestamp layout to distinguish them.
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, r := range table.Records {
		r.CreatedAt = base.Add(time.Duration(len(table.Records)-i) * time.Minute)
	}

	v := view.NewTableView("oldest-first", 0)
	v.AddSort(engine.SystemFieldCreated, true)

	out := engine.Evaluate(table.Records, v, "", table.Fields)
	testutil.AssertRecordOrder(t, out, name.ID, []string{"Carl", "Bob", "Alice"}, "creation order")
}

// TestVisibleFields tests ordering and the hidden-field mask.
func TestVisibleFields(t *testing.T) {
	table, name, age := testutil.CreateContactsTable()

	v := view.NewTableView("minimal", 0)
	v.SetHiddenFields([]string{name.ID})

	visible := engine.VisibleFields(table.Fields, v)
	testutil.AssertFieldCount(t, len(visible), 1, "one field hidden")
	testutil.AssertEqual(t, visible[0].ID, age.ID, "remaining field")

	all := engine.VisibleFields(table.Fields, nil)
	testutil.AssertFieldCount(t, len(all), 2, "nil view hides nothing")
}

// TestVisibleFields_RespectsSortIndex tests display ordering after a
// reorder.
func TestVisibleFields_RespectsSortIndex(t *testing.T) {
	table, name, age := testutil.CreateContactsTable()

	testutil.AssertNoError(t, table.ReorderFields([]string{age.ID, name.ID}), "reorder")

	visible := engine.VisibleFields(table.Fields, nil)
	testutil.AssertEqual(t, visible[0].ID, age.ID, "first after reorder")
	testutil.AssertEqual(t, visible[1].ID, name.ID, "second after reorder")
}

// TestProject tests that projection masks hidden fields but leaves the
// record's stored values intact.
func TestProject(t *testing.T) {
	table, name, age := testutil.CreateContactsTable()

	v := view.NewTableView("ages-only", 0)
	v.SetHiddenFields([]string{name.ID})

	row := engine.Project(table.Records[0], table.Fields, v)
	if _, ok := row[name.ID]; ok {
		t.Error("hidden field leaked into projection")
	}
	testutil.AssertEqual(t, row[age.ID], "30", "visible value")
	testutil.AssertEqual(t, table.Records[0].GetValue(name.ID), "Alice", "record value intact")
}

// TestEvaluateExplorer tests explorer rule filtering and its single sort
// field, including the skip of rules with an unknown operation.
func TestEvaluateExplorer(t *testing.T) {
	table, name, age := testutil.CreateContactsTable()

	e := view.NewExplorerView(table.ID, "browse")
	e.AddFilterRule(age.ID, view.OpIsNotEmpty, "")
	e.AddFilterRule(name.ID, view.FilterOperation("fuzzyMatch"), "zzz")
	e.SortField = name.ID
	e.SortAscending = false

	out := engine.EvaluateExplorer(table.Records, e, table.Fields)
	testutil.AssertRecordCount(t, len(out), 3, "invalid rule skipped")
	testutil.AssertRecordOrder(t, out, name.ID, []string{"Carl", "Bob", "Alice"}, "descending name sort")
}

// TestIsSystemField tests the reserved token check.
func TestIsSystemField(t *testing.T) {
	testutil.AssertTrue(t, engine.IsSystemField(engine.SystemFieldCreated), "creation_date")
	testutil.AssertTrue(t, engine.IsSystemField(engine.SystemFieldModified), "modified_date")
	testutil.AssertFalse(t, engine.IsSystemField("name"), "ordinary field id")
}
