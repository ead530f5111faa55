// Package engine evaluates saved views against a snapshot of a table's
// records: filter predicates (logical AND), free-text search, a stable
// multi-key sort, and hidden-field projection. Evaluation is a pure
// function of its inputs and never fails; unresolvable field references
// degrade to "no value" so browsing stays robust against concurrent schema
// edits.
package engine

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/dataweave/dataweave/internal/domain/data"
	"github.com/dataweave/dataweave/internal/domain/schema"
	"github.com/dataweave/dataweave/internal/domain/view"
)

// Evaluate returns the records matching the view's filters and the search
// string, ordered by the view's sort keys. A nil view means no filtering
// and no sorting; an empty search string disables search. Records that tie
// on every sort key keep their input order.
func Evaluate(records []*data.Record, v *view.TableView, search string, fields []*schema.Field) []*data.Record {
	byID := fieldIndex(fields)

	out := filterRecords(records, v, byID)
	out = searchRecords(out, search)
	sortRecords(out, v, byID)

	if v != nil {
		slog.Debug("view evaluated",
			"view", v.Name,
			"in", len(records),
			"out", len(out),
			"filters", len(v.Filters),
			"sort_keys", len(v.SortOrders),
		)
	}
	return out
}

// EvaluateExplorer applies an explorer config's filter rules and single
// sort field. Rules with an unknown operation are skipped rather than
// failing the whole evaluation.
func EvaluateExplorer(records []*data.Record, e *view.ExplorerView, fields []*schema.Field) []*data.Record {
	byID := fieldIndex(fields)

	out := make([]*data.Record, 0, len(records))
	for _, r := range records {
		if matchesRules(r, e.FilterRules, byID) {
			out = append(out, r)
		}
	}

	if e.SortField != "" {
		slices.SortStableFunc(out, func(a, b *data.Record) int {
			c := strings.Compare(
				resolveValue(a, e.SortField, byID),
				resolveValue(b, e.SortField, byID),
			)
			if !e.SortAscending {
				return -c
			}
			return c
		})
	}
	return out
}

// VisibleFields returns the table's fields in display order minus the
// view's hidden set. Hidden fields are masked from the projection only; the
// underlying records keep their values.
func VisibleFields(fields []*schema.Field, v *view.TableView) []*schema.Field {
	ordered := orderFields(fields)
	if v == nil || len(v.HiddenFields) == 0 {
		return ordered
	}

	visible := make([]*schema.Field, 0, len(ordered))
	for _, f := range ordered {
		if !v.IsHidden(f.ID) {
			visible = append(visible, f)
		}
	}
	return visible
}

// Project returns the visible raw values of a record keyed by field id,
// applying the view's hidden-field mask.
func Project(r *data.Record, fields []*schema.Field, v *view.TableView) map[string]string {
	out := make(map[string]string)
	for _, f := range VisibleFields(fields, v) {
		out[f.ID] = r.GetValue(f.ID)
	}
	return out
}

func filterRecords(records []*data.Record, v *view.TableView, byID map[string]*schema.Field) []*data.Record {
	if v == nil || len(v.Filters) == 0 {
		out := make([]*data.Record, len(records))
		copy(out, records)
		return out
	}

	out := make([]*data.Record, 0, len(records))
	for _, r := range records {
		if matchesFilters(r, v.Filters, byID) {
			out = append(out, r)
		}
	}
	return out
}

// matchesFilters is the AND-chain: every filter must match. There is no OR
// or grouping support.
func matchesFilters(r *data.Record, filters []*view.Filter, byID map[string]*schema.Field) bool {
	for _, f := range filters {
		if !f.Matches(resolveValue(r, f.FieldID, byID)) {
			return false
		}
	}
	return true
}

// matchesRules is the lenient variant used by explorer configs.
func matchesRules(r *data.Record, rules []*view.Filter, byID map[string]*schema.Field) bool {
	for _, f := range rules {
		if !f.Operation.Valid() {
			continue
		}
		if !f.Matches(resolveValue(r, f.FieldID, byID)) {
			return false
		}
	}
	return true
}

// searchRecords keeps records where any stored value contains the query as
// a case-insensitive substring. Applied after filters as an additional AND
// condition, independent of the view.
func searchRecords(records []*data.Record, search string) []*data.Record {
	if search == "" {
		return records
	}

	query := strings.ToLower(search)
	out := records[:0]
	for _, r := range records {
		if matchesSearch(r, query) {
			out = append(out, r)
		}
	}
	return out
}

func matchesSearch(r *data.Record, lowerQuery string) bool {
	for _, v := range r.Values {
		if strings.Contains(strings.ToLower(v), lowerQuery) {
			return true
		}
	}
	return false
}

// sortRecords orders records in place by the view's sort keys, taken in
// ascending Index order. The first key whose resolved values differ decides
// each pair; full ties keep input order (the sort is stable).
func sortRecords(records []*data.Record, v *view.TableView, byID map[string]*schema.Field) {
	if v == nil || len(v.SortOrders) == 0 {
		return
	}

	keys := make([]*view.SortOrder, len(v.SortOrders))
	copy(keys, v.SortOrders)
	slices.SortStableFunc(keys, func(a, b *view.SortOrder) int {
		return a.Index - b.Index
	})

	slices.SortStableFunc(records, func(a, b *data.Record) int {
		for _, k := range keys {
			av := resolveValue(a, k.FieldID, byID)
			bv := resolveValue(b, k.FieldID, byID)
			if c := strings.Compare(av, bv); c != 0 {
				if !k.Ascending {
					return -c
				}
				return c
			}
		}
		return 0
	})
}

func orderFields(fields []*schema.Field) []*schema.Field {
	ordered := make([]*schema.Field, len(fields))
	copy(ordered, fields)
	slices.SortStableFunc(ordered, func(a, b *schema.Field) int {
		return a.SortIndex - b.SortIndex
	})
	return ordered
}
