package schema_test

import (
	"testing"

	"github.com/dataweave/dataweave/internal/domain/schema"
)

// TestFieldType_EveryVariantHasAnIcon tests that the registry defines an
// icon for the whole closed enumeration
func TestFieldType_EveryVariantHasAnIcon(t *testing.T) {
	for _, ft := range schema.FieldTypes {
		if ft.Icon() == "" || ft.Icon() == "questionmark" {
			t.Errorf("field type %q has no icon", ft)
		}
		if !ft.Valid() {
			t.Errorf("field type %q not recognized as valid", ft)
		}
	}
}

// TestFieldType_PremiumGating tests the isPro split between base and
// premium types
func TestFieldType_PremiumGating(t *testing.T) {
	pro := map[schema.FieldType]bool{
		schema.FieldTypeLocation: true,
		schema.FieldTypeColor:    true,
		schema.FieldTypeBarcode:  true,
		schema.FieldTypeQRCode:   true,
	}

	for _, ft := range schema.FieldTypes {
		if got := ft.IsPro(); got != pro[ft] {
			t.Errorf("field type %q: IsPro() = %v, want %v", ft, got, pro[ft])
		}
	}
}

// TestFieldType_CompareIsLexicographic tests that number fields inherit
// plain string ordering, multi-digit quirk included
func TestFieldType_CompareIsLexicographic(t *testing.T) {
	ft := schema.FieldTypeNumber

	if ft.Compare("9", "10") <= 0 {
		t.Errorf(`Compare("9", "10") should be positive under lexicographic ordering`)
	}
	if ft.Compare("100", "10") <= 0 {
		t.Errorf(`Compare("100", "10") should be positive`)
	}
	if ft.Compare("abc", "abd") >= 0 {
		t.Errorf(`Compare("abc", "abd") should be negative`)
	}
	if ft.Compare("same", "same") != 0 {
		t.Errorf(`Compare("same", "same") should be zero`)
	}
}

// TestFieldType_InvalidTag tests that arbitrary tags are rejected
func TestFieldType_InvalidTag(t *testing.T) {
	if schema.FieldType("geojson").Valid() {
		t.Error("unknown field type tag reported as valid")
	}
}
