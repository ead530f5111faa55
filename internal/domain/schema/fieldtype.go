package schema

import "strings"

// FieldType is the closed set of value types a field can take. The string
// tag is persisted with the schema and must never change once data
// referencing it exists.
type FieldType string

const (
	// Basic types
	FieldTypeText     FieldType = "text"
	FieldTypeRichText FieldType = "richText"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDecimal  FieldType = "decimal"
	FieldTypeBoolean  FieldType = "boolean"
	FieldTypeDate     FieldType = "date"
	FieldTypeTime     FieldType = "time"
	FieldTypeDateTime FieldType = "dateTime"
	// Media types
	FieldTypeImage FieldType = "image"
	FieldTypeFile  FieldType = "file"
	// Choice types
	FieldTypeSelect      FieldType = "select"
	FieldTypeMultiSelect FieldType = "multiSelect"
	// Contact types
	FieldTypeEmail    FieldType = "email"
	FieldTypePhone    FieldType = "phone"
	FieldTypeURL      FieldType = "url"
	FieldTypeLocation FieldType = "location"
	// Special types
	FieldTypeColor   FieldType = "color"
	FieldTypeBarcode FieldType = "barcode"
	FieldTypeQRCode  FieldType = "qrCode"
)

// FieldTypes lists every supported type in display order.
var FieldTypes = []FieldType{
	FieldTypeText, FieldTypeRichText, FieldTypeNumber, FieldTypeDecimal,
	FieldTypeBoolean, FieldTypeDate, FieldTypeTime, FieldTypeDateTime,
	FieldTypeImage, FieldTypeFile, FieldTypeSelect, FieldTypeMultiSelect,
	FieldTypeEmail, FieldTypePhone, FieldTypeURL, FieldTypeLocation,
	FieldTypeColor, FieldTypeBarcode, FieldTypeQRCode,
}

// Valid reports whether ft is one of the supported types.
func (ft FieldType) Valid() bool {
	switch ft {
	case FieldTypeText, FieldTypeRichText, FieldTypeNumber, FieldTypeDecimal,
		FieldTypeBoolean, FieldTypeDate, FieldTypeTime, FieldTypeDateTime,
		FieldTypeImage, FieldTypeFile, FieldTypeSelect, FieldTypeMultiSelect,
		FieldTypeEmail, FieldTypePhone, FieldTypeURL, FieldTypeLocation,
		FieldTypeColor, FieldTypeBarcode, FieldTypeQRCode:
		return true
	}
	return false
}

// Icon returns the icon identifier presentation layers should render for
// the type.
func (ft FieldType) Icon() string {
	switch ft {
	case FieldTypeText:
		return "text.alignleft"
	case FieldTypeRichText:
		return "text.quote"
	case FieldTypeNumber, FieldTypeDecimal:
		return "number"
	case FieldTypeBoolean:
		return "checkmark.square"
	case FieldTypeDate:
		return "calendar"
	case FieldTypeTime:
		return "clock"
	case FieldTypeDateTime:
		return "calendar.badge.clock"
	case FieldTypeImage:
		return "photo"
	case FieldTypeFile:
		return "doc"
	case FieldTypeSelect:
		return "list.bullet"
	case FieldTypeMultiSelect:
		return "list.bullet.indent"
	case FieldTypeEmail:
		return "envelope"
	case FieldTypePhone:
		return "phone"
	case FieldTypeURL:
		return "link"
	case FieldTypeLocation:
		return "location"
	case FieldTypeColor:
		return "paintpalette"
	case FieldTypeBarcode:
		return "barcode"
	case FieldTypeQRCode:
		return "qrcode"
	}
	return "questionmark"
}

// IsPro reports whether the type is gated behind the premium tier.
func (ft FieldType) IsPro() bool {
	switch ft {
	case FieldTypeText, FieldTypeRichText, FieldTypeNumber, FieldTypeDecimal,
		FieldTypeBoolean, FieldTypeDate, FieldTypeTime, FieldTypeDateTime,
		FieldTypeImage, FieldTypeFile, FieldTypeSelect, FieldTypeMultiSelect,
		FieldTypeEmail, FieldTypePhone, FieldTypeURL:
		return false
	}
	return true
}

// Compare orders two raw values of this type. Values are stored as opaque
// strings for every variant, so the comparison is lexicographic across the
// board; number and decimal fields inherit the same ordering ("9" > "10").
// Filter and sort evaluation rely on this staying uniform.
func (ft FieldType) Compare(a, b string) int {
	return strings.Compare(a, b)
}
