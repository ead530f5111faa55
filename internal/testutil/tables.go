package testutil

import (
	"github.com/dataweave/dataweave/internal/domain/schema"
)

// CreateContactsTable creates a table with Name(text) and Age(number)
// fields plus three sample records, the fixture most engine tests build on.
func CreateContactsTable() (*schema.Table, *schema.Field, *schema.Field) {
	table := schema.NewTable("contacts", "")
	name := table.AddField("Name", schema.FieldTypeText, false, "")
	age := table.AddField("Age", schema.FieldTypeNumber, false, "")

	for _, row := range [][2]string{
		{"Alice", "30"},
		{"Bob", "9"},
		{"Carl", "100"},
	} {
		r := table.CreateRecord()
		table.SetValue(r, name, row[0])
		table.SetValue(r, age, row[1])
	}

	return table, name, age
}

// CreateEmptyTable creates a table with a text and a number field and no
// records.
func CreateEmptyTable(name string) *schema.Table {
	table := schema.NewTable(name, "")
	table.AddField("Title", schema.FieldTypeText, false, "")
	table.AddField("Count", schema.FieldTypeNumber, false, "")
	return table
}
