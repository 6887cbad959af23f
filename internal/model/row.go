// Package model holds the record types shared by the table readers and the
// document builders.
package model

// Row is one normalized organization entry from the source table. Every field
// is a trimmed string; a missing or blank cell is the empty string, never a
// sentinel.
type Row struct {
	Entity      string
	Domain      string
	Description string
	Category    string
	Subcategory string
	HQ          string
	Logo        string
	HubURL      string
}
