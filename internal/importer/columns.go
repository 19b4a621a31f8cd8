package importer

// columnMapping binds one external spreadsheet label to the internal field it
// feeds. The set below is the full recognized schema; any header outside it
// rejects the import.
type columnMapping struct {
	Label string // header as it appears in the file
	Field string // internal field name
}

// priceColumns is the schema mapping for supplier price lists, in canonical
// column order.
var priceColumns = []columnMapping{
	{Label: "Part #", Field: "partnumber"},
	{Label: "Description", Field: "description"},
	{Label: "Russian Description", Field: "description_ext"},
	{Label: "Price", Field: "price"},
	{Label: "Price Date", Field: "date"},
	{Label: "Origin", Field: "origin"},
	{Label: "Weight", Field: "weight"},
	{Label: "V.Weight", Field: "weight_volume"},
	{Label: "Length", Field: "length"},
	{Label: "Width", Field: "width"},
	{Label: "Height", Field: "height"},
	{Label: "Reserved column", Field: "reserved"},
}

// fieldByLabel resolves an external header to its internal field name.
func fieldByLabel(label string) (string, bool) {
	for _, m := range priceColumns {
		if m.Label == label {
			return m.Field, true
		}
	}
	return "", false
}

// labelByField resolves an internal field name back to its external header.
// Kept alongside fieldByLabel so the mapping stays explicitly bidirectional.
func labelByField(field string) (string, bool) {
	for _, m := range priceColumns {
		if m.Field == field {
			return m.Label, true
		}
	}
	return "", false
}
