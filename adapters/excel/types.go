package excel

// RawRowData represents a row of raw spreadsheet data as header -> cell text
type RawRowData map[string]string

// ExcelData represents the first sheet of a workbook
type ExcelData struct {
	SheetName string       // Sheet the rows were read from
	Headers   []string     // Column headers
	Rows      []RawRowData // Data rows
}

// HasHeader reports whether name is one of the headers, compared exactly
func (d *ExcelData) HasHeader(name string) bool {
	for _, h := range d.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// Column describes one exported column
type Column struct {
	Header string
	Width  float64
}

// SheetRow is one exported data row; Correct picks the row color
type SheetRow struct {
	Values  []interface{}
	Correct bool
}

// Sheet is a table to export as a single-sheet workbook.
// Uncolored sheets keep the header style and borders but no row fill.
type Sheet struct {
	Name      string
	Columns   []Column
	Rows      []SheetRow
	Uncolored bool
}
