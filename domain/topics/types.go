package topics

// Column names of the uploaded spreadsheet. Matching is exact and case-sensitive.
const (
	DocumentColumn = "document"
	TopicColumn    = "Topic"
)

// Record is one uploaded row. HasTopic is false when the topic cell was empty.
type Record struct {
	Document string `json:"document"`
	Topic    string `json:"topic,omitempty"`
	HasTopic bool   `json:"has_topic"`
}

// Table is the projected upload, rows in original order. It is never mutated after load.
type Table struct {
	Records []Record `json:"records"`
}

// NewTable builds a table from records, copying the slice.
func NewTable(records []Record) *Table {
	rows := make([]Record, len(records))
	copy(rows, records)
	return &Table{Records: rows}
}

// Len returns the number of records
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// AnnotatedRow is a record with its correctness derived from the current selection.
type AnnotatedRow struct {
	Record
	IsCorrect bool `json:"is_correct"`
}

// SummaryRow is the per-topic aggregate shown in the topics overview.
type SummaryRow struct {
	Topic      string  `json:"topic"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	IsCorrect  bool    `json:"is_correct"`
}
