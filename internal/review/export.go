package review

import (
	"bytes"

	"topicreview/adapters/excel"
	"topicreview/domain/topics"
	"topicreview/internal/theme"
)

// Download filenames
const (
	ValidatedFilename = "validated_topics.xlsx"
	OverviewFilename  = "topics_overview.xlsx"
)

// ValidatedSheet lays out the annotated table for export
func ValidatedSheet(v *View) excel.Sheet {
	rows := make([]excel.SheetRow, len(v.Rows))
	for i, r := range v.Rows {
		rows[i] = excel.SheetRow{
			Values:  []interface{}{r.Document, topicValue(r.Record)},
			Correct: r.IsCorrect,
		}
	}
	return excel.Sheet{
		Name: "Validated",
		Columns: []excel.Column{
			{Header: topics.DocumentColumn, Width: 50},
			{Header: topics.TopicColumn, Width: 20},
		},
		Rows: rows,
	}
}

// OverviewSheet lays out the summary table for export
func OverviewSheet(v *View) excel.Sheet {
	rows := make([]excel.SheetRow, len(v.Summary))
	for i, s := range v.Summary {
		rows[i] = excel.SheetRow{
			Values:  []interface{}{s.Topic, s.Count, s.Percentage},
			Correct: s.IsCorrect,
		}
	}
	return excel.Sheet{
		Name: "Overview",
		Columns: []excel.Column{
			{Header: topics.TopicColumn, Width: 30},
			{Header: "Count", Width: 15},
			{Header: "Percentage", Width: 15},
		},
		Rows: rows,
	}
}

func topicValue(r topics.Record) interface{} {
	if !r.HasTopic {
		return nil
	}
	return r.Topic
}

// ValidatedWorkbook renders the annotated table as xlsx bytes
func ValidatedWorkbook(v *View, palette theme.Palette) ([]byte, error) {
	return render(ValidatedSheet(v), palette)
}

// OverviewWorkbook renders the summary table as xlsx bytes
func OverviewWorkbook(v *View, palette theme.Palette) ([]byte, error) {
	return render(OverviewSheet(v), palette)
}

func render(sheet excel.Sheet, palette theme.Palette) ([]byte, error) {
	var buf bytes.Buffer
	if err := excel.WriteSheet(&buf, sheet, palette); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
