package excel

import (
	"fmt"
	"io"
	"log"
	"time"

	"topicreview/domain/topics"
	"topicreview/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader reads the first sheet of an uploaded workbook
type DataReader struct {
	source string // Label used in log lines, usually the upload filename
}

// NewDataReader creates a reader; source only labels log output
func NewDataReader(source string) *DataReader {
	return &DataReader{source: source}
}

// ReadData parses the workbook in r. Bytes that are not a workbook yield a ParseError.
func (r *DataReader) ReadData(in io.Reader) (*ExcelData, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(in)
	if err != nil {
		log.Printf("[DataReader] %s is not a readable workbook: %v", r.source, err)
		return nil, errors.ParseError(err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.ParseError(fmt.Errorf("workbook has no sheets"))
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.ParseError(fmt.Errorf("failed to read %s: %w", sheet, err))
	}
	log.Printf("[DataReader] %s: sheet %q read in %.2fms (%d rows)",
		r.source, sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	data := r.processRows(rows)
	data.SheetName = sheet
	return data, nil
}

// processRows converts raw string rows into ExcelData, skipping rows with no content.
// When a header name repeats, the leftmost column keeps the name.
func (r *DataReader) processRows(rows [][]string) *ExcelData {
	if len(rows) == 0 {
		return &ExcelData{Headers: []string{}}
	}

	headers := make([]string, len(rows[0]))
	copy(headers, rows[0])

	dataRows := make([]RawRowData, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		rowData := make(RawRowData, len(headers))
		for j, cell := range row {
			if j >= len(headers) {
				break
			}
			if _, seen := rowData[headers[j]]; !seen {
				rowData[headers[j]] = cell
			}
		}
		dataRows = append(dataRows, rowData)
	}

	return &ExcelData{
		Headers: headers,
		Rows:    dataRows,
	}
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

// ProjectTopics narrows data to the document and Topic columns, in row order.
// A missing column yields a SchemaError naming it.
func ProjectTopics(data *ExcelData) (*topics.Table, error) {
	return project(data, true)
}

// ProjectLabels is ProjectTopics for label-only sheets: only Topic is required and
// Document is filled when the column happens to exist.
func ProjectLabels(data *ExcelData) (*topics.Table, error) {
	return project(data, false)
}

func project(data *ExcelData, requireDocument bool) (*topics.Table, error) {
	if !data.HasHeader(topics.TopicColumn) {
		return nil, errors.SchemaError(topics.TopicColumn)
	}
	if requireDocument && !data.HasHeader(topics.DocumentColumn) {
		return nil, errors.SchemaError(topics.DocumentColumn)
	}

	records := make([]topics.Record, len(data.Rows))
	for i, row := range data.Rows {
		topic := row[topics.TopicColumn]
		records[i] = topics.Record{
			Document: row[topics.DocumentColumn],
			Topic:    topic,
			HasTopic: topic != "",
		}
	}
	return &topics.Table{Records: records}, nil
}

// LoadTopicTable parses an uploaded workbook and projects it to document/Topic.
func LoadTopicTable(source string, in io.Reader) (*topics.Table, error) {
	return load(source, in, ProjectTopics)
}

// LoadTopicLabels parses a workbook that only needs a Topic column.
func LoadTopicLabels(source string, in io.Reader) (*topics.Table, error) {
	return load(source, in, ProjectLabels)
}

func load(source string, in io.Reader, projectFn func(*ExcelData) (*topics.Table, error)) (*topics.Table, error) {
	data, err := NewDataReader(source).ReadData(in)
	if err != nil {
		return nil, err
	}
	table, err := projectFn(data)
	if err != nil {
		log.Printf("[DataReader] %s sheet %q rejected: %v", source, data.SheetName, err)
		return nil, err
	}
	log.Printf("[DataReader] %s sheet %q loaded (%d records, %d columns)",
		source, data.SheetName, table.Len(), len(data.Headers))
	return table, nil
}
