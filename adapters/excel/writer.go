package excel

import (
	"fmt"
	"io"

	"topicreview/internal/theme"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// rowStyles holds the style IDs shared by every cell of a sheet
type rowStyles struct {
	header    int
	correct   int
	incorrect int
	plain     int
}

func thinBorder(color string) []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: color, Style: 1},
		{Type: "top", Color: color, Style: 1},
		{Type: "right", Color: color, Style: 1},
		{Type: "bottom", Color: color, Style: 1},
	}
}

func solidFill(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}
}

func newRowStyles(f *excelize.File, palette theme.Palette) (*rowStyles, error) {
	header, err := f.NewStyle(&excelize.Style{
		Border: thinBorder(palette.Border),
		Fill:   solidFill(palette.Header),
		Font:   &excelize.Font{Bold: true, Color: palette.HeaderFont},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	correct, err := f.NewStyle(&excelize.Style{
		Border: thinBorder(palette.Border),
		Fill:   solidFill(palette.RowColor(true)),
	})
	if err != nil {
		return nil, fmt.Errorf("correct row style: %w", err)
	}
	incorrect, err := f.NewStyle(&excelize.Style{
		Border: thinBorder(palette.Border),
		Fill:   solidFill(palette.RowColor(false)),
	})
	if err != nil {
		return nil, fmt.Errorf("incorrect row style: %w", err)
	}
	plain, err := f.NewStyle(&excelize.Style{Border: thinBorder(palette.Border)})
	if err != nil {
		return nil, fmt.Errorf("plain row style: %w", err)
	}
	return &rowStyles{header: header, correct: correct, incorrect: incorrect, plain: plain}, nil
}

// NewWorkbook returns a workbook whose only sheet is named name
func NewWorkbook(name string) (*excelize.File, error) {
	f := excelize.NewFile()
	if name != defaultSheet {
		if err := f.SetSheetName(defaultSheet, name); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to name sheet %q: %w", name, err)
		}
	}
	return f, nil
}

// AddSheet writes sheet into f with a styled header row, colored data rows and column widths.
// The sheet is created when f does not have it yet.
func AddSheet(f *excelize.File, sheet Sheet, palette theme.Palette) error {
	idx, err := f.GetSheetIndex(sheet.Name)
	if err != nil {
		return fmt.Errorf("failed to look up sheet %q: %w", sheet.Name, err)
	}
	if idx == -1 {
		if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", sheet.Name, err)
		}
	}
	if len(sheet.Columns) == 0 {
		return nil
	}

	styles, err := newRowStyles(f, palette)
	if err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(sheet.Columns))
	if err != nil {
		return err
	}

	header := make([]interface{}, len(sheet.Columns))
	for i, col := range sheet.Columns {
		header[i] = col.Header
	}
	if err := writeRow(f, sheet.Name, 1, lastCol, header, styles.header); err != nil {
		return err
	}

	for i, row := range sheet.Rows {
		style := styles.incorrect
		switch {
		case sheet.Uncolored:
			style = styles.plain
		case row.Correct:
			style = styles.correct
		}
		if err := writeRow(f, sheet.Name, i+2, lastCol, row.Values, style); err != nil {
			return err
		}
	}

	for i, col := range sheet.Columns {
		if col.Width <= 0 {
			continue
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet.Name, name, name, col.Width); err != nil {
			return fmt.Errorf("failed to set width of column %s: %w", name, err)
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, lastCol string, values []interface{}, style int) error {
	first, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, first, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	last := fmt.Sprintf("%s%d", lastCol, rowNum)
	if err := f.SetCellStyle(sheet, first, last, style); err != nil {
		return fmt.Errorf("failed to style row %d: %w", rowNum, err)
	}
	return nil
}

// WriteSheet serializes sheet as a single-sheet workbook to w
func WriteSheet(w io.Writer, sheet Sheet, palette theme.Palette) error {
	f, err := NewWorkbook(sheet.Name)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := AddSheet(f, sheet, palette); err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return nil
}
