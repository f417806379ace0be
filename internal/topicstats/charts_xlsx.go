package topicstats

import (
	"fmt"
	"io"

	"topicreview/adapters/excel"
	"topicreview/internal/theme"

	"github.com/xuri/excelize/v2"
)

const (
	dataSheet   = "Topics"
	chartsSheet = "Charts"
)

func countsSheet(r *Report) excel.Sheet {
	rows := make([]excel.SheetRow, len(r.Counts))
	for i, c := range r.Counts {
		rows[i] = excel.SheetRow{Values: []interface{}{c.Topic, c.Count, c.Proportion, c.CumulativePct}}
	}
	return excel.Sheet{
		Name: dataSheet,
		Columns: []excel.Column{
			{Header: "Topic", Width: 30},
			{Header: "Count", Width: 15},
			{Header: "Proportion", Width: 15},
			{Header: "Cumulative %", Width: 15},
		},
		Rows:      rows,
		Uncolored: true,
	}
}

func title(text string) []excelize.RichTextRun {
	return []excelize.RichTextRun{{Text: text}}
}

// WriteChartsWorkbook writes the counts table and bar, pie, donut and cumulative charts
func WriteChartsWorkbook(w io.Writer, r *Report, palette theme.Palette) error {
	f, err := excel.NewWorkbook(dataSheet)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := excel.AddSheet(f, countsSheet(r), palette); err != nil {
		return err
	}
	if len(r.Counts) > 0 {
		if err := addCharts(f, len(r.Counts)); err != nil {
			return err
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to serialize charts workbook: %w", err)
	}
	return nil
}

func addCharts(f *excelize.File, n int) error {
	if _, err := f.NewSheet(chartsSheet); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", chartsSheet, err)
	}

	last := n + 1
	categories := fmt.Sprintf("%s!$A$2:$A$%d", dataSheet, last)
	countSeries := excelize.ChartSeries{
		Name:       fmt.Sprintf("%s!$B$1", dataSheet),
		Categories: categories,
		Values:     fmt.Sprintf("%s!$B$2:$B$%d", dataSheet, last),
	}
	size := excelize.ChartDimension{Width: 720, Height: 400}

	charts := []struct {
		cell  string
		chart *excelize.Chart
	}{
		{"A1", &excelize.Chart{
			Type:      excelize.Col,
			Series:    []excelize.ChartSeries{countSeries},
			Title:     title("Occurrences of Each Unique Topic"),
			Dimension: size,
			Legend:    excelize.ChartLegend{Position: "none"},
			XAxis:     excelize.ChartAxis{Title: title("Topic")},
			YAxis:     excelize.ChartAxis{Title: title("Count")},
		}},
		{"L1", &excelize.Chart{
			Type:      excelize.Pie,
			Series:    []excelize.ChartSeries{countSeries},
			Title:     title("Proportion of Each Unique Topic"),
			Dimension: size,
			Legend:    excelize.ChartLegend{Position: "right"},
			PlotArea:  excelize.ChartPlotArea{ShowPercent: true},
		}},
		{"A22", &excelize.Chart{
			Type:      excelize.Doughnut,
			Series:    []excelize.ChartSeries{countSeries},
			Title:     title("Donut Chart - Topic Distribution"),
			Dimension: size,
			Legend:    excelize.ChartLegend{Position: "right"},
			PlotArea:  excelize.ChartPlotArea{ShowPercent: true},
			HoleSize:  40,
		}},
		{"L22", &excelize.Chart{
			Type: excelize.Line,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("%s!$D$1", dataSheet),
				Categories: categories,
				Values:     fmt.Sprintf("%s!$D$2:$D$%d", dataSheet, last),
				Marker:     excelize.ChartMarker{Symbol: "circle", Size: 6},
			}},
			Title:     title("Cumulative Distribution of Topics"),
			Dimension: size,
			Legend:    excelize.ChartLegend{Position: "none"},
			XAxis:     excelize.ChartAxis{Title: title("Topic")},
			YAxis:     excelize.ChartAxis{Title: title("Cumulative Percentage (%)")},
		}},
	}

	for _, c := range charts {
		if err := f.AddChart(chartsSheet, c.cell, c.chart); err != nil {
			return fmt.Errorf("failed to add chart %q: %w", c.chart.Title[0].Text, err)
		}
	}
	return nil
}
