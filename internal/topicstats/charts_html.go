package topicstats

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderChartsHTML writes a standalone page with bar, pie, donut and cumulative line charts
func RenderChartsHTML(w io.Writer, r *Report) error {
	names := make([]string, len(r.Counts))
	bars := make([]opts.BarData, len(r.Counts))
	slices := make([]opts.PieData, len(r.Counts))
	cumulative := make([]opts.LineData, len(r.Counts))
	for i, c := range r.Counts {
		names[i] = c.Topic
		bars[i] = opts.BarData{Value: c.Count}
		slices[i] = opts.PieData{Name: c.Topic, Value: c.Count}
		cumulative[i] = opts.LineData{Value: c.CumulativePct}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Occurrences of Each Unique Topic"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Topic"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Count"}),
	)
	bar.SetXAxis(names).AddSeries("Count", bars)

	pie := charts.NewPie()
	pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Proportion of Each Unique Topic"}))
	pie.AddSeries("Topics", slices).SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{Formatter: "{b}: {d}%"}),
	)

	donut := charts.NewPie()
	donut.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Donut Chart - Topic Distribution"}))
	donut.AddSeries("Topics", slices).SetSeriesOptions(
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{"40%", "75%"}}),
		charts.WithLabelOpts(opts.Label{Formatter: "{d}%"}),
	)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Cumulative Distribution of Topics"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Topic"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Cumulative Percentage (%)"}),
	)
	line.SetXAxis(names).AddSeries("Cumulative %", cumulative)

	page := components.NewPage()
	page.AddCharts(bar, pie, donut, line)
	return page.Render(w)
}
