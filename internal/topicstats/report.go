// Package topicstats computes descriptive statistics over the topic labels of
// a table and writes them as CSV, Markdown, native workbook charts and HTML charts.
package topicstats

import (
	"fmt"
	"math"
	"strings"

	"topicreview/domain/topics"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// TopicCount is one topic with its share of the labeled records
type TopicCount struct {
	Topic         string  `json:"topic"`
	Count         int     `json:"count"`
	Proportion    float64 `json:"proportion"`
	CumulativePct float64 `json:"cumulative_pct"`
}

// Descriptive summarizes the distribution of per-topic counts
type Descriptive struct {
	Records           int     `json:"records"`
	Labeled           int     `json:"labeled"`
	Untagged          int     `json:"untagged"`
	Topics            int     `json:"topics"`
	Mean              float64 `json:"mean"`
	Median            float64 `json:"median"`
	StdDev            float64 `json:"std_dev"`
	Min               float64 `json:"min"`
	Max               float64 `json:"max"`
	Q25               float64 `json:"q25"`
	Q75               float64 `json:"q75"`
	Entropy           float64 `json:"entropy"`
	NormalizedEntropy float64 `json:"normalized_entropy"`
}

// Report is the full statistics output for one table
type Report struct {
	Source string       `json:"source"`
	Counts []TopicCount `json:"counts"`
	Stats  Descriptive  `json:"stats"`
}

// Compute counts topics in descending order (ties in first-seen order) and
// derives proportions, cumulative percentages and descriptive statistics.
func Compute(source string, t *topics.Table) (*Report, error) {
	empty := topics.NewSelection()
	summary := topics.Summarize(topics.Annotate(t, empty), empty)

	report := &Report{Source: source, Counts: make([]TopicCount, len(summary))}
	report.Stats.Records = t.Len()
	report.Stats.Topics = len(summary)

	counts := make([]float64, len(summary))
	for i, s := range summary {
		counts[i] = float64(s.Count)
		report.Stats.Labeled += s.Count
	}
	report.Stats.Untagged = report.Stats.Records - report.Stats.Labeled
	if len(counts) == 0 {
		return report, nil
	}

	total := floats.Sum(counts)
	proportions := make([]float64, len(counts))
	for i, c := range counts {
		proportions[i] = c / total
	}
	cumulative := floats.CumSum(make([]float64, len(counts)), proportions)
	for i, s := range summary {
		report.Counts[i] = TopicCount{
			Topic:         s.Topic,
			Count:         s.Count,
			Proportion:    proportions[i],
			CumulativePct: cumulative[i] * 100,
		}
	}

	if err := describe(counts, &report.Stats); err != nil {
		return nil, fmt.Errorf("failed to describe topic counts: %w", err)
	}
	report.Stats.Entropy = stat.Entropy(proportions)
	if len(counts) > 1 {
		report.Stats.NormalizedEntropy = report.Stats.Entropy / math.Log(float64(len(counts)))
	}
	return report, nil
}

func describe(counts []float64, d *Descriptive) error {
	var err error
	if d.Mean, err = stats.Mean(counts); err != nil {
		return err
	}
	if d.Median, err = stats.Median(counts); err != nil {
		return err
	}
	if d.Min, err = stats.Min(counts); err != nil {
		return err
	}
	if d.Max, err = stats.Max(counts); err != nil {
		return err
	}
	if d.Q25, err = stats.PercentileNearestRank(counts, 25); err != nil {
		return err
	}
	if d.Q75, err = stats.PercentileNearestRank(counts, 75); err != nil {
		return err
	}
	// Sample deviation needs two points
	if len(counts) > 1 {
		if d.StdDev, err = stats.StandardDeviationSample(counts); err != nil {
			return err
		}
	}
	return nil
}

// Markdown renders the report as a Markdown document
func (r *Report) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Topic statistics: %s\n\n", escapeCell(r.Source))
	fmt.Fprintf(&b, "%d records, %d labeled, %d without a topic, %d distinct topics.\n\n",
		r.Stats.Records, r.Stats.Labeled, r.Stats.Untagged, r.Stats.Topics)

	if len(r.Counts) == 0 {
		b.WriteString("No topic labels found.\n")
		return b.String()
	}

	b.WriteString("## Counts per topic\n\n")
	b.WriteString("| Topic | Count | Proportion | Cumulative % |\n")
	b.WriteString("|---|---:|---:|---:|\n")
	for _, c := range r.Counts {
		fmt.Fprintf(&b, "| %s | %d | %.3f | %.1f |\n", escapeCell(c.Topic), c.Count, c.Proportion, c.CumulativePct)
	}

	b.WriteString("\n## Distribution of counts\n\n")
	b.WriteString("| Statistic | Value |\n|---|---:|\n")
	rows := []struct {
		name  string
		value float64
	}{
		{"Mean", r.Stats.Mean},
		{"Median", r.Stats.Median},
		{"Std. deviation", r.Stats.StdDev},
		{"Min", r.Stats.Min},
		{"25th percentile", r.Stats.Q25},
		{"75th percentile", r.Stats.Q75},
		{"Max", r.Stats.Max},
		{"Entropy (nats)", r.Stats.Entropy},
		{"Normalized entropy", r.Stats.NormalizedEntropy},
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "| %s | %.3f |\n", row.name, row.value)
	}
	return b.String()
}

// markdownEscaper backslash-escapes characters that would otherwise turn label text
// into links, emphasis, headings or HTML. Line breaks would end a table row.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`,
	"[", `\[`, "]", `\]`, "(", `\(`, ")", `\)`,
	"<", `\<`, ">", `\>`, "#", `\#`, "!", `\!`, "|", `\|`,
	"\r\n", " ", "\n", " ", "\r", " ",
)

func escapeCell(s string) string {
	return markdownEscaper.Replace(s)
}
