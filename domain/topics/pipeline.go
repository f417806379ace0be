package topics

import (
	"math"
	"sort"
)

// DistinctTopics returns the non-null topic labels of t, deduplicated and sorted ascending.
func DistinctTopics(t *Table) []string {
	if t == nil {
		return []string{}
	}
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range t.Records {
		if !r.HasTopic {
			continue
		}
		if _, ok := seen[r.Topic]; ok {
			continue
		}
		seen[r.Topic] = struct{}{}
		out = append(out, r.Topic)
	}
	sort.Strings(out)
	return out
}

// Annotate marks each record correct when its topic is selected. Null topics are never correct.
func Annotate(t *Table, sel Selection) []AnnotatedRow {
	if t == nil {
		return []AnnotatedRow{}
	}
	rows := make([]AnnotatedRow, len(t.Records))
	for i, r := range t.Records {
		rows[i] = AnnotatedRow{
			Record:    r,
			IsCorrect: r.HasTopic && sel.Has(r.Topic),
		}
	}
	return rows
}

// Summarize counts rows per topic and orders topics by count descending.
// Ties keep the order in which topics first appear. Rows without a topic are
// not counted, so percentages are shares of the rows that carry one.
func Summarize(rows []AnnotatedRow, sel Selection) []SummaryRow {
	counts := make(map[string]int)
	order := make([]string, 0)
	total := 0
	for _, r := range rows {
		if !r.HasTopic {
			continue
		}
		if _, ok := counts[r.Topic]; !ok {
			order = append(order, r.Topic)
		}
		counts[r.Topic]++
		total++
	}

	summary := make([]SummaryRow, len(order))
	for i, topic := range order {
		summary[i] = SummaryRow{
			Topic:      topic,
			Count:      counts[topic],
			Percentage: Percentage(counts[topic], total),
			IsCorrect:  sel.Has(topic),
		}
	}
	sort.SliceStable(summary, func(i, j int) bool {
		return summary[i].Count > summary[j].Count
	})
	return summary
}

// Percentage returns 100*count/total rounded half-to-even to one decimal place.
func Percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.RoundToEven(float64(count)/float64(total)*1000) / 10
}
