package review

import "topicreview/domain/topics"

// TopicOption is one entry of the topic multi-choice control
type TopicOption struct {
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// View is everything shown for one (table, selection) pair.
type View struct {
	Filename string                `json:"filename"`
	Topics   []TopicOption         `json:"topics"`
	Rows     []topics.AnnotatedRow `json:"rows"`
	Summary  []topics.SummaryRow   `json:"summary"`
	Total    int                   `json:"total"`
	Correct  int                   `json:"correct"`
}

// Derive is a pure function of its inputs; sessions call it on every change.
func Derive(filename string, table *topics.Table, sel topics.Selection) *View {
	labels := topics.DistinctTopics(table)
	options := make([]TopicOption, len(labels))
	for i, l := range labels {
		options[i] = TopicOption{Label: l, Selected: sel.Has(l)}
	}

	rows := topics.Annotate(table, sel)
	correct := 0
	for _, r := range rows {
		if r.IsCorrect {
			correct++
		}
	}

	return &View{
		Filename: filename,
		Topics:   options,
		Rows:     rows,
		Summary:  topics.Summarize(rows, sel),
		Total:    len(rows),
		Correct:  correct,
	}
}
