package topics

import "sort"

// Selection is an immutable set of topic labels the user marked as correct.
type Selection struct {
	labels map[string]struct{}
}

// NewSelection builds a selection from labels; duplicates collapse.
func NewSelection(labels ...string) Selection {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return Selection{labels: set}
}

// Has reports whether topic is selected.
func (s Selection) Has(topic string) bool {
	_, ok := s.labels[topic]
	return ok
}

// Len returns the number of selected labels
func (s Selection) Len() int {
	return len(s.labels)
}

// Labels returns the selected labels sorted ascending.
func (s Selection) Labels() []string {
	out := make([]string, 0, len(s.labels))
	for l := range s.labels {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Restrict drops every label that is not in topics.
func (s Selection) Restrict(topics []string) Selection {
	kept := make([]string, 0, len(topics))
	for _, t := range topics {
		if s.Has(t) {
			kept = append(kept, t)
		}
	}
	return NewSelection(kept...)
}
