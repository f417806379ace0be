package topicstats

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteCountsCSV writes Topic,Count rows in report order
func WriteCountsCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Topic", "Count"}); err != nil {
		return err
	}
	for _, c := range r.Counts {
		if err := cw.Write([]string{c.Topic, strconv.Itoa(c.Count)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteProportionsCSV writes Topic,Proportion rows in report order
func WriteProportionsCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Topic", "Proportion"}); err != nil {
		return err
	}
	for _, c := range r.Counts {
		if err := cw.Write([]string{c.Topic, strconv.FormatFloat(c.Proportion, 'f', -1, 64)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
