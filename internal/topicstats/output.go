package topicstats

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"topicreview/internal/theme"

	"golang.org/x/sync/errgroup"
)

// Output file names
const (
	CountsFile      = "topic_counts.csv"
	ProportionsFile = "topic_proportions.csv"
	ReportFile      = "topic_report.md"
	ChartsXLSXFile  = "topic_charts.xlsx"
	ChartsHTMLFile  = "topic_charts.html"
)

// OutputOptions selects the optional chart outputs
type OutputOptions struct {
	Dir     string
	XLSX    bool
	HTML    bool
	Palette theme.Palette
}

type output struct {
	name  string
	write func(io.Writer) error
}

// WriteAll writes every selected output into opts.Dir concurrently and
// returns the written paths in a fixed order.
func WriteAll(ctx context.Context, r *Report, opts OutputOptions) ([]string, error) {
	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	writers := []output{
		{CountsFile, func(w io.Writer) error { return WriteCountsCSV(w, r) }},
		{ProportionsFile, func(w io.Writer) error { return WriteProportionsCSV(w, r) }},
		{ReportFile, func(w io.Writer) error {
			_, err := io.WriteString(w, r.Markdown())
			return err
		}},
	}
	if opts.XLSX {
		writers = append(writers, output{ChartsXLSXFile, func(w io.Writer) error { return WriteChartsWorkbook(w, r, opts.Palette) }})
	}
	if opts.HTML {
		writers = append(writers, output{ChartsHTMLFile, func(w io.Writer) error { return RenderChartsHTML(w, r) }})
	}

	paths := make([]string, len(writers))
	g, ctx := errgroup.WithContext(ctx)
	for i, wr := range writers {
		path := filepath.Join(opts.Dir, wr.name)
		paths[i] = path
		write := wr.write
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return writeFile(path, write)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Printf("[TopicStats] wrote %s", strings.Join(paths, ", "))
	return paths, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
