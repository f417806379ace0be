package main

import (
	"fmt"
	"os"
	"path/filepath"

	"topicreview/adapters/excel"
	"topicreview/internal/theme"
	"topicreview/internal/topicstats"

	"github.com/spf13/cobra"
)

type reportFlags struct {
	out   string
	xlsx  bool
	html  bool
	theme string
}

func newReportCmd() *cobra.Command {
	flags := reportFlags{}

	cmd := &cobra.Command{
		Use:   "report <file.xlsx>",
		Short: "Write topic counts, proportions, a Markdown summary and charts",
		Long: `Load a spreadsheet with a Topic column and write topic_counts.csv,
topic_proportions.csv and topic_report.md, plus optional chart outputs.

Example: topicstats report my_output_with_topics.xlsx --out reports --xlsx --html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.out, "out", ".", "Directory for the generated files")
	cmd.Flags().BoolVar(&flags.xlsx, "xlsx", false, "Write topic_charts.xlsx with native bar, pie, donut and cumulative charts")
	cmd.Flags().BoolVar(&flags.html, "html", false, "Write topic_charts.html with interactive charts")
	cmd.Flags().StringVar(&flags.theme, "theme", getEnvOrDefault("DISPLAY_THEME", theme.Light), "Header colors for the charts workbook (light or dark)")

	return cmd
}

func runReport(cmd *cobra.Command, path string, flags reportFlags) error {
	palette, ok := theme.Lookup(flags.theme)
	if !ok {
		return fmt.Errorf("unknown theme %q (use light or dark)", flags.theme)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	table, err := excel.LoadTopicLabels(filepath.Base(path), f)
	if err != nil {
		return err
	}

	report, err := topicstats.Compute(filepath.Base(path), table)
	if err != nil {
		return err
	}

	paths, err := topicstats.WriteAll(cmd.Context(), report, topicstats.OutputOptions{
		Dir:     flags.out,
		XLSX:    flags.xlsx,
		HTML:    flags.html,
		Palette: palette,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d records, %d topics\n", report.Stats.Records, report.Stats.Topics)
	for _, p := range paths {
		fmt.Fprintf(out, "wrote %s\n", p)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
