package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"yashubustudio/answerfinder/finder"
)

var batchOpts struct {
	input     string
	column    string
	output    string
	outputDir string
	preview   bool
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Answer every query in a text/CSV/TSV file and write a result CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		input := strings.TrimSpace(batchOpts.input)
		if input == "" {
			return errors.New("missing required --input file")
		}
		rt, err := setup(cmd, true)
		if err != nil {
			return err
		}
		defer rt.close()

		queries, err := readQueries(input, batchOpts.column)
		if err != nil {
			return errors.Wrap(err, "read queries")
		}
		if len(queries) == 0 {
			return errors.New("input file does not contain any queries")
		}

		start := time.Now()
		answers, err := rt.service.AnswerAll(cmd.Context(), queries)
		if err != nil {
			return errors.Wrap(err, "answer queries")
		}
		rt.logger.Info("batch answered",
			zap.Int(finder.FieldCount, len(answers)),
			zap.Int64(finder.FieldDurationMS, time.Since(start).Milliseconds()))

		outputPath, err := resolveOutputPath(batchOpts.output, batchOpts.outputDir, time.Now())
		if err != nil {
			return err
		}
		if err := writeResultCSV(outputPath, answers); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "results written to %s\n", outputPath)
		if batchOpts.preview {
			for i, a := range answers {
				fmt.Fprintf(out, "\n%d. %s\n", i+1, a.OriginalText)
				renderAnswer(out, a)
			}
		}
		return nil
	},
}

func init() {
	f := batchCmd.Flags()
	f.StringVar(&batchOpts.input, "input", "", "Text (one query per line), CSV or TSV file of queries")
	f.StringVar(&batchOpts.column, "column", "", "Column name or #index holding the queries in CSV/TSV input")
	f.StringVar(&batchOpts.output, "output", "", "CSV file to write (default: --output-dir/answers_*.csv)")
	f.StringVar(&batchOpts.outputDir, "output-dir", "csv", "Directory for result CSVs when --output is omitted")
	f.BoolVar(&batchOpts.preview, "preview", false, "Also print every answer list")
}

func resolveOutputPath(path, dir string, now time.Time) (string, error) {
	if path = strings.TrimSpace(path); path != "" {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", errors.Wrap(err, "resolve output path")
		}
		if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
			return "", errors.Wrap(err, "create output directory")
		}
		return absPath, nil
	}
	if dir = strings.TrimSpace(dir); dir == "" {
		dir = "csv"
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrap(err, "resolve output dir")
	}
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return "", errors.Wrap(err, "create output dir")
	}
	filename := fmt.Sprintf("answers_%s.csv", now.Format("20060102150405"))
	return filepath.Join(absDir, filename), nil
}

// writeResultCSV writes one row per answer: the query, the best variant, all
// variants joined by " | ", and the variant count.
func writeResultCSV(path string, answers []finder.Answer) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create result file")
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write([]string{"text", "best", "answers", "count"}); err != nil {
		return errors.Wrap(err, "write header")
	}
	for i, a := range answers {
		best := ""
		if len(a.Answer) > 0 {
			best = a.Answer[0]
		}
		row := []string{a.OriginalText, best, strings.Join(a.Answer, " | "), strconv.Itoa(len(a.Answer))}
		if err := writer.Write(row); err != nil {
			return errors.Wrapf(err, "write row %d", i)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.Wrap(err, "flush result")
	}
	return nil
}
