package main

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"yashubustudio/answerfinder/finder"
)

var queryColumnCandidates = []string{"question", "query", "text", "content", "body", "message"}

// readQueries loads query texts from a plain text file (one per line) or a
// CSV/TSV file. For delimited files the column is chosen by name, by 1-based
// "#N" index, or detected from the header.
func readQueries(path, column string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", filepath.Base(path))
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return queriesFromDelimited(data, ',', column)
	case ".tsv":
		return queriesFromDelimited(data, '\t', column)
	default:
		return splitNonEmptyLines(string(data)), nil
	}
}

func splitNonEmptyLines(s string) []string {
	scanner := bufio.NewScanner(strings.NewReader(s))
	scanner.Buffer(make([]byte, 0, 64*1024), 2*1024*1024)
	lines := make([]string, 0)
	for scanner.Scan() {
		line := cleanCell(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func queriesFromDelimited(data []byte, delim rune, column string) ([]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read delimited file")
	}
	if len(records) == 0 {
		return nil, errors.New("empty file")
	}
	header := make([]string, len(records[0]))
	for i, cell := range records[0] {
		header[i] = cleanCell(cell)
	}
	idx, hasHeader, err := resolveQueryColumn(header, column)
	if err != nil {
		return nil, err
	}
	return extractColumn(records, idx, hasHeader), nil
}

// resolveQueryColumn returns the column index and whether row 0 is a header.
func resolveQueryColumn(header []string, explicit string) (int, bool, error) {
	trimmed := strings.TrimSpace(explicit)
	if trimmed != "" {
		for i, col := range header {
			if strings.EqualFold(col, trimmed) {
				return i, true, nil
			}
		}
		if strings.HasPrefix(trimmed, "#") {
			idx, err := parseColumnIndex(trimmed)
			if err != nil {
				return -1, false, err
			}
			if idx >= len(header) {
				return -1, false, errors.Newf("column index %s is out of range", trimmed)
			}
			return idx, false, nil
		}
		return -1, false, errors.Newf("column %q not found", explicit)
	}
	if idx := detectQueryColumn(header); idx >= 0 {
		return idx, true, nil
	}
	return 0, false, nil
}

func detectQueryColumn(header []string) int {
	for _, cand := range queryColumnCandidates {
		for idx, h := range header {
			if strings.EqualFold(h, cand) {
				return idx
			}
		}
	}
	return -1
}

func parseColumnIndex(token string) (int, error) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(token, "#"))
	idx, err := strconv.Atoi(trimmed)
	if err != nil {
		return -1, errors.Newf("invalid column index %q", token)
	}
	if idx <= 0 {
		return -1, errors.Newf("column indices are 1-based: %q", token)
	}
	return idx - 1, nil
}

func extractColumn(records [][]string, idx int, hasHeader bool) []string {
	start := 0
	if hasHeader {
		start = 1
	}
	res := make([]string, 0, len(records))
	for i := start; i < len(records); i++ {
		row := records[i]
		if idx >= len(row) {
			continue
		}
		if val := cleanCell(row[idx]); val != "" {
			res = append(res, val)
		}
	}
	return res
}

func cleanCell(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "\ufeff")
	return finder.CleanText(v)
}
