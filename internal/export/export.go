// Package export serializes a filtered activity list to CSV or JSON. The
// encoders are pure functions over the list; writing the file is a
// separate boundary effect so the encodings stay golden-file testable.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/planbrew/planbrew/internal/activity"
)

// Format is an export output format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// csvHeader is the fixed CSV column order. Changing it breaks downstream
// spreadsheets, so it is pinned by a golden test.
const csvHeader = "Date,Type,Summary,Feature Area,Files Changed,Severity"

// Filename returns the fixed download filename for the format.
func (f Format) Filename() string {
	if f == FormatJSON {
		return "planbrew-activity.json"
	}
	return "planbrew-activity.csv"
}

// ContentType returns the MIME type a browser download would carry.
func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json"
	}
	return "text/csv;charset=utf-8;"
}

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	return f == FormatCSV || f == FormatJSON
}

// CSV encodes items with the fixed header row. Dates render as local
// date-time strings in loc, the summary is always double-quoted with
// embedded quotes doubled, changed files join with "; ", and absent
// optional fields render empty.
func CSV(items []activity.Item, loc *time.Location) string {
	rows := make([]string, 0, len(items)+1)
	rows = append(rows, csvHeader)

	for _, it := range items {
		row := []string{
			it.CreatedAt.In(loc).Format("1/2/2006, 3:04:05 PM"),
			string(it.Type),
			`"` + strings.ReplaceAll(it.Summary, `"`, `""`) + `"`,
			it.FeatureArea,
			strings.Join(it.FilesChanged, "; "),
			it.Severity,
		}
		rows = append(rows, strings.Join(row, ","))
	}

	return strings.Join(rows, "\n")
}

// JSON encodes the exact item list, pretty-printed, with no
// transformation. Decoding the result reproduces the input.
func JSON(items []activity.Item) (string, error) {
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode activity list: %w", err)
	}
	return string(b), nil
}

// Encode renders items in the requested format.
func Encode(items []activity.Item, f Format, loc *time.Location) (string, error) {
	switch f {
	case FormatCSV:
		return CSV(items, loc), nil
	case FormatJSON:
		return JSON(items)
	default:
		return "", fmt.Errorf("unknown export format %q", f)
	}
}

// Save writes content under dir using the format's fixed filename and
// returns the written path. This is the download side effect; encoding
// stays separate.
func Save(dir string, f Format, content string) (string, error) {
	path := filepath.Join(dir, f.Filename())
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}
