// Package export turns an in-memory result set into the two download
// artifacts the dashboard offers: a CSV file and an HTML table saved under an
// .xls name so spreadsheet apps open it with row styling intact.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"github.com/hamed0406/anomalydash/internal/domain"
)

const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
)

// Error messages are part of the contract: callers surface them verbatim.
var (
	// ErrNoData is returned for an empty result set.
	ErrNoData = errors.New("No data to export")
	// ErrUnsupportedFormat is returned for a format discriminator other than
	// "csv" or "excel".
	ErrUnsupportedFormat = errors.New("Unsupported export format")
)

// File is a ready-to-download artifact.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Parts is a parsed timestamp split for display. Unparsable input yields the
// fixed sentinel triple instead of an error.
type Parts struct {
	ISO  string
	Date string
	Time string
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// TimestampParts parses ts and never fails: nil or unparsable input degrades
// to {"Invalid Date","Invalid Date","Invalid Time"}.
func TimestampParts(ts *string) Parts {
	invalid := Parts{ISO: domain.InvalidDate, Date: domain.InvalidDate, Time: domain.InvalidTime}
	if ts == nil || *ts == "" {
		return invalid
	}
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, *ts)
		if err != nil {
			continue
		}
		u := t.UTC()
		return Parts{
			ISO:  u.Format("2006-01-02T15:04:05.000Z"),
			Date: u.Format("2006-01-02"),
			Time: u.Format("15:04:05"),
		}
	}
	return invalid
}

func idField(r domain.Record) string {
	if r.ID == nil {
		return domain.NA
	}
	return strconv.FormatInt(*r.ID, 10)
}

func valueField(r domain.Record) string {
	if r.Value == nil {
		return domain.NA
	}
	return strconv.FormatFloat(*r.Value, 'f', 4, 64)
}

func statusField(r domain.Record) string {
	if r.Anomalous() {
		return "Anomaly"
	}
	return "Normal"
}

// confidenceField renders the score as a percent value without the % suffix.
func confidenceField(r domain.Record) string {
	if r.Confidence == nil {
		return domain.NA
	}
	return strconv.FormatFloat(*r.Confidence*100, 'f', 1, 64)
}

// CSV renders records in input order: a UTF-8 BOM, the header line, then one
// line per record. Quoting follows the usual CSV rules (fields containing a
// comma, quote, or newline are wrapped in doubled-quote escaping).
func CSV(records []domain.Record) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}

	var buf bytes.Buffer
	buf.WriteString("\uFEFF") // BOM so spreadsheet readers pick UTF-8

	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"ID", "Timestamp", "Value", "Status", "Confidence (%)"}); err != nil {
		return nil, err
	}
	for _, r := range records {
		row := []string{
			idField(r),
			TimestampParts(r.Timestamp).ISO,
			valueField(r),
			statusField(r),
			confidenceField(r),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var spreadsheetTmpl = template.Must(template.New("xls").Parse(`<html>
<head>
<meta charset="UTF-8">
<style>
table { border-collapse: collapse; }
th, td { border: 1px solid #999; padding: 4px 8px; }
tr.anomaly { background-color: #fde2e2; }
tr.normal { background-color: #ffffff; }
</style>
</head>
<body>
<table>
<tr><th>ID</th><th>Timestamp</th><th>Date</th><th>Time</th><th>Value</th><th>Status</th><th>Confidence (%)</th></tr>
{{range .}}<tr class="{{.Class}}"><td>{{.ID}}</td><td>{{.ISO}}</td><td>{{.Date}}</td><td>{{.Time}}</td><td>{{.Value}}</td><td>{{.Status}}</td><td>{{.Confidence}}</td></tr>
{{end}}</table>
</body>
</html>
`))

type spreadsheetRow struct {
	Class      string
	ID         string
	ISO        string
	Date       string
	Time       string
	Value      string
	Status     string
	Confidence string
}

// SpreadsheetHTML renders the same fields as CSV plus separate date and time
// columns, one table row per record, tagged anomaly/normal for styling.
func SpreadsheetHTML(records []domain.Record) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}

	rows := make([]spreadsheetRow, 0, len(records))
	for _, r := range records {
		parts := TimestampParts(r.Timestamp)
		class := "normal"
		if r.Anomalous() {
			class = "anomaly"
		}
		rows = append(rows, spreadsheetRow{
			Class:      class,
			ID:         idField(r),
			ISO:        parts.ISO,
			Date:       parts.Date,
			Time:       parts.Time,
			Value:      valueField(r),
			Status:     statusField(r),
			Confidence: confidenceField(r),
		})
	}

	var buf bytes.Buffer
	if err := spreadsheetTmpl.Execute(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename builds the download name `<base>-<YYYY-MM-DD>.<ext>` from the
// caller's clock.
func Filename(base, ext string, now time.Time) string {
	return fmt.Sprintf("%s-%s.%s", base, now.Format("2006-01-02"), ext)
}

// Export validates the result set, dispatches on format and returns the
// artifact. The first record must carry an id; that is a structural sanity
// check on the snapshot, not schema validation.
func Export(records []domain.Record, format, base string, now time.Time) (File, error) {
	if len(records) == 0 {
		return File{}, ErrNoData
	}
	if records[0].ID == nil {
		return File{}, errors.New("malformed result set: first record has no id")
	}

	switch format {
	case FormatCSV:
		data, err := CSV(records)
		if err != nil {
			return File{}, fmt.Errorf("CSV export failed: %w", err)
		}
		return File{
			Name:        Filename(base, "csv", now),
			ContentType: "text/csv; charset=utf-8",
			Data:        data,
		}, nil
	case FormatExcel:
		data, err := SpreadsheetHTML(records)
		if err != nil {
			return File{}, fmt.Errorf("Excel export failed: %w", err)
		}
		return File{
			Name:        Filename(base, "xls", now),
			ContentType: "application/vnd.ms-excel",
			Data:        data,
		}, nil
	default:
		return File{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}
