package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// CSVOptions controls CSV ingestion.
type CSVOptions struct {
	// Comma is the field separator. Zero means detect it from the header
	// line by counting candidate separators.
	Comma rune
	// TrimSpace strips surrounding whitespace from headers and cells
	// before they are interpreted.
	TrimSpace bool
}

// ReadCSVFile loads a CSV file with separator detection and whitespace
// trimming enabled.
func ReadCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file: %w", err)
	}
	defer f.Close()
	return ReadCSV(f, CSVOptions{TrimSpace: true})
}

// ReadCSV reads a table from CSV input. The first record is the header row.
// An empty cell is a null, whatever the column type. Column types are
// inferred per column from the non-empty cells: numeric if every cell
// parses as a number, timestamp if every cell parses as one of the known
// layouts, string otherwise.
func ReadCSV(r io.Reader, opts CSVOptions) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	text := string(data)
	sep := opts.Comma
	if sep == 0 {
		line, _, _ := strings.Cut(text, "\n")
		sep = detectSeparator(line)
	}

	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = sep
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv input has no header row")
	}

	header := records[0]
	body := records[1:]
	cols := make([]*Column, len(header))
	for j, name := range header {
		if opts.TrimSpace {
			name = strings.TrimSpace(name)
		}
		cells := make([]string, len(body))
		valid := make([]bool, len(body))
		hasNull := false
		for i, rec := range body {
			cell := rec[j]
			if opts.TrimSpace {
				cell = strings.TrimSpace(cell)
			}
			cells[i] = cell
			valid[i] = cell != ""
			hasNull = hasNull || cell == ""
		}
		if !hasNull {
			valid = nil
		}
		cols[j] = buildCSVColumn(name, cells, valid)
	}
	return New(cols...)
}

func buildCSVColumn(name string, cells []string, valid []bool) *Column {
	isNull := func(i int) bool { return valid != nil && !valid[i] }

	switch inferType(cells, valid) {
	case TypeNumeric:
		vals := make([]float64, len(cells))
		for i, cell := range cells {
			if isNull(i) {
				continue
			}
			vals[i], _ = strconv.ParseFloat(cell, 64)
		}
		return NewNumericColumn(name, vals, valid)
	case TypeTimestamp:
		vals := make([]time.Time, len(cells))
		for i, cell := range cells {
			if isNull(i) {
				continue
			}
			vals[i], _ = parseTime(cell)
		}
		return NewTimeColumn(name, vals, valid)
	default:
		return NewStringColumn(name, cells, valid)
	}
}

// inferType votes over the non-null cells. Numbers win over timestamps so
// that a column of plain years stays numeric. A column with no usable cells
// is a string column.
func inferType(cells []string, valid []bool) Type {
	seen := false
	numeric := true
	stamp := true
	for i, cell := range cells {
		if valid != nil && !valid[i] {
			continue
		}
		seen = true
		if numeric {
			_, err := strconv.ParseFloat(cell, 64)
			numeric = err == nil
		}
		if stamp {
			_, ok := parseTime(cell)
			stamp = ok
		}
		if !numeric && !stamp {
			return TypeString
		}
	}
	if !seen {
		return TypeString
	}
	if numeric {
		return TypeNumeric
	}
	if stamp {
		return TypeTimestamp
	}
	return TypeString
}

// timeFormats are tried in order when sniffing timestamp cells.
var timeFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"02-Jan-2006",
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeFormats {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// detectSeparator picks the candidate separator occurring most often in the
// header line, defaulting to comma.
func detectSeparator(line string) rune {
	best := ','
	bestCount := 0
	for _, sep := range []rune{',', ';', '\t', '|'} {
		if n := strings.Count(line, string(sep)); n > bestCount {
			best, bestCount = sep, n
		}
	}
	return best
}
