package batch

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/oneconcern/ddr/pkg/errors"
)

// ErrCSV indicates an unreadable csv input
var ErrCSV = errors.New("malformed csv")

const bom = "\ufeff"

// Row is a csv record keyed by header. Number counts data rows from 1.
type Row struct {
	Number int
	Values map[string]string
}

// Table is a parsed csv document
type Table struct {
	Headers []string
	Rows    []Row
}

// ReadCSV parses a csv document with a header line
func ReadCSV(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return Table{}, ErrCSV.Wrap(err)
	}
	if len(records) == 0 {
		return Table{}, ErrCSV.Wrapf("no header line")
	}

	t := Table{Headers: make([]string, len(records[0]))}
	seen := make(map[string]struct{}, len(records[0]))
	for i, h := range records[0] {
		if i == 0 {
			h = strings.TrimPrefix(h, bom)
		}
		h = strings.TrimSpace(h)
		if _, dup := seen[h]; dup {
			return Table{}, ErrCSV.Wrapf("duplicate header %q", h)
		}
		seen[h] = struct{}{}
		t.Headers[i] = h
	}

	for n, record := range records[1:] {
		if isBlank(record) {
			continue
		}
		if len(record) > len(t.Headers) {
			return Table{}, ErrCSV.Wrapf("row %d has %d values for %d headers", n+1, len(record), len(t.Headers))
		}
		row := Row{Number: n + 1, Values: make(map[string]string, len(t.Headers))}
		for i, h := range t.Headers {
			if i < len(record) {
				row.Values[h] = record[i]
			} else {
				row.Values[h] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// WriteCSV writes a header line then rows
func WriteCSV(w io.Writer, headers []string, rows [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(headers); err != nil {
		return ErrCSV.Wrap(err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return ErrCSV.Wrap(err)
	}
	return nil
}
