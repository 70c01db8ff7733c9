package matrix

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// EnabledMarker is the only cell value that marks a pairing as compatible
const EnabledMarker = "1"

const utf8BOM = "\ufeff"

// CsvRow is one data row of an imported matrix: the row entity name and the set of
// column names whose cell carried the enabled marker.
type CsvRow struct {
	Name  string
	Marks map[string]struct{}
}

// Marked reports whether the row enables the given column name
func (r CsvRow) Marked(column string) bool {
	_, ok := r.Marks[column]
	return ok
}

// ImportSheet is the typed form of an imported matrix. Raw strings are not looked at
// again after parsing.
type ImportSheet struct {
	Columns []string
	Rows    []CsvRow

	// BoundaryFound is false when a boundary column was requested but not present,
	// in which case every column is kept.
	BoundaryFound bool
}

// HasColumn reports whether the sheet addresses the given column name
func (s *ImportSheet) HasColumn(name string) bool {
	for _, c := range s.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// ParseImport reads an authored matrix. The header row carries the column entity names
// (its first cell is ignored); every other row starts with a row entity name followed
// by 0/1 cells. When boundary is non-empty only the columns up to and including the
// first column with that name are kept.
func ParseImport(reader io.Reader, boundary string) (*ImportSheet, error) {
	cr := csv.NewReader(reader)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ParseError{Line: 1, Message: "missing header row"}
	}
	if err != nil {
		return nil, &ParseError{Line: 1, Message: "unreadable header row", Err: err}
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	columns := make([]string, 0, len(header))
	for _, h := range header[min(1, len(header)):] {
		columns = append(columns, strings.TrimSpace(h))
	}

	sheet := &ImportSheet{BoundaryFound: true}
	boundary = strings.TrimSpace(boundary)
	if boundary != "" {
		idx := indexOf(columns, boundary)
		if idx < 0 {
			sheet.BoundaryFound = false
		} else {
			columns = columns[:idx+1]
		}
	}
	sheet.Columns = columns

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				return nil, &ParseError{Line: csvErr.Line, Message: csvErr.Err.Error(), Err: err}
			}
			return nil, &ParseError{Message: "unreadable row", Err: err}
		}
		if len(record) == 0 {
			continue
		}

		name := strings.TrimSpace(record[0])
		if name == "" {
			continue
		}

		row := CsvRow{Name: name, Marks: make(map[string]struct{})}
		for j, column := range columns {
			cell := j + 1
			if cell >= len(record) {
				break
			}
			if column == "" {
				continue
			}
			if strings.TrimSpace(record[cell]) == EnabledMarker {
				row.Marks[column] = struct{}{}
			}
		}
		sheet.Rows = append(sheet.Rows, row)
	}

	return sheet, nil
}

func indexOf(values []string, target string) int {
	for i, v := range values {
		if v == target {
			return i
		}
	}
	return -1
}
