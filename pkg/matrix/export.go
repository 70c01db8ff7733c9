package matrix

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
)

// ExportHeader is the column layout of the flat matrix report
var ExportHeader = []string{
	"Underglaze ID",
	"Underglaze Name",
	"Underglaze Color",
	"Pattern ID",
	"Pattern Name",
	"Pattern Color",
	"Cell Key",
	"Is Disabled",
	"Status",
	"Type",
}

const (
	StatusEnabled  = "Enabled"
	StatusDisabled = "Disabled"
)

const (
	colCellKey    = 6
	colIsDisabled = 7
	colType       = 9
)

// Export writes one row per pairing of the registry, in Registry.Pairings order.
// The same registry and disabled set always produce the same bytes.
func Export(w io.Writer, registry *Registry, disabled *DisabledSet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return err
	}

	for _, p := range registry.Pairings() {
		key := p.Key()
		isDisabled := disabled.Contains(key)
		status := StatusEnabled
		if isDisabled {
			status = StatusDisabled
		}
		record := []string{
			p.First.ID,
			p.First.Name,
			p.First.RepresentativeColor(),
			p.Second.ID,
			p.Second.Name,
			p.Second.RepresentativeColor(),
			key,
			strconv.FormatBool(isDisabled),
			status,
			string(p.Kind),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ParseExport reads a report produced by Export back into a disabled set. The
// "Is Disabled" and "Type" columns are authoritative; the key column is taken as is.
func ParseExport(reader io.Reader) (*DisabledSet, error) {
	cr := csv.NewReader(reader)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ParseError{Line: 1, Message: "missing header row"}
	}
	if err != nil {
		return nil, &ParseError{Line: 1, Message: "unreadable header row", Err: err}
	}
	if len(header) < len(ExportHeader) || strings.TrimPrefix(header[0], utf8BOM) != ExportHeader[0] {
		return nil, &ParseError{Line: 1, Message: "header does not match the matrix export layout"}
	}

	set := NewDisabledSet()
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Message: "unreadable row", Err: err}
		}
		line, _ := cr.FieldPos(0)
		if len(record) < len(ExportHeader) {
			return nil, &ParseError{Line: line, Message: "row has too few columns"}
		}

		switch PairingKind(record[colType]) {
		case PairingCross, PairingSame:
		default:
			return nil, &ParseError{Line: line, Message: "unknown pairing type " + strconv.Quote(record[colType])}
		}

		isDisabled, err := strconv.ParseBool(strings.TrimSpace(record[colIsDisabled]))
		if err != nil {
			return nil, &ParseError{Line: line, Message: "invalid Is Disabled value", Err: err}
		}
		if isDisabled {
			set.Add(record[colCellKey])
		}
	}
	return set, nil
}
