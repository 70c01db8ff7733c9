package matrix

import "fmt"

// ParseError reports a structurally invalid CSV document
type ParseError struct {
	Line    int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("csv parse error on line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("csv parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// WarningKind classifies non-fatal findings collected during a reconciliation
type WarningKind string

const (
	WarningAmbiguousName   WarningKind = "ambiguous_name"
	WarningNotFound        WarningKind = "not_found"
	WarningBoundaryMissing WarningKind = "boundary_missing"
	WarningDuplicateRow    WarningKind = "duplicate_row"
)

// Warning is a non-fatal finding. The pairings it touches stay enabled.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Catalog CatalogKind `json:"catalog,omitempty"`
	Name    string      `json:"name"`
	Message string      `json:"message"`
}
