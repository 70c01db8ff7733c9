package matrix

import (
	"fmt"
	"io"
	"sort"
)

// Result is the outcome of reconciling an imported sheet against the registry
type Result struct {
	DisabledCells []string  `json:"disabledCells"`
	NotFoundNames []string  `json:"notFoundNames"`
	Warnings      []Warning `json:"warnings"`

	// Registry entities the sheet never addresses; their pairings keep their default.
	UncoveredGlazes      []string `json:"uncoveredGlazes"`
	UncoveredUnderglazes []string `json:"uncoveredUnderglazes"`

	TotalCombinations int `json:"totalCombinations"`
	EnabledCount      int `json:"enabledCount"`
	DisabledCount     int `json:"disabledCount"`
}

// ReconcileCSV parses reader and reconciles it in one step
func ReconcileCSV(registry *Registry, reader io.Reader, boundary string) (*Result, error) {
	sheet, err := ParseImport(reader, boundary)
	if err != nil {
		return nil, err
	}
	res := Reconcile(registry, sheet)
	if !sheet.BoundaryFound {
		res.Warnings = append([]Warning{{
			Kind:    WarningBoundaryMissing,
			Name:    boundary,
			Message: fmt.Sprintf("boundary column %q not found, all columns used", boundary),
		}}, res.Warnings...)
	}
	return res, nil
}

// Reconcile computes the disabled set implied by an imported sheet. Sheet rows are glaze
// names and sheet columns are underglaze names. A glaze × underglaze pairing is disabled
// only when the sheet addresses both entities and the cell is not marked; every other
// pairing, including those involving names the registry cannot resolve, stays enabled.
func Reconcile(registry *Registry, sheet *ImportSheet) *Result {
	res := &Result{
		NotFoundNames:        []string{},
		Warnings:             []Warning{},
		UncoveredGlazes:      []string{},
		UncoveredUnderglazes: []string{},
	}
	notFound := make(map[string]struct{})
	addNotFound := func(kind CatalogKind, name string) {
		if _, seen := notFound[name]; seen {
			return
		}
		notFound[name] = struct{}{}
		res.NotFoundNames = append(res.NotFoundNames, name)
		res.Warnings = append(res.Warnings, Warning{
			Kind:    WarningNotFound,
			Catalog: kind,
			Name:    name,
			Message: fmt.Sprintf("%s %q is not in the catalog, its pairings stay enabled", kind, name),
		})
	}
	warnAmbiguous := func(kind CatalogKind, m NameMatch) {
		res.Warnings = append(res.Warnings, Warning{
			Kind:    WarningAmbiguousName,
			Catalog: kind,
			Name:    m.Entity.Name,
			Message: fmt.Sprintf("%s name %q matches several entities, using %s", kind, m.Entity.Name, m.Entity.ID),
		})
	}

	// Glaze registry index -> marks of the sheet row resolved to it.
	rowMarks := make(map[int]map[string]struct{})
	for _, row := range sheet.Rows {
		m, ok := registry.FindGlaze(row.Name)
		if !ok {
			addNotFound(KindGlaze, row.Name)
			continue
		}
		if existing, dup := rowMarks[m.Index]; dup {
			res.Warnings = append(res.Warnings, Warning{
				Kind:    WarningDuplicateRow,
				Catalog: KindGlaze,
				Name:    row.Name,
				Message: fmt.Sprintf("row %q appears more than once, marks merged", row.Name),
			})
			for col := range row.Marks {
				existing[col] = struct{}{}
			}
			continue
		}
		if m.Ambiguous {
			warnAmbiguous(KindGlaze, m)
		}
		marks := make(map[string]struct{}, len(row.Marks))
		for col := range row.Marks {
			marks[col] = struct{}{}
		}
		rowMarks[m.Index] = marks
	}

	// Underglaze registry index -> sheet column name resolved to it.
	columnFor := make(map[int]string)
	for _, col := range sheet.Columns {
		if col == "" {
			continue
		}
		m, ok := registry.FindUnderglaze(col)
		if !ok {
			addNotFound(KindUnderglaze, col)
			continue
		}
		if _, dup := columnFor[m.Index]; dup {
			continue
		}
		if m.Ambiguous {
			warnAmbiguous(KindUnderglaze, m)
		}
		columnFor[m.Index] = col
	}

	disabled := NewDisabledSet()
	for ui, u := range registry.Underglazes {
		column, underglazeCovered := columnFor[ui]
		for gi, g := range registry.Glazes {
			marks, glazeCovered := rowMarks[gi]
			if !underglazeCovered || !glazeCovered {
				continue
			}
			if _, enabled := marks[column]; enabled {
				continue
			}
			disabled.Add(CrossPairing(u, g).Key())
		}
	}

	for gi, g := range registry.Glazes {
		if _, ok := rowMarks[gi]; !ok {
			res.UncoveredGlazes = append(res.UncoveredGlazes, g.Name)
		}
	}
	for ui, u := range registry.Underglazes {
		if _, ok := columnFor[ui]; !ok {
			res.UncoveredUnderglazes = append(res.UncoveredUnderglazes, u.Name)
		}
	}

	res.DisabledCells = disabled.Keys()
	res.TotalCombinations = registry.CrossCombinations()
	res.DisabledCount = disabled.Len()
	res.EnabledCount = res.TotalCombinations - res.DisabledCount
	return res
}

// SortedNotFound returns the not-found names in lexical order, for stable reports
func (r *Result) SortedNotFound() []string {
	out := make([]string, len(r.NotFoundNames))
	copy(out, r.NotFoundNames)
	sort.Strings(out)
	return out
}
