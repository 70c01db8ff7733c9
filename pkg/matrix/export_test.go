package matrix

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport(t *testing.T) {
	var buf bytes.Buffer
	err := Export(&buf, smallRegistry(), NewDisabledSet("U2-G1", "U1-U2"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, "Underglaze ID,Underglaze Name,Underglaze Color,Pattern ID,Pattern Name,Pattern Color,Cell Key,Is Disabled,Status,Type", lines[0])
	assert.Equal(t, "U1,Under One,#111111,G1,Glaze One,#aa0000,U1-G1,false,Enabled,underglaze-glaze", lines[1])
	assert.Equal(t, "U1,Under One,#111111,U2,Under Two,#222222,U1-U2,true,Disabled,underglaze-underglaze", lines[4])
	assert.Equal(t, "U2,Under Two,#222222,G1,Glaze One,#aa0000,U2-G1,true,Disabled,underglaze-glaze", lines[5])
	assert.Equal(t, "U2,Under Two,#222222,U1,Under One,#111111,U1-U2,true,Disabled,underglaze-underglaze", lines[7],
		"the reversed same-catalog pair shares the canonical key")
}

func TestExport_EveryOrderedPairOnce(t *testing.T) {
	reg := NewRegistry(
		[]CatalogEntity{entity("G1", "Glaze One")},
		[]CatalogEntity{entity("U1", "Under One"), entity("U2", "Under Two"), entity("U3", "Under Three")},
	)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, reg, NewDisabledSet("U2-U3")))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	rows := records[1:]
	require.Len(t, rows, reg.TotalPairings())

	seen := map[string]bool{}
	keyOf := map[string]string{}
	for _, row := range rows {
		pair := row[0] + "/" + row[3]
		assert.False(t, seen[pair], "duplicate row for %s", pair)
		seen[pair] = true
		keyOf[pair] = row[6]
	}

	for _, a := range reg.Underglazes {
		for _, b := range reg.Underglazes {
			assert.True(t, seen[a.ID+"/"+b.ID], "missing row %s/%s", a.ID, b.ID)
			assert.Equal(t, keyOf[a.ID+"/"+b.ID], keyOf[b.ID+"/"+a.ID])
		}
	}
	assert.Equal(t, "U2-U3", keyOf["U3/U2"])
}

func TestExport_Deterministic(t *testing.T) {
	reg := smallRegistry()
	disabled := NewDisabledSet("U1-G2", "U2-U2")

	var first, second bytes.Buffer
	require.NoError(t, Export(&first, reg, disabled))
	require.NoError(t, Export(&second, reg, NewDisabledSet("U2-U2", "U1-G2")))

	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestExport_ThenParseRoundTrips(t *testing.T) {
	reg := smallRegistry()
	original := NewDisabledSet("U2-G2", "U1-G1", "U1-U2")

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, reg, original))

	parsed, err := ParseExport(&buf)
	require.NoError(t, err)
	assert.ElementsMatch(t, original.Keys(), parsed.Keys())
}

func TestExport_ReconcileComposes(t *testing.T) {
	reg := smallRegistry()
	res, err := ReconcileCSV(reg, csvText(
		",Under One,Under Two",
		"Glaze One,1,0",
		"Glaze Two,0,1",
	), "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, reg, NewDisabledSet(res.DisabledCells...)))

	parsed, err := ParseExport(&buf)
	require.NoError(t, err)
	assert.ElementsMatch(t, res.DisabledCells, parsed.Keys())
}

func TestParseExport_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"wrong header", "a,b,c\n"},
		{"unknown type", strings.Join(ExportHeader, ",") + "\nU1,n,#1,G1,n,#2,U1-G1,true,Disabled,glaze-glaze\n"},
		{"bad flag", strings.Join(ExportHeader, ",") + "\nU1,n,#1,G1,n,#2,U1-G1,maybe,Disabled,underglaze-glaze\n"},
		{"short row", strings.Join(ExportHeader, ",") + "\nU1,n,#1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseExport(strings.NewReader(tt.input))
			var parseErr *ParseError
			assert.ErrorAs(t, err, &parseErr)
		})
	}
}
