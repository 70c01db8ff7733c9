package matrix

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const colorsJSON = `{
  "glazes": [
    {"id": "C-1", "name": "Clear", "color": "#f0f0f0"},
    {"id": "C-2", "name": " Honey Flux ", "color": "#c98b2a"},
    {"id": 37, "name": "Numbered", "color": "#101010"}
  ],
  "underglazes": [
    {"id": "UG-1", "name": "Black", "left": "#000000", "top": "#0a0a0a"},
    {"id": "UG-2", "name": "Red", "top": "#ff0000"}
  ]
}`

func TestLoadRegistry(t *testing.T) {
	reg, err := LoadRegistry(strings.NewReader(colorsJSON))
	require.NoError(t, err)

	require.Len(t, reg.Glazes, 3)
	require.Len(t, reg.Underglazes, 2)

	assert.Equal(t, "C-1", reg.Glazes[0].ID)
	assert.Equal(t, "Honey Flux", reg.Glazes[1].Name, "names are trimmed")
	assert.Equal(t, "37", reg.Glazes[2].ID, "numeric ids are stringified")
	assert.Equal(t, map[string]string{"left": "#000000", "top": "#0a0a0a"}, reg.Underglazes[0].ColorAttributes)

	assert.Equal(t, 6, reg.CrossCombinations())
	assert.Equal(t, 10, reg.TotalPairings())
}

func TestLoadRegistryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colors.json")
	require.NoError(t, os.WriteFile(path, []byte(colorsJSON), 0o644))

	reg, err := LoadRegistryFile(path)
	require.NoError(t, err)
	assert.Len(t, reg.Glazes, 3)

	_, err = LoadRegistryFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadRegistry_InvalidJSON(t *testing.T) {
	_, err := LoadRegistry(strings.NewReader(`{"glazes": [`))
	assert.Error(t, err)
}

func TestRepresentativeColor(t *testing.T) {
	tests := []struct {
		name string
		e    CatalogEntity
		want string
	}{
		{"glaze color", entity("1", "a", "color", "#111111", "left", "#222222"), "#111111"},
		{"underglaze left", entity("2", "b", "left", "#222222", "top", "#333333"), "#222222"},
		{"top only", entity("3", "c", "top", "#333333"), "#333333"},
		{"other attribute", entity("4", "d", "zeta", "#999999", "alpha", "#444444"), "#444444"},
		{"no attributes", entity("5", "e"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.e.RepresentativeColor())
		})
	}
}

func TestFindByName_FirstMatchWinsAndFlagsAmbiguity(t *testing.T) {
	reg := NewRegistry(
		[]CatalogEntity{
			entity("G1", "Celadon"),
			entity("G2", "Celadon"),
			entity("G3", "Shino"),
		},
		[]CatalogEntity{entity("U1", "Blue")},
	)

	m, ok := reg.FindGlaze("Celadon")
	require.True(t, ok)
	assert.Equal(t, "G1", m.Entity.ID)
	assert.Equal(t, 0, m.Index)
	assert.True(t, m.Ambiguous)

	m, ok = reg.FindGlaze("  Shino ")
	require.True(t, ok)
	assert.Equal(t, "G3", m.Entity.ID)
	assert.False(t, m.Ambiguous)

	_, ok = reg.FindGlaze("Blue")
	assert.False(t, ok, "glaze lookup must not see underglazes")

	m, ok = reg.FindUnderglaze("Blue")
	require.True(t, ok)
	assert.Equal(t, "U1", m.Entity.ID)
}

func TestCatalogEntity_MarshalJSONKeepsFlatShape(t *testing.T) {
	raw, err := json.Marshal(entity("UG-1", "Black", "left", "#000000"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"UG-1","name":"Black","left":"#000000"}`, string(raw))
}
