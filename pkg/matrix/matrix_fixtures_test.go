package matrix

import "strings"

func entity(id, name string, attrs ...string) CatalogEntity {
	e := CatalogEntity{ID: id, Name: name, ColorAttributes: map[string]string{}}
	for i := 0; i+1 < len(attrs); i += 2 {
		e.ColorAttributes[attrs[i]] = attrs[i+1]
	}
	return e
}

// smallRegistry has glazes G1, G2 and underglazes U1, U2.
func smallRegistry() *Registry {
	return NewRegistry(
		[]CatalogEntity{
			entity("G1", "Glaze One", "color", "#aa0000"),
			entity("G2", "Glaze Two", "color", "#00aa00"),
		},
		[]CatalogEntity{
			entity("U1", "Under One", "left", "#111111", "top", "#121212"),
			entity("U2", "Under Two", "left", "#222222", "top", "#232323"),
		},
	)
}

func csvText(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}
