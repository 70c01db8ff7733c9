package matrix

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// CatalogKind identifies which collection an entity belongs to
type CatalogKind string

const (
	KindGlaze      CatalogKind = "glaze"
	KindUnderglaze CatalogKind = "underglaze"
)

// Preferred attribute order when picking the color shown for an entity.
// Glazes carry "color", underglaze swatches carry "left" and "top".
var representativeColorKeys = []string{"color", "left", "top"}

// CatalogEntity is a single glaze or underglaze as loaded from the catalog file
type CatalogEntity struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	ColorAttributes map[string]string `json:"-"`
}

// UnmarshalJSON accepts the flat colors.json shape: id and name plus any number of
// string color fields ({"id":"SC-1","name":"Black","left":"#111111","top":"#222222"}).
func (e *CatalogEntity) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.ID = stringifyField(raw["id"])
	e.Name = strings.TrimSpace(stringifyField(raw["name"]))
	e.ColorAttributes = make(map[string]string)

	for k, v := range raw {
		if k == "id" || k == "name" {
			continue
		}
		if s, ok := v.(string); ok {
			e.ColorAttributes[k] = s
		}
	}
	return nil
}

// MarshalJSON writes the entity back in the same flat shape it was read from
func (e CatalogEntity) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(e.ColorAttributes)+2)
	for k, v := range e.ColorAttributes {
		out[k] = v
	}
	out["id"] = e.ID
	out["name"] = e.Name
	return json.Marshal(out)
}

// RepresentativeColor returns the single hex color used in reports
func (e CatalogEntity) RepresentativeColor() string {
	for _, key := range representativeColorKeys {
		if v, ok := e.ColorAttributes[key]; ok && v != "" {
			return v
		}
	}
	if len(e.ColorAttributes) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.ColorAttributes))
	for k := range e.ColorAttributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return e.ColorAttributes[keys[0]]
}

func stringifyField(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// NameMatch is the outcome of a name lookup in one catalog
type NameMatch struct {
	Entity    CatalogEntity
	Index     int
	Ambiguous bool // more than one entity carries this name
}

// Registry holds both catalogs for the lifetime of the process. It is built once and
// only read afterwards, so it is safe for concurrent readers.
type Registry struct {
	Glazes      []CatalogEntity `json:"glazes"`
	Underglazes []CatalogEntity `json:"underglazes"`

	glazeNames      map[string][]int
	underglazeNames map[string][]int
	underglazeIndex map[string]int
}

// NewRegistry indexes the given collections. Order is preserved and defines every
// iteration order downstream (reconciliation output, export rows).
func NewRegistry(glazes, underglazes []CatalogEntity) *Registry {
	r := &Registry{
		Glazes:      glazes,
		Underglazes: underglazes,
	}
	r.index()
	return r
}

func (r *Registry) index() {
	r.glazeNames = make(map[string][]int, len(r.Glazes))
	for i, g := range r.Glazes {
		name := strings.TrimSpace(g.Name)
		r.glazeNames[name] = append(r.glazeNames[name], i)
	}

	r.underglazeNames = make(map[string][]int, len(r.Underglazes))
	r.underglazeIndex = make(map[string]int, len(r.Underglazes))
	for i, u := range r.Underglazes {
		name := strings.TrimSpace(u.Name)
		r.underglazeNames[name] = append(r.underglazeNames[name], i)
		if _, seen := r.underglazeIndex[u.ID]; !seen {
			r.underglazeIndex[u.ID] = i
		}
	}
}

// LoadRegistry reads a colors.json document
func LoadRegistry(reader io.Reader) (*Registry, error) {
	var doc struct {
		Glazes      []CatalogEntity `json:"glazes"`
		Underglazes []CatalogEntity `json:"underglazes"`
	}
	if err := json.NewDecoder(reader).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return NewRegistry(doc.Glazes, doc.Underglazes), nil
}

// LoadRegistryFile is LoadRegistry over a file path
func LoadRegistryFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", path, err)
	}
	defer f.Close()

	return LoadRegistry(f)
}

// FindGlaze resolves a glaze by display name. The first entity in registry order wins.
func (r *Registry) FindGlaze(name string) (NameMatch, bool) {
	return lookup(r.Glazes, r.glazeNames, name)
}

// FindUnderglaze resolves an underglaze by display name. The first entity in registry order wins.
func (r *Registry) FindUnderglaze(name string) (NameMatch, bool) {
	return lookup(r.Underglazes, r.underglazeNames, name)
}

func lookup(entities []CatalogEntity, names map[string][]int, name string) (NameMatch, bool) {
	idxs, ok := names[strings.TrimSpace(name)]
	if !ok || len(idxs) == 0 {
		return NameMatch{}, false
	}
	return NameMatch{
		Entity:    entities[idxs[0]],
		Index:     idxs[0],
		Ambiguous: len(idxs) > 1,
	}, true
}

// CrossCombinations is the number of glaze × underglaze pairings
func (r *Registry) CrossCombinations() int {
	return len(r.Glazes) * len(r.Underglazes)
}

// TotalPairings is the size of the whole addressable matrix
func (r *Registry) TotalPairings() int {
	return r.CrossCombinations() + len(r.Underglazes)*len(r.Underglazes)
}
