package matrix

// KeySeparator joins the two ids of a pairing key
const KeySeparator = "-"

// PairingKind tells cross-catalog pairings from same-catalog ones
type PairingKind string

const (
	PairingCross PairingKind = "underglaze-glaze"
	PairingSame  PairingKind = "underglaze-underglaze"
)

// BuildKey is the only place a cell key is constructed. Callers pass the ids in
// pairing order; the key is never parsed back into ids.
func BuildKey(firstID, secondID string) string {
	return firstID + KeySeparator + secondID
}

// Pairing carries both entities of a matrix cell so reports never have to split keys.
// First and Second keep the order the pairing was requested in.
type Pairing struct {
	First  CatalogEntity
	Second CatalogEntity
	Kind   PairingKind

	// keyFirst/keySecond are the ids in key order; they differ from First/Second only
	// for a same-catalog pairing requested against registry order.
	keyFirst  string
	keySecond string
}

// Key returns the cell key of the pairing
func (p Pairing) Key() string {
	if p.keyFirst == "" && p.keySecond == "" {
		return BuildKey(p.First.ID, p.Second.ID)
	}
	return BuildKey(p.keyFirst, p.keySecond)
}

// CrossPairing orders an underglaze and a glaze: underglaze first.
func CrossPairing(underglaze, glaze CatalogEntity) Pairing {
	return Pairing{First: underglaze, Second: glaze, Kind: PairingCross}
}

// UnderglazePairing keeps a and b in argument order but keys them by registry position,
// so (a, b) and (b, a) map to the same cell key. Ids not present in the registry are
// keyed in argument order.
func (r *Registry) UnderglazePairing(a, b CatalogEntity) Pairing {
	p := Pairing{First: a, Second: b, Kind: PairingSame, keyFirst: a.ID, keySecond: b.ID}
	ia, okA := r.underglazeIndex[a.ID]
	ib, okB := r.underglazeIndex[b.ID]
	if okA && okB && ib < ia {
		p.keyFirst, p.keySecond = b.ID, a.ID
	}
	return p
}

// Pairings enumerates the full matrix: for every underglaze, first its pairing with each
// glaze, then with each underglaze. The order depends only on registry order.
func (r *Registry) Pairings() []Pairing {
	out := make([]Pairing, 0, r.TotalPairings())
	for _, u := range r.Underglazes {
		for _, g := range r.Glazes {
			out = append(out, CrossPairing(u, g))
		}
		for _, other := range r.Underglazes {
			out = append(out, r.UnderglazePairing(u, other))
		}
	}
	return out
}
