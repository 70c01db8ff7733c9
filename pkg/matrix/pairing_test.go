package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestBuildKey(t *testing.T) {
	assert.Equal(t, "U1-G1", BuildKey("U1", "G1"))
	assert.Equal(t, "SC-10-G-4", BuildKey("SC-10", "G-4"), "ids containing the separator are not escaped")
	assert.Equal(t, "-", BuildKey("", ""))
}

func TestBuildKey_IsPure(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		a := rapid.String().Draw(r, "a")
		b := rapid.String().Draw(r, "b")

		first := BuildKey(a, b)
		for i := 0; i < 3; i++ {
			if got := BuildKey(a, b); got != first {
				r.Fatalf("BuildKey(%q, %q) changed between calls: %q then %q", a, b, first, got)
			}
		}
		if first != a+KeySeparator+b {
			r.Fatalf("unexpected key %q", first)
		}
	})
}

func TestCrossPairing_UnderglazeFirst(t *testing.T) {
	reg := smallRegistry()
	p := CrossPairing(reg.Underglazes[1], reg.Glazes[0])

	assert.Equal(t, "U2-G1", p.Key())
	assert.Equal(t, PairingCross, p.Kind)
	assert.Equal(t, "U2", p.First.ID)
	assert.Equal(t, "G1", p.Second.ID)
}

func TestUnderglazePairing_OrderIndependent(t *testing.T) {
	reg := NewRegistry(nil, []CatalogEntity{
		entity("Z9", "Last By Id"),
		entity("A1", "First By Id"),
		entity("M5", "Middle"),
	})

	rapid.Check(t, func(r *rapid.T) {
		i := rapid.IntRange(0, 2).Draw(r, "i")
		j := rapid.IntRange(0, 2).Draw(r, "j")
		a, b := reg.Underglazes[i], reg.Underglazes[j]

		ab := reg.UnderglazePairing(a, b)
		ba := reg.UnderglazePairing(b, a)
		if ab.Key() != ba.Key() {
			r.Fatalf("keys differ for the same unordered pair: %q vs %q", ab.Key(), ba.Key())
		}
		if ab.Kind != PairingSame {
			r.Fatalf("unexpected kind %q", ab.Kind)
		}
	})

	// Registry position decides the key, not id ordering.
	reversed := reg.UnderglazePairing(reg.Underglazes[1], reg.Underglazes[0])
	assert.Equal(t, "Z9-A1", reversed.Key())
	assert.Equal(t, "A1", reversed.First.ID, "entities keep the requested order")
	assert.Equal(t, "Z9", reversed.Second.ID)
}

func TestPairings_FullSpaceInStableOrder(t *testing.T) {
	reg := smallRegistry()

	pairings := reg.Pairings()
	require.Len(t, pairings, reg.TotalPairings())

	keys := make([]string, 0, len(pairings))
	for _, p := range pairings {
		keys = append(keys, p.Key())
	}
	assert.Equal(t, []string{
		"U1-G1", "U1-G2", "U1-U1", "U1-U2",
		"U2-G1", "U2-G2", "U1-U2", "U2-U2",
	}, keys)

	again := reg.Pairings()
	assert.Equal(t, pairings, again)
}
