package combos

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/arthur-debert/ttcg/types"
)

func TestNormalize(t *testing.T) {
	got := Normalize([]string{" Fire", "dragon ", "FIRE", "", "  ", "Beast"})
	if diff := cmp.Diff([]string{"beast", "dragon", "fire"}, got); diff != "" {
		t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestEnumerateUnconstrained(t *testing.T) {
	got := Enumerate([]string{"c", "a", "b"}, nil, 3)
	expected := [][]string{
		{"a"}, {"a", "b"}, {"a", "b", "c"}, {"a", "c"},
		{"b"}, {"b", "c"},
		{"c"},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Enumerate mismatch (-want +got):\n%s", diff)
	}
}

func TestEnumerateSizeCap(t *testing.T) {
	got := Enumerate([]string{"a", "b", "c"}, nil, 2)
	expected := [][]string{{"a"}, {"a", "b"}, {"a", "c"}, {"b"}, {"b", "c"}, {"c"}}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Enumerate mismatch (-want +got):\n%s", diff)
	}

	if got := Enumerate([]string{"a"}, nil, 0); got != nil {
		t.Errorf("max size 0 gave %v, want nil", got)
	}
	if got := Enumerate(nil, nil, 3); got != nil {
		t.Errorf("no labels gave %v, want nil", got)
	}
	if got := Enumerate([]string{"a", "b"}, nil, 10); len(got) != 3 {
		t.Errorf("oversized cap gave %d subsets, want 3", len(got))
	}
}

func TestEnumerateConstrained(t *testing.T) {
	got := Enumerate([]string{"fire", "water", "beast", "dragon"}, []string{"Fire", "Water"}, 3)
	expected := [][]string{
		{"beast", "dragon", "fire"},
		{"beast", "dragon", "water"},
		{"beast", "fire"},
		{"beast", "water"},
		{"dragon", "fire"},
		{"dragon", "water"},
		{"fire"},
		{"water"},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Enumerate mismatch (-want +got):\n%s", diff)
	}
}

func TestEnumerateExactlyOnePrimary(t *testing.T) {
	catalog := types.DefaultCatalog()
	primary := make(map[string]bool)
	for _, p := range Normalize(catalog.Types) {
		primary[p] = true
	}

	for _, subset := range Enumerate(catalog.Labels(), catalog.Types, 3) {
		count := 0
		for _, l := range subset {
			if primary[l] {
				count++
			}
		}
		if count != 1 {
			t.Fatalf("subset %v holds %d types, want 1", subset, count)
		}
	}
}

func TestEnumerateIsPureFunctionOfNormalizedInput(t *testing.T) {
	a := Enumerate([]string{"Fire", "water", "Beast", "dragon"}, []string{"fire", "water"}, 3)
	b := Enumerate([]string{" dragon", "BEAST", "Water", "fire", "fire"}, []string{"WATER", "Fire"}, 3)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("equivalent inputs differ (-a +b):\n%s", diff)
	}
	again := Enumerate([]string{"Fire", "water", "Beast", "dragon"}, []string{"fire", "water"}, 3)
	if diff := cmp.Diff(a, again); diff != "" {
		t.Errorf("repeated call differs (-first +second):\n%s", diff)
	}
}

// The positions below are baked into every serial number issued with the
// default catalog. If this test fails the enumeration order changed and
// existing serials no longer decode to the same type and subtypes.
func TestDefaultCatalogIndexIsStable(t *testing.T) {
	catalog := types.DefaultCatalog()
	ix := NewIndex(catalog.Labels(), catalog.Types, 3)

	if ix.Len() != 954 {
		t.Fatalf("default index has %d entries, want 954", ix.Len())
	}
	entries := []struct {
		pos  int
		want []string
	}{
		{0, []string{"air"}},
		{1, []string{"air", "aquatic"}},
		{2, []string{"air", "aquatic", "avian"}},
		{ix.Len() - 1, []string{"water"}},
	}
	for _, e := range entries {
		if diff := cmp.Diff(e.want, ix.At(e.pos)); diff != "" {
			t.Errorf("entry %d mismatch (-want +got):\n%s", e.pos, diff)
		}
	}
	if got, want := ix.Fingerprint(), Fingerprint(catalog.Labels(), catalog.Types, 3); got != want {
		t.Errorf("Fingerprint() = %s, want %s", got, want)
	}

	pos, err := ix.PositionOf("Air, Aquatic")
	if err != nil || pos != 1 {
		t.Errorf("PositionOf(Air, Aquatic) = %d, %v; want 1", pos, err)
	}
	pos, err = ix.Position([]string{"Water"})
	if err != nil || pos != ix.Len()-1 {
		t.Errorf("Position(Water) = %d, %v; want %d", pos, err, ix.Len()-1)
	}
}

func TestIndexPosition(t *testing.T) {
	ix := NewIndex([]string{"fire", "water", "beast"}, []string{"fire", "water"}, 2)
	want := [][]string{{"beast", "fire"}, {"beast", "water"}, {"fire"}, {"water"}}
	if diff := cmp.Diff(want, ix.Subsets()); diff != "" {
		t.Fatalf("Subsets mismatch (-want +got):\n%s", diff)
	}

	pos, err := ix.Position([]string{"Fire", "Beast"})
	if err != nil || pos != 0 {
		t.Errorf("Position(Fire, Beast) = %d, %v; want 0", pos, err)
	}

	for _, labels := range [][]string{{"fire", "water"}, {"beast"}} {
		if _, err := ix.Position(labels); !errors.Is(err, ErrUnknownCombination) {
			t.Errorf("Position(%v): expected ErrUnknownCombination, got %v", labels, err)
		}
	}
}

func TestFingerprint(t *testing.T) {
	base := Fingerprint([]string{"a", "b"}, []string{"a"}, 2)
	if len(base) != 16 {
		t.Errorf("fingerprint %q has %d characters, want 16", base, len(base))
	}
	if got := Fingerprint([]string{"B", "a"}, []string{"A"}, 2); got != base {
		t.Errorf("normalized inputs should share a fingerprint: %s != %s", got, base)
	}

	changed := map[string]string{
		"max size":  Fingerprint([]string{"a", "b"}, []string{"a"}, 3),
		"primaries": Fingerprint([]string{"a", "b"}, nil, 2),
		"labels":    Fingerprint([]string{"a", "b", "c"}, []string{"a"}, 2),
	}
	for name, got := range changed {
		if got == base {
			t.Errorf("changing %s kept fingerprint %s", name, base)
		}
	}
}
