package combos

import (
	"fmt"
	"slices"
	"strings"
)

// Index is an immutable enumeration with O(1) position lookup.
type Index struct {
	subsets     [][]string
	positions   map[string]int
	fingerprint string
}

// NewIndex enumerates labels and indexes the result.
func NewIndex(labels, primary []string, maxSize int) *Index {
	subsets := Enumerate(labels, primary, maxSize)
	positions := make(map[string]int, len(subsets))
	for i, s := range subsets {
		positions[key(s)] = i
	}
	return &Index{
		subsets:     subsets,
		positions:   positions,
		fingerprint: Fingerprint(labels, primary, maxSize),
	}
}

// Len returns the number of subsets.
func (ix *Index) Len() int {
	return len(ix.subsets)
}

// At returns a copy of the subset at position i.
func (ix *Index) At(i int) []string {
	return slices.Clone(ix.subsets[i])
}

// Subsets returns a copy of the whole enumeration.
func (ix *Index) Subsets() [][]string {
	out := make([][]string, len(ix.subsets))
	for i, s := range ix.subsets {
		out[i] = slices.Clone(s)
	}
	return out
}

// Fingerprint returns the fingerprint of the enumeration parameters.
func (ix *Index) Fingerprint() string {
	return ix.fingerprint
}

// Position returns the index of a label set, normalised the same way the
// enumeration was.
func (ix *Index) Position(labels []string) (int, error) {
	norm := Normalize(labels)
	pos, ok := ix.positions[key(norm)]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCombination, strings.Join(norm, ", "))
	}
	return pos, nil
}

// PositionOf parses a comma separated label string, as stored in the card
// list, and returns its index.
func (ix *Index) PositionOf(labels string) (int, error) {
	return ix.Position(strings.Split(labels, ","))
}
