// Package combos enumerates label subsets and indexes them.
//
// The position of a subset in the enumeration is the payload of part of
// every serial number, so the enumeration order is a compatibility
// contract: normalisation, growth order, de-duplication and the final sort
// must never change without bumping AlgorithmVersion and re-issuing serials.
package combos

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AlgorithmVersion identifies the enumeration order. It is folded into
// Fingerprint.
const AlgorithmVersion = 1

// ErrUnknownCombination is returned for label sets the enumeration does not
// contain.
var ErrUnknownCombination = errors.New("unknown label combination")

var fold = cases.Lower(language.Und)

// Normalize trims and lower-cases labels, drops empty ones, removes
// duplicates and sorts the result.
func Normalize(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		l = fold.String(strings.TrimSpace(l))
		if l != "" {
			out = append(out, l)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Enumerate returns every subset of labels with 1 to maxSize members.
//
// When primary is non-nil, subsets are seeded only from labels that are
// also in primary, and growth never adds a second primary label, so every
// subset holds exactly one primary label.
//
// Subsets are grown breadth-first by size. The output is sorted within each
// subset and across subsets, comparing element by element with a shorter
// prefix first.
func Enumerate(labels, primary []string, maxSize int) [][]string {
	universe := Normalize(labels)
	if maxSize <= 0 || len(universe) == 0 {
		return nil
	}

	var primarySet map[string]bool
	if primary != nil {
		primarySet = make(map[string]bool)
		for _, p := range Normalize(primary) {
			primarySet[p] = true
		}
	}
	constrained := primarySet != nil

	seen := make(map[string]bool)
	var level [][]string
	for _, l := range universe {
		if constrained && !primarySet[l] {
			continue
		}
		level = append(level, []string{l})
		seen[l] = true
	}

	result := slices.Clone(level)
	for size := 2; size <= maxSize && len(level) > 0; size++ {
		var next [][]string
		for _, subset := range level {
			for _, l := range universe {
				if slices.Contains(subset, l) {
					continue
				}
				if constrained && primarySet[l] {
					continue
				}

				grown := insertSorted(subset, l)
				k := key(grown)
				if seen[k] {
					continue
				}
				seen[k] = true
				next = append(next, grown)
			}
		}
		result = append(result, next...)
		level = next
	}

	slices.SortFunc(result, compareSubsets)
	return result
}

// Fingerprint hashes the enumeration parameters together with
// AlgorithmVersion. Two runs that agree on the fingerprint agree on every
// subset position.
func Fingerprint(labels, primary []string, maxSize int) string {
	h := sha256.New()
	fmt.Fprintf(h, "v%d\n", AlgorithmVersion)
	fmt.Fprintf(h, "labels=%s\n", strings.Join(Normalize(labels), ","))
	if primary != nil {
		fmt.Fprintf(h, "primary=%s\n", strings.Join(Normalize(primary), ","))
	}
	fmt.Fprintf(h, "max=%s\n", strconv.Itoa(maxSize))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func insertSorted(subset []string, l string) []string {
	i, _ := slices.BinarySearch(subset, l)
	grown := make([]string, 0, len(subset)+1)
	grown = append(grown, subset[:i]...)
	grown = append(grown, l)
	return append(grown, subset[i:]...)
}

func key(subset []string) string {
	return strings.Join(subset, "\x00")
}

func compareSubsets(a, b []string) int {
	return slices.Compare(a, b)
}
