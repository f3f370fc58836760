package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/arthur-debert/ttcg/types"
)

// AssertCardCount checks that the slice contains the expected number of cards
func AssertCardCount(t testing.TB, cards []types.Card, expected int, context ...string) {
	t.Helper()
	if len(cards) != expected {
		ctx := ""
		if len(context) > 0 {
			ctx = " " + context[0]
		}
		t.Errorf("expected %d cards%s, got %d", expected, ctx, len(cards))
	}
}

// AssertCardExists verifies that a card with the given name is in the slice
func AssertCardExists(t testing.TB, cards []types.Card, name string) {
	t.Helper()
	for _, card := range cards {
		if card.Name == name {
			return
		}
	}
	t.Errorf("card %q not found", name)
}

// AssertCardsEqual compares card slices field by field, treating nil and
// empty subtype lists as equal.
func AssertCardsEqual(t testing.TB, want, got []types.Card) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("cards mismatch (-want +got):\n%s", diff)
	}
}

// AssertSerialsUnique verifies that no two cards share a serial number
func AssertSerialsUnique(t testing.TB, cards []types.Card) {
	t.Helper()
	seen := make(map[string]string)
	for _, card := range cards {
		if card.Serial == "" {
			t.Errorf("card %q has no serial", card.Name)
			continue
		}
		if other, ok := seen[card.Serial]; ok {
			t.Errorf("cards %q and %q share serial %s", other, card.Name, card.Serial)
		}
		seen[card.Serial] = card.Name
	}
}
