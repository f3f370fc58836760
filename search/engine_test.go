package search

import (
	"errors"
	"strings"
	"testing"
)

func TestEngine_Search_NoTerms(t *testing.T) {
	engine := NewEngine(NewMockTextProvider(SampleEffects()))

	results, err := engine.Search(Options{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(results) != len(SampleEffects()) {
		t.Errorf("Expected every text without terms, got %d", len(results))
	}
	for i, r := range results {
		if r.Position != i {
			t.Errorf("Expected provider order to be kept, result %d has position %d", i, r.Position)
		}
	}
}

func TestEngine_Search_ProviderError(t *testing.T) {
	provider := NewMockTextProvider(SampleEffects())
	provider.SetError(errors.New("read error"))
	engine := NewEngine(provider)

	_, err := engine.Search(Options{Include: []string{"draw"}})
	if err == nil {
		t.Fatal("Expected error when provider fails")
	}
	if !strings.Contains(err.Error(), "failed to get texts") {
		t.Errorf("Expected error to mention text retrieval, got: %v", err)
	}
}

func TestEngine_Search_IncludeAnyTerm(t *testing.T) {
	engine := NewEngine(NewMockTextProvider(SampleEffects()))

	results, err := engine.Search(Options{Include: []string{"dragon", "beast"}})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	found := make(map[string]bool)
	for _, r := range results {
		found[r.Text] = true
	}
	for _, want := range []string{
		"Destroy one Dragon on the field",
		"Return one Beast card to the hand",
		"Dragons you control gain 100 attack",
	} {
		if !found[want] {
			t.Errorf("Expected %q in results", want)
		}
	}
	if len(results) != 3 {
		t.Errorf("Expected 3 results, got %d", len(results))
	}
}

func TestEngine_Search_CaseSensitive(t *testing.T) {
	engine := NewEngine(NewMockTextProvider(SampleEffects()))

	results, err := engine.Search(Options{Include: []string{"Draw"}, CaseSensitive: true})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(results) != 1 || results[0].Text != "Draw one card" {
		t.Errorf("Expected only 'Draw one card', got %v", results)
	}

	results, _ = engine.Search(Options{Include: []string{"Draw"}})
	if len(results) != 2 {
		t.Errorf("Expected 2 case-insensitive results, got %d", len(results))
	}
}

func TestEngine_Search_Omit(t *testing.T) {
	engine := NewEngine(NewMockTextProvider(SampleEffects()))

	results, err := engine.Search(Options{Include: []string{"one"}, Omit: []string{"DRAGON", "discard"}})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	for _, r := range results {
		lower := strings.ToLower(r.Text)
		if strings.Contains(lower, "dragon") || strings.Contains(lower, "discard") {
			t.Errorf("Omitted term found in %q", r.Text)
		}
	}
	if len(results) != 2 {
		t.Errorf("Expected 2 results, got %d: %v", len(results), results)
	}
}

func TestEngine_Search_Scoring(t *testing.T) {
	engine := NewEngine(NewMockTextProvider([]string{
		"Gain life when a dragon attacks",
		"Dragon rage",
		"Summon a dragonling",
	}))

	results, err := engine.Search(Options{Include: []string{"dragon"}})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	if results[0].Text != "Dragon rage" {
		t.Errorf("Expected prefix whole-word match first, got %q", results[0].Text)
	}
	if results[len(results)-1].Text != "Summon a dragonling" {
		t.Errorf("Expected partial-word match last, got %q", results[len(results)-1].Text)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("Results not sorted by score at %d", i)
		}
	}
}

func TestEngine_Search_MaxResults(t *testing.T) {
	engine := NewEngine(NewMockTextProvider(SampleEffects()))
	limit := 2

	results, _ := engine.Search(Options{MaxResults: &limit})
	if len(results) != 2 {
		t.Errorf("Expected 2 results, got %d", len(results))
	}
}

func TestEngine_Search_Highlight(t *testing.T) {
	engine := NewEngine(NewMockTextProvider([]string{"Dragon eats dragon"}))

	results, _ := engine.Search(Options{Include: []string{"dragon"}, EnableHighlight: true})
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if want := "**Dragon** eats **dragon**"; results[0].Highlighted != want {
		t.Errorf("Expected %q, got %q", want, results[0].Highlighted)
	}

	results, _ = engine.Search(Options{
		Include:              []string{"eats", "drag"},
		EnableHighlight:      true,
		HighlightStartMarker: "[",
		HighlightEndMarker:   "]",
	})
	if want := "[Drag]on [eats] [drag]on"; results[0].Highlighted != want {
		t.Errorf("Expected %q, got %q", want, results[0].Highlighted)
	}
}

func TestFilterAndMatch(t *testing.T) {
	got := Filter(SampleEffects(), Options{Include: []string{"card"}, Omit: []string{"beast"}})
	want := []string{"Draw one card", "DRAW two cards and discard one"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Expected %v, got %v", want, got)
	}

	if !Match("Draw one card", nil, nil) {
		t.Error("Expected match without terms")
	}
	if !Match("Draw one card", []string{"DRAW"}, nil) {
		t.Error("Expected case-insensitive include match")
	}
	if Match("Draw one card", []string{"draw"}, []string{"card"}) {
		t.Error("Expected omit to win over include")
	}
}
