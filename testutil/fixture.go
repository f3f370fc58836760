// Package testutil holds shared fixtures for package tests: a small catalog,
// a set of sample cards and throwaway workspaces laid out like a real
// content directory.
package testutil

import (
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/arthur-debert/ttcg/store"
	"github.com/arthur-debert/ttcg/types"
)

//go:embed testdata/cards.json
var cardsJSON []byte

// SampleCards provides typed access to the card fixture.
type SampleCards struct {
	Blaze         types.Card // Fire Beast, level 1, plain effect
	Tidecaller    types.Card // Water with two subtypes, passive effect, rarity 2
	EmberWyrm     types.Card // Fire Dragon at max level, echo second effect
	Gust          types.Card // Spell with signed stats
	StoneSentinel types.Card // Earth Machine Warrior, style prefix in the effect text

	// All cards in fixture order
	All []types.Card
	// ByKey maps fixture keys to cards
	ByKey map[string]types.Card
}

// fixtureCard represents the JSON structure in testdata/cards.json
type fixtureCard struct {
	Key          string   `json:"key"`
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Subtypes     []string `json:"subtypes"`
	Level        int      `json:"level"`
	Image        string   `json:"image"`
	Attack       string   `json:"attack"`
	Defense      string   `json:"defense"`
	Effect1      string   `json:"effect1"`
	Effect2      string   `json:"effect2"`
	Rarity       string   `json:"rarity"`
	Transparency string   `json:"transparency"`
	Effect1Style string   `json:"effect1_style"`
	Effect2Style string   `json:"effect2_style"`
}

type fixtureData struct {
	Cards []fixtureCard `json:"cards"`
}

// LoadCards parses the card fixture. Every call returns fresh copies.
func LoadCards(t testing.TB) *SampleCards {
	t.Helper()

	var fixture fixtureData
	if err := json.Unmarshal(cardsJSON, &fixture); err != nil {
		t.Fatalf("failed to parse card fixture: %v", err)
	}

	cards := &SampleCards{ByKey: make(map[string]types.Card)}
	for _, fc := range fixture.Cards {
		card := types.Card{
			Name:         fc.Name,
			Type:         fc.Type,
			Subtypes:     fc.Subtypes,
			Level:        fc.Level,
			Image:        fc.Image,
			Attack:       fc.Attack,
			Defense:      fc.Defense,
			Effect1:      fc.Effect1,
			Effect2:      fc.Effect2,
			Rarity:       fc.Rarity,
			Transparency: fc.Transparency,
			Effect1Style: fc.Effect1Style,
			Effect2Style: fc.Effect2Style,
		}
		cards.All = append(cards.All, card)
		cards.ByKey[fc.Key] = card

		switch fc.Key {
		case "blaze":
			cards.Blaze = card
		case "tidecaller":
			cards.Tidecaller = card
		case "ember-wyrm":
			cards.EmberWyrm = card
		case "gust":
			cards.Gust = card
		case "stone-sentinel":
			cards.StoneSentinel = card
		}
	}
	return cards
}

// SmallCatalog is a two-type, one-subtype catalog whose enumeration is small
// enough to reason about by hand: [Beast Fire] [Beast Water] [Fire] [Water].
func SmallCatalog() types.Catalog {
	catalog := types.DefaultCatalog()
	catalog.Types = []string{"Fire", "Water"}
	catalog.Subtypes = []string{"Beast"}
	return catalog
}

// DefaultPlaceholders is the placeholder set written into every workspace.
var DefaultPlaceholders = map[string][]string{
	"kind":   {"Dragon", "Beast", "Warrior"},
	"amount": {"100", "200", "300", "400"},
	"target": {"one card", "one creature", "one spell"},
	"gain":   {"Gain <amount> life", "Draw <target>"},
}

// Workspace is a temporary content directory: placeholder lists, card list,
// serial history and effects table.
type Workspace struct {
	t   testing.TB
	Dir string

	Placeholders string
	CardList     string
	History      string
	Effects      string
}

// NewWorkspace creates a workspace under t.TempDir with DefaultPlaceholders
// written and every other file absent.
func NewWorkspace(t testing.TB) *Workspace {
	t.Helper()

	dir := t.TempDir()
	ws := &Workspace{
		t:            t,
		Dir:          dir,
		Placeholders: filepath.Join(dir, "placeholders"),
		CardList:     filepath.Join(dir, "cards.csv"),
		History:      filepath.Join(dir, "serials.txt"),
		Effects:      filepath.Join(dir, "effects.csv"),
	}
	if err := os.MkdirAll(ws.Placeholders, 0755); err != nil {
		t.Fatalf("failed to create placeholder dir: %v", err)
	}

	names := make([]string, 0, len(DefaultPlaceholders))
	for name := range DefaultPlaceholders {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ws.WritePlaceholder(name, DefaultPlaceholders[name]...)
	}
	return ws
}

// Path joins elements onto the workspace directory.
func (w *Workspace) Path(elem ...string) string {
	return filepath.Join(append([]string{w.Dir}, elem...)...)
}

// WritePlaceholder writes <name>.txt with one value per line.
func (w *Workspace) WritePlaceholder(name string, values ...string) string {
	w.t.Helper()
	path := filepath.Join(w.Placeholders, name+".txt")
	w.WriteFile(path, strings.Join(values, "\n")+"\n")
	return path
}

// WriteCards writes the card list with a header row.
func (w *Workspace) WriteCards(cards ...types.Card) {
	w.t.Helper()
	f, err := os.Create(w.CardList)
	if err != nil {
		w.t.Fatalf("failed to create card list: %v", err)
	}
	defer func() { _ = f.Close() }()
	if err := store.WriteCards(f, cards); err != nil {
		w.t.Fatalf("failed to write card list: %v", err)
	}
}

// WriteHistory writes the serial history, one serial per line.
func (w *Workspace) WriteHistory(serials ...string) {
	w.t.Helper()
	content := ""
	if len(serials) > 0 {
		content = strings.Join(serials, "\n") + "\n"
	}
	w.WriteFile(w.History, content)
}

// WriteEffects writes a semicolon delimited effects table.
func (w *Workspace) WriteEffects(header []string, rows ...[]string) {
	w.t.Helper()
	lines := []string{strings.Join(header, ";")}
	for _, row := range rows {
		lines = append(lines, strings.Join(row, ";"))
	}
	w.WriteFile(w.Effects, strings.Join(lines, "\n")+"\n")
}

// WriteFile writes content to path, creating parent directories.
func (w *Workspace) WriteFile(path, content string) {
	w.t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		w.t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		w.t.Fatalf("failed to write %s: %v", path, err)
	}
}

// ReadFile returns the content of path, failing the test if it is missing.
func (w *Workspace) ReadFile(path string) string {
	w.t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		w.t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// ReadLines returns the non-empty lines of path.
func (w *Workspace) ReadLines(path string) []string {
	w.t.Helper()
	var lines []string
	for _, line := range strings.Split(w.ReadFile(path), "\n") {
		if line = strings.TrimRight(line, "\r"); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
