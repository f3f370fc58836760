package serial

import (
	"errors"
	"testing"

	"github.com/arthur-debert/ttcg/combos"
	"github.com/arthur-debert/ttcg/types"
)

func smallCatalog() types.Catalog {
	return types.Catalog{
		Types:        []string{"Fire", "Water"},
		Subtypes:     []string{"Beast"},
		EffectStyles: types.DefaultCatalog().EffectStyles,
	}
}

func blaze() types.Card {
	return types.Card{
		Name:     "blaze",
		Type:     "Fire",
		Subtypes: []string{"Beast"},
		Level:    1,
		Attack:   "0",
		Defense:  "500",
		Effect1:  "Draw one card",
	}
}

func newSmallEncoder() *Encoder {
	return NewEncoder(smallCatalog(), nil, WithMaxSubsetSize(2))
}

func TestEncoderBase(t *testing.T) {
	enc := newSmallEncoder()
	if enc.CodeWidth() != 1 || enc.Length() != 11 {
		t.Errorf("code width %d, length %d; want 1, 11", enc.CodeWidth(), enc.Length())
	}

	base, err := enc.Base(blaze())
	if err != nil {
		t.Fatalf("Base failed: %v", err)
	}
	if base != "B100zD0000" {
		t.Errorf("Base() = %q, want B100zD0000", base)
	}
}

func TestEncoderDefaultCatalogLength(t *testing.T) {
	enc := NewEncoder(types.DefaultCatalog(), nil)
	if enc.CodeWidth() != 2 || enc.Length() != 12 {
		t.Errorf("code width %d, length %d; want 2, 12", enc.CodeWidth(), enc.Length())
	}
}

func TestEncoderFields(t *testing.T) {
	enc := newSmallEncoder()

	tests := []struct {
		name string
		edit func(*types.Card)
		want string
	}{
		{"water without subtypes", func(c *types.Card) { c.Type = "water"; c.Subtypes = nil }, "B130zD0000"},
		{"attack bucket", func(c *types.Card) { c.Attack = "250" }, "B10VzD0000"},
		{"explicit style", func(c *types.Card) { c.Effect1Style = "Passive" }, "B100zD5000"},
		{"deduced style", func(c *types.Card) { c.Effect1 = "Echo: draw one card" }, "B100zE8000"},
		{"unknown prefix is no style", func(c *types.Card) { c.Effect1 = "Note: draw" }, "B100zN0000"},
		{"second effect", func(c *types.Card) { c.Effect2 = "  heal"; c.Effect2Style = "pulse" }, "B100zD0h90"},
		{"rarity", func(c *types.Card) { c.Rarity = "3" }, "B100zD0003"},
		{"level", func(c *types.Card) { c.Level = 2; c.Defense = "1000" }, "B200zD0000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := blaze()
			tt.edit(&card)
			got, err := enc.Base(card)
			if err != nil {
				t.Fatalf("Base failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Base() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncoderSpellStats(t *testing.T) {
	enc := NewEncoder(types.DefaultCatalog(), nil)
	base, err := enc.Base(types.Card{Name: "Bolt", Type: "Spell", Level: 2, Attack: "+20", Defense: "-20"})
	if err != nil {
		t.Fatalf("Base failed: %v", err)
	}

	runes := []rune(base)
	if runes[4] != 'y' || runes[5] != '0' {
		t.Errorf("spell stat digits = %q%q, want y0", runes[4], runes[5])
	}
}

func TestEncoderInvalidAttributes(t *testing.T) {
	enc := newSmallEncoder()

	tests := []struct {
		name string
		edit func(*types.Card)
	}{
		{"empty name", func(c *types.Card) { c.Name = "  " }},
		{"level too low", func(c *types.Card) { c.Level = 0 }},
		{"level too high", func(c *types.Card) { c.Level = 6 }},
		{"unknown type", func(c *types.Card) { c.Type = "Wind" }},
		{"two types", func(c *types.Card) { c.Subtypes = []string{"Water"} }},
		{"stat out of range", func(c *types.Card) { c.Attack = "900" }},
		{"unknown style", func(c *types.Card) { c.Effect2Style = "loud" }},
		{"rarity", func(c *types.Card) { c.Rarity = "rare" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := blaze()
			tt.edit(&card)
			if _, err := enc.Base(card); !errors.Is(err, ErrInvalidAttribute) {
				t.Errorf("expected ErrInvalidAttribute, got %v", err)
			}
		})
	}

	card := blaze()
	card.Type = "Wind"
	if _, err := enc.Base(card); !errors.Is(err, combos.ErrUnknownCombination) {
		t.Errorf("expected ErrUnknownCombination, got %v", err)
	}
}

func TestEncoderInitialIsOneRune(t *testing.T) {
	enc := newSmallEncoder()

	tests := []struct {
		name string
		want string
	}{
		{"blaze", "B"},
		{"ßeast", "S"},
		{"éclair", "É"},
		{"ǆinn", "Ǆ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := blaze()
			card.Name = tt.name
			base, err := enc.Base(card)
			if err != nil {
				t.Fatalf("Base failed: %v", err)
			}
			runes := []rune(base)
			if string(runes[0]) != tt.want {
				t.Errorf("initial = %q, want %q", string(runes[0]), tt.want)
			}
			if len(runes) != enc.Length()-1 {
				t.Errorf("base %q has %d characters, want %d", base, len(runes), enc.Length()-1)
			}
		})
	}
}

func TestEncodeCreate(t *testing.T) {
	enc := newSmallEncoder()

	tests := []struct {
		name  string
		taken TakenSet
		want  string
	}{
		{"no history", nil, "B100zD00000"},
		{"first pads taken", NewTakenSet("B100zD00000", "B100zD00001"), "B100zD00002"},
	}
	for _, tt := range tests {
		got, err := enc.Encode(blaze(), tt.taken, ModeCreate)
		if err != nil {
			t.Fatalf("%s: Encode failed: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s: Encode() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestEncodeCreateExhausted(t *testing.T) {
	enc := newSmallEncoder()
	taken := NewTakenSet()
	for i := 0; i < enc.Alphabet().Size(); i++ {
		taken.Add("B100zD0000" + enc.Alphabet().Digit(i))
	}

	if _, err := enc.Encode(blaze(), taken, ModeCreate); !errors.Is(err, ErrSerialSpaceExhausted) {
		t.Errorf("expected ErrSerialSpaceExhausted, got %v", err)
	}
}

func TestEncodeOverwrite(t *testing.T) {
	enc := newSmallEncoder()
	const base = "B100zD0000"

	allTaken := NewTakenSet()
	for i := 0; i < enc.Alphabet().Size(); i++ {
		allTaken.Add(base + enc.Alphabet().Digit(i))
	}

	tests := []struct {
		name    string
		current string
		taken   TakenSet
		want    string
	}{
		{"nothing taken", "", NewTakenSet(), base + "0"},
		{"current kept", base + "0", NewTakenSet(base+"0", base+"1"), base + "0"},
		{"steps back from first free", "", NewTakenSet(base+"0", base+"1"), base + "1"},
		{"edited card", "X100zD00000", NewTakenSet(base + "0"), base + "0"},
		{"current not in history", base + "5", NewTakenSet(base+"0", base+"1", base+"2"), base + "2"},
		{"all taken", "", allTaken, base + "z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := blaze()
			card.Serial = tt.current
			got, err := enc.Encode(card, tt.taken, ModeOverwrite)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodeModesDiffer(t *testing.T) {
	enc := newSmallEncoder()
	taken := NewTakenSet("B100zD00000")

	created, err := enc.Encode(blaze(), taken, ModeCreate)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	overwritten, err := enc.Encode(blaze(), taken, ModeOverwrite)
	if err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	if created != "B100zD00001" || overwritten != "B100zD00000" {
		t.Errorf("create = %q, overwrite = %q; want B100zD00001, B100zD00000", created, overwritten)
	}
}

func TestEncodeDistinctRecordsGetDistinctSerials(t *testing.T) {
	enc := newSmallEncoder()
	edits := []func(*types.Card){
		func(c *types.Card) {},
		func(c *types.Card) { c.Name = "Cinder" },
		func(c *types.Card) { c.Level = 2 },
		func(c *types.Card) { c.Subtypes = nil },
		func(c *types.Card) { c.Type = "Water" },
		func(c *types.Card) { c.Attack = "250" },
		func(c *types.Card) { c.Defense = "250" },
		func(c *types.Card) { c.Effect1 = "Burn" },
		func(c *types.Card) { c.Effect1Style = "equip" },
		func(c *types.Card) { c.Effect2 = "Heal" },
		func(c *types.Card) { c.Effect2Style = "echo" },
		func(c *types.Card) { c.Rarity = "1" },
	}

	bases := make(map[string]int)
	for i, edit := range edits {
		card := blaze()
		edit(&card)
		base, err := enc.Base(card)
		if err != nil {
			t.Fatalf("edit %d: Base failed: %v", i, err)
		}
		if prev, dup := bases[base]; dup {
			t.Fatalf("edits %d and %d share base %s", prev, i, base)
		}
		bases[base] = i
	}

	// Same base: the history forces a different pad.
	taken := NewTakenSet()
	for _, defense := range []string{"500", "499", "498", "497", "496"} {
		card := blaze()
		card.Defense = defense
		s, err := enc.Encode(card, taken, ModeCreate)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		if taken.Has(s) {
			t.Fatalf("serial %s issued twice", s)
		}
		taken.Add(s)
	}
	if len(taken) != 5 {
		t.Errorf("issued %d serials, want 5", len(taken))
	}
}

func TestEncoderSharesCache(t *testing.T) {
	cache := combos.NewCache()
	enc := NewEncoder(smallCatalog(), cache, WithMaxSubsetSize(2))
	if _, err := enc.Encode(blaze(), nil, ModeCreate); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if cache.Len() != 1 {
		t.Errorf("cache holds %d indexes, want 1", cache.Len())
	}
	if n := cache.Index(enc.Request()).Len(); n != 4 {
		t.Errorf("small index has %d entries, want 4", n)
	}
}

func TestModeString(t *testing.T) {
	tests := map[Mode]string{
		ModeCreate:    "create",
		ModeOverwrite: "overwrite",
		Mode(7):       "mode(7)",
	}
	for mode, want := range tests {
		if got := mode.String(); got != want {
			t.Errorf("Mode(%d).String() = %q, want %q", int(mode), got, want)
		}
	}
}
