package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/arthur-debert/ttcg/types"
)

// ErrInvalidCard is wrapped by every validation failure.
var ErrInvalidCard = errors.New("invalid card")

// Normalize trims every field and rewrites labels and styles to their
// catalog spelling. Spell cards lose their subtypes and repeated subtypes
// are dropped. Unknown labels are kept as typed so Validate can report them.
func Normalize(card types.Card, catalog types.Catalog) types.Card {
	card.Name = strings.TrimSpace(card.Name)
	card.Type = strings.TrimSpace(card.Type)
	if canonical, ok := catalog.CanonicalType(card.Type); ok {
		card.Type = canonical
	}

	if card.IsSpell() {
		card.Subtypes = nil
	} else {
		var subtypes []string
		seen := make(map[string]bool)
		for _, s := range card.Subtypes {
			s = strings.TrimSpace(s)
			if canonical, ok := catalog.CanonicalSubtype(s); ok {
				s = canonical
			}
			if s == "" || seen[strings.ToLower(s)] {
				continue
			}
			seen[strings.ToLower(s)] = true
			subtypes = append(subtypes, s)
		}
		card.Subtypes = subtypes
	}

	card.Image = strings.TrimSpace(card.Image)
	card.Attack = strings.TrimSpace(card.Attack)
	card.Defense = strings.TrimSpace(card.Defense)
	card.Effect1 = strings.TrimSpace(card.Effect1)
	card.Effect2 = strings.TrimSpace(card.Effect2)
	card.Serial = strings.TrimSpace(card.Serial)
	card.Rarity = strings.TrimSpace(card.Rarity)
	card.Transparency = strings.TrimSpace(card.Transparency)
	card.Effect1Style = canonicalStyle(catalog, card.Effect1Style)
	card.Effect2Style = canonicalStyle(catalog, card.Effect2Style)
	return card
}

// Validate checks a card against the catalog. maxSubsetSize bounds the
// type plus subtypes, as in the serial combination code.
func Validate(card types.Card, catalog types.Catalog, maxSubsetSize int) error {
	if problems := Problems(card, catalog, maxSubsetSize); len(problems) > 0 {
		return fmt.Errorf("%w %q: %s", ErrInvalidCard, card.Name, strings.Join(problems, "; "))
	}
	return nil
}

// Problems lists every reason the card is invalid.
func Problems(card types.Card, catalog types.Catalog, maxSubsetSize int) []string {
	var problems []string
	add := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(card.Name) == "" {
		add("name cannot be empty")
	}

	if _, ok := catalog.CanonicalType(card.Type); !ok {
		add("unknown type %q", card.Type)
	}
	if card.IsSpell() && len(card.Subtypes) > 0 {
		add("spells cannot have subtypes")
	}
	seen := make(map[string]bool)
	for _, s := range card.Subtypes {
		key := strings.ToLower(strings.TrimSpace(s))
		if _, ok := catalog.CanonicalSubtype(s); !ok {
			add("unknown subtype %q", s)
		} else if seen[key] {
			add("subtype %q repeated", s)
		}
		seen[key] = true
	}
	if maxSubsetSize > 0 && 1+len(card.Subtypes) > maxSubsetSize {
		add("at most %d subtypes allowed", maxSubsetSize-1)
	}

	levelOK := card.Level >= types.MinLevel && card.Level <= types.MaxLevel
	if !levelOK {
		add("level %d outside %d-%d", card.Level, types.MinLevel, types.MaxLevel)
	}

	for _, stat := range []struct{ name, cell string }{{"attack", card.Attack}, {"defense", card.Defense}} {
		v, err := types.ParseStat(stat.cell)
		if err != nil {
			add("%s %q is not a number", stat.name, stat.cell)
			continue
		}
		if !levelOK {
			continue
		}
		if lo, hi := types.StatRange(card.Level, card.IsSpell()); v < lo || v > hi {
			add("%s %d outside %d..%d for level %d", stat.name, v, lo, hi, card.Level)
		}
	}

	if e1 := strings.TrimSpace(card.Effect1); e1 != "" && strings.EqualFold(e1, strings.TrimSpace(card.Effect2)) {
		add("both effects are %q", e1)
	}
	for i, style := range []string{card.Effect1Style, card.Effect2Style} {
		if _, ok := catalog.StyleIndex(style); !ok {
			add("effect%d style %q is not in the catalog", i+1, style)
		}
	}

	if r := strings.TrimSpace(card.Rarity); r != "" {
		if _, err := strconv.Atoi(r); err != nil {
			add("rarity %q is not a number", r)
		}
	}
	return problems
}

func canonicalStyle(catalog types.Catalog, style string) string {
	style = strings.TrimSpace(style)
	if i, ok := catalog.StyleIndex(style); ok {
		return catalog.EffectStyles[i]
	}
	return style
}
