package serial

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/ttcg/types"
)

// Breakdown is a serial split back into its fields.
type Breakdown struct {
	Serial           string
	Initial          string
	Level            int
	CombinationIndex int
	Combination      []string
	Spell            bool
	AttackBucket     int
	AttackRange      [2]int
	DefenseBucket    int
	DefenseRange     [2]int
	Effect1Initial   string
	Effect1Style     string
	Effect2Initial   string
	Effect2Style     string
	Rarity           int
	Pad              int
}

// Explain decodes a serial produced by this encoder's catalog and
// alphabet. Bucketed stats decode to the range of values they cover.
func (e *Encoder) Explain(serial string) (Breakdown, error) {
	runes := []rune(strings.TrimSpace(serial))
	if len(runes) != e.Length() {
		return Breakdown{}, fmt.Errorf("serial %q has %d characters, want %d", serial, len(runes), e.Length())
	}

	width := e.CodeWidth()
	br := Breakdown{Serial: string(runes), Initial: string(runes[0])}
	digit := func(pos int, field string) (int, error) {
		d, ok := e.alphabet.Index(runes[pos])
		if !ok {
			return 0, fmt.Errorf("%s: %w: %q", field, ErrInvalidDigit, runes[pos])
		}
		return d, nil
	}

	var err error
	if br.Level, err = digit(1, "level"); err != nil {
		return Breakdown{}, err
	}
	if br.Level < types.MinLevel || br.Level > types.MaxLevel {
		return Breakdown{}, fmt.Errorf("level %d outside [%d, %d]", br.Level, types.MinLevel, types.MaxLevel)
	}

	ix := e.Index()
	if br.CombinationIndex, err = e.alphabet.Decode(string(runes[2 : 2+width])); err != nil {
		return Breakdown{}, fmt.Errorf("combination: %w", err)
	}
	if br.CombinationIndex >= ix.Len() {
		return Breakdown{}, fmt.Errorf("combination %d outside enumeration of %d", br.CombinationIndex, ix.Len())
	}
	br.Combination = ix.At(br.CombinationIndex)
	for _, label := range br.Combination {
		if strings.EqualFold(label, types.SpellType) {
			br.Spell = true
		}
	}

	rest := 2 + width
	if br.AttackBucket, err = digit(rest, "attack"); err != nil {
		return Breakdown{}, err
	}
	if br.DefenseBucket, err = digit(rest+1, "defense"); err != nil {
		return Breakdown{}, err
	}
	n := e.alphabet.Size()
	br.AttackRange[0], br.AttackRange[1] = StatBucketRange(br.AttackBucket, br.Level, br.Spell, n)
	br.DefenseRange[0], br.DefenseRange[1] = StatBucketRange(br.DefenseBucket, br.Level, br.Spell, n)

	br.Effect1Initial = string(runes[rest+2])
	if br.Effect1Style, err = e.styleAt(runes[rest+3]); err != nil {
		return Breakdown{}, fmt.Errorf("effect1 style: %w", err)
	}
	br.Effect2Initial = string(runes[rest+4])
	if br.Effect2Style, err = e.styleAt(runes[rest+5]); err != nil {
		return Breakdown{}, fmt.Errorf("effect2 style: %w", err)
	}

	if br.Rarity, err = digit(rest+6, "rarity"); err != nil {
		return Breakdown{}, err
	}
	if br.Pad, err = digit(rest+7, "pad"); err != nil {
		return Breakdown{}, err
	}
	return br, nil
}

func (e *Encoder) styleAt(r rune) (string, error) {
	i, ok := e.alphabet.Index(r)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidDigit, r)
	}
	if i >= len(e.catalog.EffectStyles) {
		return "", fmt.Errorf("style %d outside catalog of %d", i, len(e.catalog.EffectStyles))
	}
	return e.catalog.EffectStyles[i], nil
}
