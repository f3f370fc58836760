package types

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

const (
	MinLevel = 1
	MaxLevel = 5

	// UnitPointsPerLevel is the attack+defense budget per unit level.
	UnitPointsPerLevel = 500
	// SpellBonusPerLevel bounds a spell's signed stat bonus per level.
	SpellBonusPerLevel = 10

	unitStatStep  = 5
	spellStatStep = 10
)

// StatRange returns the inclusive valid range of a single attack or defense
// value at the given level.
func StatRange(level int, spell bool) (lo, hi int) {
	if spell {
		return -SpellBonusPerLevel * level, SpellBonusPerLevel * level
	}
	return 0, UnitPointsPerLevel * level
}

// ParseStat reads a stat cell. Empty cells count as zero and spell values
// may carry an explicit "+".
func ParseStat(cell string) (int, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(cell)
	if err != nil {
		return 0, fmt.Errorf("invalid stat %q: %w", cell, err)
	}
	return v, nil
}

// FormatStat renders a stat the way the card list stores it.
func FormatStat(v int, spell bool) string {
	if spell && v >= 0 {
		return "+" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}

// RandomStats rolls attack and defense for a card. Units split the level's
// point budget in steps of 5; spells roll two independent bonuses in steps
// of 10 within +/- 10*level.
func RandomStats(level int, spell bool, rng *rand.Rand) (attack, defense string) {
	if level < MinLevel || level > MaxLevel {
		level = MinLevel
	}

	if spell {
		a := (rng.IntN(2*level+1) - level) * spellStatStep
		d := (rng.IntN(2*level+1) - level) * spellStatStep
		return FormatStat(a, true), FormatStat(d, true)
	}

	total := UnitPointsPerLevel * level
	a := rng.IntN(total/unitStatStep+1) * unitStatStep
	return FormatStat(a, false), FormatStat(total-a, false)
}
