package types

import "strings"

// Card is one row of the card list: the attribute record the serial encoder
// consumes and the card builder produces.
type Card struct {
	Name         string
	Type         string   // Primary category, e.g. "Fire"
	Subtypes     []string // Secondary labels, e.g. ["Dragon", "Warrior"]
	Level        int      // 1-5
	Image        string   // Path to the artwork, relative to the card list
	Attack       string   // Unit stats are plain numbers, spell stats are sign-prefixed
	Defense      string
	Effect1      string
	Effect2      string
	Serial       string
	Rarity       string
	Transparency string
	Effect1Style string
	Effect2Style string
}

// IsSpell reports whether the card's primary category is the spell type.
func (c Card) IsSpell() bool {
	return strings.EqualFold(strings.TrimSpace(c.Type), SpellType)
}

// Labels returns the type followed by the subtypes, the label set whose
// combination index is encoded in the serial number.
func (c Card) Labels() []string {
	labels := make([]string, 0, len(c.Subtypes)+1)
	labels = append(labels, c.Type)
	labels = append(labels, c.Subtypes...)
	return labels
}

// SubtypeString joins subtypes the way the card list stores them.
func (c Card) SubtypeString() string {
	return strings.Join(c.Subtypes, ", ")
}

// ParseSubtypes splits a comma separated subtype cell, dropping blanks.
func ParseSubtypes(cell string) []string {
	var subtypes []string
	for _, part := range strings.Split(cell, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			subtypes = append(subtypes, part)
		}
	}
	return subtypes
}

// CardListHeader is the column order of the semicolon delimited card list.
var CardListHeader = []string{
	"NAME", "TYPE", "SUBTYPES", "LEVEL", "IMAGE", "ATTACK", "DEFENSE",
	"EFFECT1", "EFFECT2", "SERIAL", "RARITY", "TRANSPARENCY",
	"EFFECT1_STYLE", "EFFECT2_STYLE",
}

// MetadataTags returns the effects-table tags describing the card context:
// SPELL or UNIT, plus LEVEL_n. Levels outside 1-5 fall back to LEVEL_1.
func MetadataTags(card Card) []string {
	tags := make([]string, 0, 2)
	if card.IsSpell() {
		tags = append(tags, "SPELL")
	} else {
		tags = append(tags, "UNIT")
	}

	level := card.Level
	if level < MinLevel || level > MaxLevel {
		level = MinLevel
	}
	tags = append(tags, "LEVEL_"+string(rune('0'+level)))
	return tags
}
