package formats

import (
	"strconv"

	"github.com/arthur-debert/ttcg/types"
)

type field struct {
	key, value string
}

func cardFields(card types.Card) []field {
	return []field{
		{"type", card.Type},
		{"subtypes", card.SubtypeString()},
		{"level", levelString(card.Level)},
		{"image", card.Image},
		{"attack", card.Attack},
		{"defense", card.Defense},
		{"effect1", card.Effect1},
		{"effect1_style", card.Effect1Style},
		{"effect2", card.Effect2},
		{"effect2_style", card.Effect2Style},
		{"serial", card.Serial},
		{"rarity", card.Rarity},
		{"transparency", card.Transparency},
	}
}

func levelString(level int) string {
	if level == 0 {
		return ""
	}
	return strconv.Itoa(level)
}
