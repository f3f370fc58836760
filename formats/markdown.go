package formats

import (
	"io"
	"strings"

	"github.com/arthur-debert/ttcg/types"
)

var markdownColumns = []string{"Name", "Type", "Subtypes", "Level", "ATK", "DEF", "Effect 1", "Effect 2", "Serial"}

// Markdown renders the cards as a table.
var Markdown = &CardFormat{
	Name:      "markdown",
	Extension: ".md",
	Render: func(w io.Writer, cards []types.Card) error {
		var b strings.Builder
		writeRow(&b, markdownColumns)
		sep := make([]string, len(markdownColumns))
		for i := range sep {
			sep[i] = "---"
		}
		writeRow(&b, sep)

		for _, card := range cards {
			writeRow(&b, []string{
				card.Name,
				card.Type,
				card.SubtypeString(),
				levelString(card.Level),
				card.Attack,
				card.Defense,
				withStyle(card.Effect1, card.Effect1Style),
				withStyle(card.Effect2, card.Effect2Style),
				code(card.Serial),
			})
		}
		_, err := io.WriteString(w, b.String())
		return err
	},
}

func init() {
	mustRegister(Markdown)
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, cell := range cells {
		b.WriteString(" ")
		b.WriteString(escapeCell(cell))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "|", `\|`), "\n", " ")
}

func withStyle(effect, style string) string {
	if effect == "" || style == "" {
		return effect
	}
	return "_" + style + "_ " + effect
}

func code(s string) string {
	if s == "" {
		return ""
	}
	return "`" + s + "`"
}
