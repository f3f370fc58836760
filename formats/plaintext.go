package formats

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/ttcg/types"
)

// PlainText renders one block per card: the name as a heading line, then
// "key: value" lines for every non-empty field, blocks separated by "---".
var PlainText = &CardFormat{
	Name:      "plaintext",
	Extension: ".txt",
	Render: func(w io.Writer, cards []types.Card) error {
		var b strings.Builder
		for i, card := range cards {
			if i > 0 {
				b.WriteString("---\n")
			}
			b.WriteString(card.Name)
			b.WriteString("\n")
			for _, field := range cardFields(card) {
				if field.value == "" {
					continue
				}
				fmt.Fprintf(&b, "  %s: %s\n", field.key, field.value)
			}
		}
		_, err := io.WriteString(w, b.String())
		return err
	},
}

func init() {
	mustRegister(PlainText)
}
