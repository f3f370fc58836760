package formats

import (
	"io"

	"github.com/arthur-debert/ttcg/store"
	"github.com/arthur-debert/ttcg/types"
)

// CSV renders the cards in the card list file format.
var CSV = &CardFormat{
	Name:      "csv",
	Extension: ".csv",
	Render: func(w io.Writer, cards []types.Card) error {
		return store.WriteCards(w, cards)
	},
}

func init() {
	mustRegister(CSV)
}
