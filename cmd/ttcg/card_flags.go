package main

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/arthur-debert/ttcg/internal/validation"
	"github.com/arthur-debert/ttcg/serial"
	"github.com/arthur-debert/ttcg/types"
)

// cardFlags collects a card from the command line.
type cardFlags struct {
	card     types.Card
	subtypes []string
}

func (f *cardFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.card.Name, "name", "", "card name")
	flags.StringVar(&f.card.Type, "type", "", "card type, e.g. Fire or Spell")
	flags.StringSliceVar(&f.subtypes, "subtype", nil, "card subtypes (repeatable or comma separated)")
	flags.IntVar(&f.card.Level, "level", types.MinLevel, "card level (1-5)")
	flags.StringVar(&f.card.Attack, "attack", "", "attack (random with defense when both are empty)")
	flags.StringVar(&f.card.Defense, "defense", "", "defense")
	flags.StringVar(&f.card.Effect1, "effect1", "", "first effect")
	flags.StringVar(&f.card.Effect2, "effect2", "", "second effect")
	flags.StringVar(&f.card.Effect1Style, "effect1-style", "", "first effect style")
	flags.StringVar(&f.card.Effect2Style, "effect2-style", "", "second effect style")
	flags.StringVar(&f.card.Rarity, "rarity", "", "rarity digit")
	flags.StringVar(&f.card.Image, "image", "", "artwork path")
	flags.StringVar(&f.card.Transparency, "transparency", "", "artwork transparency")
}

// build returns the normalized, validated card, rolling stats when none
// were given.
func (f *cardFlags) build(catalog types.Catalog, maxSubsetSize int, rng *rand.Rand) (types.Card, error) {
	card := f.card
	card.Subtypes = f.subtypes
	card = validation.Normalize(card, catalog)
	if card.Attack == "" && card.Defense == "" {
		card.Attack, card.Defense = types.RandomStats(card.Level, card.IsSpell(), rng)
	}
	if err := validation.Validate(card, catalog, maxSubsetSize); err != nil {
		return types.Card{}, err
	}
	return card, nil
}

// issue encodes a new serial for card, avoiding every serial in the history
// and the card list.
func (cli *CLI) issue(card types.Card) (string, error) {
	recorded, err := cli.app.History.Load()
	if err != nil {
		return "", err
	}
	taken := serial.NewTakenSet()
	for s := range recorded {
		taken.Add(s)
	}

	cards, err := cli.app.Cards.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}
	for _, c := range cards {
		if c.Serial != "" {
			taken.Add(c.Serial)
		}
	}

	return cli.app.Encoder.Encode(card, taken, serial.ModeCreate)
}

// save records the serial and appends the card to the card list. Cards the
// list would reject leave the history untouched.
func (cli *CLI) save(card types.Card) error {
	for _, path := range []string{cli.app.History.Path(), cli.app.Cards.Path()} {
		if err := ensureDir(path); err != nil {
			return err
		}
	}
	if err := cli.app.Cards.Check(card); err != nil {
		return err
	}
	if err := cli.app.History.Append(card.Serial); err != nil {
		return err
	}
	return cli.app.Cards.Append(card)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return nil
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
