package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arthur-debert/ttcg/serial"
	"github.com/arthur-debert/ttcg/store"
)

func (cli *CLI) serialCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serial",
		Short: "Encode, regenerate and decode card serial numbers",
	}
	cmd.AddCommand(cli.serialNewCommand(), cli.serialRegenCommand(), cli.serialExplainCommand())
	return cmd
}

func (cli *CLI) serialNewCommand() *cobra.Command {
	var (
		flags cardFlags
		save  bool
	)

	cmd := &cobra.Command{
		Use:   "new --name NAME --type TYPE [card fields]",
		Short: "Encode a serial number for a new card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			card, err := flags.build(cli.app.Catalog, cli.app.Config.MaxSubsetSize, newRand())
			if err != nil {
				return err
			}
			if card.Serial, err = cli.issue(card); err != nil {
				return err
			}
			if save {
				if err := cli.save(card); err != nil {
					return err
				}
			}
			cli.printf(cmd, "%s\n", card.Serial)
			return nil
		},
	}
	flags.register(cmd.Flags())
	cmd.Flags().BoolVar(&save, "save", false, "record the serial and append the card to the card list")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func (cli *CLI) serialRegenCommand() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "regen",
		Short: "Re-encode every serial of a card list",
		Long: `Re-encode every card in overwrite mode against the serial history and write
the result next to the input as <name>_updated.csv. Cards whose serial still
matches their attributes keep it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input = cli.inputOr(input, cli.app.Config.CardList)
			cards, err := store.NewCardList(input).Load()
			if err != nil {
				return err
			}
			taken, err := cli.app.History.Load()
			if err != nil {
				return err
			}

			changed := 0
			for i, card := range cards {
				s, err := cli.app.Encoder.Encode(card, taken, serial.ModeOverwrite)
				if err != nil {
					return fmt.Errorf("card %q: %w", card.Name, err)
				}
				if s != card.Serial {
					cli.logger.Debug("serial changed", zap.String("card", card.Name), zap.String("old", card.Serial), zap.String("new", s))
					changed++
				}
				cards[i].Serial = s
			}

			output := store.UpdatedPath(input)
			if err := store.NewCardList(output, store.WithLogger(cli.logger.Named("cards"))).Rewrite(cards); err != nil {
				return err
			}
			cli.printf(cmd, "Serial numbers regenerated (%d of %d changed) and saved to %s\n", changed, len(cards), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "card list CSV (default from config)")
	return cmd
}

func (cli *CLI) serialExplainCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explain SERIAL",
		Short: "Decode a serial number into its fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := cli.app.Encoder.Explain(args[0])
			if err != nil {
				return err
			}

			kind := "unit"
			if b.Spell {
				kind = "spell"
			}
			cli.printf(cmd, "Serial:      %s\n", b.Serial)
			cli.printf(cmd, "Initial:     %s\n", b.Initial)
			cli.printf(cmd, "Level:       %d\n", b.Level)
			cli.printf(cmd, "Labels:      %s (#%d, %s)\n", strings.Join(b.Combination, ", "), b.CombinationIndex, kind)
			cli.printf(cmd, "Attack:      %d..%d (bucket %d)\n", b.AttackRange[0], b.AttackRange[1], b.AttackBucket)
			cli.printf(cmd, "Defense:     %d..%d (bucket %d)\n", b.DefenseRange[0], b.DefenseRange[1], b.DefenseBucket)
			cli.printf(cmd, "Effect 1:    %s %s\n", b.Effect1Initial, styleLabel(b.Effect1Style))
			cli.printf(cmd, "Effect 2:    %s %s\n", b.Effect2Initial, styleLabel(b.Effect2Style))
			cli.printf(cmd, "Rarity:      %d\n", b.Rarity)
			cli.printf(cmd, "Pad:         %d\n", b.Pad)
			return nil
		},
	}
}

func styleLabel(style string) string {
	if style == "" {
		return "(no style)"
	}
	return "(" + style + ")"
}
