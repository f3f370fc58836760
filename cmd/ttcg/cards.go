package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/ttcg/formats"
	"github.com/arthur-debert/ttcg/internal/matching"
	"github.com/arthur-debert/ttcg/store"
	"github.com/arthur-debert/ttcg/types"
)

func (cli *CLI) cardsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "List, add and roll stats for cards",
	}
	cmd.AddCommand(cli.cardsListCommand(), cli.cardsAddCommand(), cli.cardsStatsCommand())
	return cmd
}

func (cli *CLI) cardsListCommand() *cobra.Command {
	var (
		input   string
		format  string
		filters []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Render the card list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := formats.Get(format)
			if err != nil {
				return err
			}
			matcher, err := matching.NewCardMatcher(filters...)
			if err != nil {
				return err
			}
			cards, err := store.NewCardList(cli.inputOr(input, cli.app.Config.CardList)).Load()
			if err != nil {
				return err
			}
			return f.Render(cmd.OutOrStdout(), matcher.Select(cards))
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "card list CSV (default from config)")
	cmd.Flags().StringVar(&format, "format", "plaintext", fmt.Sprintf("output format (%s)", strings.Join(formats.List(), "|")))
	cmd.Flags().StringArrayVar(&filters, "filter", nil, fmt.Sprintf("field=value filter, repeatable (fields: %s)", strings.Join(matching.Fields(), ", ")))
	return cmd
}

func (cli *CLI) cardsAddCommand() *cobra.Command {
	var flags cardFlags

	cmd := &cobra.Command{
		Use:   "add --name NAME --type TYPE [card fields]",
		Short: "Create a card with a fresh serial and save it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			card, err := flags.build(cli.app.Catalog, cli.app.Config.MaxSubsetSize, newRand())
			if err != nil {
				return err
			}
			if card.Serial, err = cli.issue(card); err != nil {
				return err
			}
			if err := cli.save(card); err != nil {
				return err
			}
			cli.printf(cmd, "Added %s (%s) to %s\n", card.Name, card.Serial, cli.app.Cards.Path())
			return nil
		},
	}
	flags.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func (cli *CLI) cardsStatsCommand() *cobra.Command {
	var (
		level int
		spell bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Roll attack and defense for a card level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if level < types.MinLevel || level > types.MaxLevel {
				return fmt.Errorf("level must be between %d and %d", types.MinLevel, types.MaxLevel)
			}
			attack, defense := types.RandomStats(level, spell, newRand())
			cli.printf(cmd, "Attack:  %s\nDefense: %s\n", attack, defense)
			return nil
		},
	}
	cmd.Flags().IntVar(&level, "level", types.MinLevel, "card level (1-5)")
	cmd.Flags().BoolVar(&spell, "spell", false, "roll signed spell bonuses")
	return cmd
}
