package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/ttcg/effects"
	"github.com/arthur-debert/ttcg/types"
)

func (cli *CLI) effectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "effects",
		Short: "Work with the tagged effects table",
	}
	cmd.AddCommand(cli.effectsRandomCommand(), cli.effectsSuggestCommand(), cli.effectsLintCommand())
	return cmd
}

func (cli *CLI) effectsRandomCommand() *cobra.Command {
	var (
		input   string
		columns []string
		include []string
		omit    []string
		pairs   int
	)

	cmd := &cobra.Command{
		Use:   "random -c COLUMN [-c COLUMN...]",
		Short: "Print random effect pairs from rows tagged with every column",
		Long: `Keep the effects whose named columns are all True, optionally narrowed by
--include and --omit terms (which may contain placeholders), and print random
pairs of them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := effects.LoadTable(cli.inputOr(input, cli.app.Config.EffectsCSV))
			if err != nil {
				return err
			}
			values, err := table.Filter(columns...)
			if err != nil {
				return err
			}

			picker := cli.app.Picker()
			if len(include) > 0 || len(omit) > 0 {
				if values, err = picker.Candidates(values, include, omit); err != nil {
					return err
				}
			}

			selected, err := picker.Pairs(values, pairs)
			if err != nil {
				return err
			}
			cli.printf(cmd, "Found %d matching effects. Here are %d random pairs:\n", len(values), len(selected))
			for i, p := range selected {
				cli.printf(cmd, "%d. %s - %s\n", i+1, p[0], p[1])
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&input, "input", "i", "", "effects CSV (default from config)")
	flags.StringArrayVarP(&columns, "column", "c", nil, "column that must be True (repeatable)")
	flags.StringSliceVar(&include, "include", nil, "keep effects containing any of these terms")
	flags.StringSliceVar(&omit, "omit", nil, "drop effects containing any of these terms")
	flags.IntVarP(&pairs, "pairs", "n", 10, "number of pairs")
	_ = cmd.MarkFlagRequired("column")
	return cmd
}

func (cli *CLI) effectsSuggestCommand() *cobra.Command {
	var (
		input    string
		cardType string
		subtypes []string
		level    int
		total    int
	)

	cmd := &cobra.Command{
		Use:   "suggest --type TYPE --level N [--subtype S...]",
		Short: "Suggest effects that fit a card",
		Long: `Pick effects tagged for the card's kind (UNIT or SPELL) and level,
preferring effects that mention one of its subtypes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := effects.LoadTable(cli.inputOr(input, cli.app.Config.EffectsCSV))
			if err != nil {
				return err
			}
			card := types.Card{Type: cardType, Subtypes: subtypes, Level: level}
			values, err := table.Filter(types.MetadataTags(card)...)
			if err != nil {
				return err
			}
			for _, effect := range cli.app.Picker().Suggest(values, subtypes, total) {
				cli.printf(cmd, "%s\n", effect)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&input, "input", "i", "", "effects CSV (default from config)")
	flags.StringVar(&cardType, "type", "", "card type")
	flags.StringSliceVar(&subtypes, "subtype", nil, "card subtypes")
	flags.IntVar(&level, "level", 1, "card level")
	flags.IntVarP(&total, "count", "n", effects.SuggestTotal, "number of effects")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func (cli *CLI) effectsLintCommand() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Report effects that can never be picked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := effects.LoadTable(cli.inputOr(input, cli.app.Config.EffectsCSV))
			if err != nil {
				return err
			}
			report, err := effects.Lint(table)
			if err != nil {
				return err
			}

			cli.printList(cmd, "Effects with every level set to False", report.NoLevel)
			cli.printList(cmd, "Effects with both UNIT and SPELL set to False", report.NoKind)
			cli.printf(cmd, "\nTotal unique malformed effects: %d\n", len(report.Unique()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "effects CSV (default from config)")
	return cmd
}

func (cli *CLI) printList(cmd *cobra.Command, title string, items []string) {
	if len(items) == 0 {
		cli.printf(cmd, "\nNo %s.\n", strings.ToLower(title[:1])+title[1:])
		return
	}
	cli.printf(cmd, "\n%s:\n", title)
	for _, item := range items {
		cli.printf(cmd, "- %s\n", item)
	}
}

// inputOr returns flag unless it is empty.
func (cli *CLI) inputOr(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}
