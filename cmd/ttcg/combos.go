package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/ttcg/combos"
)

func (cli *CLI) combosCommand() *cobra.Command {
	var (
		maxSize       int
		index         string
		list          bool
		unconstrained bool
	)

	cmd := &cobra.Command{
		Use:   "combos",
		Short: "Show the label combinations encoded in serial numbers",
		Long: `Enumerate every combination of catalog labels with at most one type, in
serial order, and report its size and fingerprint. The fingerprint changes
whenever the catalog or the maximum size changes, which invalidates every
serial issued before.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := cli.app.Encoder.Request()
			if cmd.Flags().Changed("max") {
				req.MaxSize = maxSize
			}
			if unconstrained {
				req.Primary = nil
			}

			ix := cli.app.Cache.Index(req)
			alphabet := cli.app.Encoder.Alphabet()
			width := 1
			if ix.Len() > 0 {
				width = alphabet.Width(ix.Len() - 1)
			}

			cli.printf(cmd, "Combinations: %d\n", ix.Len())
			cli.printf(cmd, "Code width: %d\n", width)
			cli.printf(cmd, "Fingerprint: %s (algorithm v%d)\n", ix.Fingerprint(), combos.AlgorithmVersion)

			if index != "" {
				pos, err := ix.PositionOf(index)
				if err != nil {
					return err
				}
				cli.printf(cmd, "Index of %s: %d (code %s)\n", strings.Join(ix.At(pos), ", "), pos, alphabet.EncodeWidth(pos, width))
			}
			if list {
				for i, subset := range ix.Subsets() {
					cli.printf(cmd, "%s\t%d\t%s\n", alphabet.EncodeWidth(i, width), i, strings.Join(subset, ", "))
				}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&maxSize, "max", 0, "largest combination size (default from config)")
	flags.StringVar(&index, "index", "", "look up a combination, e.g. \"fire, dragon\"")
	flags.BoolVar(&list, "list", false, "print every combination with its code")
	flags.BoolVar(&unconstrained, "unconstrained", false, "allow any number of types per combination")
	return cmd
}
