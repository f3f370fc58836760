package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

func (cli *CLI) sortCommand() *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "sort -i INPUT -o OUTPUT",
		Short: "Alphabetize the lines of a file",
		Long:  "Write the non-blank lines of INPUT to OUTPUT in alphabetical order. INPUT and OUTPUT may be the same file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" || output == "" {
				return errors.New("both --input and --output are required")
			}
			data, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", input, err)
			}

			lines := sortedLines(string(data))
			content := ""
			if len(lines) > 0 {
				content = strings.Join(lines, "\n") + "\n"
			}
			if err := os.WriteFile(output, []byte(content), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			cli.printf(cmd, "Sorted %d lines into %s\n", len(lines), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "file to sort")
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write")
	return cmd
}

// sortedLines returns the trimmed non-blank lines of text, sorted.
func sortedLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	sort.Strings(lines)
	return lines
}
