package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arthur-debert/ttcg/placeholder"
	"github.com/arthur-debert/ttcg/store"
)

type expandOptions struct {
	sentence string
	file     string
	output   string
	test     bool
	watch    bool
}

func (cli *CLI) expandCommand() *cobra.Command {
	var opts expandOptions

	cmd := &cobra.Command{
		Use:   "expand (-s SENTENCE | -f[=FILE])",
		Short: "Expand placeholder templates into effect sentences",
		Long: `Substitute every <placeholder> with each value from placeholders/<name>.txt
and write the cleaned, sorted combinations to the effects list.

Tokens may carry an offset: <amount+1> adds 1 to every integer value of
amount and leaves other values unchanged. Each distinct token is an
independent column of the product, so <amount> and <amount+1> do not move
together. Unresolvable and cyclic placeholders are left as <name> in the
output.

With --watch, phrase lists are re-read on every run and only combinations
not yet written by this session are appended.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.runExpand(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.sentence, "sentence", "s", "", "sentence with placeholders")
	flags.StringVarP(&opts.file, "file", "f", "", "file of template sentences, one per line")
	flags.Lookup("file").NoOptDefVal = defaultTemplates
	flags.StringVarP(&opts.output, "output", "o", "", "file to append the effects to (default from config)")
	flags.BoolVarP(&opts.test, "test", "t", false, "print the combinations without writing them")
	flags.BoolVarP(&opts.watch, "watch", "w", false, "re-run when placeholder or template files change")
	return cmd
}

func (cli *CLI) runExpand(cmd *cobra.Command, opts expandOptions) error {
	if (opts.sentence == "") == (opts.file == "") {
		return errors.New("exactly one of --sentence or --file is required")
	}
	if opts.file == defaultTemplates {
		opts.file = cli.app.Config.Templates
	}
	if opts.output == "" {
		opts.output = cli.app.Config.EffectsOut
	}

	session := &expandSession{
		app:     cli.app,
		opts:    opts,
		out:     cmd.OutOrStdout(),
		logger:  cli.logger,
		written: make(map[string]bool),
	}
	if err := session.run(); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}

	paths := []string{cli.app.Config.Placeholders}
	if opts.file != "" {
		paths = append(paths, opts.file)
	}
	watcher, err := placeholder.NewWatcher(paths, placeholder.DefaultDebounce, cli.logger.Named("watch"))
	if err != nil {
		return err
	}
	cli.printf(cmd, "Watching %s for changes (Ctrl+C to stop)\n", strings.Join(paths, ", "))
	return watcher.Run(cmd.Context(), session.run)
}

// expandSession runs one expansion per call and remembers what it has
// appended, so re-runs only add new combinations.
type expandSession struct {
	app     *App
	opts    expandOptions
	out     io.Writer
	logger  *zap.Logger
	written map[string]bool
}

func (s *expandSession) run() error {
	sentences := []string{s.opts.sentence}
	if s.opts.file != "" {
		var err error
		if sentences, err = readSentences(s.opts.file); err != nil {
			return err
		}
	}

	cleaner, err := s.app.Cleaner()
	if err != nil {
		return err
	}
	combinations := cleaner.Clean(s.app.Expander.ExpandAll(sentences))

	var fresh []string
	for _, c := range combinations {
		if !s.written[c] {
			fresh = append(fresh, c)
		}
	}
	if !s.opts.test {
		if err := appendLines(s.opts.output, fresh); err != nil {
			return err
		}
		for _, c := range fresh {
			s.written[c] = true
		}
	}

	for _, c := range combinations {
		_, _ = fmt.Fprintf(s.out, "%s\n", c)
	}
	_, _ = fmt.Fprintf(s.out, "Total combinations: %d\n", len(combinations))
	s.logger.Info("expanded templates",
		zap.Int("sentences", len(sentences)),
		zap.Int("combinations", len(combinations)),
		zap.Int("appended", len(fresh)),
		zap.Bool("test", s.opts.test))
	return nil
}

// readSentences returns the trimmed non-empty lines of a template file.
func readSentences(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open templates: %w", err)
	}
	defer f.Close()

	var sentences []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			sentences = append(sentences, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read templates: %w", err)
	}
	return sentences, nil
}

// appendLines appends one line per entry to path, creating it if needed.
func appendLines(path string, lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	data := strings.Join(lines, "\n") + "\n"
	if err := (store.OSFileSystem{}).AppendFile(path, []byte(data), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
