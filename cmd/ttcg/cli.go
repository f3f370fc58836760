package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// CLI is the ttcg command tree with its configuration and session state.
type CLI struct {
	rootCmd    *cobra.Command
	viperInst  *viper.Viper
	configFile string

	logger *zap.Logger
	app    *App
}

// NewCLI builds the command tree.
func NewCLI() *CLI {
	cli := &CLI{
		viperInst: newViper(),
		logger:    zap.NewNop(),
	}
	cli.createRootCommand()
	cli.addCommands()
	return cli
}

// ExecuteContext runs the command named by the process arguments.
func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides the process arguments, for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

// SetOutput redirects command output and errors.
func (cli *CLI) SetOutput(out, errOut io.Writer) {
	cli.rootCmd.SetOut(out)
	cli.rootCmd.SetErr(errOut)
}

func (cli *CLI) createRootCommand() {
	cli.rootCmd = &cobra.Command{
		Use:   "ttcg",
		Short: "ttcg - trading card game content toolchain",
		Long: `ttcg expands effect templates, picks effects, and encodes card serial numbers.

Configuration Sources (in order of precedence):
1. Command line flags
2. Environment variables (TTCG_*)
3. Configuration file (--config, TTCG_CONFIG, or ttcg.yaml in ., ~/.ttcg, /etc/ttcg)
4. Built-in defaults

Examples:
  # Expand every template into the effects list
  ttcg expand -f

  # Preview one sentence without writing anything
  ttcg expand -s "Deal <amount> damage" --test

  # Encode a serial for a new card and record it
  ttcg serial new --name Blaze --type Fire --subtype Beast --level 1 --save`,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := readConfigFile(cli.viperInst, cli.configFile); err != nil {
				return err
			}
			cfg, err := configFromViper(cli.viperInst)
			if err != nil {
				return err
			}

			if cli.logger, err = initLogging(cfg.Verbose); err != nil {
				return err
			}
			cli.logger.Debug("running command",
				zap.String("command", cmd.CommandPath()),
				zap.String("config_file", cli.viperInst.ConfigFileUsed()))

			cli.app, err = NewApp(cmd.Context(), cfg, cli.logger)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			defer func() { _ = cli.logger.Sync() }()
			if cli.app != nil {
				return cli.app.Close()
			}
			return nil
		},
	}

	flags := cli.rootCmd.PersistentFlags()
	flags.StringVar(&cli.configFile, "config", "", "config file (default ttcg.yaml)")
	flags.BoolP("verbose", "v", false, "debug logging to stderr")
	flags.StringP("placeholders", "p", "", "placeholder directory")
	flags.String("card-list", "", "card list CSV")
	flags.String("history", "", "serial number history file")
	flags.String("catalog", "", "catalog YAML (default built-in)")
	flags.Int("max-subset-size", 0, "largest label combination encoded in serials")

	for key, flag := range map[string]string{
		keyVerbose:       "verbose",
		keyPlaceholders:  "placeholders",
		keyCardList:      "card-list",
		keyHistory:       "history",
		keyCatalog:       "catalog",
		keyMaxSubsetSize: "max-subset-size",
	} {
		_ = cli.viperInst.BindPFlag(key, flags.Lookup(flag))
	}
}

func (cli *CLI) addCommands() {
	cli.rootCmd.AddCommand(
		cli.expandCommand(),
		cli.effectsCommand(),
		cli.combosCommand(),
		cli.serialCommand(),
		cli.cardsCommand(),
		cli.sortCommand(),
	)
}

func (cli *CLI) printf(cmd *cobra.Command, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
