package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/arthur-debert/ttcg/serial"
)

// Configuration keys. Each is settable from ttcg.yaml, TTCG_<KEY> or, for
// the global ones, a flag.
const (
	keyPlaceholders   = "placeholders"
	keyCardList       = "card_list"
	keyHistory        = "history"
	keyEffectsCSV     = "effects_csv"
	keyTemplates      = "templates"
	keyEffectsOut     = "effects_out"
	keyCatalog        = "catalog"
	keyMaxSubsetSize  = "max_subset_size"
	keyRemovePhrases  = "remove_phrases"
	keyReplacePhrases = "replace_phrases"
	keyVerbose        = "verbose"
)

const defaultTemplates = "effects/all_effect_templates.txt"

var configDefaults = map[string]interface{}{
	keyPlaceholders:   "placeholders",
	keyCardList:       "card_list/card_list.csv",
	keyHistory:        "card_list/serial_numbers.txt",
	keyEffectsCSV:     "effects/effects_with_placeholders.csv",
	keyTemplates:      defaultTemplates,
	keyEffectsOut:     "effects/all_effects.txt",
	keyCatalog:        "",
	keyMaxSubsetSize:  serial.DefaultMaxSubsetSize,
	keyRemovePhrases:  "placeholders/combinations_to_remove.txt",
	keyReplacePhrases: "placeholders/phrase_replacements.txt",
	keyVerbose:        false,
}

// Config is the resolved configuration of one invocation.
type Config struct {
	Placeholders   string
	CardList       string
	History        string
	EffectsCSV     string
	Templates      string
	EffectsOut     string
	Catalog        string // empty for the built-in catalog
	MaxSubsetSize  int
	RemovePhrases  string
	ReplacePhrases string
	Verbose        bool
}

// newViper creates a viper instance with defaults and environment support.
func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range configDefaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix("TTCG")
	// --card-list -> TTCG_CARD_LIST
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// readConfigFile loads the config file. An explicit path (flag or
// TTCG_CONFIG) must exist; the default locations are optional.
func readConfigFile(v *viper.Viper, explicit string) error {
	if explicit == "" {
		explicit = os.Getenv("TTCG_CONFIG")
	}

	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName("ttcg")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.ttcg")
		v.AddConfigPath("/etc/ttcg")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configFromViper snapshots the resolved settings.
func configFromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Placeholders:   v.GetString(keyPlaceholders),
		CardList:       v.GetString(keyCardList),
		History:        v.GetString(keyHistory),
		EffectsCSV:     v.GetString(keyEffectsCSV),
		Templates:      v.GetString(keyTemplates),
		EffectsOut:     v.GetString(keyEffectsOut),
		Catalog:        v.GetString(keyCatalog),
		MaxSubsetSize:  v.GetInt(keyMaxSubsetSize),
		RemovePhrases:  v.GetString(keyRemovePhrases),
		ReplacePhrases: v.GetString(keyReplacePhrases),
		Verbose:        v.GetBool(keyVerbose),
	}
	if cfg.MaxSubsetSize < 1 {
		return Config{}, fmt.Errorf("%s must be at least 1, got %d", keyMaxSubsetSize, cfg.MaxSubsetSize)
	}
	return cfg, nil
}
