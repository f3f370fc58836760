package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/arthur-debert/ttcg/combos"
	"github.com/arthur-debert/ttcg/effects"
	"github.com/arthur-debert/ttcg/placeholder"
	"github.com/arthur-debert/ttcg/serial"
	"github.com/arthur-debert/ttcg/store"
	"github.com/arthur-debert/ttcg/types"
)

// App is the session object of one invocation. It owns the combination
// cache shared by the encoder and the combos command.
type App struct {
	Config   Config
	Catalog  types.Catalog
	Cache    *combos.Cache
	Expander *placeholder.Expander
	Encoder  *serial.Encoder
	Cards    *store.CardList
	History  *store.History

	logger *zap.Logger
	warmed func() error
}

// NewApp wires the session and starts warming the serial combination
// index in the background.
func NewApp(ctx context.Context, cfg Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	catalog := types.DefaultCatalog()
	if cfg.Catalog != "" {
		var err error
		if catalog, err = types.LoadCatalog(cfg.Catalog); err != nil {
			return nil, err
		}
	}

	cache := combos.NewCache(combos.WithCacheLogger(logger.Named("combos")))
	app := &App{
		Config:   cfg,
		Catalog:  catalog,
		Cache:    cache,
		Expander: placeholder.New(cfg.Placeholders, placeholder.WithLogger(logger.Named("placeholder"))),
		Encoder: serial.NewEncoder(catalog, cache,
			serial.WithMaxSubsetSize(cfg.MaxSubsetSize),
			serial.WithLogger(logger.Named("serial"))),
		Cards:   store.NewCardList(cfg.CardList, store.WithLogger(logger.Named("cards"))),
		History: store.NewHistory(cfg.History, store.WithLogger(logger.Named("history"))),
		logger:  logger,
	}
	app.warmed = cache.Warm(ctx, app.Encoder.Request())
	return app, nil
}

// Cleaner returns the expansion clean-up pipeline. Configured phrase files
// that do not exist fall back to the built-in lists.
func (a *App) Cleaner() (*effects.Cleaner, error) {
	return effects.LoadCleaner(existing(a.Config.RemovePhrases), existing(a.Config.ReplacePhrases))
}

// Picker returns an effect picker expanding terms from the placeholder
// directory.
func (a *App) Picker() *effects.Picker {
	return effects.NewPicker(a.Expander, effects.WithPickerLogger(a.logger.Named("effects")))
}

// Close joins the background warmer. A cancelled warm is not an error.
func (a *App) Close() error {
	if a.warmed == nil {
		return nil
	}
	err := a.warmed()
	a.warmed = nil
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to warm combination cache: %w", err)
	}
	return nil
}

func existing(path string) string {
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return ""
	}
	return path
}
