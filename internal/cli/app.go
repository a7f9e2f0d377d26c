package cli

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/Makepad-fr/shortlist/internal/config"
	"github.com/Makepad-fr/shortlist/internal/kv"
	"github.com/Makepad-fr/shortlist/internal/kv/jsonstore"
	"github.com/Makepad-fr/shortlist/internal/kv/sqlitestore"
	"github.com/Makepad-fr/shortlist/internal/prefs"
	"github.com/Makepad-fr/shortlist/internal/store"
	"github.com/Makepad-fr/shortlist/internal/ui"
)

// Options are the root flags (apply to every subcommand).
type Options struct {
	ConfigPath string
	DataPath   string
	Driver     string
	Verbose    bool
	NoColor    bool
}

// app is everything a subcommand needs, built once per invocation.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	kv     kv.Store
	store  *store.Store
	prefs  *prefs.Preferences
	closer io.Closer
}

// open loads config, wires logging and storage, and restores the list and
// preferences. logFallback is where logs go without a configured log file.
func open(opt Options, logFallback string) (*app, error) {
	path := opt.ConfigPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if opt.DataPath != "" {
		cfg.Storage.Path = opt.DataPath
	}
	if opt.Driver != "" {
		cfg.Storage.Driver = opt.Driver
		if opt.DataPath == "" {
			cfg.Storage.Path = ""
		}
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	ui.SetColorForcing(false, opt.NoColor || cfg.UI.NoColor)

	logger, err := cfg.Logger(opt.Verbose, logFallback)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger}
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		s, err := sqlitestore.Open(cfg.Storage.Path, logger)
		if err != nil {
			return nil, err
		}
		a.kv, a.closer = s, s
	case config.DriverMemory:
		a.kv = kv.NewMemory(nil)
	default:
		s, err := jsonstore.Open(cfg.Storage.Path, logger)
		if err != nil {
			return nil, err
		}
		a.kv = s
	}
	logger.Debug("storage ready",
		zap.String("driver", cfg.Storage.Driver),
		zap.String("path", cfg.Storage.Path))

	a.store = store.New(a.kv, store.WithLogger(logger))
	a.prefs, err = prefs.Load(a.kv, ui.Applier{}, cfg.UI.AccentDefault, prefs.WithLogger(logger))
	if err != nil {
		// The default accent is applied even if saving it failed.
		logger.Warn("failed to save default accent", zap.Error(err))
	}
	return a, nil
}

func (a *app) close() error {
	_ = a.logger.Sync()
	if a.closer != nil {
		if err := a.closer.Close(); err != nil {
			return fmt.Errorf("close storage: %w", err)
		}
	}
	return nil
}
