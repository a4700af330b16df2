package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/wazihub/wazi-go/internal/client"
	"github.com/wazihub/wazi-go/internal/config"
	"github.com/wazihub/wazi-go/internal/notify"
	"github.com/wazihub/wazi-go/internal/storage"
	"github.com/wazihub/wazi-go/internal/store"
)

// appContext bundles everything a command needs: configuration, the API
// client, and the store registry the commands act through.
type appContext struct {
	cfg    config.Config
	api    *client.Client
	stores *store.Stores
	log    *slog.Logger

	closers []func() error
}

func newAppContext(ctx context.Context, configPath string, ephemeral, verbose bool) (*appContext, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	app := &appContext{cfg: cfg, log: log}

	var adapter storage.Adapter
	if ephemeral {
		adapter = storage.NewMemoryAdapter()
	} else {
		sqlite, err := storage.OpenSQLite(cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
		app.closers = append(app.closers, sqlite.Close)
		adapter = sqlite
	}
	if cfg.Storage.Secret != "" {
		enc, err := storage.NewEncryptedAdapter(adapter, cfg.Storage.Secret)
		if err != nil {
			return nil, err
		}
		adapter = enc
	}

	app.api = client.New(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second, adapter, log.With("component", "client"))

	var scheduler notify.Scheduler = notify.NoopScheduler{}
	if cfg.Notifications.Enabled {
		scheduler = notify.NewLogScheduler(log.With("component", "notify"))
	}

	app.stores = store.NewStores(ctx, store.Deps{
		API:       app.api,
		Storage:   adapter,
		Scheduler: scheduler,
		Logger:    log,
	})
	return app, nil
}

func (a *appContext) close() {
	for _, fn := range a.closers {
		if err := fn(); err != nil {
			a.log.Warn("close failed", "error", err)
		}
	}
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "wazi.toml"
	}
	return filepath.Join(home, ".wazi", "config.toml")
}

// requireUser is the shared guard for commands that only make sense while
// signed in.
func (a *appContext) requireUser() error {
	if a.stores.Session.User() == nil {
		return fmt.Errorf("not signed in; run `wazi login` first")
	}
	return nil
}
