package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/gistloop/gistloop/pkg/aliases"
	"github.com/gistloop/gistloop/pkg/config"
	"github.com/gistloop/gistloop/pkg/observability"
	"github.com/gistloop/gistloop/pkg/server"
	"github.com/gistloop/gistloop/pkg/storage"
	"github.com/gistloop/gistloop/pkg/temporal"
)

// ServeCmd starts the HTTP API server.
type ServeCmd struct {
	Address string `help:"Listen address, overrides the config." placeholder:"HOST:PORT"`
	Watch   bool   `help:"Watch the config file for changes."`
}

func (c *ServeCmd) Run(cli *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(ctx, cli.Config)
	if err != nil {
		return err
	}
	if c.Address != "" {
		cfg.Server.Address = c.Address
	}
	aliases.SetGlobal(cfg.Aliases)

	_, shutdownTracer, err := observability.InitTracer(ctx, &cfg.Tracing)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() { _ = shutdownTracer(context.Background()) }()

	if c.Watch && cli.Config != "" {
		loader := config.NewLoader(config.NewFileProvider(cli.Config), config.WithOnChange(func(next *config.Config) {
			aliases.SetGlobal(next.Aliases)
			slog.Info("Applied reloaded aliases", "count", len(next.Aliases))
		}))
		go func() {
			if err := loader.Watch(ctx); err != nil && ctx.Err() == nil {
				slog.Error("Config watch error", "error", err)
			}
		}()
	}

	tc, err := temporal.Client(&cfg.Temporal)
	if err != nil {
		return err
	}
	defer temporal.Close()

	var store *storage.Client
	if cfg.Storage.Enabled() {
		store, err = storage.New(&cfg.Storage)
		if err != nil {
			return err
		}
	}

	srv, err := server.New(cfg, tc, store)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

// WorkerCmd starts the configured Temporal workers.
type WorkerCmd struct{}

func (c *WorkerCmd) Run(cli *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(ctx, cli.Config)
	if err != nil {
		return err
	}
	aliases.SetGlobal(cfg.Aliases)

	_, shutdownTracer, err := observability.InitTracer(ctx, &cfg.Tracing)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() { _ = shutdownTracer(context.Background()) }()

	tc, err := temporal.Client(&cfg.Temporal)
	if err != nil {
		return err
	}
	defer temporal.Close()

	return temporal.RunWorkers(ctx, tc, cfg)
}
