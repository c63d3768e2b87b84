package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/persistence"
	"github.com/jonathan/cv-builder/internal/registry"
	"github.com/jonathan/cv-builder/internal/store"
	"github.com/jonathan/cv-builder/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app is the per-invocation wiring: configuration, logger, storage and the
// CV store editing on top of it.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	adapter persistence.Adapter
	// remote is set when the adapter is the CV registry.
	remote  *registry.Client
	store   *store.Store
	closers []func() error
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

func openApp(ctx context.Context, opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.verbose {
		cfg.Verbose = true
	}

	log, err := newLogger(cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	adapter, closer, err := openAdapter(ctx, cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}

	a := &app{cfg: cfg, log: log, adapter: adapter}
	if client, ok := adapter.(*registry.Client); ok {
		a.remote = client
	}
	if closer != nil {
		a.closers = append(a.closers, closer)
	}
	a.store = store.New(adapter,
		store.WithLogger(log),
		store.WithDebounceDelay(cfg.Debounce()),
	)
	log.Debug("storage ready", zap.String("storage", cfg.Storage))
	return a, nil
}

// open makes id the active CV, or the most recently updated one when id is
// empty.
func (a *app) open(ctx context.Context, id string) error {
	if id == "" {
		summaries, err := a.summaries(ctx)
		if err != nil {
			return err
		}
		if len(summaries) == 0 {
			return fmt.Errorf("no CV found, create one with 'cvbuilder new'")
		}
		id = summaries[0].ID
	}
	ok, err := a.store.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load CV %s: %w", id, err)
	}
	if !ok {
		return fmt.Errorf("CV %s not found", id)
	}
	return nil
}

// summaries lists the stored CVs, most recent first. An unreachable registry
// yields an empty list rather than an error.
func (a *app) summaries(ctx context.Context) ([]types.Summary, error) {
	if a.remote != nil {
		return a.remote.Summaries(ctx), nil
	}
	summaries, err := a.adapter.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list CVs: %w", err)
	}
	return summaries, nil
}

// close saves pending edits and releases the storage.
func (a *app) close(ctx context.Context) error {
	errs := []error{a.store.Close(ctx)}
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	_ = a.log.Sync()
	return errors.Join(errs...)
}

// runApp wraps fn with app setup and teardown. The teardown error is
// reported when fn itself succeeded.
func runApp(opts *rootOptions, fn func(ctx context.Context, cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		a, err := openApp(ctx, opts)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := a.close(ctx); cerr != nil && err == nil {
				err = fmt.Errorf("failed to save: %w", cerr)
			}
		}()
		return fn(ctx, cmd, a, args)
	}
}

// withCV is runApp with the CV selected by --cv already loaded.
func withCV(opts *rootOptions, fn func(ctx context.Context, cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return runApp(opts, func(ctx context.Context, cmd *cobra.Command, a *app, args []string) error {
		if err := a.open(ctx, opts.cvID); err != nil {
			return err
		}
		return fn(ctx, cmd, a, args)
	})
}
