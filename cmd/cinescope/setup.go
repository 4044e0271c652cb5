package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/metinatakli/cinescope-autotests/internal/config"
	"github.com/metinatakli/cinescope-autotests/internal/logging"
	"github.com/metinatakli/cinescope-autotests/internal/telemetry"
)

type application struct {
	cfg    config.Config
	logger *slog.Logger

	closers []func(context.Context)
}

// setup loads the configuration and builds the logger and tracer every
// command runs with.
func setup(ctx context.Context) (*application, error) {
	var files []string
	if cfgFile != "" {
		files = append(files, cfgFile)
	}

	cfg, err := config.Load(files...)
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	rt := &application{cfg: cfg, logger: logger}
	rt.closers = append(rt.closers, func(context.Context) { closeLog() })

	shutdown, err := telemetry.Init(ctx, cfg.OtelCollectorUrl, cfg.Target, logger)
	if err != nil {
		rt.close(ctx)
		return nil, err
	}
	rt.closers = append(rt.closers, shutdown)

	return rt, nil
}

func (rt *application) close(ctx context.Context) {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i](ctx)
	}
}
