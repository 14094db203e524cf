package cmd

import (
	"fmt"

	"github.com/barysiuk/duckfetch/internal/core"
	"github.com/barysiuk/duckfetch/internal/log"
	"github.com/barysiuk/duckfetch/internal/tool"
)

// deps holds shared dependencies for CLI commands.
type deps struct {
	config    *core.ConfigManager
	cfg       *core.Config
	installer *core.Installer
	inventory *core.Inventory
	service   *tool.Service
}

// newDeps loads the config and wires the core. Called lazily by commands
// that need it.
func newDeps() (*deps, error) {
	config, err := core.NewConfigManager()
	if err != nil {
		return nil, fmt.Errorf("initializing config: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagRoot != "" {
		cfg.SetsRoot = flagRoot
	}

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	logger := log.Logger()
	fetcher := core.NewFetcher(core.FetcherOptions{
		Timeout:   timeout,
		UserAgent: cfg.UserAgent,
		MaxBytes:  cfg.MaxBytes,
		Logger:    logger,
	})
	installer := core.NewInstaller(core.InstallerOptions{
		SetsRoot:    cfg.SetsRoot,
		Fetcher:     fetcher,
		Concurrency: cfg.FetchConcurrency,
		Logger:      logger,
	})
	inventory := core.NewInventory(cfg.SetsRoot, logger)

	return &deps{
		config:    config,
		cfg:       cfg,
		installer: installer,
		inventory: inventory,
		service:   tool.NewService(installer, inventory),
	}, nil
}
