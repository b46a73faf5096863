package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/chrissnell/seasonswap/internal/controllers/management"
	"github.com/chrissnell/seasonswap/internal/log"
	"github.com/chrissnell/seasonswap/internal/season"
	"github.com/chrissnell/seasonswap/internal/seasons"
	"github.com/chrissnell/seasonswap/internal/store"
	"github.com/chrissnell/seasonswap/pkg/config"
	"go.uber.org/zap"
)

// App represents the main application
type App struct {
	cfg    *config.ConfigData
	logger *zap.SugaredLogger
}

// New creates a new application instance
func New(cfg *config.ConfigData, logger *zap.SugaredLogger) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
	}
}

// HostClock builds the host-driven calendar described by the settings section.
func HostClock(s config.SettingsData) (*seasons.HostClock, error) {
	start := season.FallbackMonth
	if s.StartMonth != "" {
		m, err := season.ParseMonth(s.StartMonth)
		if err != nil {
			return nil, fmt.Errorf("settings.start_month: %w", err)
		}
		start = m
	}
	return seasons.NewHostClock(start, s.StartDay)
}

// Run starts the application and blocks until shutdown
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	st, err := store.Open(a.cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	clock, err := HostClock(a.cfg.Settings)
	if err != nil {
		return err
	}

	opts, err := seasons.OptionsFromConfig(a.cfg, clock, a.logger)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	purges := management.NewPurgeLatch()
	opts.Store = st
	opts.Purger = purges
	opts.Logger = a.logger

	manager, err := seasons.New(ctx, opts)
	if err != nil {
		return err
	}
	defer manager.Close()
	log.Infof("session %s: season type %s", manager.ID(), manager.SeasonType())

	var mc config.ManagementAPIData
	if a.cfg.Management != nil {
		mc = *a.cfg.Management
	}
	ctrl, err := management.NewController(ctx, &wg, manager, clock, purges, st, mc, a.logger)
	if err != nil {
		return err
	}
	if err := ctrl.StartController(); err != nil {
		return err
	}

	log.Info("Application started successfully")

	// Set up signal handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	// Wait for shutdown signal
	select {
	case <-sigs:
		log.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down...")
	}

	// Cancel context to signal all goroutines to stop
	cancel()

	// Wait for all workers to terminate
	log.Info("waiting for all workers to terminate...")
	wg.Wait()
	log.Info("shutdown complete")

	return nil
}
