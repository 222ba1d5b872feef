package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"github.com/chrissnell/cardiorhythm/internal/analysis"
	"github.com/chrissnell/cardiorhythm/internal/controllers/restserver"
	"github.com/chrissnell/cardiorhythm/internal/storage"
	"github.com/chrissnell/cardiorhythm/internal/storage/sqlite"
	"github.com/chrissnell/cardiorhythm/pkg/config"
)

// App represents the main application
type App struct {
	configProvider config.ConfigProvider
	logger         *zap.SugaredLogger
}

// New creates a new application instance
func New(configProvider config.ConfigProvider, logger *zap.SugaredLogger) *App {
	return &App{
		configProvider: configProvider,
		logger:         logger,
	}
}

// Run starts the application and blocks until shutdown
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := a.configProvider.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	if cfg.REST == nil {
		return fmt.Errorf("no rest section configured; nothing to serve")
	}

	analyzer, err := analysis.New(cfg.Analysis, a.logger)
	if err != nil {
		return err
	}

	// Report storage is optional
	var store storage.ReportStore
	if cfg.Storage.SQLite != nil {
		s, err := sqlite.New(ctx, cfg.Storage.SQLite.Path)
		if err != nil {
			return fmt.Errorf("error opening report storage: %w", err)
		}
		defer s.Close()
		store = s
		a.logger.Infof("storing reports in %s", cfg.Storage.SQLite.Path)
	}

	ctrl, err := restserver.NewController(ctx, &wg, *cfg.REST, analyzer, store, a.logger)
	if err != nil {
		return err
	}
	if err := ctrl.StartController(); err != nil {
		return err
	}

	a.logger.Info("Application started successfully")

	// Set up signal handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	// Wait for shutdown signal
	select {
	case <-sigs:
		a.logger.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		a.logger.Info("context cancelled, shutting down...")
	}

	// Cancel context to signal all goroutines to stop
	cancel()

	// Wait for all workers to terminate
	a.logger.Info("waiting for all workers to terminate...")
	wg.Wait()
	a.logger.Info("shutdown complete")

	return nil
}
