package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"foodcost/internal/config"
	"foodcost/internal/db"
	"foodcost/internal/db/mock"
	"foodcost/internal/kv"
	applog "foodcost/internal/log"
	"foodcost/internal/server"
	"foodcost/internal/store"
)

type serverLifecycle interface {
	Start() error
	Stop() error
}

var (
	loadConfigFunc       = config.Load
	configureLoggingFunc = func(cfg config.LoggingConfig) error {
		return applog.Configure(cfg.Level, applog.FileOptions{
			Path:       cfg.File,
			MaxSizeMB:  cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAgeDays: cfg.MaxAgeDays,
			Compress:   true,
		})
	}
	newMockDatabaseFunc = mock.New
	openBackendFunc     = db.Backend
	newServerFunc       = func(cfg server.Config) (serverLifecycle, error) {
		return server.New(cfg)
	}
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
		return ch, func() { signal.Stop(ch) }
	}
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	cfg, err := loadConfigFunc()
	if err != nil {
		applog.Error(ctx, "failed to load configuration", "error", err)
		return 1
	}

	if err := configureLoggingFunc(cfg.Logging); err != nil {
		applog.Error(ctx, "invalid logging configuration", "error", err)
		return 1
	}
	defer func() {
		_ = applog.Close()
	}()

	backend, err := openBackend(ctx, cfg.Storage)
	if err != nil {
		applog.Error(ctx, "failed to open storage", "error", err, "driver", cfg.Storage.Driver)
		return 1
	}

	srv, err := newServerFunc(server.Config{
		Addr: cfg.Server.Addr,
		Session: server.SessionConfig{
			Lifetime:     cfg.Session.Lifetime,
			CookieName:   cfg.Session.CookieName,
			CookieDomain: cfg.Session.CookieDomain,
			CookieSecure: cfg.Session.CookieSecure,
		},
		Store:           store.New(backend),
		Backend:         backend,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		applog.Error(ctx, "failed to build server", "error", err)
		return 1
	}

	shutdown, unsubscribe := subscribeShutdownSig()
	defer unsubscribe()

	errCh := make(chan error, 1)
	go func() {
		applog.Info(ctx, "starting http server", "addr", cfg.Server.Addr, "driver", cfg.Storage.Driver)
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			return 1
		}
		return 0
	case sig := <-shutdown:
		applog.Info(ctx, "shutting down http server", "signal", sig.String())
	}

	if err := srv.Stop(); err != nil {
		applog.Error(ctx, "graceful shutdown failed", "error", err)
		return 1
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		applog.Error(ctx, "server stopped with error", "error", err)
		return 1
	}
	return 0
}

// openBackend returns the seeded mock database when requested, otherwise
// the backend selected by the storage driver.
func openBackend(ctx context.Context, cfg config.StorageConfig) (kv.Backend, error) {
	if cfg.UseMock {
		database, err := newMockDatabaseFunc(ctx)
		if err != nil {
			return nil, err
		}
		return kv.NewSQL(database)
	}
	return openBackendFunc(cfg)
}
