// attuned is the HTTP daemon serving the adaptive learning analytics API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/brightloop/attune/internal/analytics"
	"github.com/brightloop/attune/internal/api"
	"github.com/brightloop/attune/internal/config"
	"github.com/brightloop/attune/internal/queue"
	"github.com/brightloop/attune/internal/repository"
	"github.com/brightloop/attune/internal/storage/sqlite"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "attuned: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	stores, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer stores.Close()

	svcCfg := analytics.Config{
		Activities:  stores.Activities,
		Preferences: stores.Preferences,
		Logger:      logger,
	}

	var queueConn *queue.Connection
	if cfg.RabbitMQURL != "" {
		queueConn, err = queue.NewConnection(cfg.RabbitMQURL)
		if err != nil {
			return fmt.Errorf("connect rabbitmq: %w", err)
		}
		defer queueConn.Close()
		svcCfg.Events = queue.NewPublisher(queueConn)
	}

	service := analytics.NewService(svcCfg)
	app := api.NewApp(cfg, service, stores.Ping)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.NewRouter(app),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting attuned",
			"port", cfg.Port,
			"debug", cfg.Debug,
			"store", stores.Kind,
			"events", cfg.RabbitMQURL != "")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case sig := <-sigCh:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	slog.Info("attuned stopped")
	return nil
}

// stores bundles the selected storage backend behind the analytics
// interfaces, plus the readiness probe and cleanup for that backend.
type stores struct {
	Kind        string
	Activities  analytics.ActivityStore
	Preferences analytics.PreferenceStore
	Ping        func(ctx context.Context) error
	Close       func()
}

func openStores(cfg *config.Config) (*stores, error) {
	if cfg.UsePostgres() {
		if err := repository.EnsureSchema(cfg.DatabaseURL); err != nil {
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		pool, err := repository.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return &stores{
			Kind:        "postgres",
			Activities:  repository.NewActivityRepository(pool),
			Preferences: repository.NewPreferenceRepository(pool),
			Ping:        pool.Ping,
			Close:       pool.Close,
		}, nil
	}

	db, err := sqlite.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return &stores{
		Kind:        "sqlite",
		Activities:  sqlite.NewActivityStore(db),
		Preferences: sqlite.NewPreferenceStore(db),
		Ping:        db.PingContext,
		Close:       func() { db.Close() },
	}, nil
}
