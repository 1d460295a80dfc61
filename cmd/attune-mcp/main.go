// attune-mcp serves the analytics tools over the Model Context Protocol
// on stdio, backed by the local SQLite store under ~/.attune.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/brightloop/attune/internal/analytics"
	"github.com/brightloop/attune/internal/config"
	"github.com/brightloop/attune/internal/mcp"
	"github.com/brightloop/attune/internal/queue"
	"github.com/brightloop/attune/internal/storage/sqlite"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "attune-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if _, err := config.EnsureAttuneDir(); err != nil {
		return fmt.Errorf("ensure attune dir: %w", err)
	}

	cfg, err := config.LoadLocalConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// stdout carries the MCP transport, so logs go to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Daemon.LogLevel),
	}))
	slog.SetDefault(logger)

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}

	db, err := sqlite.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migrate sqlite: %w", err)
	}

	svcCfg := analytics.Config{
		Activities:  sqlite.NewActivityStore(db),
		Preferences: sqlite.NewPreferenceStore(db),
		Logger:      logger,
	}

	if cfg.Events.AMQPURL != "" {
		conn, err := queue.NewConnection(cfg.Events.AMQPURL)
		if err != nil {
			return fmt.Errorf("connect rabbitmq: %w", err)
		}
		defer conn.Close()
		svcCfg.Events = queue.NewPublisher(conn)
	}

	service := analytics.NewService(svcCfg)
	server := mcp.NewServer(mcp.Config{Service: service})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("starting attune-mcp", "db", dbPath, "events", cfg.Events.AMQPURL != "")
	return server.ServeStdio(ctx)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
