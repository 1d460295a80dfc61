// Package api wires the analytics service into an HTTP surface.
package api

import (
	"context"

	"github.com/brightloop/attune/internal/analytics"
	"github.com/brightloop/attune/internal/config"
)

// App holds all application dependencies
type App struct {
	Config    *config.Config
	Analytics analytics.Recommender

	// PingStore checks storage connectivity for the readiness probe.
	// Nil means the store has no connectivity to check.
	PingStore func(ctx context.Context) error
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, svc analytics.Recommender, pingStore func(ctx context.Context) error) *App {
	return &App{
		Config:    cfg,
		Analytics: svc,
		PingStore: pingStore,
	}
}
