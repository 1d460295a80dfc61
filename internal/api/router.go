package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/brightloop/attune/internal/api/handlers"
	"github.com/brightloop/attune/internal/api/middleware"
)

// Router wraps the HTTP multiplexer with middleware and handlers
type Router struct {
	mux       *http.ServeMux
	app       *App
	analytics *handlers.AnalyticsHandler
	prefs     *handlers.PreferencesHandler
}

// NewRouter creates a new API router with all routes configured
func NewRouter(app *App) http.Handler {
	r := &Router{
		mux: http.NewServeMux(),
		app: app,
	}

	// Initialize handlers
	r.analytics = handlers.NewAnalyticsHandler(app.Analytics)
	r.prefs = handlers.NewPreferencesHandler(app.Analytics)

	// Register routes
	r.registerRoutes()

	// Build middleware chain
	return r.buildMiddlewareChain(r.mux, app)
}

func (r *Router) registerRoutes() {
	// Health check
	r.mux.HandleFunc("GET /health", r.handleHealth)
	r.mux.HandleFunc("GET /ready", r.handleReady)

	// Recommendations
	r.mux.HandleFunc("GET /api/v1/recommendations", r.analytics.GetRecommendations)
	r.mux.HandleFunc("POST /api/v1/recommendations", r.analytics.TrackActivity)

	// Derived metrics
	r.mux.HandleFunc("GET /api/v1/difficulty", r.analytics.GetDifficulty)
	r.mux.HandleFunc("GET /api/v1/retention", r.analytics.GetRetention)

	// Preferences onboarding
	r.mux.HandleFunc("GET /api/v1/preferences", r.prefs.Get)
	r.mux.HandleFunc("PUT /api/v1/preferences", r.prefs.Put)
}

func (r *Router) buildMiddlewareChain(handler http.Handler, app *App) http.Handler {
	// Apply middleware in reverse order (last applied = first executed)
	handler = middleware.Recovery(handler)
	handler = middleware.Logger(handler)

	// Apply rate limiting (skip in debug mode for easier development)
	if !app.Config.Debug {
		handler = middleware.RateLimit(middleware.RateLimitConfig{
			Requests: app.Config.RateLimitRequests,
			Interval: time.Duration(app.Config.RateLimitInterval) * time.Second,
		})(handler)
	}

	handler = middleware.RequestID(handler)
	handler = middleware.CORS(handler)

	return handler
}

// Health check handlers
func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	handlers.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (r *Router) handleReady(w http.ResponseWriter, req *http.Request) {
	if r.app.PingStore != nil {
		if err := r.app.PingStore(req.Context()); err != nil {
			slog.Error("store health check failed",
				"error", err,
				"request_id", middleware.GetRequestID(req.Context()),
			)
			handlers.WriteJSON(w, http.StatusServiceUnavailable, map[string]any{
				"status": "not ready",
				"checks": map[string]string{
					"store": "unhealthy",
				},
			})
			return
		}
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
		"checks": map[string]string{
			"store": "healthy",
		},
	})
}
