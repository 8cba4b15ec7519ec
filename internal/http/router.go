package http

import (
	"context"
	"net/http"
	"time"

	"bookconnect/internal/httpx"
	"bookconnect/internal/view"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// ReadyChecker reports whether a backing dependency can serve requests.
type ReadyChecker interface {
	Ping(ctx context.Context) error
}

type RouterConfig struct {
	Logger         *zap.Logger
	RateLimiter    *httpx.RateLimitMiddleware
	AllowedOrigins []string
	MaxBodyBytes   int64
	EnableHSTS     bool
	// Ready is optional; without it /readyz always succeeds.
	Ready ReadyChecker
}

func NewRouter(h *BrowserHandler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.StripSlashes)
	r.Use(httpx.RequestIDMiddleware)
	r.Use(httpx.AccessLogMiddleware(cfg.Logger))
	r.Use(httpx.RecoveryMiddleware(cfg.Logger))
	r.Use(httpx.SecurityHeadersMiddleware(cfg.EnableHSTS))
	r.Use(httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Resource not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", readyHandler(cfg.Ready))

	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(view.Assets()))))

	r.Group(func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Middleware)
		}

		r.Get("/", h.Page)

		r.Post("/search", h.Search)
		r.Post("/search/open", h.Overlay(view.SearchOverlay, true))
		r.Post("/search/cancel", h.Overlay(view.SearchOverlay, false))

		r.Post("/settings", h.Settings)
		r.Post("/settings/open", h.Overlay(view.SettingsOverlay, true))
		r.Post("/settings/cancel", h.Overlay(view.SettingsOverlay, false))

		r.Post("/list/more", h.LoadMore)
		r.Post("/list/activate", h.Activate)
		r.Post("/list/close", h.Overlay(view.DetailOverlay, false))

		r.Route("/api", func(r chi.Router) {
			r.Use(httpx.CORSMiddleware(cfg.AllowedOrigins))
			r.Get("/catalog", h.Snapshot)
		})
	})

	return r
}

func readyHandler(ready ReadyChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			defer cancel()
			if err := ready.Ping(ctx); err != nil {
				http.Error(w, "catalog source not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	}
}
