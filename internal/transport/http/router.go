// Package transporthttp is the JSON API over the persistence core. Handlers
// stay thin: decode, delegate to a service, translate coded errors.
package transporthttp

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tripvault/internal/platform/middleware"
	"tripvault/pkg/domainerrors"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// RouterConfig carries the handlers and the optional auth validator.
type RouterConfig struct {
	Logger    *slog.Logger
	Health    HealthChecker
	Validator middleware.TokenValidator // nil disables auth
	Itinerary *ItineraryHandler
	Item      *ItemHandler
	Photo     *PhotoHandler
	Route     *RouteHandler
	Draft     *DraftHandler
	Hashtag   *HashtagHandler
	Location  *LocationHandler
}

// NewRouter mounts every endpoint. Auth, when configured, covers the API but
// not health or metrics.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Get("/health", handleHealth(cfg.Health))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		if cfg.Validator != nil {
			api.Use(middleware.RequireAuth(cfg.Validator, cfg.Logger))
		}
		cfg.Itinerary.Register(api)
		cfg.Item.Register(api)
		cfg.Photo.Register(api)
		cfg.Route.Register(api)
		cfg.Draft.Register(api)
		cfg.Hashtag.Register(api)
		cfg.Location.Register(api)
	})
	return r
}

func handleHealth(health HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if health != nil {
			if err := health.Health(r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError translates coded errors into the shared envelope. Anything
// uncoded is reported as internal without leaking details.
func writeError(w http.ResponseWriter, err error) {
	code := domainerrors.CodeInternal
	message := "unexpected error"
	var de *domainerrors.Error
	if errors.As(err, &de) {
		code = de.Code
		message = de.Message
		if de.Field != "" {
			message = de.Field + ": " + de.Message
		}
	}
	writeJSON(w, domainerrors.ToHTTPStatus(code), map[string]string{
		"error":   string(code),
		"message": message,
	})
}

func badRequest(w http.ResponseWriter, message string) {
	writeError(w, domainerrors.New(domainerrors.CodeBadRequest, message))
}
