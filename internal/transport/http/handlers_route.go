package transporthttp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tripvault/internal/domain"
	"tripvault/internal/platform/metrics"
)

// RouteService is the slice of the route service the handler needs.
type RouteService interface {
	CreateFromItinerary(ctx context.Context, itineraryID string) (domain.Route, error)
	Create(ctx context.Context, route domain.Route) (domain.Route, error)
	Get(ctx context.Context, id string) (domain.Route, error)
	GetAll(ctx context.Context) ([]domain.Route, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, id string) (string, error)
}

type RouteHandler struct {
	svc     RouteService
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewRouteHandler(svc RouteService, m *metrics.Metrics, logger *slog.Logger) *RouteHandler {
	return &RouteHandler{svc: svc, metrics: m, logger: logger}
}

func (h *RouteHandler) Register(r chi.Router) {
	r.Post("/routes", h.handleCreate)
	r.Get("/routes", h.handleList)
	r.Get("/routes/{id}", h.handleGet)
	r.Delete("/routes/{id}", h.handleDelete)
	r.Get("/routes/{id}/export", h.handleExport)
	r.Post("/itineraries/{id}/route", h.handleCreateFromItinerary)
}

func (h *RouteHandler) handleCreateFromItinerary(w http.ResponseWriter, r *http.Request) {
	created, err := h.svc.CreateFromItinerary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.WarnContext(r.Context(), "route generation rejected", "error", err)
		writeError(w, err)
		return
	}
	h.metrics.RoutesCreated.Inc()
	writeJSON(w, http.StatusCreated, created)
}

func (h *RouteHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var route domain.Route
	if err := json.NewDecoder(r.Body).Decode(&route); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	created, err := h.svc.Create(r.Context(), route)
	if err != nil {
		writeError(w, err)
		return
	}
	h.metrics.RoutesCreated.Inc()
	writeJSON(w, http.StatusCreated, created)
}

func (h *RouteHandler) handleList(w http.ResponseWriter, r *http.Request) {
	routes, err := h.svc.GetAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, routes)
}

func (h *RouteHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	route, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, route)
}

func (h *RouteHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleExport hands back the stored document form, ready to import
// elsewhere.
func (h *RouteHandler) handleExport(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.Export(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="route.json"`)
	_, _ = w.Write([]byte(doc))
}
