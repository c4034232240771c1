package transporthttp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tripvault/internal/domain"
	"tripvault/internal/platform/metrics"
	"tripvault/pkg/domainerrors"
)

// ItineraryService is the slice of the itinerary service the handler needs.
type ItineraryService interface {
	Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
	Get(ctx context.Context, id string) (domain.Itinerary, error)
	GetAll(ctx context.Context) ([]domain.Itinerary, error)
	Search(ctx context.Context, query string) ([]domain.Itinerary, error)
	Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
	Delete(ctx context.Context, id string) error
}

type ItineraryHandler struct {
	svc     ItineraryService
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewItineraryHandler(svc ItineraryService, m *metrics.Metrics, logger *slog.Logger) *ItineraryHandler {
	return &ItineraryHandler{svc: svc, metrics: m, logger: logger}
}

func (h *ItineraryHandler) Register(r chi.Router) {
	r.Post("/itineraries", h.handleCreate)
	r.Get("/itineraries", h.handleList)
	r.Get("/itineraries/{id}", h.handleGet)
	r.Put("/itineraries/{id}", h.handleUpdate)
	r.Delete("/itineraries/{id}", h.handleDelete)
}

func (h *ItineraryHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var it domain.Itinerary
	if err := json.NewDecoder(r.Body).Decode(&it); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	created, err := h.svc.Create(r.Context(), it)
	if err != nil {
		h.logger.WarnContext(r.Context(), "itinerary create rejected", "error", err)
		writeError(w, err)
		return
	}
	h.metrics.ItinerariesCreated.Inc()
	writeJSON(w, http.StatusCreated, created)
}

// handleList also serves search: /itineraries?q=tokyo.
func (h *ItineraryHandler) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	var (
		itineraries []domain.Itinerary
		err         error
	)
	if query != "" {
		itineraries, err = h.svc.Search(r.Context(), query)
	} else {
		itineraries, err = h.svc.GetAll(r.Context())
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "itinerary list failed", "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, itineraries)
}

func (h *ItineraryHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	it, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (h *ItineraryHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var it domain.Itinerary
	if err := json.NewDecoder(r.Body).Decode(&it); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	it.ID = chi.URLParam(r, "id")

	updated, err := h.svc.Update(r.Context(), it)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ItineraryHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if !domainerrors.Is(err, domainerrors.CodeNotFound) {
			h.logger.ErrorContext(r.Context(), "itinerary delete failed", "error", err)
		}
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
