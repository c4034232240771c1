package transporthttp

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tripvault/internal/location"
	"tripvault/pkg/domainerrors"
)

// LocationHandler fronts the optional external place search provider. With
// no provider configured the endpoints answer 503.
type LocationHandler struct {
	searcher location.Searcher // nil when no provider is configured
	logger   *slog.Logger
}

func NewLocationHandler(searcher location.Searcher, logger *slog.Logger) *LocationHandler {
	return &LocationHandler{searcher: searcher, logger: logger}
}

func (h *LocationHandler) Register(r chi.Router) {
	r.Get("/locations/search", h.handleSearch)
	r.Get("/locations/{placeID}", h.handleDetails)
}

func (h *LocationHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	if h.searcher == nil {
		h.unavailable(w)
		return
	}
	query := r.URL.Query().Get("q")
	if query == "" {
		badRequest(w, "q is required")
		return
	}

	locations, err := h.searcher.SearchByName(r.Context(), query)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "place search failed", "error", err)
		writeError(w, domainerrors.New(domainerrors.CodeStoreFailure, "place search provider failed"))
		return
	}
	writeJSON(w, http.StatusOK, locations)
}

func (h *LocationHandler) handleDetails(w http.ResponseWriter, r *http.Request) {
	if h.searcher == nil {
		h.unavailable(w)
		return
	}

	loc, err := h.searcher.PlaceDetails(r.Context(), chi.URLParam(r, "placeID"))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "place details failed", "error", err)
		writeError(w, domainerrors.New(domainerrors.CodeStoreFailure, "place search provider failed"))
		return
	}
	writeJSON(w, http.StatusOK, loc)
}

func (h *LocationHandler) unavailable(w http.ResponseWriter) {
	writeJSON(w, http.StatusServiceUnavailable, map[string]string{
		"error":   "unavailable",
		"message": "no place search provider configured",
	})
}
