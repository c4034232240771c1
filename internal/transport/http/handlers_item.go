package transporthttp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"tripvault/internal/domain"
	"tripvault/internal/hashtag"
	"tripvault/internal/item"
	"tripvault/internal/platform/metrics"
	"tripvault/pkg/domainerrors"
)

const dateLayout = "2006-01-02"

// ItemService is the slice of the item service the handler needs.
type ItemService interface {
	AddItem(ctx context.Context, it domain.ItineraryItem) (domain.ItineraryItem, error)
	UpdateItem(ctx context.Context, it domain.ItineraryItem) (domain.ItineraryItem, error)
	DeleteItem(ctx context.Context, id string) error
	GetItem(ctx context.Context, id string) (domain.ItineraryItem, error)
	GetItemsByItinerary(ctx context.Context, itineraryID string) ([]domain.ItineraryItem, error)
	GetItemsByLocation(ctx context.Context, locationName string) ([]domain.ItineraryItem, error)
	GetItemsByDateRange(ctx context.Context, from, to time.Time) ([]domain.ItineraryItem, error)
	ToggleCompletion(ctx context.Context, id string, ts time.Time) (domain.ItineraryItem, error)
	Progress(ctx context.Context, itineraryID string) (float64, error)
	BatchDelete(ctx context.Context, ids []string) (item.BatchResult, error)
	BatchComplete(ctx context.Context, ids []string, ts time.Time) (item.BatchResult, error)
}

type ItemHandler struct {
	svc     ItemService
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewItemHandler(svc ItemService, m *metrics.Metrics, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{svc: svc, metrics: m, logger: logger}
}

func (h *ItemHandler) Register(r chi.Router) {
	r.Post("/items", h.handleAdd)
	r.Get("/items", h.handleQuery)
	r.Get("/items/{id}", h.handleGet)
	r.Put("/items/{id}", h.handleUpdate)
	r.Delete("/items/{id}", h.handleDelete)
	r.Post("/items/{id}/toggle-completion", h.handleToggle)
	r.Post("/items/batch-delete", h.handleBatchDelete)
	r.Post("/items/batch-complete", h.handleBatchComplete)
	r.Get("/itineraries/{id}/items", h.handleByItinerary)
	r.Get("/itineraries/{id}/progress", h.handleProgress)
}

func (h *ItemHandler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var it domain.ItineraryItem
	if err := json.NewDecoder(r.Body).Decode(&it); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	added, err := h.svc.AddItem(r.Context(), it)
	if err != nil {
		h.observeSyncFailure(err)
		writeError(w, err)
		return
	}
	h.metrics.ItemsCreated.Inc()
	writeJSON(w, http.StatusCreated, added)
}

// handleQuery serves the filtered item reads: ?location= exact name,
// ?from=&to= inclusive date range, ?tag= hashtag filter over all items.
func (h *ItemHandler) handleQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ctx := r.Context()

	switch {
	case q.Get("location") != "":
		items, err := h.svc.GetItemsByLocation(ctx, q.Get("location"))
		h.respondItems(w, items, err)
	case q.Get("from") != "" || q.Get("to") != "":
		from, err := time.Parse(dateLayout, q.Get("from"))
		if err != nil {
			badRequest(w, "from must be YYYY-MM-DD")
			return
		}
		to, err := time.Parse(dateLayout, q.Get("to"))
		if err != nil {
			badRequest(w, "to must be YYYY-MM-DD")
			return
		}
		items, err := h.svc.GetItemsByDateRange(ctx, from, to)
		h.respondItems(w, items, err)
	case q.Get("tag") != "":
		itineraryID := q.Get("itinerary_id")
		if itineraryID == "" {
			badRequest(w, "tag filter requires itinerary_id")
			return
		}
		items, err := h.svc.GetItemsByItinerary(ctx, itineraryID)
		if err != nil {
			writeError(w, err)
			return
		}
		h.respondItems(w, hashtag.FilterItems(items, q.Get("tag")), nil)
	default:
		badRequest(w, "one of location, from/to, or tag is required")
	}
}

func (h *ItemHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	it, err := h.svc.GetItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (h *ItemHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var it domain.ItineraryItem
	if err := json.NewDecoder(r.Body).Decode(&it); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	it.ID = chi.URLParam(r, "id")

	updated, err := h.svc.UpdateItem(r.Context(), it)
	if err != nil {
		h.observeSyncFailure(err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ItemHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.observeSyncFailure(err)
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ItemHandler) handleToggle(w http.ResponseWriter, r *http.Request) {
	toggled, err := h.svc.ToggleCompletion(r.Context(), chi.URLParam(r, "id"), time.Now().UTC())
	if err != nil {
		h.observeSyncFailure(err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toggled)
}

type batchRequest struct {
	IDs []string `json:"ids"`
}

func (h *ItemHandler) handleBatchDelete(w http.ResponseWriter, r *http.Request) {
	h.handleBatch(w, r, func(ctx context.Context, ids []string) (item.BatchResult, error) {
		return h.svc.BatchDelete(ctx, ids)
	})
}

func (h *ItemHandler) handleBatchComplete(w http.ResponseWriter, r *http.Request) {
	h.handleBatch(w, r, func(ctx context.Context, ids []string) (item.BatchResult, error) {
		return h.svc.BatchComplete(ctx, ids, time.Now().UTC())
	})
}

// handleBatch reports partial success with 207 and the per-id outcome rather
// than collapsing it into an error.
func (h *ItemHandler) handleBatch(w http.ResponseWriter, r *http.Request, op func(context.Context, []string) (item.BatchResult, error)) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if len(req.IDs) == 0 {
		badRequest(w, "ids must not be empty")
		return
	}

	result, err := op(r.Context(), req.IDs)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, result)
	case domainerrors.Is(err, domainerrors.CodePartialFailure):
		writeJSON(w, http.StatusMultiStatus, result)
	default:
		writeError(w, err)
	}
}

func (h *ItemHandler) handleByItinerary(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.GetItemsByItinerary(r.Context(), chi.URLParam(r, "id"))
	h.respondItems(w, items, err)
}

func (h *ItemHandler) handleProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.svc.Progress(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"progress": progress})
}

func (h *ItemHandler) respondItems(w http.ResponseWriter, items []domain.ItineraryItem, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) observeSyncFailure(err error) {
	if domainerrors.Is(err, domainerrors.CodePartialFailure) {
		h.metrics.SyncFailures.Inc()
	}
}
