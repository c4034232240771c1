package transporthttp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"tripvault/internal/domain"
)

// DraftService is the slice of the draft repository the handler needs.
type DraftService interface {
	Save(ctx context.Context, draftType domain.DraftType, data map[string]string) (domain.Draft, error)
	Get(ctx context.Context, draftType domain.DraftType, now time.Time) (*domain.Draft, error)
	Delete(ctx context.Context, draftType domain.DraftType) error
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

type DraftHandler struct {
	svc    DraftService
	logger *slog.Logger
}

func NewDraftHandler(svc DraftService, logger *slog.Logger) *DraftHandler {
	return &DraftHandler{svc: svc, logger: logger}
}

func (h *DraftHandler) Register(r chi.Router) {
	r.Put("/drafts/{type}", h.handleSave)
	r.Get("/drafts/{type}", h.handleGet)
	r.Delete("/drafts/{type}", h.handleDelete)
	r.Post("/drafts/sweep", h.handleSweep)
}

type saveDraftRequest struct {
	Data map[string]string `json:"data"`
}

func (h *DraftHandler) handleSave(w http.ResponseWriter, r *http.Request) {
	var req saveDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	saved, err := h.svc.Save(r.Context(), domain.DraftType(chi.URLParam(r, "type")), req.Data)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// handleGet reports an absent or expired draft as 204, not 404: no draft is
// the normal state, not an error.
func (h *DraftHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	draft, err := h.svc.Get(r.Context(), domain.DraftType(chi.URLParam(r, "type")), time.Now().UTC())
	if err != nil {
		writeError(w, err)
		return
	}
	if draft == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (h *DraftHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), domain.DraftType(chi.URLParam(r, "type"))); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DraftHandler) handleSweep(w http.ResponseWriter, r *http.Request) {
	cleared, err := h.svc.DeleteExpired(r.Context(), time.Now().UTC())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"cleared": cleared})
}
