package transporthttp

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tripvault/internal/domain"
)

// HashtagService is the slice of the hashtag service the handler needs.
type HashtagService interface {
	All(ctx context.Context) ([]domain.Hashtag, error)
	Suggest(ctx context.Context, prefix string) ([]domain.Hashtag, error)
}

type HashtagHandler struct {
	svc    HashtagService
	logger *slog.Logger
}

func NewHashtagHandler(svc HashtagService, logger *slog.Logger) *HashtagHandler {
	return &HashtagHandler{svc: svc, logger: logger}
}

func (h *HashtagHandler) Register(r chi.Router) {
	r.Get("/hashtags", h.handleAll)
	r.Get("/hashtags/suggest", h.handleSuggest)
}

func (h *HashtagHandler) handleAll(w http.ResponseWriter, r *http.Request) {
	tags, err := h.svc.All(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

func (h *HashtagHandler) handleSuggest(w http.ResponseWriter, r *http.Request) {
	tags, err := h.svc.Suggest(r.Context(), r.URL.Query().Get("prefix"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}
