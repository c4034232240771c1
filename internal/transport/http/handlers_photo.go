package transporthttp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tripvault/internal/domain"
	"tripvault/internal/platform/metrics"
)

// maxUploadBytes bounds a single photo upload.
const maxUploadBytes = 20 << 20

// PhotoService is the slice of the photo service the handler needs.
type PhotoService interface {
	AddPhoto(ctx context.Context, itemID, fileName string, data []byte) (domain.Photo, error)
	DeletePhoto(ctx context.Context, photoID string) error
	SetCoverPhoto(ctx context.Context, itemID, photoID string) error
	ReorderPhotos(ctx context.Context, itemID string, orderedIDs []string) ([]domain.Photo, error)
	LoadImage(ctx context.Context, photoID string) ([]byte, string, error)
}

type PhotoHandler struct {
	svc     PhotoService
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewPhotoHandler(svc PhotoService, m *metrics.Metrics, logger *slog.Logger) *PhotoHandler {
	return &PhotoHandler{svc: svc, metrics: m, logger: logger}
}

func (h *PhotoHandler) Register(r chi.Router) {
	r.Post("/items/{id}/photos", h.handleUpload)
	r.Put("/items/{id}/photos/order", h.handleReorder)
	r.Put("/items/{id}/cover-photo", h.handleSetCover)
	r.Delete("/photos/{id}", h.handleDelete)
	r.Get("/photos/{id}/image", h.handleImage)
}

// handleUpload accepts a multipart form with a single "photo" file part.
func (h *PhotoHandler) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("photo")
	if err != nil {
		badRequest(w, "multipart field 'photo' is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		badRequest(w, "could not read upload")
		return
	}

	added, err := h.svc.AddPhoto(r.Context(), chi.URLParam(r, "id"), header.Filename, data)
	if err != nil {
		h.logger.WarnContext(r.Context(), "photo upload rejected", "error", err)
		writeError(w, err)
		return
	}
	h.metrics.PhotosAdded.Inc()
	writeJSON(w, http.StatusCreated, added)
}

type reorderRequest struct {
	OrderedIDs []string `json:"ordered_ids"`
}

func (h *PhotoHandler) handleReorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	reordered, err := h.svc.ReorderPhotos(r.Context(), chi.URLParam(r, "id"), req.OrderedIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reordered)
}

type setCoverRequest struct {
	PhotoID string `json:"photo_id"`
}

func (h *PhotoHandler) handleSetCover(w http.ResponseWriter, r *http.Request) {
	var req setCoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.PhotoID == "" {
		badRequest(w, "photo_id is required")
		return
	}

	if err := h.svc.SetCoverPhoto(r.Context(), chi.URLParam(r, "id"), req.PhotoID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PhotoHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeletePhoto(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PhotoHandler) handleImage(w http.ResponseWriter, r *http.Request) {
	data, fileName, err := h.svc.LoadImage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.Header().Set("Content-Disposition", `inline; filename="`+fileName+`"`)
	_, _ = w.Write(data)
}
