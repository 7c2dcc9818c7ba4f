package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secondchance/apiserver/internal/services"
	"github.com/secondchance/apiserver/internal/storage"
	"github.com/secondchance/apiserver/types"
	"go.uber.org/zap"
)

const (
	maxImageBytes  = 16 << 20
	formFieldImage = "image"
)

// GiftHandler provides HTTP handlers for the gift catalog.
type GiftHandler struct {
	giftService *services.GiftService
	images      *storage.ImageStore
	logger      *zap.SugaredLogger
}

// NewGiftHandler constructs a handler with the provided dependencies.
// images may be nil when no storage backend is configured.
func NewGiftHandler(giftService *services.GiftService, images *storage.ImageStore, logger *zap.SugaredLogger) *GiftHandler {
	return &GiftHandler{giftService: giftService, images: images, logger: logger}
}

// GiftRouter registers gift routes on the given router. Image routes are
// only mounted when an image store is configured.
func GiftRouter(r chi.Router, giftService *services.GiftService, images *storage.ImageStore, logger *zap.SugaredLogger) {
	handler := NewGiftHandler(giftService, images, logger)

	r.Get("/", handler.ListGifts)
	r.Post("/", handler.CreateGift)
	r.Route("/{giftID}", func(r chi.Router) {
		r.Get("/", handler.GetGift)
		r.Put("/", handler.UpdateGift)
		r.Delete("/", handler.DeleteGift)
		if images != nil {
			r.Post("/image", handler.UploadImage)
			r.Get("/image", handler.DownloadImage)
		}
	})
}

func (h *GiftHandler) ListGifts(w http.ResponseWriter, r *http.Request) {
	gifts, err := h.giftService.List(r.Context())
	if err != nil {
		h.logger.Errorw("failed to list gifts", "error", err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gifts)
}

func (h *GiftHandler) CreateGift(w http.ResponseWriter, r *http.Request) {
	var gift types.Gift
	if err := json.NewDecoder(r.Body).Decode(&gift); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	created, err := h.giftService.Create(r.Context(), gift)
	if err != nil {
		h.logger.Errorw("failed to create gift", "error", err)
		writeServiceError(w, err)
		return
	}

	h.logger.Infow("gift created", "gift_id", created.GiftID)
	writeJSON(w, http.StatusCreated, created)
}

func (h *GiftHandler) GetGift(w http.ResponseWriter, r *http.Request) {
	giftID := chi.URLParam(r, "giftID")

	gift, err := h.giftService.Get(r.Context(), giftID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gift)
}

// UpdateGift decodes the payload as a partial document so that fields
// absent from it are preserved in the stored gift.
func (h *GiftHandler) UpdateGift(w http.ResponseWriter, r *http.Request) {
	giftID := chi.URLParam(r, "giftID")

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	updated, err := h.giftService.Update(r.Context(), giftID, fields)
	if err != nil {
		h.logger.Errorw("failed to update gift", "gift_id", giftID, "error", err)
		writeServiceError(w, err)
		return
	}

	h.logger.Infow("gift updated", "gift_id", giftID)
	writeJSON(w, http.StatusOK, updated)
}

func (h *GiftHandler) DeleteGift(w http.ResponseWriter, r *http.Request) {
	giftID := chi.URLParam(r, "giftID")

	if err := h.giftService.Delete(r.Context(), giftID); err != nil {
		writeServiceError(w, err)
		return
	}

	if h.images != nil {
		// Best effort; a dangling image is harmless.
		if err := h.images.DeleteGiftImage(r.Context(), giftID); err != nil {
			h.logger.Warnw("failed to delete gift image", "gift_id", giftID, "error", err)
		}
	}

	h.logger.Infow("gift deleted", "gift_id", giftID)
	writeJSON(w, http.StatusOK, map[string]string{"deleted": giftID})
}

// UploadImage stores a gift's image in the object store and records its
// key on the gift document.
func (h *GiftHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	giftID := chi.URLParam(r, "giftID")

	if _, err := h.giftService.Get(r.Context(), giftID); err != nil {
		writeServiceError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile(formFieldImage)
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing image file")
		return
	}
	defer file.Close()

	key, err := h.images.PutGiftImage(r.Context(), giftID, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		h.logger.Errorw("failed to store gift image", "gift_id", giftID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := h.giftService.AttachImage(r.Context(), giftID, key); err != nil {
		h.logger.Errorw("failed to attach gift image", "gift_id", giftID, "error", err)
		writeServiceError(w, err)
		return
	}

	h.logger.Infow("gift image uploaded", "gift_id", giftID, "key", key)
	writeJSON(w, http.StatusCreated, map[string]string{"image": key})
}

// DownloadImage streams a gift's image back to the client.
func (h *GiftHandler) DownloadImage(w http.ResponseWriter, r *http.Request) {
	giftID := chi.URLParam(r, "giftID")

	reader, contentType, err := h.images.GetGiftImage(r.Context(), giftID)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		h.logger.Errorw("failed to read gift image", "gift_id", giftID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	defer reader.Close()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, reader)
}
