package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/secondchance/apiserver/internal/services"
	"github.com/secondchance/apiserver/internal/store"
	"go.uber.org/zap"
)

// SearchHandler provides the filtered gift search endpoint.
type SearchHandler struct {
	giftService *services.GiftService
	logger      *zap.SugaredLogger
}

// SearchRouter registers the search route on the given router.
func SearchRouter(r chi.Router, giftService *services.GiftService, logger *zap.SugaredLogger) {
	handler := &SearchHandler{giftService: giftService, logger: logger}
	r.Get("/search", handler.SearchGifts)
}

// SearchGifts translates the optional query parameters into a composed
// filter. Absent or unparseable parameters impose no constraint, so a bare
// /search returns every gift.
func (h *SearchHandler) SearchGifts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := store.SearchFilter{
		Name:      query.Get("name"),
		Category:  query.Get("category"),
		Condition: query.Get("condition"),
	}
	if raw := query.Get("age_years"); raw != "" {
		if ageYears, err := strconv.Atoi(raw); err == nil {
			filter.MaxAgeYears = &ageYears
		}
	}

	gifts, err := h.giftService.Search(r.Context(), filter)
	if err != nil {
		h.logger.Errorw("search failed", "error", err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gifts)
}
