package http

import (
	"context"
	"encoding/json"
	"net/http"

	"matchday-backend/internal/domain"
	"matchday-backend/internal/logger"
)

// NewsProvider serves the aggregated sports news feed.
type NewsProvider interface {
	Latest(ctx context.Context) ([]domain.NewsArticle, error)
}

// NewsHandler exposes the scraped feed over HTTP
type NewsHandler struct {
	feed NewsProvider
}

// NewNewsHandler creates a new news handler
func NewNewsHandler(feed NewsProvider) *NewsHandler {
	return &NewsHandler{feed: feed}
}

// HandleSportsNews handles GET requests for the aggregated feed
func (h *NewsHandler) HandleSportsNews(w http.ResponseWriter, r *http.Request) {
	articles, err := h.feed.Latest(r.Context())
	if err != nil {
		logger.Error("Failed to collect sports news", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "unable to collect news",
		})
		return
	}

	writeJSON(w, http.StatusOK, articles)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}
