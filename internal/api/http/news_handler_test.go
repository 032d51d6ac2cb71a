package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchday-backend/internal/domain"
)

type stubFeed struct {
	articles []domain.NewsArticle
	err      error
}

func (s *stubFeed) Latest(context.Context) ([]domain.NewsArticle, error) {
	return s.articles, s.err
}

func TestHandleSportsNewsReturnsFeed(t *testing.T) {
	feed := &stubFeed{articles: []domain.NewsArticle{
		{Title: "Tin 1", Link: "https://example.com/1", Source: "VnExpress"},
	}}
	router := NewRouter(NewNewsHandler(feed))

	req := httptest.NewRequest(http.MethodGet, "/api/sports-news", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var got []domain.NewsArticle
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, feed.articles, got)
}

func TestHandleSportsNewsReportsCollectionFailure(t *testing.T) {
	router := NewRouter(NewNewsHandler(&stubFeed{err: errors.New("all sources down")}))

	req := httptest.NewRequest(http.MethodGet, "/api/sports-news", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Contains(t, body, "error")
}

func TestRouterRejectsNonGET(t *testing.T) {
	router := NewRouter(NewNewsHandler(&stubFeed{}))

	req := httptest.NewRequest(http.MethodPost, "/api/sports-news", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
