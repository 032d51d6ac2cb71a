package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter wires the API routes behind permissive CORS so mobile clients
// can call the feed directly.
func NewRouter(news *NewsHandler) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/api/sports-news", news.HandleSportsNews).Methods(http.MethodGet)

	return cors.AllowAll().Handler(r)
}
