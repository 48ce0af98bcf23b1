// Package api wires the library engine's HTTP surface: a small JSON API
// under /api/v1 plus the generated swagger document.
package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/TagStudioDev/TagStudio-sub002/library"
	"github.com/TagStudioDev/TagStudio-sub002/logger"
)

// NewRouter builds the full request router for a library, with routes on
// an /api/v1 subrouter so the swagger path prefix never shadows them.
func NewRouter(lib *library.Library, scannerBinary string) *mux.Router {
	h := NewHandlers(lib, scannerBinary)

	router := mux.NewRouter()
	router.Use(loggingMiddleware)

	apiRouter := router.PathPrefix("/api/v1").Subrouter()
	apiRouter.HandleFunc("/entries:refresh", h.Refresh).Methods(http.MethodPost)
	apiRouter.HandleFunc("/search", h.Search).Methods(http.MethodGet)
	apiRouter.HandleFunc("/tags", h.CreateTag).Methods(http.MethodPost)
	apiRouter.HandleFunc("/tags/{id}", h.UpdateTag).Methods(http.MethodPatch)
	apiRouter.HandleFunc("/tags/{id}", h.DeleteTag).Methods(http.MethodDelete)
	apiRouter.HandleFunc("/groups", h.Groups).Methods(http.MethodGet)

	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	))

	return router
}

// loggingMiddleware logs method, path, status, and duration for every
// request.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		logger.Infof("api: %s %s -> %d (%s)", r.Method, r.URL.Path, sw.status, time.Since(start))
	})
}

// statusWriter captures the status code written through it so the
// logging middleware can report it after the handler returns.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
