package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/crestbank/crest/pkg/auth"
)

// NewRouter wires the REST routes. Calculation endpoints require a valid
// token when authService is non-nil; health, metrics and product reads stay
// open. metricsHandler serves the Prometheus scrape endpoint.
func NewRouter(handler *Handler, health *HealthHandler, metricsHandler http.Handler, authService *auth.Service) http.Handler {
	r := mux.NewRouter()
	r.Use(MetricsMiddleware)

	r.HandleFunc("/healthz", health.Liveness).Methods(http.MethodGet)
	r.HandleFunc("/readyz", health.Readiness).Methods(http.MethodGet)
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	protect := func(h http.HandlerFunc) http.Handler {
		if authService == nil {
			return h
		}
		return auth.Middleware(authService)(h)
	}

	api.Handle("/calculations", protect(handler.Calculate)).Methods(http.MethodPost)
	api.Handle("/calculations/compare", protect(handler.Compare)).Methods(http.MethodPost)
	api.HandleFunc("/products", handler.ListProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", handler.GetProduct).Methods(http.MethodGet)
	api.Handle("/products/{id}/calculations", protect(handler.CalculateWithProduct)).Methods(http.MethodPost)

	return cors.Default().Handler(r)
}
