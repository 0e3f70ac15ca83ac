package rest

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crestbank/crest/pkg/postgres"
)

// HealthHandler provides HTTP health check endpoints.
type HealthHandler struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewHealthHandler creates a new HealthHandler. pool may be nil when the
// service runs without a database.
func NewHealthHandler(pool *pgxpool.Pool, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{pool: pool, logger: logger}
}

// healthResponse is the JSON body returned by health endpoints.
type healthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Liveness returns 200 if the process is alive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "UP",
		Service:   "calculator-service",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Readiness returns 200 if the service is ready to accept traffic. It
// checks the database connection when one is configured.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)
	status := "UP"
	code := http.StatusOK

	if h.pool != nil {
		if err := postgres.HealthCheck(r.Context(), h.pool); err != nil {
			checks["postgres"] = fmt.Sprintf("DOWN: %v", err)
			status = "DOWN"
			code = http.StatusServiceUnavailable
			h.logger.Warn("readiness check failed", "error", err)
		} else {
			checks["postgres"] = "UP"
		}
	}

	writeJSON(w, code, healthResponse{
		Status:    status,
		Service:   "calculator-service",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	})
}
