// Package rest exposes the calculator over a JSON HTTP API.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/crestbank/crest/services/calculator/internal/application/dto"
	"github.com/crestbank/crest/services/calculator/internal/application/usecase"
	"github.com/crestbank/crest/services/calculator/internal/domain/model"
	"github.com/crestbank/crest/services/calculator/internal/domain/service"
	"github.com/crestbank/crest/services/calculator/internal/domain/valueobject"
)

// Handler serves the calculator's REST endpoints.
type Handler struct {
	standalone  *usecase.CalculateStandalone
	withProduct *usecase.CalculateWithProduct
	compare     *usecase.CompareScenarios
	listProds   *usecase.ListProducts
	getProd     *usecase.GetProduct
	logger      *slog.Logger
}

// NewHandler creates a REST Handler.
func NewHandler(
	standalone *usecase.CalculateStandalone,
	withProduct *usecase.CalculateWithProduct,
	compare *usecase.CompareScenarios,
	listProds *usecase.ListProducts,
	getProd *usecase.GetProduct,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		standalone:  standalone,
		withProduct: withProduct,
		compare:     compare,
		listProds:   listProds,
		getProd:     getProd,
		logger:      logger,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// Calculate handles POST /api/v1/calculations.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.standalone.Execute(r.Context(), req)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	RecordCalculation("standalone")
	writeJSON(w, http.StatusOK, resp)
}

// CalculateWithProduct handles POST /api/v1/products/{id}/calculations.
func (h *Handler) CalculateWithProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req dto.ProductCalculationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.ProductID = productID

	resp, err := h.withProduct.Execute(r.Context(), req)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	RecordCalculation("product")
	writeJSON(w, http.StatusOK, resp)
}

// Compare handles POST /api/v1/calculations/compare.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var req dto.CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.compare.Execute(r.Context(), req)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	RecordCalculation("compare")
	writeJSON(w, http.StatusOK, resp)
}

// ListProducts handles GET /api/v1/products.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.listProds.Execute(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// GetProduct handles GET /api/v1/products/{id}.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.getProd.Execute(r.Context(), productID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// writeDomainError maps domain errors onto HTTP status codes.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrProductNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, valueobject.ErrInvalidTenure),
		errors.Is(err, valueobject.ErrUnsupportedCompounding),
		errors.Is(err, service.ErrInvalidRate),
		errors.Is(err, service.ErrInvalidPrincipal),
		errors.Is(err, model.ErrProductLimits),
		errors.Is(err, usecase.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
