package grpc

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/crestbank/crest/services/calculator/internal/application/dto"
	"github.com/crestbank/crest/services/calculator/internal/application/usecase"
	"github.com/crestbank/crest/services/calculator/internal/domain/model"
	"github.com/crestbank/crest/services/calculator/internal/domain/service"
	"github.com/crestbank/crest/services/calculator/internal/domain/valueobject"
)

// Compile-time assertion that Handler implements CalculatorServiceServer.
var _ CalculatorServiceServer = (*Handler)(nil)

// Handler implements the CalculatorServiceServer gRPC interface.
type Handler struct {
	UnimplementedCalculatorServiceServer
	standalone  *usecase.CalculateStandalone
	withProduct *usecase.CalculateWithProduct
	compare     *usecase.CompareScenarios
	listProds   *usecase.ListProducts
	getProd     *usecase.GetProduct
	logger      *slog.Logger
}

// NewHandler creates a new gRPC Handler.
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

// Proto-aligned request/response message types.

// CalculateRequest represents the proto CalculateRequest message.
type CalculateRequest struct {
	Principal            string   `json:"principal"`
	AnnualRate           string   `json:"annual_rate"`
	TenureValue          int32    `json:"tenure_value"`
	TenureUnit           string   `json:"tenure_unit"`
	CalculationType      string   `json:"calculation_type"`
	CompoundingFrequency string   `json:"compounding_frequency"`
	TdsApplicable        bool     `json:"tds_applicable"`
	TdsRate              string   `json:"tds_rate"`
	Classifications      []string `json:"classifications"`
	CustomerId           int64    `json:"customer_id"`
	StartDate            string   `json:"start_date"`
	ExcludeBreakdown     bool     `json:"exclude_breakdown"`
}

// CalculateWithProductRequest represents the proto CalculateWithProductRequest message.
type CalculateWithProductRequest struct {
	ProductId            int64    `json:"product_id"`
	Principal            string   `json:"principal"`
	TenureValue          int32    `json:"tenure_value"`
	TenureUnit           string   `json:"tenure_unit"`
	CustomRate           string   `json:"custom_rate"`
	CalculationType      string   `json:"calculation_type"`
	CompoundingFrequency string   `json:"compounding_frequency"`
	TdsApplicable        *bool    `json:"tds_applicable"`
	TdsRate              string   `json:"tds_rate"`
	Classifications      []string `json:"classifications"`
	CustomerId           int64    `json:"customer_id"`
	StartDate            string   `json:"start_date"`
	ExcludeBreakdown     bool     `json:"exclude_breakdown"`
}

// BreakdownRowMsg represents the proto BreakdownRow message.
type BreakdownRowMsg struct {
	Period             int32  `json:"period"`
	EndDate            string `json:"end_date"`
	OpeningBalance     string `json:"opening_balance"`
	InterestEarned     string `json:"interest_earned"`
	CumulativeInterest string `json:"cumulative_interest"`
	ClosingBalance     string `json:"closing_balance"`
}

// CalculationResultMsg represents the proto CalculationResult message.
type CalculationResultMsg struct {
	CalculationId        string             `json:"calculation_id"`
	ProductId            int64              `json:"product_id"`
	ProductCode          string             `json:"product_code"`
	Principal            string             `json:"principal"`
	BaseRate             string             `json:"base_rate"`
	AppliedBonus         string             `json:"applied_bonus"`
	EffectiveRate        string             `json:"effective_rate"`
	RateCapped           bool               `json:"rate_capped"`
	CalculationType      string             `json:"calculation_type"`
	CompoundingFrequency string             `json:"compounding_frequency"`
	TenureMonths         int32              `json:"tenure_months"`
	StartDate            string             `json:"start_date"`
	MaturityDate         string             `json:"maturity_date"`
	MaturityAmount       string             `json:"maturity_amount"`
	InterestEarned       string             `json:"interest_earned"`
	TdsRate              string             `json:"tds_rate"`
	TdsAmount            string             `json:"tds_amount"`
	NetInterest          string             `json:"net_interest"`
	Breakdown            []*BreakdownRowMsg `json:"breakdown"`
	Cached               bool               `json:"cached"`
}

// CalculateResponse represents the proto CalculateResponse message.
type CalculateResponse struct {
	Result *CalculationResultMsg `json:"result"`
}

// CompareScenariosRequest represents the proto CompareScenariosRequest message.
type CompareScenariosRequest struct {
	Scenarios       []*CalculateRequest `json:"scenarios"`
	CommonPrincipal string              `json:"common_principal"`
}

// CompareScenariosResponse represents the proto CompareScenariosResponse message.
type CompareScenariosResponse struct {
	Results            []*CalculationResultMsg `json:"results"`
	BestIndex          int32                   `json:"best_index"`
	BestMaturityAmount string                  `json:"best_maturity_amount"`
}

// ProductMsg represents the proto Product message.
type ProductMsg struct {
	Id                   int64  `json:"id"`
	Code                 string `json:"code"`
	Name                 string `json:"name"`
	BaseRate             string `json:"base_rate"`
	MaxRate              string `json:"max_rate"`
	MinAmount            string `json:"min_amount"`
	MaxAmount            string `json:"max_amount"`
	MinTenureMonths      int32  `json:"min_tenure_months"`
	MaxTenureMonths      int32  `json:"max_tenure_months"`
	CalculationType      string `json:"calculation_type"`
	CompoundingFrequency string `json:"compounding_frequency"`
	TdsApplicable        bool   `json:"tds_applicable"`
	TdsRate              string `json:"tds_rate"`
	Active               bool   `json:"active"`
}

// ListProductsRequest represents the proto ListProductsRequest message.
type ListProductsRequest struct{}

// ListProductsResponse represents the proto ListProductsResponse message.
type ListProductsResponse struct {
	Products []*ProductMsg `json:"products"`
}

// GetProductRequest represents the proto GetProductRequest message.
type GetProductRequest struct {
	Id int64 `json:"id"`
}

// GetProductResponse represents the proto GetProductResponse message.
type GetProductResponse struct {
	Product *ProductMsg `json:"product"`
}

// Calculate runs a standalone calculation.
func (h *Handler) Calculate(ctx context.Context, req *CalculateRequest) (*CalculateResponse, error) {
	resp, err := h.standalone.Execute(ctx, toCalculationDTO(req))
	if err != nil {
		return nil, grpcError(err)
	}
	return &CalculateResponse{Result: toResultMsg(resp)}, nil
}

// CalculateWithProduct runs a calculation against a catalog product.
func (h *Handler) CalculateWithProduct(ctx context.Context, req *CalculateWithProductRequest) (*CalculateResponse, error) {
	d := dto.ProductCalculationRequest{
		ProductID:            req.ProductId,
		Principal:            req.Principal,
		TenureValue:          int(req.TenureValue),
		TenureUnit:           req.TenureUnit,
		CalculationType:      req.CalculationType,
		CompoundingFrequency: req.CompoundingFrequency,
		TDSApplicable:        req.TdsApplicable,
		Classifications:      req.Classifications,
		StartDate:            req.StartDate,
	}
	if req.CustomRate != "" {
		d.CustomRate = &req.CustomRate
	}
	if req.TdsRate != "" {
		d.TDSRate = &req.TdsRate
	}
	if req.CustomerId != 0 {
		d.CustomerID = &req.CustomerId
	}
	if req.ExcludeBreakdown {
		include := false
		d.IncludeBreakdown = &include
	}

	resp, err := h.withProduct.Execute(ctx, d)
	if err != nil {
		return nil, grpcError(err)
	}
	return &CalculateResponse{Result: toResultMsg(resp)}, nil
}

// CompareScenarios runs several standalone scenarios and flags the best.
func (h *Handler) CompareScenarios(ctx context.Context, req *CompareScenariosRequest) (*CompareScenariosResponse, error) {
	d := dto.CompareRequest{}
	if req.CommonPrincipal != "" {
		d.CommonPrincipal = &req.CommonPrincipal
	}
	for _, scenario := range req.Scenarios {
		d.Scenarios = append(d.Scenarios, toCalculationDTO(scenario))
	}

	resp, err := h.compare.Execute(ctx, d)
	if err != nil {
		return nil, grpcError(err)
	}

	out := &CompareScenariosResponse{
		BestIndex:          int32(resp.BestIndex),
		BestMaturityAmount: resp.BestMaturityAmount,
	}
	for _, result := range resp.Results {
		out.Results = append(out.Results, toResultMsg(result))
	}
	return out, nil
}

// ListProducts returns all active catalog products.
func (h *Handler) ListProducts(ctx context.Context, _ *ListProductsRequest) (*ListProductsResponse, error) {
	products, err := h.listProds.Execute(ctx)
	if err != nil {
		return nil, grpcError(err)
	}
	out := &ListProductsResponse{}
	for _, p := range products {
		out.Products = append(out.Products, toProductMsg(p))
	}
	return out, nil
}

// GetProduct returns one product by id.
func (h *Handler) GetProduct(ctx context.Context, req *GetProductRequest) (*GetProductResponse, error) {
	product, err := h.getProd.Execute(ctx, req.Id)
	if err != nil {
		return nil, grpcError(err)
	}
	return &GetProductResponse{Product: toProductMsg(product)}, nil
}

func toCalculationDTO(req *CalculateRequest) dto.CalculationRequest {
	d := dto.CalculationRequest{
		Principal:            req.Principal,
		AnnualRate:           req.AnnualRate,
		TenureValue:          int(req.TenureValue),
		TenureUnit:           req.TenureUnit,
		CalculationType:      req.CalculationType,
		CompoundingFrequency: req.CompoundingFrequency,
		TDSApplicable:        req.TdsApplicable,
		Classifications:      req.Classifications,
		StartDate:            req.StartDate,
	}
	if req.TdsRate != "" {
		d.TDSRate = &req.TdsRate
	}
	if req.CustomerId != 0 {
		d.CustomerID = &req.CustomerId
	}
	if req.ExcludeBreakdown {
		include := false
		d.IncludeBreakdown = &include
	}
	return d
}

func toResultMsg(resp dto.CalculationResponse) *CalculationResultMsg {
	msg := &CalculationResultMsg{
		CalculationId:        resp.CalculationID,
		ProductCode:          resp.ProductCode,
		Principal:            resp.Principal,
		BaseRate:             resp.BaseRate,
		AppliedBonus:         resp.AppliedBonus,
		EffectiveRate:        resp.EffectiveRate,
		RateCapped:           resp.RateCapped,
		CalculationType:      resp.CalculationType,
		CompoundingFrequency: resp.CompoundingFrequency,
		TenureMonths:         int32(resp.TenureMonths),
		StartDate:            resp.StartDate,
		MaturityDate:         resp.MaturityDate,
		MaturityAmount:       resp.MaturityAmount,
		InterestEarned:       resp.InterestEarned,
		TdsRate:              resp.TDSRate,
		TdsAmount:            resp.TDSAmount,
		NetInterest:          resp.NetInterest,
		Cached:               resp.Cached,
	}
	if resp.ProductID != nil {
		msg.ProductId = *resp.ProductID
	}
	for _, row := range resp.Breakdown {
		msg.Breakdown = append(msg.Breakdown, &BreakdownRowMsg{
			Period:             int32(row.Period),
			EndDate:            row.EndDate,
			OpeningBalance:     row.OpeningBalance,
			InterestEarned:     row.InterestEarned,
			CumulativeInterest: row.CumulativeInterest,
			ClosingBalance:     row.ClosingBalance,
		})
	}
	return msg
}

func toProductMsg(p dto.ProductResponse) *ProductMsg {
	msg := &ProductMsg{
		Id:                   p.ID,
		Code:                 p.Code,
		Name:                 p.Name,
		BaseRate:             p.BaseRate,
		MinAmount:            p.MinAmount,
		MaxAmount:            p.MaxAmount,
		MinTenureMonths:      int32(p.MinTenureMonths),
		MaxTenureMonths:      int32(p.MaxTenureMonths),
		CalculationType:      p.CalculationType,
		CompoundingFrequency: p.CompoundingFrequency,
		TdsApplicable:        p.TDSApplicable,
		Active:               p.Active,
	}
	if p.MaxRate != nil {
		msg.MaxRate = *p.MaxRate
	}
	if p.TDSRate != nil {
		msg.TdsRate = *p.TDSRate
	}
	return msg
}

// grpcError maps domain errors onto gRPC status codes.
func grpcError(err error) error {
	switch {
	case errors.Is(err, model.ErrProductNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, valueobject.ErrInvalidTenure),
		errors.Is(err, valueobject.ErrUnsupportedCompounding),
		errors.Is(err, service.ErrInvalidRate),
		errors.Is(err, service.ErrInvalidPrincipal),
		errors.Is(err, model.ErrProductLimits),
		errors.Is(err, usecase.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
