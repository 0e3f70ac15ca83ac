package grpc

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/crestbank/crest/services/calculator/internal/application/usecase"
	"github.com/crestbank/crest/services/calculator/internal/domain/model"
	"github.com/crestbank/crest/services/calculator/internal/domain/service"
	"github.com/crestbank/crest/services/calculator/internal/domain/valueobject"
)

type stubCatalog struct {
	products map[int64]*model.Product
}

func (s *stubCatalog) FindByID(_ context.Context, id int64) (*model.Product, error) {
	if p, ok := s.products[id]; ok {
		return p, nil
	}
	return nil, model.ErrProductNotFound
}

func (s *stubCatalog) ListActive(_ context.Context) ([]*model.Product, error) {
	var out []*model.Product
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}

func testHandler(t *testing.T) *Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := service.NewInterestEngine(decimal.RequireFromString("10"))
	resolver := service.NewRateResolver(service.PolicyHighestBonus)
	catalog := &stubCatalog{products: map[int64]*model.Product{
		1: {
			ID:                   1,
			Code:                 "FD-STD",
			BaseRate:             decimal.RequireFromString("6.5"),
			MinAmount:            decimal.NewFromInt(1000),
			MaxAmount:            decimal.NewFromInt(10000000),
			MinTenureMonths:      6,
			MaxTenureMonths:      120,
			CalculationType:      valueobject.CalculationCompound,
			CompoundingFrequency: valueobject.CompoundQuarterly,
			TDSApplicable:        true,
			Active:               true,
		},
	}}

	standalone := usecase.NewCalculateStandalone(engine, resolver, nil, nil, nil, logger,
		decimal.RequireFromString("8.50"), time.Minute)
	withProduct := usecase.NewCalculateWithProduct(engine, resolver, catalog, nil, nil, nil, logger, time.Minute)
	compare := usecase.NewCompareScenarios(standalone)

	return NewHandler(standalone, withProduct, compare,
		usecase.NewListProducts(catalog), usecase.NewGetProduct(catalog), logger)
}

func TestHandlerCalculate(t *testing.T) {
	handler := testHandler(t)

	resp, err := handler.Calculate(context.Background(), &CalculateRequest{
		Principal:       "100000",
		AnnualRate:      "6.5",
		TenureValue:     12,
		TenureUnit:      "MONTHS",
		CalculationType: "SIMPLE",
		StartDate:       "2025-01-06",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Result)
	assert.Equal(t, "106500.00", resp.Result.MaturityAmount)
	assert.Len(t, resp.Result.Breakdown, 12)

	resp, err = handler.Calculate(context.Background(), &CalculateRequest{
		Principal:        "100000",
		AnnualRate:       "6.5",
		TenureValue:      12,
		TenureUnit:       "MONTHS",
		CalculationType:  "SIMPLE",
		StartDate:        "2025-01-06",
		ExcludeBreakdown: true,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Result.Breakdown)
}

func TestHandlerCalculateErrors(t *testing.T) {
	handler := testHandler(t)

	_, err := handler.Calculate(context.Background(), &CalculateRequest{
		Principal:       "100000",
		AnnualRate:      "6.5",
		TenureValue:     0,
		TenureUnit:      "MONTHS",
		CalculationType: "SIMPLE",
	})
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = handler.Calculate(context.Background(), &CalculateRequest{
		Principal:       "not-a-number",
		AnnualRate:      "6.5",
		TenureValue:     12,
		TenureUnit:      "MONTHS",
		CalculationType: "SIMPLE",
	})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestHandlerCalculateWithProduct(t *testing.T) {
	handler := testHandler(t)

	resp, err := handler.CalculateWithProduct(context.Background(), &CalculateWithProductRequest{
		ProductId:   1,
		Principal:   "100000",
		TenureValue: 12,
		TenureUnit:  "MONTHS",
		StartDate:   "2025-01-06",
	})
	require.NoError(t, err)
	assert.Equal(t, "106660.16", resp.Result.MaturityAmount)
	assert.Equal(t, int64(1), resp.Result.ProductId)

	_, err = handler.CalculateWithProduct(context.Background(), &CalculateWithProductRequest{
		ProductId:   99,
		Principal:   "100000",
		TenureValue: 12,
		TenureUnit:  "MONTHS",
	})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestHandlerCompareScenarios(t *testing.T) {
	handler := testHandler(t)

	resp, err := handler.CompareScenarios(context.Background(), &CompareScenariosRequest{
		Scenarios: []*CalculateRequest{
			{
				Principal:       "100000",
				AnnualRate:      "6.5",
				TenureValue:     12,
				TenureUnit:      "MONTHS",
				CalculationType: "SIMPLE",
				StartDate:       "2025-01-06",
			},
			{
				Principal:            "100000",
				AnnualRate:           "6.5",
				TenureValue:          12,
				TenureUnit:           "MONTHS",
				CalculationType:      "COMPOUND",
				CompoundingFrequency: "QUARTERLY",
				StartDate:            "2025-01-06",
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int32(1), resp.BestIndex)
	assert.Equal(t, "106660.16", resp.BestMaturityAmount)

	_, err = handler.CompareScenarios(context.Background(), &CompareScenariosRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestHandlerProducts(t *testing.T) {
	handler := testHandler(t)

	list, err := handler.ListProducts(context.Background(), &ListProductsRequest{})
	require.NoError(t, err)
	require.Len(t, list.Products, 1)
	assert.Equal(t, "FD-STD", list.Products[0].Code)

	got, err := handler.GetProduct(context.Background(), &GetProductRequest{Id: 1})
	require.NoError(t, err)
	assert.Equal(t, "FD-STD", got.Product.Code)

	_, err = handler.GetProduct(context.Background(), &GetProductRequest{Id: 999})
	assert.Equal(t, codes.NotFound, status.Code(err))
}
