package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/crestbank/crest/services/calculator/internal/application/dto"
)

// maxCompareScenarios bounds one comparison request.
const maxCompareScenarios = 10

// CompareScenarios runs several standalone scenarios and picks the one with
// the highest maturity amount.
type CompareScenarios struct {
	standalone *CalculateStandalone
}

// NewCompareScenarios creates the use case on top of the standalone path.
func NewCompareScenarios(standalone *CalculateStandalone) *CompareScenarios {
	return &CompareScenarios{standalone: standalone}
}

// Execute runs every scenario in order. A common principal, when given,
// overrides each scenario's own. Any failing scenario fails the comparison
// with its index in the error.
func (uc *CompareScenarios) Execute(ctx context.Context, req dto.CompareRequest) (dto.CompareResponse, error) {
	if len(req.Scenarios) == 0 {
		return dto.CompareResponse{}, fmt.Errorf("%w: at least one scenario is required", ErrInvalidInput)
	}
	if len(req.Scenarios) > maxCompareScenarios {
		return dto.CompareResponse{}, fmt.Errorf("%w: at most %d scenarios per comparison, got %d", ErrInvalidInput, maxCompareScenarios, len(req.Scenarios))
	}

	results := make([]dto.CalculationResponse, 0, len(req.Scenarios))
	bestIndex := 0
	var bestMaturity decimal.Decimal

	for i, scenario := range req.Scenarios {
		if req.CommonPrincipal != nil {
			scenario.Principal = *req.CommonPrincipal
		}

		resp, err := uc.standalone.Execute(ctx, scenario)
		if err != nil {
			return dto.CompareResponse{}, fmt.Errorf("scenario %d: %w", i, err)
		}
		results = append(results, resp)

		maturity, err := decimal.NewFromString(resp.MaturityAmount)
		if err != nil {
			return dto.CompareResponse{}, fmt.Errorf("scenario %d: maturity amount %q: %w", i, resp.MaturityAmount, err)
		}
		if i == 0 || maturity.GreaterThan(bestMaturity) {
			bestIndex = i
			bestMaturity = maturity
		}
	}

	return dto.CompareResponse{
		Results:            results,
		BestIndex:          bestIndex,
		BestMaturityAmount: bestMaturity.StringFixed(2),
	}, nil
}
