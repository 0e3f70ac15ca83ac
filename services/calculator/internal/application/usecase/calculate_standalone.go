package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/crestbank/crest/services/calculator/internal/application/dto"
	"github.com/crestbank/crest/services/calculator/internal/domain/port"
	"github.com/crestbank/crest/services/calculator/internal/domain/service"
	"github.com/crestbank/crest/services/calculator/internal/domain/valueobject"
)

// CalculateStandalone computes maturity for a caller-supplied rate, without
// a product. The configured global cap bounds the effective rate.
type CalculateStandalone struct {
	engine    *service.InterestEngine
	resolver  *service.RateResolver
	directory port.CustomerDirectory
	cache     port.ResultCache
	publisher port.EventPublisher
	logger    *slog.Logger
	maxRate   decimal.Decimal
	cacheTTL  time.Duration
}

// NewCalculateStandalone creates the use case. directory, cache and
// publisher may be nil; the corresponding step is skipped.
func NewCalculateStandalone(
	engine *service.InterestEngine,
	resolver *service.RateResolver,
	directory port.CustomerDirectory,
	cache port.ResultCache,
	publisher port.EventPublisher,
	logger *slog.Logger,
	maxRate decimal.Decimal,
	cacheTTL time.Duration,
) *CalculateStandalone {
	return &CalculateStandalone{
		engine:    engine,
		resolver:  resolver,
		directory: directory,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
		maxRate:   maxRate,
		cacheTTL:  cacheTTL,
	}
}

// Execute parses, resolves the rate, and runs the engine. Cached results
// short-circuit the engine entirely.
func (uc *CalculateStandalone) Execute(ctx context.Context, req dto.CalculationRequest) (dto.CalculationResponse, error) {
	params, err := uc.parse(req)
	if err != nil {
		return dto.CalculationResponse{}, err
	}

	params.tags, err = resolveCustomerTags(ctx, uc.directory, params.customerID, req.Classifications)
	if err != nil {
		return dto.CalculationResponse{}, err
	}

	key := cacheKey(params, nil)
	if cached, ok := cacheLookup(ctx, uc.cache, uc.logger, key); ok {
		return cached, nil
	}

	resolved, err := uc.resolver.Resolve(params.baseRate, params.tags, &uc.maxRate)
	if err != nil {
		return dto.CalculationResponse{}, err
	}

	result, err := uc.engine.Calculate(service.CalculationInput{
		Principal:     params.principal,
		AnnualRate:    resolved.Effective,
		Tenure:        params.tenure,
		Type:          params.calcType,
		Frequency:     params.frequency,
		TDSApplicable: params.tdsApplicable,
		TDSRate:       params.tdsRate,
		StartDate:     params.startDate,
	})
	if err != nil {
		return dto.CalculationResponse{}, err
	}

	resp := buildResponse(params, resolved, result)
	cacheStore(ctx, uc.cache, uc.logger, key, uc.cacheTTL, resp)
	publishCalculation(ctx, uc.logger, uc.publisher, params, resp, nil)
	return resp, nil
}

func (uc *CalculateStandalone) parse(req dto.CalculationRequest) (calcParams, error) {
	var p calcParams
	var err error

	if p.principal, err = parseDecimal("principal", req.Principal); err != nil {
		return p, err
	}
	if p.baseRate, err = parseDecimal("annual rate", req.AnnualRate); err != nil {
		return p, err
	}

	unit, err := valueobject.ParseTenureUnit(req.TenureUnit)
	if err != nil {
		return p, err
	}
	if p.tenure, err = valueobject.NewTenure(req.TenureValue, unit); err != nil {
		return p, err
	}

	if p.calcType, err = valueobject.ParseCalculationType(req.CalculationType); err != nil {
		return p, err
	}
	if req.CompoundingFrequency != "" {
		if p.frequency, err = valueobject.ParseCompoundingFrequency(req.CompoundingFrequency); err != nil {
			return p, err
		}
	}
	if p.calcType == valueobject.CalculationCompound && p.frequency == "" {
		return p, fmt.Errorf("%w: compounding frequency is required for COMPOUND", valueobject.ErrUnsupportedCompounding)
	}

	p.tdsApplicable = req.TDSApplicable
	if req.TDSRate != nil {
		rate, err := parseDecimal("tds rate", *req.TDSRate)
		if err != nil {
			return p, err
		}
		p.tdsRate = &rate
	}

	if p.startDate, err = parseStartDate(req.StartDate); err != nil {
		return p, err
	}
	p.customerID = req.CustomerID
	p.includeBreakdown = includeBreakdown(req.IncludeBreakdown)
	return p, nil
}

