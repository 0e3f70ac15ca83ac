package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/crestbank/crest/services/calculator/internal/application/dto"
	"github.com/crestbank/crest/services/calculator/internal/domain/model"
	"github.com/crestbank/crest/services/calculator/internal/domain/port"
	"github.com/crestbank/crest/services/calculator/internal/domain/service"
	"github.com/crestbank/crest/services/calculator/internal/domain/valueobject"
)

// customRateHeadroom bounds how far a caller-supplied rate may exceed a
// product's base rate.
var customRateHeadroom = decimal.NewFromInt(2)

// CalculateWithProduct computes maturity against a catalog product: the
// product supplies rate, limits, calculation defaults and TDS policy.
type CalculateWithProduct struct {
	engine    *service.InterestEngine
	resolver  *service.RateResolver
	catalog   port.ProductCatalog
	directory port.CustomerDirectory
	cache     port.ResultCache
	publisher port.EventPublisher
	logger    *slog.Logger
	cacheTTL  time.Duration
}

// NewCalculateWithProduct creates the use case. directory, cache and
// publisher may be nil.
func NewCalculateWithProduct(
	engine *service.InterestEngine,
	resolver *service.RateResolver,
	catalog port.ProductCatalog,
	directory port.CustomerDirectory,
	cache port.ResultCache,
	publisher port.EventPublisher,
	logger *slog.Logger,
	cacheTTL time.Duration,
) *CalculateWithProduct {
	return &CalculateWithProduct{
		engine:    engine,
		resolver:  resolver,
		catalog:   catalog,
		directory: directory,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
		cacheTTL:  cacheTTL,
	}
}

// Execute loads the product, validates the request against its limits,
// resolves the rate under the product's cap, and runs the engine.
func (uc *CalculateWithProduct) Execute(ctx context.Context, req dto.ProductCalculationRequest) (dto.CalculationResponse, error) {
	product, err := uc.catalog.FindByID(ctx, req.ProductID)
	if err != nil {
		return dto.CalculationResponse{}, err
	}
	if !product.Active {
		return dto.CalculationResponse{}, fmt.Errorf("%w: product %d is inactive", model.ErrProductNotFound, req.ProductID)
	}

	params, err := uc.parse(req, product)
	if err != nil {
		return dto.CalculationResponse{}, err
	}

	if err := product.ValidateAmount(params.principal); err != nil {
		return dto.CalculationResponse{}, err
	}
	if err := product.ValidateTenure(params.tenure); err != nil {
		return dto.CalculationResponse{}, err
	}

	params.tags, err = resolveCustomerTags(ctx, uc.directory, params.customerID, req.Classifications)
	if err != nil {
		return dto.CalculationResponse{}, err
	}

	key := cacheKey(params, &product.ID)
	if cached, ok := cacheLookup(ctx, uc.cache, uc.logger, key); ok {
		return cached, nil
	}

	maxRate := product.EffectiveMaxRate()
	resolved, err := uc.resolver.Resolve(params.baseRate, params.tags, &maxRate)
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
	resp.ProductID = &product.ID
	resp.ProductCode = product.Code
	cacheStore(ctx, uc.cache, uc.logger, key, uc.cacheTTL, resp)
	publishCalculation(ctx, uc.logger, uc.publisher, params, resp, &product.ID)
	return resp, nil
}

// parse fills calcParams from the request, falling back to the product's
// configuration for everything the caller left out.
func (uc *CalculateWithProduct) parse(req dto.ProductCalculationRequest, product *model.Product) (calcParams, error) {
	var p calcParams
	var err error

	if p.principal, err = parseDecimal("principal", req.Principal); err != nil {
		return p, err
	}

	unit, err := valueobject.ParseTenureUnit(req.TenureUnit)
	if err != nil {
		return p, err
	}
	if p.tenure, err = valueobject.NewTenure(req.TenureValue, unit); err != nil {
		return p, err
	}

	p.baseRate = product.BaseRate
	if req.CustomRate != nil {
		custom, err := parseDecimal("custom rate", *req.CustomRate)
		if err != nil {
			return p, err
		}
		// a custom rate may sweeten the deal only up to base + headroom,
		// and never past the product's own ceiling
		ceiling := decimal.Min(product.BaseRate.Add(customRateHeadroom), product.EffectiveMaxRate())
		p.baseRate = decimal.Min(custom, ceiling)
	}

	p.calcType = product.CalculationType
	if req.CalculationType != "" {
		if p.calcType, err = valueobject.ParseCalculationType(req.CalculationType); err != nil {
			return p, err
		}
	}

	p.frequency = product.CompoundingFrequency
	if req.CompoundingFrequency != "" {
		if p.frequency, err = valueobject.ParseCompoundingFrequency(req.CompoundingFrequency); err != nil {
			return p, err
		}
	}
	if p.calcType == valueobject.CalculationCompound && p.frequency == "" {
		return p, fmt.Errorf("%w: product %d configures no compounding frequency and the request supplied none",
			valueobject.ErrUnsupportedCompounding, product.ID)
	}

	p.tdsApplicable = product.TDSApplicable
	if req.TDSApplicable != nil {
		p.tdsApplicable = *req.TDSApplicable
	}
	// TDS rate: caller override, then the product's configured rate, then
	// the engine-wide default.
	switch {
	case req.TDSRate != nil:
		rate, err := parseDecimal("tds rate", *req.TDSRate)
		if err != nil {
			return p, err
		}
		p.tdsRate = &rate
	case product.TDSRate != nil:
		p.tdsRate = product.TDSRate
	}

	if p.startDate, err = parseStartDate(req.StartDate); err != nil {
		return p, err
	}
	p.customerID = req.CustomerID
	p.includeBreakdown = includeBreakdown(req.IncludeBreakdown)
	return p, nil
}
