// Package model holds the calculator's domain entities.
package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/crestbank/crest/services/calculator/internal/domain/valueobject"
)

var (
	// ErrProductNotFound marks lookups for unknown or inactive products.
	ErrProductNotFound = errors.New("product not found")
	// ErrProductLimits marks requests outside a product's amount or tenure window.
	ErrProductLimits = errors.New("outside product limits")
)

// maxRateHeadroom caps how far above the base rate a product may pay when it
// declares no explicit maximum.
var maxRateHeadroom = decimal.NewFromInt(2)

// Product is a deposit product definition from the catalog. Rates are
// percentage points, amounts are currency units.
type Product struct {
	ID                   int64
	Code                 string
	Name                 string
	BaseRate             decimal.Decimal
	MaxRate              *decimal.Decimal
	MinAmount            decimal.Decimal
	MaxAmount            decimal.Decimal
	MinTenureMonths      int
	MaxTenureMonths      int
	CalculationType      valueobject.CalculationType
	CompoundingFrequency valueobject.CompoundingFrequency
	TDSApplicable        bool
	TDSRate              *decimal.Decimal
	Active               bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// EffectiveMaxRate is the ceiling any resolved rate for this product may
// reach. Products without an explicit maximum get base rate plus two points.
func (p *Product) EffectiveMaxRate() decimal.Decimal {
	if p.MaxRate != nil {
		return *p.MaxRate
	}
	return p.BaseRate.Add(maxRateHeadroom)
}

// ValidateAmount checks the principal against the product's deposit window.
func (p *Product) ValidateAmount(principal decimal.Decimal) error {
	if principal.LessThan(p.MinAmount) {
		return fmt.Errorf("%w: amount %s below minimum %s", ErrProductLimits, principal, p.MinAmount)
	}
	if p.MaxAmount.IsPositive() && principal.GreaterThan(p.MaxAmount) {
		return fmt.Errorf("%w: amount %s above maximum %s", ErrProductLimits, principal, p.MaxAmount)
	}
	return nil
}

// ValidateTenure checks the tenure, in whole months, against the product's
// tenure window. Day tenures shorter than a month normalize to zero months
// and fail any product with a positive minimum.
func (p *Product) ValidateTenure(tenure valueobject.Tenure) error {
	months := tenure.Months()
	if months < p.MinTenureMonths {
		return fmt.Errorf("%w: tenure %s below minimum %d months", ErrProductLimits, tenure, p.MinTenureMonths)
	}
	if p.MaxTenureMonths > 0 && months > p.MaxTenureMonths {
		return fmt.Errorf("%w: tenure %s above maximum %d months", ErrProductLimits, tenure, p.MaxTenureMonths)
	}
	return nil
}
