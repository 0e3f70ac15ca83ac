package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/crestbank/crest/services/calculator/internal/domain/valueobject"
)

// ErrInvalidRate marks ill-formed rate reference data.
var ErrInvalidRate = errors.New("invalid rate")

// BonusPolicy selects how multiple classification bonuses combine.
type BonusPolicy int

const (
	// PolicyHighestBonus grants only the single largest applicable bonus.
	// This is the canonical policy: it rewards the most favorable tier
	// without letting bonuses stack without bound.
	PolicyHighestBonus BonusPolicy = iota
	// PolicyStackBonuses sums every applicable bonus.
	PolicyStackBonuses
)

// ResolvedRate is the outcome of rate resolution.
type ResolvedRate struct {
	Base      decimal.Decimal
	Bonus     decimal.Decimal
	Effective decimal.Decimal
	Capped    bool
}

// RateResolver combines a base rate with classification bonuses and enforces
// a product rate cap.
type RateResolver struct {
	policy BonusPolicy
}

// NewRateResolver creates a RateResolver with the given combination policy.
func NewRateResolver(policy BonusPolicy) *RateResolver {
	return &RateResolver{policy: policy}
}

// Resolve computes the effective rate. Unknown classifications contribute
// zero. When maxRate is present and base+bonus exceeds it the rate is capped,
// not rejected; the reported bonus shrinks to whatever the cap leaves room for.
func (r *RateResolver) Resolve(
	base decimal.Decimal,
	classifications []valueobject.Classification,
	maxRate *decimal.Decimal,
) (ResolvedRate, error) {
	if base.IsNegative() {
		return ResolvedRate{}, fmt.Errorf("%w: base rate %s is negative", ErrInvalidRate, base)
	}
	if maxRate != nil && maxRate.LessThan(base) {
		return ResolvedRate{}, fmt.Errorf("%w: max rate %s below base rate %s", ErrInvalidRate, maxRate, base)
	}

	bonus := decimal.Zero
	for _, c := range classifications {
		b, ok := c.Bonus()
		if !ok {
			continue
		}
		switch r.policy {
		case PolicyStackBonuses:
			bonus = bonus.Add(b)
		default:
			if b.GreaterThan(bonus) {
				bonus = b
			}
		}
	}

	effective := base.Add(bonus)
	capped := false
	if maxRate != nil && effective.GreaterThan(*maxRate) {
		effective = *maxRate
		bonus = maxRate.Sub(base)
		capped = true
	}

	return ResolvedRate{
		Base:      base,
		Bonus:     bonus,
		Effective: effective,
		Capped:    capped,
	}, nil
}
