package valueobject

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Classification is a customer tier granting a rate bonus.
type Classification string

const (
	ClassificationSeniorCitizen Classification = "SENIOR_CITIZEN"
	ClassificationSuperSenior   Classification = "SUPER_SENIOR"
	ClassificationPremium       Classification = "PREMIUM"
	ClassificationVIP           Classification = "VIP"
)

// rateBonuses maps each known tier to its additive bonus in percentage
// points. Unknown tiers contribute nothing rather than failing the request.
var rateBonuses = map[Classification]decimal.Decimal{
	ClassificationSeniorCitizen: decimal.NewFromFloat(0.50),
	ClassificationSuperSenior:   decimal.NewFromFloat(0.75),
	ClassificationPremium:       decimal.NewFromFloat(0.25),
	ClassificationVIP:           decimal.NewFromFloat(0.50),
}

// NormalizeClassification canonicalizes a wire tag.
func NormalizeClassification(s string) Classification {
	return Classification(strings.ToUpper(strings.TrimSpace(s)))
}

// Bonus returns the tier's rate bonus and whether the tier is known.
func (c Classification) Bonus() (decimal.Decimal, bool) {
	bonus, ok := rateBonuses[c]
	return bonus, ok
}
