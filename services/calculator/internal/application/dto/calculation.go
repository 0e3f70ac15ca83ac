// Package dto defines the calculator's transport-facing request and
// response shapes. Amounts travel as decimal strings; rounding to two
// decimals happens here, at the output boundary, and nowhere earlier.
package dto

// CalculationRequest is a standalone calculation: the caller supplies the
// rate directly instead of referencing a product.
type CalculationRequest struct {
	Principal            string   `json:"principal"`
	AnnualRate           string   `json:"annualRate"`
	TenureValue          int      `json:"tenureValue"`
	TenureUnit           string   `json:"tenureUnit"`
	CalculationType      string   `json:"calculationType"`
	CompoundingFrequency string   `json:"compoundingFrequency,omitempty"`
	TDSApplicable        bool     `json:"tdsApplicable,omitempty"`
	TDSRate              *string  `json:"tdsRate,omitempty"`
	Classifications      []string `json:"classifications,omitempty"`
	CustomerID           *int64   `json:"customerId,omitempty"`
	StartDate            string   `json:"startDate,omitempty"`
	// IncludeBreakdown defaults to true; nil means include.
	IncludeBreakdown *bool `json:"includeBreakdown,omitempty"`
}

// ProductCalculationRequest is a calculation against a catalog product.
// Rate, limits, calculation method and TDS defaults come from the product;
// the request may narrow but not escape them.
type ProductCalculationRequest struct {
	ProductID            int64    `json:"productId"`
	Principal            string   `json:"principal"`
	TenureValue          int      `json:"tenureValue"`
	TenureUnit           string   `json:"tenureUnit"`
	CustomRate           *string  `json:"customRate,omitempty"`
	CalculationType      string   `json:"calculationType,omitempty"`
	CompoundingFrequency string   `json:"compoundingFrequency,omitempty"`
	TDSApplicable        *bool    `json:"tdsApplicable,omitempty"`
	TDSRate              *string  `json:"tdsRate,omitempty"`
	Classifications      []string `json:"classifications,omitempty"`
	CustomerID           *int64   `json:"customerId,omitempty"`
	StartDate            string   `json:"startDate,omitempty"`
	IncludeBreakdown     *bool    `json:"includeBreakdown,omitempty"`
}

// CompareRequest runs several standalone scenarios side by side. When
// CommonPrincipal is set it overrides each scenario's principal so the
// comparison holds the deposit constant.
type CompareRequest struct {
	Scenarios       []CalculationRequest `json:"scenarios"`
	CommonPrincipal *string              `json:"commonPrincipal,omitempty"`
}

// BreakdownRow is one accrual period in a calculation response.
type BreakdownRow struct {
	Period             int    `json:"period"`
	EndDate            string `json:"endDate"`
	OpeningBalance     string `json:"openingBalance"`
	InterestEarned     string `json:"interestEarned"`
	CumulativeInterest string `json:"cumulativeInterest"`
	ClosingBalance     string `json:"closingBalance"`
}

// CalculationResponse is the full outcome of one calculation.
type CalculationResponse struct {
	CalculationID        string         `json:"calculationId"`
	ProductID            *int64         `json:"productId,omitempty"`
	ProductCode          string         `json:"productCode,omitempty"`
	Principal            string         `json:"principal"`
	BaseRate             string         `json:"baseRate"`
	AppliedBonus         string         `json:"appliedBonus"`
	EffectiveRate        string         `json:"effectiveRate"`
	RateCapped           bool           `json:"rateCapped"`
	CalculationType      string         `json:"calculationType"`
	CompoundingFrequency string         `json:"compoundingFrequency,omitempty"`
	TenureMonths         int            `json:"tenureMonths"`
	StartDate            string         `json:"startDate"`
	MaturityDate         string         `json:"maturityDate"`
	MaturityAmount       string         `json:"maturityAmount"`
	InterestEarned       string         `json:"interestEarned"`
	TDSRate              string         `json:"tdsRate"`
	TDSAmount            string         `json:"tdsAmount"`
	NetInterest          string         `json:"netInterest"`
	Breakdown            []BreakdownRow `json:"breakdown,omitempty"`
	Cached               bool           `json:"cached,omitempty"`
}

// CompareResponse returns every scenario's result and flags the one with
// the highest maturity amount.
type CompareResponse struct {
	Results            []CalculationResponse `json:"results"`
	BestIndex          int                   `json:"bestIndex"`
	BestMaturityAmount string                `json:"bestMaturityAmount"`
}

// ProductResponse mirrors a catalog product on the wire.
type ProductResponse struct {
	ID                   int64   `json:"id"`
	Code                 string  `json:"code"`
	Name                 string  `json:"name"`
	BaseRate             string  `json:"baseRate"`
	MaxRate              *string `json:"maxRate,omitempty"`
	MinAmount            string  `json:"minAmount"`
	MaxAmount            string  `json:"maxAmount"`
	MinTenureMonths      int     `json:"minTenureMonths"`
	MaxTenureMonths      int     `json:"maxTenureMonths"`
	CalculationType      string  `json:"calculationType"`
	CompoundingFrequency string  `json:"compoundingFrequency,omitempty"`
	TDSApplicable        bool    `json:"tdsApplicable"`
	TDSRate              *string `json:"tdsRate,omitempty"`
	Active               bool    `json:"active"`
}
