package service

import (
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/crestbank/crest/services/calculator/internal/domain/valueobject"
)

// powPrecision is the number of significant digits kept when raising the
// per-period growth factor to a fractional exponent. Totals are rounded to
// two decimals only at the output boundary.
const powPrecision = 20

// maxSimpleBreakdownMonths bounds monthly row generation for the simple
// path; longer tenures still get exact totals, just no row detail.
const maxSimpleBreakdownMonths = 120

var oneHundred = decimal.NewFromInt(100)

// ErrInvalidPrincipal marks non-positive principals and other malformed
// calculation inputs.
var ErrInvalidPrincipal = errors.New("invalid principal")

// CalculationInput is one fully resolved calculation. The engine trusts the
// rate to have passed through the RateResolver already.
type CalculationInput struct {
	Principal     decimal.Decimal
	AnnualRate    decimal.Decimal
	Tenure        valueobject.Tenure
	Type          valueobject.CalculationType
	Frequency     valueobject.CompoundingFrequency
	TDSApplicable bool
	TDSRate       *decimal.Decimal
	StartDate     time.Time
}

// BreakdownRow is one period of accrual detail. All amounts are rounded to
// two decimals; the final row's cumulative interest always reconciles to the
// calculation's total interest.
type BreakdownRow struct {
	Period             int
	EndDate            time.Time
	OpeningBalance     decimal.Decimal
	InterestEarned     decimal.Decimal
	CumulativeInterest decimal.Decimal
	ClosingBalance     decimal.Decimal
}

// CalculationResult holds the totals plus a restartable breakdown sequence.
// Ranging over Breakdown regenerates the rows each time; nothing is
// materialized until a caller collects it.
type CalculationResult struct {
	MaturityAmount decimal.Decimal
	InterestEarned decimal.Decimal
	TDSRate        decimal.Decimal
	TDSAmount      decimal.Decimal
	NetInterest    decimal.Decimal
	MaturityDate   time.Time
	TenureMonths   int
	BreakdownLen   int
	Breakdown      iter.Seq[BreakdownRow]
}

// InterestEngine computes fixed-deposit maturity values. It holds no state
// between calls; every invocation is a pure function of its input.
type InterestEngine struct {
	defaultTDSRate decimal.Decimal
}

// NewInterestEngine creates an engine with the given default TDS rate
// (percentage points), applied when a request asks for TDS without a rate.
func NewInterestEngine(defaultTDSRate decimal.Decimal) *InterestEngine {
	return &InterestEngine{defaultTDSRate: defaultTDSRate}
}

// Calculate computes maturity amount, interest, TDS, maturity date, and the
// period breakdown for one input.
func (e *InterestEngine) Calculate(in CalculationInput) (CalculationResult, error) {
	if !in.Principal.IsPositive() {
		return CalculationResult{}, fmt.Errorf("%w: must be positive, got %s", ErrInvalidPrincipal, in.Principal)
	}
	if in.AnnualRate.IsNegative() {
		return CalculationResult{}, fmt.Errorf("%w: rate %s is negative", ErrInvalidRate, in.AnnualRate)
	}

	var (
		interestEarned decimal.Decimal
		maturityAmount decimal.Decimal
		breakdown      iter.Seq[BreakdownRow]
		breakdownLen   int
		err            error
	)

	switch in.Type {
	case valueobject.CalculationSimple:
		interestEarned, maturityAmount = e.simpleTotals(in)
		breakdown, breakdownLen = e.simpleBreakdown(in, interestEarned)
	case valueobject.CalculationCompound:
		interestEarned, maturityAmount, breakdown, breakdownLen, err = e.compoundAll(in)
		if err != nil {
			return CalculationResult{}, err
		}
	default:
		return CalculationResult{}, fmt.Errorf("unknown calculation type %q", in.Type)
	}

	tdsRate := decimal.Zero
	if in.TDSApplicable {
		if in.TDSRate != nil {
			tdsRate = *in.TDSRate
		} else {
			tdsRate = e.defaultTDSRate
		}
	}
	tdsAmount := interestEarned.Mul(tdsRate).Div(oneHundred).Round(2)

	return CalculationResult{
		MaturityAmount: maturityAmount,
		InterestEarned: interestEarned,
		TDSRate:        tdsRate,
		TDSAmount:      tdsAmount,
		NetInterest:    interestEarned.Sub(tdsAmount),
		MaturityDate:   in.StartDate.AddDate(0, 0, in.Tenure.Days()),
		TenureMonths:   in.Tenure.Months(),
		BreakdownLen:   breakdownLen,
		Breakdown:      breakdown,
	}, nil
}

// simpleTotals computes I = P * r * t / 100, rounding interest at the
// output boundary so maturity = principal + interest holds exactly.
func (e *InterestEngine) simpleTotals(in CalculationInput) (interest, maturity decimal.Decimal) {
	interest = in.Principal.
		Mul(in.AnnualRate).
		Mul(in.Tenure.Years()).
		Div(oneHundred).
		Round(2)
	return interest, in.Principal.Add(interest)
}

// simpleBreakdown yields one row per elapsed whole month. Interest accrues
// linearly; the last row absorbs rounding drift.
func (e *InterestEngine) simpleBreakdown(in CalculationInput, interestEarned decimal.Decimal) (iter.Seq[BreakdownRow], int) {
	months := in.Tenure.Months()
	if months <= 0 || months > maxSimpleBreakdownMonths {
		return emptyBreakdown, 0
	}

	perMonth := interestEarned.Div(decimal.NewFromInt(int64(months)))

	seq := func(yield func(BreakdownRow) bool) {
		prevCumulative := decimal.Zero
		for k := 1; k <= months; k++ {
			cumulative := perMonth.Mul(decimal.NewFromInt(int64(k))).Round(2)
			if k == months {
				cumulative = interestEarned
			}
			row := BreakdownRow{
				Period:             k,
				EndDate:            in.StartDate.AddDate(0, 0, 30*k),
				OpeningBalance:     in.Principal,
				InterestEarned:     cumulative.Sub(prevCumulative),
				CumulativeInterest: cumulative,
				ClosingBalance:     in.Principal.Add(cumulative),
			}
			if !yield(row) {
				return
			}
			prevCumulative = cumulative
		}
	}
	return seq, months
}

// compoundAll computes M = P * (1 + r/n)^(n*t) with decimal arithmetic. The
// maturity amount uses the exact fractional period count; the breakdown
// yields one row per whole period.
func (e *InterestEngine) compoundAll(in CalculationInput) (interest, maturity decimal.Decimal, breakdown iter.Seq[BreakdownRow], breakdownLen int, err error) {
	if !in.Frequency.Valid() {
		return decimal.Zero, decimal.Zero, nil, 0,
			fmt.Errorf("%w: frequency is required for compound calculations", valueobject.ErrUnsupportedCompounding)
	}

	n := in.Frequency.PeriodsPerYear()
	periodsPerYear := decimal.NewFromInt(int64(n))
	growthFactor := decimal.NewFromInt(1).Add(
		in.AnnualRate.Div(oneHundred).Div(periodsPerYear),
	)
	exactPeriods := in.Tenure.Years().Mul(periodsPerYear)

	compounded, err := growthFactor.PowWithPrecision(exactPeriods, powPrecision)
	if err != nil {
		return decimal.Zero, decimal.Zero, nil, 0, fmt.Errorf("compound growth: %w", err)
	}

	maturity = in.Principal.Mul(compounded).Round(2)
	interest = maturity.Sub(in.Principal)

	wholePeriods := int(exactPeriods.IntPart())
	daysPerPeriod := 365 / n

	seq := func(yield func(BreakdownRow) bool) {
		balanceExact := in.Principal
		prevCumulative := decimal.Zero
		for k := 1; k <= wholePeriods; k++ {
			balanceExact = balanceExact.Mul(growthFactor)

			var cumulative decimal.Decimal
			if k == wholePeriods {
				cumulative = interest
			} else {
				cumulative = balanceExact.Round(2).Sub(in.Principal)
			}

			row := BreakdownRow{
				Period:             k,
				EndDate:            in.StartDate.AddDate(0, 0, daysPerPeriod*k),
				OpeningBalance:     in.Principal.Add(prevCumulative),
				InterestEarned:     cumulative.Sub(prevCumulative),
				CumulativeInterest: cumulative,
				ClosingBalance:     in.Principal.Add(cumulative),
			}
			if !yield(row) {
				return
			}
			prevCumulative = cumulative
		}
	}
	return interest, maturity, seq, wholePeriods, nil
}

func emptyBreakdown(func(BreakdownRow) bool) {}
