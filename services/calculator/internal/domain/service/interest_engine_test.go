package service

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crestbank/crest/pkg/testutil"
	"github.com/crestbank/crest/services/calculator/internal/domain/valueobject"
)

var testStart = testutil.TestStartDate

func newTestEngine() *InterestEngine {
	return NewInterestEngine(dec("10"))
}

func mustTenure(t *testing.T, value int, unit valueobject.TenureUnit) valueobject.Tenure {
	t.Helper()
	tenure, err := valueobject.NewTenure(value, unit)
	require.NoError(t, err)
	return tenure
}

func collectRows(result CalculationResult) []BreakdownRow {
	var rows []BreakdownRow
	for row := range result.Breakdown {
		rows = append(rows, row)
	}
	return rows
}

func TestCalculateSimple(t *testing.T) {
	engine := newTestEngine()

	result, err := engine.Calculate(CalculationInput{
		Principal:  dec("100000"),
		AnnualRate: dec("6.5"),
		Tenure:     mustTenure(t, 12, valueobject.TenureUnitMonths),
		Type:       valueobject.CalculationSimple,
		StartDate:  testStart,
	})
	require.NoError(t, err)

	assertDec(t, "6500", result.InterestEarned)
	assertDec(t, "106500", result.MaturityAmount)
	assertDec(t, "0", result.TDSAmount)
	assertDec(t, "6500", result.NetInterest)
	assert.Equal(t, 12, result.TenureMonths)
	// 12 months normalize to 360 days under the 30-day convention
	assert.Equal(t, testStart.AddDate(0, 0, 360), result.MaturityDate)
}

func TestCalculateSimpleWithBonusRate(t *testing.T) {
	engine := newTestEngine()

	// 50000 at a resolved 5.50% for two years
	result, err := engine.Calculate(CalculationInput{
		Principal:  dec("50000"),
		AnnualRate: dec("5.50"),
		Tenure:     mustTenure(t, 24, valueobject.TenureUnitMonths),
		Type:       valueobject.CalculationSimple,
		StartDate:  testStart,
	})
	require.NoError(t, err)

	assertDec(t, "5500", result.InterestEarned)
	assertDec(t, "55500", result.MaturityAmount)
}

func TestCalculateCompoundQuarterly(t *testing.T) {
	engine := newTestEngine()

	result, err := engine.Calculate(CalculationInput{
		Principal:  dec("100000"),
		AnnualRate: dec("6.5"),
		Tenure:     mustTenure(t, 12, valueobject.TenureUnitMonths),
		Type:       valueobject.CalculationCompound,
		Frequency:  valueobject.CompoundQuarterly,
		StartDate:  testStart,
	})
	require.NoError(t, err)

	// 100000 * (1 + 0.065/4)^4 = 106660.160879...
	assertDec(t, "106660.16", result.MaturityAmount)
	assertDec(t, "6660.16", result.InterestEarned)
	assert.True(t, result.MaturityAmount.Equal(dec("100000").Add(result.InterestEarned)))

	rows := collectRows(result)
	require.Len(t, rows, 4)
	assert.Equal(t, 4, result.BreakdownLen)

	assertDec(t, "1625.00", rows[0].CumulativeInterest)
	assertDec(t, "3276.41", rows[1].CumulativeInterest)
	assertDec(t, "6660.16", rows[3].CumulativeInterest)
	assertDec(t, "106660.16", rows[3].ClosingBalance)
	assert.Equal(t, testStart.AddDate(0, 0, 91), rows[0].EndDate)
	assert.Equal(t, testStart.AddDate(0, 0, 364), rows[3].EndDate)
}

func TestCalculateCompoundFractionalPeriods(t *testing.T) {
	engine := newTestEngine()

	// 45 days at quarterly compounding is less than one whole period:
	// the maturity amount still grows, the breakdown is empty.
	result, err := engine.Calculate(CalculationInput{
		Principal:  dec("100000"),
		AnnualRate: dec("6.5"),
		Tenure:     mustTenure(t, 45, valueobject.TenureUnitDays),
		Type:       valueobject.CalculationCompound,
		Frequency:  valueobject.CompoundQuarterly,
		StartDate:  testStart,
	})
	require.NoError(t, err)

	assert.True(t, result.MaturityAmount.GreaterThan(dec("100000")))
	assert.True(t, result.MaturityAmount.LessThan(dec("101625")))
	assert.Equal(t, 0, result.BreakdownLen)
	assert.Empty(t, collectRows(result))
	assert.Equal(t, 1, result.TenureMonths)
	assert.Equal(t, testStart.AddDate(0, 0, 45), result.MaturityDate)
}

func TestCalculateCompoundRequiresFrequency(t *testing.T) {
	engine := newTestEngine()

	_, err := engine.Calculate(CalculationInput{
		Principal:  dec("100000"),
		AnnualRate: dec("6.5"),
		Tenure:     mustTenure(t, 12, valueobject.TenureUnitMonths),
		Type:       valueobject.CalculationCompound,
		StartDate:  testStart,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, valueobject.ErrUnsupportedCompounding))
}

func TestCalculateTDS(t *testing.T) {
	engine := newTestEngine()

	base := CalculationInput{
		Principal:     dec("100000"),
		AnnualRate:    dec("6.5"),
		Tenure:        mustTenure(t, 12, valueobject.TenureUnitMonths),
		Type:          valueobject.CalculationSimple,
		TDSApplicable: true,
		StartDate:     testStart,
	}

	// default rate
	result, err := engine.Calculate(base)
	require.NoError(t, err)
	assertDec(t, "10", result.TDSRate)
	assertDec(t, "650", result.TDSAmount)
	assertDec(t, "5850", result.NetInterest)
	// TDS never touches the maturity amount
	assertDec(t, "106500", result.MaturityAmount)

	// explicit override
	override := base
	override.TDSRate = decPtr("7.5")
	result, err = engine.Calculate(override)
	require.NoError(t, err)
	assertDec(t, "487.50", result.TDSAmount)
	assertDec(t, "6012.50", result.NetInterest)
}

func TestSimpleBreakdown(t *testing.T) {
	engine := newTestEngine()

	result, err := engine.Calculate(CalculationInput{
		Principal:  dec("100000"),
		AnnualRate: dec("6.5"),
		Tenure:     mustTenure(t, 12, valueobject.TenureUnitMonths),
		Type:       valueobject.CalculationSimple,
		StartDate:  testStart,
	})
	require.NoError(t, err)

	rows := collectRows(result)
	require.Len(t, rows, 12)

	// linear accrual, principal never grows
	sum := decimal.Zero
	for i, row := range rows {
		assert.Equal(t, i+1, row.Period)
		assertDec(t, "100000", row.OpeningBalance)
		assert.Equal(t, testStart.AddDate(0, 0, 30*(i+1)), row.EndDate)
		sum = sum.Add(row.InterestEarned)
		assert.True(t, row.CumulativeInterest.Equal(sum))
	}
	assert.True(t, sum.Equal(result.InterestEarned),
		"rows sum to %s, want %s", sum, result.InterestEarned)
	assertDec(t, "106500", rows[11].ClosingBalance)
}

func TestBreakdownIsRestartable(t *testing.T) {
	engine := newTestEngine()

	result, err := engine.Calculate(CalculationInput{
		Principal:  dec("100000"),
		AnnualRate: dec("6.5"),
		Tenure:     mustTenure(t, 6, valueobject.TenureUnitMonths),
		Type:       valueobject.CalculationSimple,
		StartDate:  testStart,
	})
	require.NoError(t, err)

	first := collectRows(result)
	second := collectRows(result)
	require.Len(t, second, len(first))
	for i := range first {
		assert.True(t, first[i].CumulativeInterest.Equal(second[i].CumulativeInterest))
	}

	// early break must not poison a later pass
	for range result.Breakdown {
		break
	}
	assert.Len(t, collectRows(result), len(first))
}

func TestSimpleBreakdownBounds(t *testing.T) {
	engine := newTestEngine()

	// sub-month tenure: totals yes, rows no
	result, err := engine.Calculate(CalculationInput{
		Principal:  dec("100000"),
		AnnualRate: dec("6.5"),
		Tenure:     mustTenure(t, 20, valueobject.TenureUnitDays),
		Type:       valueobject.CalculationSimple,
		StartDate:  testStart,
	})
	require.NoError(t, err)
	assert.True(t, result.InterestEarned.IsPositive())
	assert.Equal(t, 0, result.BreakdownLen)

	// tenures past ten years skip row generation entirely
	result, err = engine.Calculate(CalculationInput{
		Principal:  dec("100000"),
		AnnualRate: dec("6.5"),
		Tenure:     mustTenure(t, 11, valueobject.TenureUnitYears),
		Type:       valueobject.CalculationSimple,
		StartDate:  testStart,
	})
	require.NoError(t, err)
	assert.True(t, result.InterestEarned.IsPositive())
	assert.Equal(t, 0, result.BreakdownLen)
	assert.Empty(t, collectRows(result))
}

func TestCalculateRejectsBadInput(t *testing.T) {
	engine := newTestEngine()
	tenure := mustTenure(t, 12, valueobject.TenureUnitMonths)

	_, err := engine.Calculate(CalculationInput{
		Principal:  dec("0"),
		AnnualRate: dec("6.5"),
		Tenure:     tenure,
		Type:       valueobject.CalculationSimple,
		StartDate:  testStart,
	})
	assert.Error(t, err)

	_, err = engine.Calculate(CalculationInput{
		Principal:  dec("100000"),
		AnnualRate: dec("-1"),
		Tenure:     tenure,
		Type:       valueobject.CalculationSimple,
		StartDate:  testStart,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRate))

	_, err = engine.Calculate(CalculationInput{
		Principal:  dec("100000"),
		AnnualRate: dec("6.5"),
		Tenure:     tenure,
		Type:       valueobject.CalculationType("CONTINUOUS"),
		StartDate:  testStart,
	})
	assert.Error(t, err)
}

func TestInterestGrowsWithTenure(t *testing.T) {
	engine := newTestEngine()

	for _, calcType := range []valueobject.CalculationType{
		valueobject.CalculationSimple,
		valueobject.CalculationCompound,
	} {
		prev := decimal.Zero
		for _, months := range []int{6, 12, 24, 60, 120} {
			result, err := engine.Calculate(CalculationInput{
				Principal:  dec("100000"),
				AnnualRate: dec("6.5"),
				Tenure:     mustTenure(t, months, valueobject.TenureUnitMonths),
				Type:       calcType,
				Frequency:  valueobject.CompoundQuarterly,
				StartDate:  testStart,
			})
			require.NoError(t, err)
			assert.True(t, result.InterestEarned.GreaterThanOrEqual(prev),
				"%s interest fell from %s to %s at %d months",
				calcType, prev, result.InterestEarned, months)
			prev = result.InterestEarned
		}
	}
}

func TestCalculateIsDeterministic(t *testing.T) {
	engine := newTestEngine()

	inputs := map[string]CalculationInput{
		"simple": {
			Principal:  dec("100000"),
			AnnualRate: dec("6.5"),
			Tenure:     mustTenure(t, 12, valueobject.TenureUnitMonths),
			Type:       valueobject.CalculationSimple,
			StartDate:  testStart,
		},
		"compound": {
			Principal:  dec("100000"),
			AnnualRate: dec("6.5"),
			Tenure:     mustTenure(t, 12, valueobject.TenureUnitMonths),
			Type:       valueobject.CalculationCompound,
			Frequency:  valueobject.CompoundQuarterly,
			StartDate:  testStart,
		},
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			first, err := engine.Calculate(input)
			require.NoError(t, err)
			second, err := engine.Calculate(input)
			require.NoError(t, err)

			assert.Equal(t, first.MaturityAmount.String(), second.MaturityAmount.String())
			assert.Equal(t, first.InterestEarned.String(), second.InterestEarned.String())
			assert.Equal(t, first.TDSRate.String(), second.TDSRate.String())
			assert.Equal(t, first.TDSAmount.String(), second.TDSAmount.String())
			assert.Equal(t, first.NetInterest.String(), second.NetInterest.String())
			assert.Equal(t, first.MaturityDate, second.MaturityDate)
			assert.Equal(t, first.TenureMonths, second.TenureMonths)
			assert.Equal(t, first.BreakdownLen, second.BreakdownLen)
			assert.Equal(t, collectRows(first), collectRows(second))
		})
	}
}
