package valueobject

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidTenure marks tenure values the calculator cannot work with.
var ErrInvalidTenure = errors.New("invalid tenure")

// TenureUnit is the unit a deposit term is expressed in.
type TenureUnit string

const (
	TenureUnitDays   TenureUnit = "DAYS"
	TenureUnitMonths TenureUnit = "MONTHS"
	TenureUnitYears  TenureUnit = "YEARS"
)

// dayMultipliers carries each unit's fixed day equivalent. A month is always
// 30 days and a year 365, regardless of the calendar; downstream systems
// store results computed under this convention, so it must not change.
var dayMultipliers = map[TenureUnit]int{
	TenureUnitDays:   1,
	TenureUnitMonths: 30,
	TenureUnitYears:  365,
}

// ParseTenureUnit converts a wire string into a TenureUnit.
func ParseTenureUnit(s string) (TenureUnit, error) {
	unit := TenureUnit(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := dayMultipliers[unit]; !ok {
		return "", fmt.Errorf("%w: unknown tenure unit %q", ErrInvalidTenure, s)
	}
	return unit, nil
}

// DayMultiplier returns the unit's fixed day equivalent.
func (u TenureUnit) DayMultiplier() int {
	return dayMultipliers[u]
}

// Tenure is a validated (value, unit) deposit term.
type Tenure struct {
	value int
	unit  TenureUnit
}

// NewTenure validates and constructs a Tenure.
func NewTenure(value int, unit TenureUnit) (Tenure, error) {
	if value <= 0 {
		return Tenure{}, fmt.Errorf("%w: value must be positive, got %d", ErrInvalidTenure, value)
	}
	if _, ok := dayMultipliers[unit]; !ok {
		return Tenure{}, fmt.Errorf("%w: unknown tenure unit %q", ErrInvalidTenure, unit)
	}
	return Tenure{value: value, unit: unit}, nil
}

// Value returns the raw tenure value.
func (t Tenure) Value() int { return t.value }

// Unit returns the tenure unit.
func (t Tenure) Unit() TenureUnit { return t.unit }

// Days returns the tenure in days under the 30/365 convention.
func (t Tenure) Days() int {
	return t.value * dayMultipliers[t.unit]
}

// Months returns the tenure in whole months. Day tenures truncate: 45 days
// is one month. This lossy conversion is intentional.
func (t Tenure) Months() int {
	switch t.unit {
	case TenureUnitYears:
		return t.value * 12
	case TenureUnitMonths:
		return t.value
	default:
		return t.value / 30
	}
}

// Years returns the tenure as a fractional year count.
func (t Tenure) Years() decimal.Decimal {
	v := decimal.NewFromInt(int64(t.value))
	switch t.unit {
	case TenureUnitYears:
		return v
	case TenureUnitMonths:
		return v.Div(decimal.NewFromInt(12))
	default:
		return v.Div(decimal.NewFromInt(365))
	}
}

// String renders the tenure for logs, e.g. "12 MONTHS".
func (t Tenure) String() string {
	return fmt.Sprintf("%d %s", t.value, t.unit)
}
