package valueobject

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedCompounding is returned when a compound calculation arrives
// without a usable compounding frequency.
var ErrUnsupportedCompounding = errors.New("unsupported compounding frequency")

// CalculationType selects the interest formula.
type CalculationType string

const (
	CalculationSimple   CalculationType = "SIMPLE"
	CalculationCompound CalculationType = "COMPOUND"
)

// ParseCalculationType converts a wire string into a CalculationType.
func ParseCalculationType(s string) (CalculationType, error) {
	switch CalculationType(strings.ToUpper(strings.TrimSpace(s))) {
	case CalculationSimple:
		return CalculationSimple, nil
	case CalculationCompound:
		return CalculationCompound, nil
	default:
		return "", fmt.Errorf("unknown calculation type %q", s)
	}
}

// CompoundingFrequency is how often accrued interest is folded into principal.
type CompoundingFrequency string

const (
	CompoundDaily        CompoundingFrequency = "DAILY"
	CompoundMonthly      CompoundingFrequency = "MONTHLY"
	CompoundQuarterly    CompoundingFrequency = "QUARTERLY"
	CompoundSemiAnnually CompoundingFrequency = "SEMI_ANNUALLY"
	CompoundAnnually     CompoundingFrequency = "ANNUALLY"
)

// periodsPerYear carries each frequency's compounding period count.
var periodsPerYear = map[CompoundingFrequency]int{
	CompoundDaily:        365,
	CompoundMonthly:      12,
	CompoundQuarterly:    4,
	CompoundSemiAnnually: 2,
	CompoundAnnually:     1,
}

// ParseCompoundingFrequency converts a wire string into a frequency. It
// accepts the product catalog's legacy aliases HALF_YEARLY and YEARLY.
func ParseCompoundingFrequency(s string) (CompoundingFrequency, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DAILY":
		return CompoundDaily, nil
	case "MONTHLY":
		return CompoundMonthly, nil
	case "QUARTERLY":
		return CompoundQuarterly, nil
	case "SEMI_ANNUALLY", "HALF_YEARLY":
		return CompoundSemiAnnually, nil
	case "ANNUALLY", "YEARLY":
		return CompoundAnnually, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCompounding, s)
	}
}

// PeriodsPerYear returns the number of compounding periods per year, or
// zero for an unknown frequency.
func (f CompoundingFrequency) PeriodsPerYear() int {
	return periodsPerYear[f]
}

// Valid reports whether f is a known frequency.
func (f CompoundingFrequency) Valid() bool {
	_, ok := periodsPerYear[f]
	return ok
}
