package valueobject

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCalculationType(t *testing.T) {
	ct, err := ParseCalculationType("simple")
	require.NoError(t, err)
	assert.Equal(t, CalculationSimple, ct)

	ct, err = ParseCalculationType(" COMPOUND ")
	require.NoError(t, err)
	assert.Equal(t, CalculationCompound, ct)

	_, err = ParseCalculationType("CONTINUOUS")
	assert.Error(t, err)
}

func TestParseCompoundingFrequency(t *testing.T) {
	tests := []struct {
		input string
		want  CompoundingFrequency
	}{
		{"DAILY", CompoundDaily},
		{"monthly", CompoundMonthly},
		{"QUARTERLY", CompoundQuarterly},
		{"SEMI_ANNUALLY", CompoundSemiAnnually},
		{"HALF_YEARLY", CompoundSemiAnnually},
		{"ANNUALLY", CompoundAnnually},
		{"YEARLY", CompoundAnnually},
	}

	for _, tt := range tests {
		got, err := ParseCompoundingFrequency(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	_, err := ParseCompoundingFrequency("WEEKLY")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedCompounding))
}

func TestPeriodsPerYear(t *testing.T) {
	assert.Equal(t, 365, CompoundDaily.PeriodsPerYear())
	assert.Equal(t, 12, CompoundMonthly.PeriodsPerYear())
	assert.Equal(t, 4, CompoundQuarterly.PeriodsPerYear())
	assert.Equal(t, 2, CompoundSemiAnnually.PeriodsPerYear())
	assert.Equal(t, 1, CompoundAnnually.PeriodsPerYear())
	assert.Equal(t, 0, CompoundingFrequency("").PeriodsPerYear())
}

func TestFrequencyValid(t *testing.T) {
	assert.True(t, CompoundQuarterly.Valid())
	assert.False(t, CompoundingFrequency("").Valid())
	assert.False(t, CompoundingFrequency("WEEKLY").Valid())
}
