package valueobject

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTenure(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		unit    TenureUnit
		wantErr bool
	}{
		{"valid months", 12, TenureUnitMonths, false},
		{"valid days", 45, TenureUnitDays, false},
		{"valid years", 5, TenureUnitYears, false},
		{"zero value", 0, TenureUnitMonths, true},
		{"negative value", -3, TenureUnitYears, true},
		{"unknown unit", 6, TenureUnit("FORTNIGHTS"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tenure, err := NewTenure(tt.value, tt.unit)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidTenure))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.value, tenure.Value())
			assert.Equal(t, tt.unit, tenure.Unit())
		})
	}
}

func TestTenureDays(t *testing.T) {
	tests := []struct {
		value int
		unit  TenureUnit
		want  int
	}{
		{45, TenureUnitDays, 45},
		{1, TenureUnitMonths, 30},
		{12, TenureUnitMonths, 360},
		{1, TenureUnitYears, 365},
		{2, TenureUnitYears, 730},
	}

	for _, tt := range tests {
		tenure, err := NewTenure(tt.value, tt.unit)
		require.NoError(t, err)
		assert.Equal(t, tt.want, tenure.Days(), "%d %s", tt.value, tt.unit)
	}
}

func TestTenureMonths(t *testing.T) {
	tests := []struct {
		value int
		unit  TenureUnit
		want  int
	}{
		{12, TenureUnitMonths, 12},
		{2, TenureUnitYears, 24},
		// day conversions truncate toward zero
		{45, TenureUnitDays, 1},
		{29, TenureUnitDays, 0},
		{365, TenureUnitDays, 12},
	}

	for _, tt := range tests {
		tenure, err := NewTenure(tt.value, tt.unit)
		require.NoError(t, err)
		assert.Equal(t, tt.want, tenure.Months(), "%d %s", tt.value, tt.unit)
	}
}

func TestTenureYears(t *testing.T) {
	tests := []struct {
		value int
		unit  TenureUnit
		want  decimal.Decimal
	}{
		{1, TenureUnitYears, decimal.NewFromInt(1)},
		{12, TenureUnitMonths, decimal.NewFromInt(1)},
		{6, TenureUnitMonths, decimal.RequireFromString("0.5")},
		{730, TenureUnitDays, decimal.NewFromInt(2)},
	}

	for _, tt := range tests {
		tenure, err := NewTenure(tt.value, tt.unit)
		require.NoError(t, err)
		assert.True(t, tt.want.Equal(tenure.Years()),
			"%d %s: want %s, got %s", tt.value, tt.unit, tt.want, tenure.Years())
	}

	// 45 days is a fractional year, not a truncated one
	tenure, err := NewTenure(45, TenureUnitDays)
	require.NoError(t, err)
	want := decimal.NewFromInt(45).Div(decimal.NewFromInt(365))
	assert.True(t, want.Equal(tenure.Years()))
}

func TestParseTenureUnit(t *testing.T) {
	unit, err := ParseTenureUnit("months")
	require.NoError(t, err)
	assert.Equal(t, TenureUnitMonths, unit)

	_, err = ParseTenureUnit("WEEKS")
	assert.Error(t, err)
}
