// Package testutil holds small helpers shared by Crest test suites.
package testutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// AssertDecimalEqual compares two decimals by value, printing both on failure.
// decimal.Decimal cannot be compared with assert.Equal because equal values
// may carry different exponents.
func AssertDecimalEqual(t *testing.T, expected, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, expected.Equal(actual),
		"expected %s, got %s", expected.String(), actual.String())
}

// AssertErrorContains checks that err is non-nil and contains the substring.
func AssertErrorContains(t *testing.T, err error, expected string) {
	t.Helper()
	assert.Error(t, err)
	if err != nil {
		assert.Contains(t, err.Error(), expected)
	}
}
