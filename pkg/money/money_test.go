package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amt(t *testing.T, value string) Amount {
	t.Helper()
	a, err := FromString(value, "EUR")
	require.NoError(t, err)
	return a
}

func TestRoundHalfUp(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.005", "1.01"},
		{"1.004", "1.00"},
		{"1.015", "1.02"},
		{"63.0000", "63.00"},
		{"0.125", "0.13"},
	}
	for _, tc := range cases {
		got := amt(t, tc.in).Round()
		assert.Equal(t, tc.want, got.Value.StringFixed(2), "round %s", tc.in)
	}
}

func TestMulCoeffDoesNotRound(t *testing.T) {
	a := amt(t, "4.50").MulCoeff(decimal.RequireFromString("1.1"))
	assert.Equal(t, "4.95", a.Value.String())

	// Intermediate factors keep full precision until Round.
	b := amt(t, "4.50").
		MulCoeff(decimal.RequireFromString("1.33")).
		MulCoeff(decimal.RequireFromString("0.77"))
	assert.Equal(t, "4.608450", b.Value.StringFixed(6))
	assert.Equal(t, "4.61", b.Round().Value.StringFixed(2))
}

func TestPercent(t *testing.T) {
	a := amt(t, "100.00").Percent(decimal.RequireFromString("10"))
	assert.Equal(t, "10.00", a.Value.StringFixed(2))

	b := amt(t, "90.00").Percent(decimal.RequireFromString("5"))
	assert.Equal(t, "4.50", b.Value.StringFixed(2))

	c := amt(t, "33.33").Percent(decimal.RequireFromString("7.5"))
	assert.Equal(t, "2.50", c.Value.StringFixed(2))
}

func TestCurrencyMismatch(t *testing.T) {
	eur := amt(t, "10.00")
	usd, err := FromString("10.00", "USD")
	require.NoError(t, err)

	_, err = eur.Add(usd)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)

	_, err = eur.Sub(usd)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestZeroValueCombinesWithAnyCurrency(t *testing.T) {
	var zero Amount
	sum, err := zero.Add(amt(t, "12.34"))
	require.NoError(t, err)
	assert.Equal(t, "EUR", sum.Currency)
	assert.Equal(t, "12.34", sum.Value.StringFixed(2))
}

func TestSubGoesNegative(t *testing.T) {
	out, err := amt(t, "50.00").Sub(amt(t, "1000.00"))
	require.NoError(t, err)
	assert.True(t, out.IsNegative())
}

func TestString(t *testing.T) {
	assert.Equal(t, "63.00 EUR", amt(t, "63").String())
	assert.Equal(t, "0.00", Amount{}.String())
}
