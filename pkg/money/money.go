// Package money provides a currency-tagged decimal amount with a single
// rounding policy: scale 2, round half up, applied only at settlement points.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrCurrencyMismatch = errors.New("currency_mismatch")

// Scale is the settlement scale for all monetary values.
const Scale = 2

// Amount is a monetary value. The zero value is 0.00 with no currency and
// combines with any currency.
type Amount struct {
	Value    decimal.Decimal `json:"value"`
	Currency string          `json:"currency"`
}

func New(value decimal.Decimal, currency string) Amount {
	return Amount{Value: value, Currency: currency}
}

func FromString(value, currency string) (Amount, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Amount{}, fmt.Errorf("parse amount %q: %w", value, err)
	}
	return Amount{Value: d, Currency: currency}, nil
}

// MustFromString is FromString for literals; it panics on a malformed value.
func MustFromString(value, currency string) Amount {
	a, err := FromString(value, currency)
	if err != nil {
		panic(err)
	}
	return a
}

func Zero(currency string) Amount {
	return Amount{Value: decimal.Zero, Currency: currency}
}

// Round settles the amount to Scale decimals, half up. decimal.Round rounds
// half away from zero, which is half up for the non-negative amounts this
// pipeline produces.
func (a Amount) Round() Amount {
	return Amount{Value: a.Value.Round(Scale), Currency: a.Currency}
}

// MulCoeff multiplies by a dimensionless coefficient without rounding.
// Callers round at settlement points only.
func (a Amount) MulCoeff(coeff decimal.Decimal) Amount {
	return Amount{Value: a.Value.Mul(coeff), Currency: a.Currency}
}

// MulInt multiplies by an integer count (e.g. trip days) without rounding.
func (a Amount) MulInt(n int64) Amount {
	return Amount{Value: a.Value.Mul(decimal.NewFromInt(n)), Currency: a.Currency}
}

// Percent returns a/100*pct, settled to Scale decimals.
func (a Amount) Percent(pct decimal.Decimal) Amount {
	return Amount{
		Value:    a.Value.Mul(pct).Div(decimal.NewFromInt(100)).Round(Scale),
		Currency: a.Currency,
	}
}

func (a Amount) Add(b Amount) (Amount, error) {
	if err := a.checkCurrency(b); err != nil {
		return Amount{}, err
	}
	return Amount{Value: a.Value.Add(b.Value), Currency: a.mergedCurrency(b)}, nil
}

func (a Amount) Sub(b Amount) (Amount, error) {
	if err := a.checkCurrency(b); err != nil {
		return Amount{}, err
	}
	return Amount{Value: a.Value.Sub(b.Value), Currency: a.mergedCurrency(b)}, nil
}

func (a Amount) IsZero() bool     { return a.Value.IsZero() }
func (a Amount) IsNegative() bool { return a.Value.IsNegative() }

// LessThan compares magnitudes and ignores currency; use Add/Sub for
// arithmetic that must enforce matching currencies.
func (a Amount) LessThan(b Amount) bool { return a.Value.LessThan(b.Value) }

func (a Amount) Equal(b Amount) bool {
	return a.Currency == b.Currency && a.Value.Equal(b.Value)
}

// String renders the settled value, e.g. "63.00 EUR".
func (a Amount) String() string {
	if a.Currency == "" {
		return a.Value.StringFixed(Scale)
	}
	return fmt.Sprintf("%s %s", a.Value.StringFixed(Scale), a.Currency)
}

func (a Amount) checkCurrency(b Amount) error {
	if a.Currency == "" || b.Currency == "" || a.Currency == b.Currency {
		return nil
	}
	return fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, a.Currency, b.Currency)
}

func (a Amount) mergedCurrency(b Amount) string {
	if a.Currency != "" {
		return a.Currency
	}
	return b.Currency
}
