package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/tripquote/internal/quote/domain"
)

// maxInsurableAge is the underwriting ceiling. Ages above it are declined
// regardless of what the coefficient table contains.
const maxInsurableAge = 80

type ageBracket struct {
	from, to    int
	coefficient decimal.Decimal
	label       string
}

// fallbackAgeBrackets is the built-in coefficient table used when the
// age_coefficients reference table has no row for the age.
var fallbackAgeBrackets = []ageBracket{
	{0, 5, dec("1.1"), "Infants and toddlers"},
	{6, 17, dec("0.9"), "Children and teenagers"},
	{18, 30, dec("1.0"), "Young adults"},
	{31, 40, dec("1.1"), "Adults"},
	{41, 50, dec("1.3"), "Middle-aged"},
	{51, 60, dec("1.6"), "Senior"},
	{61, 70, dec("2.0"), "Elderly"},
	{71, 80, dec("2.5"), "Very elderly"},
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// resolveAge returns whole years completed between birth and the reference
// date.
func resolveAge(birth, reference time.Time) (int, error) {
	if birth.IsZero() {
		return 0, domain.ErrInvalidDate
	}
	if birth.After(reference) {
		return 0, domain.ErrInvalidDate
	}
	age := reference.Year() - birth.Year()
	if reference.Month() < birth.Month() ||
		(reference.Month() == birth.Month() && reference.Day() < birth.Day()) {
		age--
	}
	return age, nil
}

// resolveAgeCoefficient prefers the effective-dated reference table and falls
// back to the built-in brackets. The boolean reports whether the fallback was
// used.
func (s *Service) resolveAgeCoefficient(ctx context.Context, age int, at time.Time) (decimal.Decimal, string, bool, error) {
	if age < 0 || age > maxInsurableAge {
		return decimal.Zero, "", false, domain.ErrAgeOutOfRange
	}
	row, err := s.ageCoefficients.FindForAge(ctx, age, at)
	if err != nil {
		return decimal.Zero, "", false, err
	}
	if row != nil {
		return row.Coefficient, ageGroupDescription(age), false, nil
	}
	for _, b := range fallbackAgeBrackets {
		if age >= b.from && age <= b.to {
			return b.coefficient, b.label, true, nil
		}
	}
	return decimal.Zero, "", false, domain.ErrAgeOutOfRange
}

func ageGroupDescription(age int) string {
	for _, b := range fallbackAgeBrackets {
		if age >= b.from && age <= b.to {
			return b.label
		}
	}
	return ""
}
