package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/smallbiznis/tripquote/internal/quote/domain"
	riskdomain "github.com/smallbiznis/tripquote/internal/risktype/domain"
)

func hasWarning(warnings []domain.Warning, code string) bool {
	for _, w := range warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

func TestCalculatePremium_AgeCoefficientFallback(t *testing.T) {
	f := newFixture(t)
	// no age_coefficients rows seeded on purpose

	res, err := f.svc.CalculatePremium(context.Background(), baseRequest())
	assert.NoError(t, err)

	// built-in bracket for age 35 is 1.1: 4.50 * 1.1 * 14
	assert.True(t, res.AgeCoefficient.Equal(dec("1.1")))
	assert.Equal(t, "Adults", res.AgeGroupDescription)
	assert.Equal(t, "69.30", res.FinalPremium.Value.StringFixed(2))
	assert.True(t, hasWarning(res.Warnings, domain.WarningAgeCoefficientFallback))
}

func TestCalculatePremium_CountryDefaultFallback(t *testing.T) {
	f := newFixture(t)
	f.seedAgeCoefficient(18, 40, "1.0")

	req := baseRequest()
	req.UseCountryDefaultRate = true

	res, err := f.svc.CalculatePremium(context.Background(), req)
	assert.NoError(t, err)

	// no default rate for ES: fall back, never fail
	assert.Equal(t, domain.StrategyMedicalLevel, res.Strategy)
	assert.Equal(t, "63.00", res.FinalPremium.Value.StringFixed(2))
	assert.True(t, hasWarning(res.Warnings, domain.WarningStrategyFallback))
}

func TestCalculatePremium_UnknownPromoCode(t *testing.T) {
	f := newFixture(t)
	f.seedAgeCoefficient(18, 40, "1.0")

	req := baseRequest()
	req.PromoCode = "NOPE"

	res, err := f.svc.CalculatePremium(context.Background(), req)
	assert.NoError(t, err)

	assert.NotNil(t, res.PromoDiscount)
	assert.False(t, res.PromoDiscount.Applied)
	assert.Equal(t, "63.00", res.FinalPremium.Value.StringFixed(2))
	assert.True(t, hasWarning(res.Warnings, domain.WarningPromoRejected))
}

func TestCalculatePremium_MissingCountry(t *testing.T) {
	f := newFixture(t)
	f.seedAgeCoefficient(18, 40, "1.0")

	req := baseRequest()
	req.CountryCode = "XX"

	_, err := f.svc.CalculatePremium(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrMissingReferenceData)

	var missing *domain.MissingReferenceDataError
	assert.True(t, errors.As(err, &missing))
	assert.Equal(t, "country", missing.Resource)
	assert.Equal(t, "XX", missing.Code)
}

func TestCalculatePremium_MissingMandatoryRisk(t *testing.T) {
	f := newFixture(t)
	f.seedAgeCoefficient(18, 40, "1.0")
	assert.NoError(t, f.db.
		Where("code = ?", riskdomain.MandatoryMedicalRiskCode).
		Delete(&riskdomain.RiskType{}).Error)

	_, err := f.svc.CalculatePremium(context.Background(), baseRequest())
	assert.ErrorIs(t, err, domain.ErrMissingReferenceData)
}

func TestCalculatePremium_AgeOutOfRange(t *testing.T) {
	f := newFixture(t)
	f.seedAgeCoefficient(0, 120, "1.0")

	req := baseRequest()
	req.BirthDate = date(1940, time.January, 1)

	_, err := f.svc.CalculatePremium(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrAgeOutOfRange)
}

func TestCalculatePremium_InvalidDates(t *testing.T) {
	f := newFixture(t)
	f.seedAgeCoefficient(18, 40, "1.0")

	req := baseRequest()
	req.BirthDate = date(2030, time.January, 1)
	_, err := f.svc.CalculatePremium(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	req = baseRequest()
	req.EndDate = req.StartDate.AddDate(0, 0, -1)
	_, err = f.svc.CalculatePremium(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	req = baseRequest()
	req.BirthDate = time.Time{}
	_, err = f.svc.CalculatePremium(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}
