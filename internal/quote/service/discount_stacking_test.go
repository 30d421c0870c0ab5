package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePremium_SequentialDiscountStacking(t *testing.T) {
	f := newFixture(t)
	f.seedAgeCoefficient(18, 40, "1.0")
	f.seedLevel("PREMIUM", "10.00", "100000", "EUR")
	f.seedPromo("SUMMER10", "10")
	f.seedGroupRule("GROUP5", "5", 4)

	req := baseRequest()
	req.CoverageLevelCode = "PREMIUM"
	req.EndDate = req.StartDate.AddDate(0, 0, 10)
	req.PromoCode = "SUMMER10"
	req.PersonCount = 5

	res, err := f.svc.CalculatePremium(context.Background(), req)
	assert.NoError(t, err)

	// 100.00 -> 90.00 after promo -> 85.50 after the group discount;
	// each stage computes against the remainder, not the original premium.
	assert.Equal(t, "100.00", res.BasePremium.Value.StringFixed(2))
	assert.NotNil(t, res.PromoDiscount)
	assert.True(t, res.PromoDiscount.Applied)
	assert.Equal(t, "10.00", res.PromoDiscount.Amount.Value.StringFixed(2))
	assert.NotNil(t, res.SecondaryDiscount)
	assert.Equal(t, "GROUP5", res.SecondaryDiscount.Code)
	assert.Equal(t, "4.50", res.SecondaryDiscount.Amount.Value.StringFixed(2))
	assert.Equal(t, "14.50", res.TotalDiscount.Value.StringFixed(2))
	assert.Equal(t, "85.50", res.FinalPremium.Value.StringFixed(2))
}

func TestCalculatePremium_MinimumPremiumFloor(t *testing.T) {
	f := newFixture(t)
	f.seedAgeCoefficient(18, 40, "1.0")
	f.seedLevel("MINI", "0.50", "5000", "EUR")

	req := baseRequest()
	req.CoverageLevelCode = "MINI"
	req.EndDate = req.StartDate.AddDate(0, 0, 10)

	res, err := f.svc.CalculatePremium(context.Background(), req)
	assert.NoError(t, err)

	assert.Equal(t, "5.00", res.BasePremium.Value.StringFixed(2))
	assert.Equal(t, "10.00", res.FinalPremium.Value.StringFixed(2))

	last := res.Steps[len(res.Steps)-1]
	assert.Equal(t, "Minimum premium applied", last.Description)
	assert.Equal(t, "10.00", last.Result.Value.StringFixed(2))
}

func TestCalculatePremium_ClampsToZero(t *testing.T) {
	f := newFixture(t)
	f.seedAgeCoefficient(18, 40, "1.0")
	f.seedLevel("PREMIUM", "10.00", "100000", "EUR")
	f.seedRisk("SPORT", "Sports coverage", "0.2", false)
	f.seedBundle("SPORT_HALF", "50", "SPORT")
	f.seedPromo("MEGA", "150")

	req := baseRequest()
	req.CoverageLevelCode = "PREMIUM"
	req.EndDate = req.StartDate.AddDate(0, 0, 10)
	req.SelectedRiskCodes = []string{"SPORT"}
	req.PromoCode = "MEGA"

	res, err := f.svc.CalculatePremium(context.Background(), req)
	assert.NoError(t, err)

	// base 120.00, bundle takes 60.00, promo takes 90.00 of the remainder
	assert.Equal(t, "120.00", res.BasePremium.Value.StringFixed(2))
	assert.Equal(t, "60.00", res.BundleDiscount.Amount.Value.StringFixed(2))
	assert.Equal(t, "90.00", res.PromoDiscount.Amount.Value.StringFixed(2))
	assert.Equal(t, "0.00", res.FinalPremium.Value.StringFixed(2))
	assert.False(t, res.FinalPremium.IsNegative())

	last := res.Steps[len(res.Steps)-1]
	assert.Equal(t, "Clamped to zero", last.Description)
}

func TestCalculatePremium_ZeroEffectStagesOmitted(t *testing.T) {
	f := newFixture(t)
	f.seedAgeCoefficient(18, 40, "1.0")

	res, err := f.svc.CalculatePremium(context.Background(), baseRequest())
	assert.NoError(t, err)

	for _, step := range res.Steps {
		assert.NotContains(t, step.Description, "Additional risks")
		assert.NotContains(t, step.Description, "discount")
	}
	assert.Nil(t, res.PromoDiscount)
	assert.Nil(t, res.SecondaryDiscount)
}
