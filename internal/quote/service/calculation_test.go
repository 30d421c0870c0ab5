package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/smallbiznis/tripquote/internal/agecoefficient"
	agedomain "github.com/smallbiznis/tripquote/internal/agecoefficient/domain"
	"github.com/smallbiznis/tripquote/internal/bundle"
	bundledomain "github.com/smallbiznis/tripquote/internal/bundle/domain"
	"github.com/smallbiznis/tripquote/internal/config"
	"github.com/smallbiznis/tripquote/internal/country"
	countrydomain "github.com/smallbiznis/tripquote/internal/country/domain"
	"github.com/smallbiznis/tripquote/internal/coveragelevel"
	coveragedomain "github.com/smallbiznis/tripquote/internal/coveragelevel/domain"
	discountdomain "github.com/smallbiznis/tripquote/internal/discount/domain"
	discountrepo "github.com/smallbiznis/tripquote/internal/discount/repository"
	discountservice "github.com/smallbiznis/tripquote/internal/discount/service"
	"github.com/smallbiznis/tripquote/internal/durationcoefficient"
	durationdomain "github.com/smallbiznis/tripquote/internal/durationcoefficient/domain"
	promodomain "github.com/smallbiznis/tripquote/internal/promo/domain"
	promorepo "github.com/smallbiznis/tripquote/internal/promo/repository"
	promoservice "github.com/smallbiznis/tripquote/internal/promo/service"
	"github.com/smallbiznis/tripquote/internal/quote/domain"
	"github.com/smallbiznis/tripquote/internal/risktype"
	riskdomain "github.com/smallbiznis/tripquote/internal/risktype/domain"
)

var seedFrom = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	t    *testing.T
	db   *gorm.DB
	node *snowflake.Node
	svc  domain.Service
}

// newFixture seeds the reference data every quote needs: destination
// country, coverage level and the mandatory medical risk. Tests add the rest.
func newFixture(t *testing.T) *fixture {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(
		&countrydomain.Country{},
		&countrydomain.DefaultRate{},
		&coveragedomain.CoverageLevel{},
		&riskdomain.RiskType{},
		&riskdomain.AgeRiskModifier{},
		&agedomain.AgeCoefficient{},
		&durationdomain.DurationCoefficient{},
		&bundledomain.RiskBundle{},
		&promodomain.PromoCode{},
		&discountdomain.DiscountRule{},
	)
	assert.NoError(t, err)

	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)
	log := zap.NewNop()

	svc := NewService(ServiceParam{
		Log:     log,
		GenID:   node,
		Pricing: config.NewStaticPricingConfigHolder(config.DefaultPricingConfig()),

		Countries:       country.NewRepository(db),
		CoverageLevels:  coveragelevel.NewRepository(db),
		RiskTypes:       risktype.NewRepository(db),
		AgeCoefficients: agecoefficient.NewRepository(db),
		Durations:       durationcoefficient.NewRepository(db),
		Bundles:         bundle.NewRepository(db),
		Promos: promoservice.NewService(promoservice.ServiceParam{
			Log:  log,
			Repo: promorepo.NewRepository(db),
		}),
		Discounts: discountservice.NewService(discountservice.ServiceParam{
			Log:  log,
			Repo: discountrepo.NewRepository(db),
		}),
	})

	f := &fixture{t: t, db: db, node: node, svc: svc}
	f.seedCountry("ES", "Spain", "1.0")
	f.seedLevel("STANDARD", "4.50", "30000", "EUR")
	f.seedRisk(riskdomain.MandatoryMedicalRiskCode, "Travel medical", "1.0", true)
	return f
}

func (f *fixture) create(row any) {
	assert.NoError(f.t, f.db.Create(row).Error)
}

func (f *fixture) seedCountry(code, name, coeff string) {
	f.create(&countrydomain.Country{
		ID: f.node.Generate(), Code: code, Name: name,
		RiskCoefficient: dec(coeff), ValidFrom: seedFrom,
	})
}

func (f *fixture) seedDefaultRate(code, rate, currency string) {
	f.create(&countrydomain.DefaultRate{
		ID: f.node.Generate(), CountryCode: code,
		DayRate: dec(rate), Currency: currency, ValidFrom: seedFrom,
	})
}

func (f *fixture) seedLevel(code, rate, coverage, currency string) {
	f.create(&coveragedomain.CoverageLevel{
		ID: f.node.Generate(), Code: code, Name: code,
		DayRate: dec(rate), CoverageAmount: dec(coverage),
		Currency: currency, ValidFrom: seedFrom,
	})
}

func (f *fixture) seedRisk(code, name, coeff string, mandatory bool) {
	f.create(&riskdomain.RiskType{
		ID: f.node.Generate(), Code: code, Name: name,
		Coefficient: dec(coeff), IsMandatory: mandatory, ValidFrom: seedFrom,
	})
}

func (f *fixture) seedModifier(riskCode string, from, to int, modifier string) {
	f.create(&riskdomain.AgeRiskModifier{
		ID: f.node.Generate(), RiskCode: riskCode,
		AgeFrom: from, AgeTo: to, Modifier: dec(modifier), ValidFrom: seedFrom,
	})
}

func (f *fixture) seedAgeCoefficient(from, to int, coeff string) {
	f.create(&agedomain.AgeCoefficient{
		ID: f.node.Generate(), AgeFrom: from, AgeTo: to,
		Coefficient: dec(coeff), ValidFrom: seedFrom,
	})
}

func (f *fixture) seedDuration(from int, to *int, coeff string) {
	f.create(&durationdomain.DurationCoefficient{
		ID: f.node.Generate(), DayFrom: from, DayTo: to,
		Coefficient: dec(coeff), ValidFrom: seedFrom,
	})
}

func (f *fixture) seedBundle(code, pct string, required ...string) {
	f.create(&bundledomain.RiskBundle{
		ID: f.node.Generate(), Code: code, Name: code,
		DiscountPercent:   dec(pct),
		RequiredRiskCodes: datatypes.NewJSONSlice(required),
		ValidFrom:         seedFrom,
	})
}

func (f *fixture) seedPromo(code, pct string) {
	f.create(&promodomain.PromoCode{
		ID: f.node.Generate(), Code: code,
		DiscountPercent: dec(pct), Active: true, ValidFrom: seedFrom,
	})
}

func (f *fixture) seedGroupRule(code, pct string, minPersons int) {
	f.create(&discountdomain.DiscountRule{
		ID: f.node.Generate(), Code: code, Name: code,
		Kind: discountdomain.RuleKindGroup, Percent: dec(pct),
		MinPersonCount: minPersons, ValidFrom: seedFrom,
	})
}

// baseRequest is a 14-day (exclusive) trip to Spain for a 35-year-old.
func baseRequest() domain.QuoteRequest {
	return domain.QuoteRequest{
		BirthDate:         date(1991, time.March, 10),
		StartDate:         date(2026, time.June, 1),
		EndDate:           date(2026, time.June, 15),
		CountryCode:       "ES",
		CoverageLevelCode: "STANDARD",
		PersonCount:       1,
	}
}

func TestCalculatePremium_BaseScenario(t *testing.T) {
	f := newFixture(t)
	f.seedAgeCoefficient(18, 40, "1.0")

	res, err := f.svc.CalculatePremium(context.Background(), baseRequest())
	assert.NoError(t, err)

	assert.Equal(t, domain.StrategyMedicalLevel, res.Strategy)
	assert.Equal(t, 35, res.Age)
	assert.Equal(t, "Adults", res.AgeGroupDescription)
	assert.Equal(t, 14, res.TripDays)
	assert.Equal(t, "EUR", res.Currency)

	// 4.50 * 1.0 * 1.0 * 1.0 * 14
	assert.Equal(t, "63.00", res.BasePremium.Value.StringFixed(2))
	assert.Equal(t, "63.00", res.FinalPremium.Value.StringFixed(2))
	assert.True(t, res.AdditionalRiskCoefficient.IsZero())
	assert.False(t, res.BundleDiscount.Applied)
	assert.True(t, res.BundleDiscount.Amount.IsZero())
	assert.True(t, res.TotalDiscount.IsZero())
	assert.Empty(t, res.Warnings)
	assert.NotNil(t, res.CoverageAmount)
	assert.True(t, res.CoverageAmount.Equal(dec("30000")))

	// base rate, age, country, duration, day multiplication
	assert.Len(t, res.Steps, 5)
	assert.Equal(t, "63.00", res.Steps[4].Result.Value.StringFixed(2))
}

func TestCalculatePremium_AdditionalRisksWithAgeModifier(t *testing.T) {
	f := newFixture(t)
	f.seedAgeCoefficient(18, 40, "1.0")
	f.seedRisk("SPORT", "Sports coverage", "0.4", false)
	f.seedModifier("SPORT", 30, 40, "1.5")

	req := baseRequest()
	req.SelectedRiskCodes = []string{"SPORT"}

	res, err := f.svc.CalculatePremium(context.Background(), req)
	assert.NoError(t, err)

	// modified coefficient 0.4 * 1.5 = 0.6
	assert.True(t, res.AdditionalRiskCoefficient.Equal(dec("0.6")))
	assert.Len(t, res.Risks, 1)
	assert.Equal(t, "SPORT", res.Risks[0].Code)
	assert.True(t, res.Risks[0].AgeModifier.Equal(dec("1.5")))
	// per-risk premium over the inclusive span: 4.50 * 0.6 * 15
	assert.Equal(t, "40.50", res.Risks[0].Premium.Value.StringFixed(2))

	// base = 4.50 * 1.6 * 14
	assert.Equal(t, "100.80", res.BasePremium.Value.StringFixed(2))
	assert.Equal(t, "100.80", res.FinalPremium.Value.StringFixed(2))
}

func TestCalculatePremium_DurationBand(t *testing.T) {
	f := newFixture(t)
	f.seedAgeCoefficient(18, 40, "1.0")
	to := 30
	f.seedDuration(11, &to, "1.2")

	res, err := f.svc.CalculatePremium(context.Background(), baseRequest())
	assert.NoError(t, err)

	// the band is keyed on the inclusive span, 15 days here
	assert.True(t, res.DurationCoefficient.Equal(dec("1.2")))
	// 4.50 * 1.2 * 14
	assert.Equal(t, "75.60", res.FinalPremium.Value.StringFixed(2))
}

func TestCalculatePremium_CountryDefaultStrategy(t *testing.T) {
	f := newFixture(t)
	f.seedCountry("TH", "Thailand", "1.9")
	f.seedDefaultRate("TH", "6.00", "EUR")
	f.seedAgeCoefficient(18, 40, "1.0")

	req := baseRequest()
	req.CountryCode = "TH"
	req.UseCountryDefaultRate = true

	res, err := f.svc.CalculatePremium(context.Background(), req)
	assert.NoError(t, err)

	assert.Equal(t, domain.StrategyCountryDefault, res.Strategy)
	// inclusive span, and the country coefficient stays out of the product
	assert.Equal(t, 15, res.TripDays)
	assert.Equal(t, "90.00", res.FinalPremium.Value.StringFixed(2))
	assert.True(t, res.CountryCoefficient.Equal(dec("1.9")))
	assert.Nil(t, res.CoverageAmount)
	assert.Empty(t, res.Warnings)
}

func TestCalculatePremium_BestBundleByAmount(t *testing.T) {
	f := newFixture(t)
	f.seedAgeCoefficient(18, 40, "1.0")
	f.seedRisk("SPORT", "Sports coverage", "0.2", false)
	f.seedRisk("GEAR", "Equipment coverage", "0.2", false)
	f.seedBundle("SPORT_ONLY", "10", "SPORT")
	f.seedBundle("ADVENTURE_PACK", "15", "SPORT", "GEAR")

	req := baseRequest()
	req.SelectedRiskCodes = []string{"SPORT", "GEAR"}

	res, err := f.svc.CalculatePremium(context.Background(), req)
	assert.NoError(t, err)

	assert.True(t, res.BundleDiscount.Applied)
	assert.Equal(t, "ADVENTURE_PACK", res.BundleDiscount.Code)
	// base = 4.50 * 1.4 * 14 = 88.20; 15% of it = 13.23
	assert.Equal(t, "13.23", res.BundleDiscount.Amount.Value.StringFixed(2))
	assert.Equal(t, "74.97", res.FinalPremium.Value.StringFixed(2))
}
