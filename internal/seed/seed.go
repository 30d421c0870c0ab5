// Package seed loads a small reference-data catalog so a fresh install can
// quote immediately.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	bundledomain "github.com/smallbiznis/tripquote/internal/bundle/domain"
	countrydomain "github.com/smallbiznis/tripquote/internal/country/domain"
	coveragedomain "github.com/smallbiznis/tripquote/internal/coveragelevel/domain"
	discountdomain "github.com/smallbiznis/tripquote/internal/discount/domain"
	durationdomain "github.com/smallbiznis/tripquote/internal/durationcoefficient/domain"
	promodomain "github.com/smallbiznis/tripquote/internal/promo/domain"
	riskdomain "github.com/smallbiznis/tripquote/internal/risktype/domain"
	"github.com/smallbiznis/tripquote/pkg/db"
)

var seedValidFrom = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// EnsureReferenceData seeds the catalogs idempotently, keyed by code or band.
func EnsureReferenceData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCountries(tx, node); err != nil {
			return err
		}
		if err := ensureCoverageLevels(tx, node); err != nil {
			return err
		}
		if err := ensureRiskTypes(tx, node); err != nil {
			return err
		}
		if err := ensureDurationBands(tx, node); err != nil {
			return err
		}
		if err := ensureBundles(tx, node); err != nil {
			return err
		}
		if err := ensurePromoCodes(tx, node); err != nil {
			return err
		}
		return ensureDiscountRules(tx, node)
	})
}

func ensureCountries(tx *gorm.DB, node *snowflake.Node) error {
	countries := []countrydomain.Country{
		{Code: "ES", Name: "Spain", RiskCoefficient: dec("1.0")},
		{Code: "FR", Name: "France", RiskCoefficient: dec("1.0")},
		{Code: "TH", Name: "Thailand", RiskCoefficient: dec("1.4")},
		{Code: "US", Name: "United States", RiskCoefficient: dec("1.8")},
		{Code: "JP", Name: "Japan", RiskCoefficient: dec("1.2")},
	}
	for _, c := range countries {
		c.ID = node.Generate()
		c.ValidFrom = seedValidFrom
		if err := firstOrCreate(tx, &countrydomain.Country{}, "code = ?", []any{c.Code}, &c); err != nil {
			return err
		}
	}

	rates := []countrydomain.DefaultRate{
		{CountryCode: "TH", DayRate: dec("6.00"), Currency: "EUR"},
		{CountryCode: "US", DayRate: dec("9.00"), Currency: "EUR"},
	}
	for _, r := range rates {
		r.ID = node.Generate()
		r.ValidFrom = seedValidFrom
		if err := firstOrCreate(tx, &countrydomain.DefaultRate{}, "country_code = ?", []any{r.CountryCode}, &r); err != nil {
			return err
		}
	}
	return nil
}

func ensureCoverageLevels(tx *gorm.DB, node *snowflake.Node) error {
	levels := []coveragedomain.CoverageLevel{
		{Code: "BASIC", Name: "Basic", DayRate: dec("3.00"), CoverageAmount: dec("15000"), Currency: "EUR"},
		{Code: "STANDARD", Name: "Standard", DayRate: dec("4.50"), CoverageAmount: dec("30000"), Currency: "EUR"},
		{Code: "PREMIUM", Name: "Premium", DayRate: dec("7.50"), CoverageAmount: dec("60000"), Currency: "EUR"},
	}
	for _, l := range levels {
		l.ID = node.Generate()
		l.ValidFrom = seedValidFrom
		if err := firstOrCreate(tx, &coveragedomain.CoverageLevel{}, "code = ?", []any{l.Code}, &l); err != nil {
			return err
		}
	}
	return nil
}

func ensureRiskTypes(tx *gorm.DB, node *snowflake.Node) error {
	risks := []riskdomain.RiskType{
		{Code: riskdomain.MandatoryMedicalRiskCode, Name: "Travel medical", Coefficient: dec("1.0"), IsMandatory: true},
		{Code: "SPORT", Name: "Sports coverage", Coefficient: dec("0.4")},
		{Code: "GEAR", Name: "Equipment coverage", Coefficient: dec("0.2")},
		{Code: "TRIP_CANCEL", Name: "Trip cancellation", Coefficient: dec("0.3")},
	}
	for _, r := range risks {
		r.ID = node.Generate()
		r.ValidFrom = seedValidFrom
		if err := firstOrCreate(tx, &riskdomain.RiskType{}, "code = ?", []any{r.Code}, &r); err != nil {
			return err
		}
	}

	modifiers := []riskdomain.AgeRiskModifier{
		{RiskCode: "SPORT", AgeFrom: 0, AgeTo: 17, Modifier: dec("0.8")},
		{RiskCode: "SPORT", AgeFrom: 51, AgeTo: 80, Modifier: dec("1.5")},
	}
	for _, m := range modifiers {
		m.ID = node.Generate()
		m.ValidFrom = seedValidFrom
		if err := firstOrCreate(tx, &riskdomain.AgeRiskModifier{},
			"risk_code = ? AND age_from = ?", []any{m.RiskCode, m.AgeFrom}, &m); err != nil {
			return err
		}
	}
	return nil
}

func ensureDurationBands(tx *gorm.DB, node *snowflake.Node) error {
	long := 90
	mid := 30
	short := 10
	bands := []durationdomain.DurationCoefficient{
		{DayFrom: 1, DayTo: &short, Coefficient: dec("1.0")},
		{DayFrom: 11, DayTo: &mid, Coefficient: dec("1.1")},
		{DayFrom: 31, DayTo: &long, Coefficient: dec("1.3")},
		{DayFrom: 91, Coefficient: dec("1.6")},
	}
	for _, b := range bands {
		b.ID = node.Generate()
		b.ValidFrom = seedValidFrom
		if err := firstOrCreate(tx, &durationdomain.DurationCoefficient{}, "day_from = ?", []any{b.DayFrom}, &b); err != nil {
			return err
		}
	}
	return nil
}

func ensureBundles(tx *gorm.DB, node *snowflake.Node) error {
	bundles := []bundledomain.RiskBundle{
		{
			Code: "ADVENTURE_PACK", Name: "Adventure pack",
			DiscountPercent:   dec("10"),
			RequiredRiskCodes: datatypes.NewJSONSlice([]string{"SPORT", "GEAR"}),
		},
		{
			Code: "FULL_COVER", Name: "Full cover",
			DiscountPercent:   dec("15"),
			RequiredRiskCodes: datatypes.NewJSONSlice([]string{"SPORT", "GEAR", "TRIP_CANCEL"}),
		},
	}
	for _, b := range bundles {
		b.ID = node.Generate()
		b.ValidFrom = seedValidFrom
		if err := firstOrCreate(tx, &bundledomain.RiskBundle{}, "code = ?", []any{b.Code}, &b); err != nil {
			return err
		}
	}
	return nil
}

func ensurePromoCodes(tx *gorm.DB, node *snowflake.Node) error {
	promos := []promodomain.PromoCode{
		{Code: "WELCOME10", DiscountPercent: dec("10"), Active: true},
		{Code: "SUMMER15", DiscountPercent: dec("15"), Active: true},
	}
	for _, p := range promos {
		p.ID = node.Generate()
		p.ValidFrom = seedValidFrom
		if err := firstOrCreate(tx, &promodomain.PromoCode{}, "code = ?", []any{p.Code}, &p); err != nil {
			return err
		}
	}
	return nil
}

func ensureDiscountRules(tx *gorm.DB, node *snowflake.Node) error {
	rules := []discountdomain.DiscountRule{
		{Code: "GROUP4", Name: "Group of four", Kind: discountdomain.RuleKindGroup, Percent: dec("5"), MinPersonCount: 4},
		{Code: "CORPORATE", Name: "Corporate agreement", Kind: discountdomain.RuleKindCorporate, Percent: dec("7")},
		{Code: "WINTER", Name: "Winter season", Kind: discountdomain.RuleKindSeasonal, Percent: dec("5"), SeasonStartMonth: 11, SeasonEndMonth: 2},
		{Code: "LOYAL3", Name: "Loyal customer", Kind: discountdomain.RuleKindLoyalty, Percent: dec("4"), MinLoyaltyYears: 3},
	}
	for _, r := range rules {
		r.ID = node.Generate()
		r.ValidFrom = seedValidFrom
		if err := firstOrCreate(tx, &discountdomain.DiscountRule{}, "code = ?", []any{r.Code}, &r); err != nil {
			return err
		}
	}
	return nil
}

func firstOrCreate(tx *gorm.DB, model any, query string, args []any, row any) error {
	err := tx.Where(query, args...).First(model).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err := tx.Create(row).Error; err != nil {
		// concurrent seeders race on the same codes
		if db.IsDuplicateKeyErr(err) {
			return nil
		}
		return err
	}
	return nil
}
