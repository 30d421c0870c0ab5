package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/tripquote/internal/quote/domain"
	"github.com/smallbiznis/tripquote/pkg/money"
)

// pricingBasis is the strategy decision, resolved before any premium math.
// The two strategies read different reference records and multiply by
// different day spans.
type pricingBasis struct {
	strategy       domain.Strategy
	dayRate        money.Amount
	days           int
	includeCountry bool
	coverageAmount *decimal.Decimal
}

// selectBasis picks COUNTRY_DEFAULT only when it was requested and an active
// default rate exists for the country on the agreement start date. A missing
// default rate falls back to MEDICAL_LEVEL with a warning, never an error.
func (s *Service) selectBasis(ctx context.Context, useDefault bool, countryCode, levelCode string, at time.Time, exclusiveDays, inclusiveDays int) (pricingBasis, *domain.Warning, error) {
	var warn *domain.Warning
	if useDefault {
		rate, err := s.countries.FindActiveDefaultRate(ctx, countryCode, at)
		if err != nil {
			return pricingBasis{}, nil, err
		}
		if rate != nil {
			return pricingBasis{
				strategy: domain.StrategyCountryDefault,
				dayRate:  money.New(rate.DayRate, rate.Currency),
				days:     inclusiveDays,
			}, nil, nil
		}
		warn = &domain.Warning{
			Code:    domain.WarningStrategyFallback,
			Message: fmt.Sprintf("no active default day rate for %s, falling back to %s", countryCode, domain.StrategyMedicalLevel),
		}
	}

	level, err := s.coverageLevels.FindActive(ctx, levelCode, at)
	if err != nil {
		return pricingBasis{}, nil, err
	}
	if level == nil {
		return pricingBasis{}, nil, domain.NewMissingReferenceDataError("coverage_level", levelCode)
	}
	coverage := level.CoverageAmount
	return pricingBasis{
		strategy:       domain.StrategyMedicalLevel,
		dayRate:        money.New(level.DayRate, level.Currency),
		days:           exclusiveDays,
		includeCountry: true,
		coverageAmount: &coverage,
	}, warn, nil
}
