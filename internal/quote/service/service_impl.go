// Package service implements the premium calculation pipeline.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"

	agedomain "github.com/smallbiznis/tripquote/internal/agecoefficient/domain"
	bundledomain "github.com/smallbiznis/tripquote/internal/bundle/domain"
	"github.com/smallbiznis/tripquote/internal/config"
	countrydomain "github.com/smallbiznis/tripquote/internal/country/domain"
	coveragedomain "github.com/smallbiznis/tripquote/internal/coveragelevel/domain"
	discountdomain "github.com/smallbiznis/tripquote/internal/discount/domain"
	durationdomain "github.com/smallbiznis/tripquote/internal/durationcoefficient/domain"
	"github.com/smallbiznis/tripquote/internal/observability/metrics"
	promodomain "github.com/smallbiznis/tripquote/internal/promo/domain"
	"github.com/smallbiznis/tripquote/internal/quote/domain"
	riskdomain "github.com/smallbiznis/tripquote/internal/risktype/domain"
	"github.com/smallbiznis/tripquote/pkg/money"
)

type Service struct {
	log     *zap.Logger
	genID   *snowflake.Node
	pricing *config.PricingConfigHolder
	metrics *metrics.Metrics

	countries       countrydomain.Repository
	coverageLevels  coveragedomain.Repository
	riskTypes       riskdomain.Repository
	ageCoefficients agedomain.Repository
	durations       durationdomain.Repository
	bundles         bundledomain.Repository
	promos          promodomain.Service
	discounts       discountdomain.Service
}

type ServiceParam struct {
	fx.In

	Log     *zap.Logger
	GenID   *snowflake.Node
	Pricing *config.PricingConfigHolder
	Metrics *metrics.Metrics `optional:"true"`

	Countries       countrydomain.Repository
	CoverageLevels  coveragedomain.Repository
	RiskTypes       riskdomain.Repository
	AgeCoefficients agedomain.Repository
	Durations       durationdomain.Repository
	Bundles         bundledomain.Repository
	Promos          promodomain.Service
	Discounts       discountdomain.Service
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		log:             p.Log.Named("quote.service"),
		genID:           p.GenID,
		pricing:         p.Pricing,
		metrics:         p.Metrics,
		countries:       p.Countries,
		coverageLevels:  p.CoverageLevels,
		riskTypes:       p.RiskTypes,
		ageCoefficients: p.AgeCoefficients,
		durations:       p.Durations,
		bundles:         p.Bundles,
		promos:          p.Promos,
		discounts:       p.Discounts,
	}
}

func (s *Service) CalculatePremium(ctx context.Context, req domain.QuoteRequest) (*domain.PremiumCalculationResult, error) {
	res, err := s.calculate(ctx, req)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordQuoteFailed(ctx, failureReason(err))
		}
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordQuoteComputed(ctx, string(res.Strategy))
	}
	s.log.Info("premium calculated",
		zap.String("quote_id", res.QuoteID.String()),
		zap.String("strategy", string(res.Strategy)),
		zap.String("country", res.CountryCode),
		zap.String("final_premium", res.FinalPremium.Value.StringFixed(money.Scale)),
	)
	return res, nil
}

func (s *Service) calculate(ctx context.Context, req domain.QuoteRequest) (*domain.PremiumCalculationResult, error) {
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, domain.ErrInvalidDate
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, domain.ErrInvalidDate
	}

	at := req.StartDate
	countryCode := strings.ToUpper(strings.TrimSpace(req.CountryCode))
	levelCode := strings.ToUpper(strings.TrimSpace(req.CoverageLevelCode))
	riskCodes := normalizeRiskCodes(req.SelectedRiskCodes)

	age, err := resolveAge(req.BirthDate, at)
	if err != nil {
		return nil, err
	}
	ageCoeff, ageGroup, ageFallback, err := s.resolveAgeCoefficient(ctx, age, at)
	if err != nil {
		return nil, err
	}

	country, err := s.countries.FindActiveCountry(ctx, countryCode, at)
	if err != nil {
		return nil, err
	}
	if country == nil {
		return nil, domain.NewMissingReferenceDataError("country", countryCode)
	}

	exclusiveDays := tripDaysExclusive(req.StartDate, req.EndDate)
	inclusiveDays := tripDaysInclusive(req.StartDate, req.EndDate)

	durationCoeff := decimal.NewFromInt(1)
	if band, err := s.durations.FindForDays(ctx, inclusiveDays, at); err != nil {
		return nil, err
	} else if band != nil {
		durationCoeff = band.Coefficient
	}

	var warnings []domain.Warning
	if ageFallback {
		warnings = append(warnings, domain.Warning{
			Code:    domain.WarningAgeCoefficientFallback,
			Message: fmt.Sprintf("no age coefficient record for age %d, built-in bracket table used", age),
		})
		if s.metrics != nil {
			s.metrics.RecordFallbackUsed(ctx, "age_coefficient")
		}
	}

	// The strategy decision happens before any premium math; the two paths
	// read different rate records and day spans.
	basis, strategyWarn, err := s.selectBasis(ctx, req.UseCountryDefaultRate, countryCode, levelCode, at, exclusiveDays, inclusiveDays)
	if err != nil {
		return nil, err
	}
	if strategyWarn != nil {
		warnings = append(warnings, *strategyWarn)
		if s.metrics != nil {
			s.metrics.RecordFallbackUsed(ctx, "country_default_rate")
		}
	}

	comp, err := s.composeAdditionalRisks(ctx, riskCodes, age, at, basis.dayRate, inclusiveDays)
	if err != nil {
		return nil, err
	}

	one := decimal.NewFromInt(1)
	riskFactor := one.Add(comp.sum)
	totalCoeff := ageCoeff.Mul(durationCoeff)
	if basis.includeCountry {
		totalCoeff = totalCoeff.Mul(country.RiskCoefficient)
	}
	totalCoeff = totalCoeff.Mul(riskFactor)

	// Settlement rounding happens exactly once here for the base premium.
	base := basis.dayRate.MulCoeff(totalCoeff).MulInt(int64(basis.days)).Round()

	sb := newStepBuilder(basis.dayRate.Currency)
	switch basis.strategy {
	case domain.StrategyCountryDefault:
		sb.rate(fmt.Sprintf("Country default daily rate (%s)", countryCode), basis.dayRate)
	default:
		sb.rate(fmt.Sprintf("Coverage level daily rate (%s)", levelCode), basis.dayRate)
	}
	running := basis.dayRate.Value
	running = sb.multiply(fmt.Sprintf("Age coefficient (%s, age %d)", ageGroup, age), running, ageCoeff)
	if basis.includeCountry {
		running = sb.multiply(fmt.Sprintf("Country risk coefficient (%s)", country.Name), running, country.RiskCoefficient)
	}
	running = sb.multiply("Trip duration coefficient", running, durationCoeff)
	if comp.sum.IsPositive() {
		running = sb.multiply(fmt.Sprintf("Additional risks (%d selected)", len(comp.details)), running, riskFactor)
	}
	sb.settle(fmt.Sprintf("Premium over %d days", basis.days), running, basis.days, base)

	bundleDisc, err := s.bestBundle(ctx, riskCodes, at, base)
	if err != nil {
		return nil, err
	}
	current := base
	if bundleDisc.Applied {
		after, err := current.Sub(bundleDisc.Amount)
		if err != nil {
			return nil, err
		}
		sb.discount(fmt.Sprintf("Bundle discount %s (%s%%)", bundleDisc.Code, bundleDisc.Percent.String()), current, bundleDisc.Amount, after)
		current = after
	}

	stack, err := s.stackDiscounts(ctx, req, at, current, sb)
	if err != nil {
		return nil, err
	}
	if stack.promoRejected {
		warnings = append(warnings, domain.Warning{
			Code:    domain.WarningPromoRejected,
			Message: fmt.Sprintf("promo code %q not recognized or expired, no discount applied", strings.ToUpper(strings.TrimSpace(req.PromoCode))),
		})
		if s.metrics != nil {
			s.metrics.RecordPromoRejected(ctx)
		}
	}

	totalDiscount, err := bundleDisc.Amount.Add(stack.total)
	if err != nil {
		return nil, err
	}

	minimum := money.New(s.pricing.Get().MinimumPremiumDecimal(), basis.dayRate.Currency)
	final, raised, clamped := applyFloor(stack.remaining, minimum)
	switch {
	case clamped:
		sb.floor("Clamped to zero", stack.remaining, final)
	case raised:
		sb.floor("Minimum premium applied", stack.remaining, final)
	}

	return &domain.PremiumCalculationResult{
		QuoteID:  s.genID.Generate(),
		Strategy: basis.strategy,
		Currency: basis.dayRate.Currency,

		FinalPremium: final,
		BasePremium:  base,
		BaseDayRate:  basis.dayRate,

		Age:                 age,
		AgeGroupDescription: ageGroup,
		AgeCoefficient:      ageCoeff,

		CountryCode:        country.Code,
		CountryName:        country.Name,
		CountryCoefficient: country.RiskCoefficient,

		DurationCoefficient:       durationCoeff,
		AdditionalRiskCoefficient: comp.sum,
		TotalCoefficient:          totalCoeff,

		TripDays:       basis.days,
		CoverageAmount: basis.coverageAmount,

		Risks:             comp.details,
		BundleDiscount:    bundleDisc,
		PromoDiscount:     stack.promo,
		SecondaryDiscount: stack.secondary,
		TotalDiscount:     totalDiscount,

		Steps:    sb.steps,
		Warnings: warnings,
	}, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, domain.ErrAgeOutOfRange):
		return "age_out_of_range"
	case errors.Is(err, domain.ErrMissingReferenceData):
		return "missing_reference_data"
	default:
		return "internal"
	}
}
