// Package domain contains the premium quote request/result types.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/tripquote/pkg/money"
)

// Strategy selects how the base premium is computed.
type Strategy string

const (
	// StrategyMedicalLevel prices from the coverage-level daily rate and the
	// full coefficient chain. This is the default.
	StrategyMedicalLevel Strategy = "MEDICAL_LEVEL"
	// StrategyCountryDefault prices from a per-country daily rate that
	// already bakes in the country risk coefficient.
	StrategyCountryDefault Strategy = "COUNTRY_DEFAULT"
)

// QuoteRequest carries everything needed for one premium calculation.
type QuoteRequest struct {
	BirthDate time.Time
	StartDate time.Time
	EndDate   time.Time

	CountryCode       string
	CoverageLevelCode string
	SelectedRiskCodes []string

	PromoCode    string
	PersonCount  int
	Corporate    bool
	LoyaltyYears int

	UseCountryDefaultRate bool
}

// RiskDetail is the per-risk slice of the premium breakdown. Premium is the
// risk's own base premium over the inclusive trip span.
type RiskDetail struct {
	Code                string          `json:"code"`
	Name                string          `json:"name"`
	BaseCoefficient     decimal.Decimal `json:"base_coefficient"`
	AgeModifier         decimal.Decimal `json:"age_modifier"`
	ModifiedCoefficient decimal.Decimal `json:"modified_coefficient"`
	Premium             money.Amount    `json:"premium"`
}

// BundleDiscount reports the best applicable bundle. A zero Amount with
// Applied=false means no bundle qualified; the field is always present.
type BundleDiscount struct {
	Applied bool            `json:"applied"`
	Code    string          `json:"code,omitempty"`
	Name    string          `json:"name,omitempty"`
	Percent decimal.Decimal `json:"percent"`
	Amount  money.Amount    `json:"amount"`
}

// PromoDiscount reports the promo-code stage outcome.
type PromoDiscount struct {
	Applied bool            `json:"applied"`
	Code    string          `json:"code,omitempty"`
	Percent decimal.Decimal `json:"percent"`
	Amount  money.Amount    `json:"amount"`
}

// SecondaryDiscount reports the best group/corporate/seasonal/loyalty stage
// outcome.
type SecondaryDiscount struct {
	Code    string          `json:"code"`
	Name    string          `json:"name"`
	Kind    string          `json:"kind"`
	Percent decimal.Decimal `json:"percent"`
	Amount  money.Amount    `json:"amount"`
}

// CalculationStep is one line of the auditable trace.
type CalculationStep struct {
	Description string       `json:"description"`
	Formula     string       `json:"formula"`
	Result      money.Amount `json:"result"`
}

// Warning flags a non-fatal condition that did not stop the calculation.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	WarningAgeCoefficientFallback = "age_coefficient_fallback"
	WarningStrategyFallback       = "strategy_fallback"
	WarningPromoRejected          = "promo_code_rejected"
)

// PremiumCalculationResult is the full quote output.
type PremiumCalculationResult struct {
	QuoteID  snowflake.ID `json:"quote_id"`
	Strategy Strategy     `json:"strategy"`
	Currency string       `json:"currency"`

	FinalPremium money.Amount `json:"final_premium"`
	BasePremium  money.Amount `json:"base_premium"`
	BaseDayRate  money.Amount `json:"base_day_rate"`

	Age                 int             `json:"age"`
	AgeGroupDescription string          `json:"age_group_description"`
	AgeCoefficient      decimal.Decimal `json:"age_coefficient"`

	CountryCode        string          `json:"country_code"`
	CountryName        string          `json:"country_name"`
	CountryCoefficient decimal.Decimal `json:"country_coefficient"`

	DurationCoefficient       decimal.Decimal `json:"duration_coefficient"`
	AdditionalRiskCoefficient decimal.Decimal `json:"additional_risk_coefficient"`
	TotalCoefficient          decimal.Decimal `json:"total_coefficient"`

	TripDays       int              `json:"trip_days"`
	CoverageAmount *decimal.Decimal `json:"coverage_amount,omitempty"`

	Risks             []RiskDetail       `json:"risks"`
	BundleDiscount    BundleDiscount     `json:"bundle_discount"`
	PromoDiscount     *PromoDiscount     `json:"promo_discount,omitempty"`
	SecondaryDiscount *SecondaryDiscount `json:"secondary_discount,omitempty"`
	TotalDiscount     money.Amount       `json:"total_discount"`

	Steps    []CalculationStep `json:"steps"`
	Warnings []Warning         `json:"warnings,omitempty"`
}
