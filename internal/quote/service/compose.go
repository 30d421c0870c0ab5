package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	riskdomain "github.com/smallbiznis/tripquote/internal/risktype/domain"

	"github.com/smallbiznis/tripquote/internal/quote/domain"
	"github.com/smallbiznis/tripquote/pkg/money"
)

// tripDaysExclusive is end minus start in calendar days. The top-level
// premium in the MEDICAL_LEVEL path multiplies by this span.
func tripDaysExclusive(start, end time.Time) int {
	return int(dateOnly(end).Sub(dateOnly(start)).Hours() / 24)
}

// tripDaysInclusive counts both endpoints. Per-risk premiums and the
// COUNTRY_DEFAULT path multiply by this span.
func tripDaysInclusive(start, end time.Time) int {
	return tripDaysExclusive(start, end) + 1
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// normalizeRiskCodes upper-cases, deduplicates and drops the mandatory
// medical code, which is never independently selectable.
func normalizeRiskCodes(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" || c == riskdomain.MandatoryMedicalRiskCode {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

type riskComposition struct {
	details []domain.RiskDetail
	// sum of the age-modified coefficients; the base premium is multiplied
	// by (1 + sum) after the age/country/duration chain is composed.
	sum decimal.Decimal
}

// composeAdditionalRisks resolves every selected optional risk against the
// catalog. The mandatory medical record must exist even though its
// coefficient is priced through the day rate, not the additional sum.
func (s *Service) composeAdditionalRisks(ctx context.Context, codes []string, age int, at time.Time, dayRate money.Amount, inclusiveDays int) (riskComposition, error) {
	comp := riskComposition{sum: decimal.Zero}

	mandatory, err := s.riskTypes.FindActive(ctx, riskdomain.MandatoryMedicalRiskCode, at)
	if err != nil {
		return comp, err
	}
	if mandatory == nil {
		return comp, domain.NewMissingReferenceDataError("risk_type", riskdomain.MandatoryMedicalRiskCode)
	}

	for _, code := range codes {
		rt, err := s.riskTypes.FindActive(ctx, code, at)
		if err != nil {
			return comp, err
		}
		if rt == nil {
			return comp, domain.NewMissingReferenceDataError("risk_type", code)
		}
		if rt.IsMandatory {
			continue
		}

		modifier := decimal.NewFromInt(1)
		mod, err := s.riskTypes.FindModifier(ctx, code, age, at)
		if err != nil {
			return comp, err
		}
		if mod != nil {
			modifier = mod.Modifier
		}

		modified := rt.Coefficient.Mul(modifier)
		comp.details = append(comp.details, domain.RiskDetail{
			Code:                rt.Code,
			Name:                rt.Name,
			BaseCoefficient:     rt.Coefficient,
			AgeModifier:         modifier,
			ModifiedCoefficient: modified,
			Premium:             dayRate.MulCoeff(modified).MulInt(int64(inclusiveDays)).Round(),
		})
		comp.sum = comp.sum.Add(modified)
	}
	return comp, nil
}
