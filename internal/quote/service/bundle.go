package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/tripquote/internal/quote/domain"
	"github.com/smallbiznis/tripquote/pkg/money"
)

// bestBundle picks the applicable bundle with the largest discount amount
// against the base premium. No qualifying bundle reports a zero discount
// rather than omitting the field.
func (s *Service) bestBundle(ctx context.Context, selectedRiskCodes []string, at time.Time, base money.Amount) (domain.BundleDiscount, error) {
	none := domain.BundleDiscount{
		Percent: decimal.Zero,
		Amount:  money.Zero(base.Currency),
	}
	if len(selectedRiskCodes) == 0 {
		return none, nil
	}

	bundles, err := s.bundles.ListApplicable(ctx, selectedRiskCodes, at)
	if err != nil {
		return none, err
	}

	best := none
	for _, b := range bundles {
		amount := base.Percent(b.DiscountPercent)
		if amount.IsZero() {
			continue
		}
		if !best.Applied || best.Amount.LessThan(amount) {
			best = domain.BundleDiscount{
				Applied: true,
				Code:    b.Code,
				Name:    b.Name,
				Percent: b.DiscountPercent,
				Amount:  amount,
			}
		}
	}
	return best, nil
}
