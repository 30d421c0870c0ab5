package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	discountdomain "github.com/smallbiznis/tripquote/internal/discount/domain"
	"github.com/smallbiznis/tripquote/internal/quote/domain"
	"github.com/smallbiznis/tripquote/pkg/money"
)

// stackOutcome is the result of the promo-then-secondary stage. Each stage
// computes against the remainder left by the previous one.
type stackOutcome struct {
	promo         *domain.PromoDiscount
	secondary     *domain.SecondaryDiscount
	remaining     money.Amount
	total         money.Amount
	promoRejected bool
}

// stackDiscounts applies at most one promo code, then the single best
// secondary discount, in that fixed order. An unrecognized promo code is
// reported as rejected, not as an error.
func (s *Service) stackDiscounts(ctx context.Context, req domain.QuoteRequest, at time.Time, current money.Amount, sb *stepBuilder) (stackOutcome, error) {
	out := stackOutcome{
		remaining: current,
		total:     money.Zero(current.Currency),
	}

	code := strings.ToUpper(strings.TrimSpace(req.PromoCode))
	if code != "" && out.remaining.Value.IsPositive() {
		res, err := s.promos.Apply(ctx, code, at, out.remaining)
		if err != nil {
			return out, err
		}
		out.promo = &domain.PromoDiscount{
			Applied: res.Applied,
			Code:    code,
			Percent: res.Percent,
			Amount:  res.DiscountAmount,
		}
		if res.Applied {
			after, err := out.remaining.Sub(res.DiscountAmount)
			if err != nil {
				return out, err
			}
			if !res.DiscountAmount.IsZero() {
				sb.discount(fmt.Sprintf("Promo code %s (%s%%)", code, res.Percent.String()), out.remaining, res.DiscountAmount, after)
			}
			out.remaining = after
			if out.total, err = out.total.Add(res.DiscountAmount); err != nil {
				return out, err
			}
		} else {
			out.promoRejected = true
		}
	}

	if out.remaining.Value.IsPositive() {
		best, err := s.discounts.BestDiscount(ctx, discountdomain.Query{
			Premium:      out.remaining,
			PersonCount:  req.PersonCount,
			Corporate:    req.Corporate,
			LoyaltyYears: req.LoyaltyYears,
			TripStart:    req.StartDate,
			At:           at,
		})
		if err != nil {
			return out, err
		}
		if best != nil {
			after, err := out.remaining.Sub(best.DiscountAmount)
			if err != nil {
				return out, err
			}
			sb.discount(fmt.Sprintf("%s discount %s (%s%%)", string(best.Kind), best.Code, best.Percent.String()), out.remaining, best.DiscountAmount, after)
			out.secondary = &domain.SecondaryDiscount{
				Code:    best.Code,
				Name:    best.Name,
				Kind:    string(best.Kind),
				Percent: best.Percent,
				Amount:  best.DiscountAmount,
			}
			out.remaining = after
			if out.total, err = out.total.Add(best.DiscountAmount); err != nil {
				return out, err
			}
		}
	}

	return out, nil
}
