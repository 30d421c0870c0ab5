package service

import (
	"context"

	"github.com/smallbiznis/tripquote/internal/discount/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Service struct {
	log  *zap.Logger
	repo domain.Repository
}

type ServiceParam struct {
	fx.In

	Log  *zap.Logger
	Repo domain.Repository
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		log:  p.Log.Named("discount.service"),
		repo: p.Repo,
	}
}

func (s *Service) BestDiscount(ctx context.Context, q domain.Query) (*domain.Result, error) {
	rules, err := s.repo.ListActive(ctx, q.At)
	if err != nil {
		return nil, err
	}

	var best *domain.Result
	for _, rule := range rules {
		if !eligible(rule, q) {
			continue
		}
		amount := q.Premium.Percent(rule.Percent)
		if amount.IsZero() {
			continue
		}
		if best == nil || best.DiscountAmount.LessThan(amount) {
			best = &domain.Result{
				Code:           rule.Code,
				Name:           rule.Name,
				Kind:           rule.Kind,
				Percent:        rule.Percent,
				DiscountAmount: amount,
			}
		}
	}
	return best, nil
}

func eligible(rule domain.DiscountRule, q domain.Query) bool {
	switch rule.Kind {
	case domain.RuleKindGroup:
		return rule.MinPersonCount > 0 && q.PersonCount >= rule.MinPersonCount
	case domain.RuleKindCorporate:
		return q.Corporate
	case domain.RuleKindSeasonal:
		return inSeason(rule.SeasonStartMonth, rule.SeasonEndMonth, int(q.TripStart.Month()))
	case domain.RuleKindLoyalty:
		return rule.MinLoyaltyYears > 0 && q.LoyaltyYears >= rule.MinLoyaltyYears
	default:
		return false
	}
}

// inSeason handles windows that wrap the year end, e.g. Nov..Feb.
func inSeason(start, end, month int) bool {
	if start < 1 || end < 1 {
		return false
	}
	if start <= end {
		return month >= start && month <= end
	}
	return month >= start || month <= end
}
