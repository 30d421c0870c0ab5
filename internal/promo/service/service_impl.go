package service

import (
	"context"
	"strings"
	"time"

	"github.com/smallbiznis/tripquote/internal/promo/domain"
	"github.com/smallbiznis/tripquote/pkg/money"
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
		log:  p.Log.Named("promo.service"),
		repo: p.Repo,
	}
}

func (s *Service) Apply(ctx context.Context, code string, at time.Time, currentPremium money.Amount) (domain.PromoResult, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(code))
	if trimmed == "" {
		return domain.PromoResult{DiscountAmount: money.Zero(currentPremium.Currency)}, nil
	}

	row, err := s.repo.FindActive(ctx, trimmed, at)
	if err != nil {
		return domain.PromoResult{}, err
	}
	if row == nil {
		// Unknown or expired codes are ignored, not rejected.
		s.log.Info("promo code not applicable", zap.String("code", trimmed))
		return domain.PromoResult{
			Code:           trimmed,
			DiscountAmount: money.Zero(currentPremium.Currency),
		}, nil
	}

	return domain.PromoResult{
		Applied:        true,
		Code:           row.Code,
		Percent:        row.DiscountPercent,
		DiscountAmount: currentPremium.Percent(row.DiscountPercent),
	}, nil
}
