package domain

import "context"

type Service interface {
	CalculatePremium(ctx context.Context, req QuoteRequest) (*PremiumCalculationResult, error)
}
