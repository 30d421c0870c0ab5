package domain

import (
	"context"
	"time"
)

type Repository interface {
	FindActive(ctx context.Context, code string, at time.Time) (*RiskType, error)
	ListActive(ctx context.Context, at time.Time) ([]RiskType, error)
	// FindModifier returns the age modifier for a risk at the given age, or
	// nil when the risk has no modifier for that age band.
	FindModifier(ctx context.Context, riskCode string, age int, at time.Time) (*AgeRiskModifier, error)
}
