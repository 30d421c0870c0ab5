package domain

import (
	"context"
	"time"
)

type Repository interface {
	FindActive(ctx context.Context, code string, at time.Time) (*CoverageLevel, error)
	ListActive(ctx context.Context, at time.Time) ([]CoverageLevel, error)
}
