package domain

import (
	"context"
	"time"
)

type Repository interface {
	// FindForDays returns the coefficient band covering the day count, or
	// nil when no band matches; callers treat that as coefficient 1.0.
	FindForDays(ctx context.Context, days int, at time.Time) (*DurationCoefficient, error)
}
