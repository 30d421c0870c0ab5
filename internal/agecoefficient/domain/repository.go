package domain

import (
	"context"
	"time"
)

type Repository interface {
	// FindForAge returns the coefficient row covering the age, or nil when
	// the table has no match; callers fall back to the built-in bracket table.
	FindForAge(ctx context.Context, age int, at time.Time) (*AgeCoefficient, error)
}
