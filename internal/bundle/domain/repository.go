package domain

import (
	"context"
	"time"
)

type Repository interface {
	// ListApplicable returns the active bundles whose required risk set is a
	// subset of the selected codes.
	ListApplicable(ctx context.Context, selectedRiskCodes []string, at time.Time) ([]RiskBundle, error)
}
