package domain

import (
	"context"
	"time"
)

// Repository resolves country reference data as of a given date. Finders
// return nil without error when no active record exists.
type Repository interface {
	FindActiveCountry(ctx context.Context, code string, at time.Time) (*Country, error)
	FindActiveDefaultRate(ctx context.Context, code string, at time.Time) (*DefaultRate, error)
	ListActiveCountries(ctx context.Context, at time.Time) ([]Country, error)
}
