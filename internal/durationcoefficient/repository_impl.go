package durationcoefficient

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/tripquote/internal/durationcoefficient/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) FindForDays(ctx context.Context, days int, at time.Time) (*domain.DurationCoefficient, error) {
	var row domain.DurationCoefficient
	err := r.db.WithContext(ctx).
		Where("day_from <= ? AND (day_to IS NULL OR day_to >= ?)", days, days).
		Where("valid_from <= ? AND (valid_to IS NULL OR valid_to >= ?)", at, at).
		Order("valid_from DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
