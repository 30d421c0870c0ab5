package agecoefficient

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/tripquote/internal/agecoefficient/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) FindForAge(ctx context.Context, age int, at time.Time) (*domain.AgeCoefficient, error) {
	var row domain.AgeCoefficient
	err := r.db.WithContext(ctx).
		Where("age_from <= ? AND age_to >= ?", age, age).
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
