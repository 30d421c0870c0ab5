package repository

import (
	"context"
	"time"

	"github.com/smallbiznis/tripquote/internal/discount/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) ListActive(ctx context.Context, at time.Time) ([]domain.DiscountRule, error) {
	var rows []domain.DiscountRule
	err := r.db.WithContext(ctx).
		Where("valid_from <= ? AND (valid_to IS NULL OR valid_to >= ?)", at, at).
		Order("code").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
