package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/smallbiznis/tripquote/internal/promo/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) FindActive(ctx context.Context, code string, at time.Time) (*domain.PromoCode, error) {
	var row domain.PromoCode
	err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		Where("active = ?", true).
		Where("valid_from <= ? AND (valid_to IS NULL OR valid_to >= ?)", at, at).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
