package coveragelevel

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/smallbiznis/tripquote/internal/coveragelevel/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) FindActive(ctx context.Context, code string, at time.Time) (*domain.CoverageLevel, error) {
	var row domain.CoverageLevel
	err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
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

func (r *repository) ListActive(ctx context.Context, at time.Time) ([]domain.CoverageLevel, error) {
	var rows []domain.CoverageLevel
	err := r.db.WithContext(ctx).
		Where("valid_from <= ? AND (valid_to IS NULL OR valid_to >= ?)", at, at).
		Order("code").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
