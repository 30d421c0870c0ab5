package country

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/smallbiznis/tripquote/internal/country/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) FindActiveCountry(ctx context.Context, code string, at time.Time) (*domain.Country, error) {
	var row domain.Country
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

func (r *repository) FindActiveDefaultRate(ctx context.Context, code string, at time.Time) (*domain.DefaultRate, error) {
	var row domain.DefaultRate
	err := r.db.WithContext(ctx).
		Where("country_code = ?", strings.ToUpper(strings.TrimSpace(code))).
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

func (r *repository) ListActiveCountries(ctx context.Context, at time.Time) ([]domain.Country, error) {
	var rows []domain.Country
	err := r.db.WithContext(ctx).
		Where("valid_from <= ? AND (valid_to IS NULL OR valid_to >= ?)", at, at).
		Order("name").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
