package risktype

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/smallbiznis/tripquote/internal/risktype/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) FindActive(ctx context.Context, code string, at time.Time) (*domain.RiskType, error) {
	var row domain.RiskType
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

func (r *repository) ListActive(ctx context.Context, at time.Time) ([]domain.RiskType, error) {
	var rows []domain.RiskType
	err := r.db.WithContext(ctx).
		Where("valid_from <= ? AND (valid_to IS NULL OR valid_to >= ?)", at, at).
		Order("code").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindModifier(ctx context.Context, riskCode string, age int, at time.Time) (*domain.AgeRiskModifier, error) {
	var row domain.AgeRiskModifier
	err := r.db.WithContext(ctx).
		Where("risk_code = ?", strings.ToUpper(strings.TrimSpace(riskCode))).
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
