package bundle

import (
	"context"
	"strings"
	"time"

	"github.com/smallbiznis/tripquote/internal/bundle/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) ListApplicable(ctx context.Context, selectedRiskCodes []string, at time.Time) ([]domain.RiskBundle, error) {
	if len(selectedRiskCodes) == 0 {
		return nil, nil
	}

	var rows []domain.RiskBundle
	err := r.db.WithContext(ctx).
		Where("valid_from <= ? AND (valid_to IS NULL OR valid_to >= ?)", at, at).
		Order("code").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	selected := make(map[string]struct{}, len(selectedRiskCodes))
	for _, code := range selectedRiskCodes {
		selected[strings.ToUpper(strings.TrimSpace(code))] = struct{}{}
	}

	// Subset matching happens here rather than in SQL to stay portable
	// across the supported dialects.
	applicable := make([]domain.RiskBundle, 0, len(rows))
	for _, row := range rows {
		if row.AppliesTo(selected) {
			applicable = append(applicable, row)
		}
	}
	return applicable, nil
}
