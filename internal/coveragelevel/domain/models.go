// Package domain contains reference models for medical coverage levels.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// CoverageLevel carries the daily base rate and the insured ceiling for a
// medical coverage tier.
type CoverageLevel struct {
	ID             snowflake.ID    `json:"id" gorm:"primaryKey"`
	Code           string          `json:"code" gorm:"type:text;not null;index"`
	Name           string          `json:"name" gorm:"type:text;not null"`
	DayRate        decimal.Decimal `json:"day_rate" gorm:"type:numeric;not null"`
	CoverageAmount decimal.Decimal `json:"coverage_amount" gorm:"type:numeric;not null"`
	Currency       string          `json:"currency" gorm:"type:text;not null"`
	ValidFrom      time.Time       `json:"valid_from" gorm:"not null"`
	ValidTo        *time.Time      `json:"valid_to,omitempty" gorm:""`
	CreatedAt      time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time       `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (CoverageLevel) TableName() string { return "coverage_levels" }
