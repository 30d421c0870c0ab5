// Package domain contains reference models for destination countries.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Country is a destination profile with its risk coefficient, valid for a
// dated window.
type Country struct {
	ID              snowflake.ID    `json:"id" gorm:"primaryKey"`
	Code            string          `json:"code" gorm:"type:text;not null;index"`
	Name            string          `json:"name" gorm:"type:text;not null"`
	RiskCoefficient decimal.Decimal `json:"risk_coefficient" gorm:"type:numeric;not null"`
	ValidFrom       time.Time       `json:"valid_from" gorm:"not null"`
	ValidTo         *time.Time      `json:"valid_to,omitempty" gorm:""`
	CreatedAt       time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time       `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Country) TableName() string { return "countries" }

// DefaultRate is an alternative per-day base rate for a country. The rate
// already bakes in the country risk coefficient.
type DefaultRate struct {
	ID          snowflake.ID    `json:"id" gorm:"primaryKey"`
	CountryCode string          `json:"country_code" gorm:"type:text;not null;index"`
	DayRate     decimal.Decimal `json:"day_rate" gorm:"type:numeric;not null"`
	Currency    string          `json:"currency" gorm:"type:text;not null"`
	ValidFrom   time.Time       `json:"valid_from" gorm:"not null"`
	ValidTo     *time.Time      `json:"valid_to,omitempty" gorm:""`
	CreatedAt   time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (DefaultRate) TableName() string { return "country_default_rates" }
