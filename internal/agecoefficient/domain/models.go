// Package domain contains the age-to-coefficient reference table.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// AgeCoefficient maps an inclusive age band to a premium coefficient.
type AgeCoefficient struct {
	ID          snowflake.ID    `json:"id" gorm:"primaryKey"`
	AgeFrom     int             `json:"age_from" gorm:"not null"`
	AgeTo       int             `json:"age_to" gorm:"not null"`
	Coefficient decimal.Decimal `json:"coefficient" gorm:"type:numeric;not null"`
	ValidFrom   time.Time       `json:"valid_from" gorm:"not null"`
	ValidTo     *time.Time      `json:"valid_to,omitempty" gorm:""`
	CreatedAt   time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (AgeCoefficient) TableName() string { return "age_coefficients" }
