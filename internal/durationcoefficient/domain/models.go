// Package domain contains the trip-duration coefficient reference table.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// DurationCoefficient maps an inclusive trip-day band to a premium
// coefficient. A nil DayTo leaves the band open-ended.
type DurationCoefficient struct {
	ID          snowflake.ID    `json:"id" gorm:"primaryKey"`
	DayFrom     int             `json:"day_from" gorm:"not null"`
	DayTo       *int            `json:"day_to,omitempty" gorm:""`
	Coefficient decimal.Decimal `json:"coefficient" gorm:"type:numeric;not null"`
	ValidFrom   time.Time       `json:"valid_from" gorm:"not null"`
	ValidTo     *time.Time      `json:"valid_to,omitempty" gorm:""`
	CreatedAt   time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (DurationCoefficient) TableName() string { return "duration_coefficients" }
