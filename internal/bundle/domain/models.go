// Package domain contains the risk-bundle discount catalog.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// RiskBundle grants a percentage discount when every required risk code is
// selected together.
type RiskBundle struct {
	ID                snowflake.ID                   `json:"id" gorm:"primaryKey"`
	Code              string                         `json:"code" gorm:"type:text;not null;index"`
	Name              string                         `json:"name" gorm:"type:text;not null"`
	DiscountPercent   decimal.Decimal                `json:"discount_percent" gorm:"type:numeric;not null"`
	RequiredRiskCodes datatypes.JSONSlice[string]    `json:"required_risk_codes" gorm:"not null"`
	ValidFrom         time.Time                      `json:"valid_from" gorm:"not null"`
	ValidTo           *time.Time                     `json:"valid_to,omitempty" gorm:""`
	CreatedAt         time.Time                      `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt         time.Time                      `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (RiskBundle) TableName() string { return "risk_bundles" }

// AppliesTo reports whether every required risk code is present in the
// selected set. Bundles with an empty requirement never apply.
func (b RiskBundle) AppliesTo(selected map[string]struct{}) bool {
	if len(b.RequiredRiskCodes) == 0 {
		return false
	}
	for _, code := range b.RequiredRiskCodes {
		if _, ok := selected[code]; !ok {
			return false
		}
	}
	return true
}
