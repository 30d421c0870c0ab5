// Package domain contains the optional-risk catalog and its age modifiers.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// MandatoryMedicalRiskCode is always part of every policy and is never
// independently selectable.
const MandatoryMedicalRiskCode = "TRAVEL_MEDICAL"

// RiskType is a selectable risk add-on with its base coefficient.
type RiskType struct {
	ID          snowflake.ID    `json:"id" gorm:"primaryKey"`
	Code        string          `json:"code" gorm:"type:text;not null;index"`
	Name        string          `json:"name" gorm:"type:text;not null"`
	Coefficient decimal.Decimal `json:"coefficient" gorm:"type:numeric;not null"`
	IsMandatory bool            `json:"is_mandatory" gorm:"not null;default:false"`
	ValidFrom   time.Time       `json:"valid_from" gorm:"not null"`
	ValidTo     *time.Time      `json:"valid_to,omitempty" gorm:""`
	CreatedAt   time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (RiskType) TableName() string { return "risk_types" }

// AgeRiskModifier scales a risk coefficient for an age band. Absence of a
// matching row means the base coefficient applies unchanged.
type AgeRiskModifier struct {
	ID        snowflake.ID    `json:"id" gorm:"primaryKey"`
	RiskCode  string          `json:"risk_code" gorm:"type:text;not null;index"`
	AgeFrom   int             `json:"age_from" gorm:"not null"`
	AgeTo     int             `json:"age_to" gorm:"not null"`
	Modifier  decimal.Decimal `json:"modifier" gorm:"type:numeric;not null"`
	ValidFrom time.Time       `json:"valid_from" gorm:"not null"`
	ValidTo   *time.Time      `json:"valid_to,omitempty" gorm:""`
	CreatedAt time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time       `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (AgeRiskModifier) TableName() string { return "age_risk_modifiers" }
