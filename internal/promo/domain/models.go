// Package domain contains promo-code models and the application contract.
package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/tripquote/pkg/money"
)

// PromoCode grants a percentage discount while its window is active.
type PromoCode struct {
	ID              snowflake.ID    `json:"id" gorm:"primaryKey"`
	Code            string          `json:"code" gorm:"type:text;not null;uniqueIndex"`
	DiscountPercent decimal.Decimal `json:"discount_percent" gorm:"type:numeric;not null"`
	Active          bool            `json:"active" gorm:"not null;default:true"`
	ValidFrom       time.Time       `json:"valid_from" gorm:"not null"`
	ValidTo         *time.Time      `json:"valid_to,omitempty" gorm:""`
	CreatedAt       time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time       `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (PromoCode) TableName() string { return "promo_codes" }

// PromoResult reports the outcome of a promo-code application. An
// unrecognized or expired code yields Applied=false with a zero discount;
// it is never an error.
type PromoResult struct {
	Applied        bool
	Code           string
	Percent        decimal.Decimal
	DiscountAmount money.Amount
}

type Repository interface {
	FindActive(ctx context.Context, code string, at time.Time) (*PromoCode, error)
}

type Service interface {
	// Apply computes the promo discount against the current premium.
	Apply(ctx context.Context, code string, at time.Time, currentPremium money.Amount) (PromoResult, error)
}
