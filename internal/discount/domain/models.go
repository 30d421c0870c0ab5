// Package domain contains the secondary-discount rule catalog. At most one
// rule applies per quote: the eligible rule with the largest discount amount.
package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/tripquote/pkg/money"
)

type RuleKind string

const (
	RuleKindGroup     RuleKind = "group"
	RuleKindCorporate RuleKind = "corporate"
	RuleKindSeasonal  RuleKind = "seasonal"
	RuleKindLoyalty   RuleKind = "loyalty"
)

// DiscountRule is one secondary-discount definition. Eligibility fields are
// interpreted per kind; unrelated fields are ignored.
type DiscountRule struct {
	ID               snowflake.ID    `json:"id" gorm:"primaryKey"`
	Code             string          `json:"code" gorm:"type:text;not null;uniqueIndex"`
	Name             string          `json:"name" gorm:"type:text;not null"`
	Kind             RuleKind        `json:"kind" gorm:"type:text;not null"`
	Percent          decimal.Decimal `json:"percent" gorm:"type:numeric;not null"`
	MinPersonCount   int             `json:"min_person_count" gorm:"not null;default:0"`
	SeasonStartMonth int             `json:"season_start_month" gorm:"not null;default:0"`
	SeasonEndMonth   int             `json:"season_end_month" gorm:"not null;default:0"`
	MinLoyaltyYears  int             `json:"min_loyalty_years" gorm:"not null;default:0"`
	ValidFrom        time.Time       `json:"valid_from" gorm:"not null"`
	ValidTo          *time.Time      `json:"valid_to,omitempty" gorm:""`
	CreatedAt        time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt        time.Time       `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (DiscountRule) TableName() string { return "discount_rules" }

// Query carries everything needed to judge rule eligibility.
type Query struct {
	Premium      money.Amount
	PersonCount  int
	Corporate    bool
	LoyaltyYears int
	TripStart    time.Time
	At           time.Time
}

// Result is the winning secondary discount for a quote.
type Result struct {
	Code           string
	Name           string
	Kind           RuleKind
	Percent        decimal.Decimal
	DiscountAmount money.Amount
}

type Repository interface {
	ListActive(ctx context.Context, at time.Time) ([]DiscountRule, error)
}

type Service interface {
	// BestDiscount returns the eligible rule with the largest discount
	// amount against the current premium, or nil when none qualifies.
	BestDiscount(ctx context.Context, q Query) (*Result, error)
}
