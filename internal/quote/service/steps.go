package service

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/tripquote/internal/quote/domain"
	"github.com/smallbiznis/tripquote/pkg/money"
)

// stepBuilder collects the audit trace. Running results are shown rounded to
// two decimals; the settlement rounding itself happens only in the premium
// math, never here.
type stepBuilder struct {
	currency string
	steps    []domain.CalculationStep
}

func newStepBuilder(currency string) *stepBuilder {
	return &stepBuilder{currency: currency}
}

func (b *stepBuilder) rate(description string, rate money.Amount) {
	b.steps = append(b.steps, domain.CalculationStep{
		Description: description,
		Formula:     rate.Value.StringFixed(money.Scale),
		Result:      rate.Round(),
	})
}

// multiply appends a coefficient stage and returns the unrounded running
// value.
func (b *stepBuilder) multiply(description string, before, factor decimal.Decimal) decimal.Decimal {
	after := before.Mul(factor)
	b.steps = append(b.steps, domain.CalculationStep{
		Description: description,
		Formula:     fmt.Sprintf("%s * %s = %s", before.StringFixed(money.Scale), factor.String(), after.StringFixed(money.Scale)),
		Result:      money.New(after.Round(money.Scale), b.currency),
	})
	return after
}

// settle records the day multiplication, the point where the base premium is
// rounded for good.
func (b *stepBuilder) settle(description string, before decimal.Decimal, days int, settled money.Amount) {
	b.steps = append(b.steps, domain.CalculationStep{
		Description: description,
		Formula:     fmt.Sprintf("%s * %d = %s", before.StringFixed(money.Scale), days, settled.Value.StringFixed(money.Scale)),
		Result:      settled,
	})
}

func (b *stepBuilder) discount(description string, before, amount, after money.Amount) {
	b.steps = append(b.steps, domain.CalculationStep{
		Description: description,
		Formula:     fmt.Sprintf("%s - %s = %s", before.Value.StringFixed(money.Scale), amount.Value.StringFixed(money.Scale), after.Value.StringFixed(money.Scale)),
		Result:      after,
	})
}

func (b *stepBuilder) floor(description string, preFloor, final money.Amount) {
	b.steps = append(b.steps, domain.CalculationStep{
		Description: description,
		Formula:     fmt.Sprintf("max(%s, %s)", preFloor.Value.StringFixed(money.Scale), final.Value.StringFixed(money.Scale)),
		Result:      final,
	})
}
