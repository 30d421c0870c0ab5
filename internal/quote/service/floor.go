package service

import "github.com/smallbiznis/tripquote/pkg/money"

// applyFloor enforces the post-discount minimum once. A negative pre-floor
// premium clamps to zero; a non-negative one below the minimum is raised to
// it.
func applyFloor(premium, minimum money.Amount) (final money.Amount, raised, clamped bool) {
	if premium.IsNegative() {
		return money.Zero(premium.Currency), false, true
	}
	if premium.LessThan(minimum) {
		return minimum, true, false
	}
	return premium, false, false
}
