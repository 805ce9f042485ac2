package split

import "github.com/shopspring/decimal"

// alternativeSavingThreshold is the absolute currency difference below which
// offering a non-equal policy is not worth the user's attention.
var alternativeSavingThreshold = decimal.NewFromInt(3)

// leastFoodShare returns the minimum food share and whether one exists.
// Ties don't matter: only the value feeds the formulas below.
func leastFoodShare(foodShares map[string]decimal.Decimal) (decimal.Decimal, bool) {
	found := false
	min := decimal.Zero
	for _, share := range foodShares {
		if !found || share.LessThan(min) {
			min = share
			found = true
		}
	}
	return min, found
}

// InequalityPercentage quantifies how much the least-consuming participant
// overpays under the Equal policy relative to Proportional, as a percentage
// of their proportional fee: (oldMisc − newMisc) / newMisc × 100.
// Returns zero when there is nothing to compare (no shares, no fee pool,
// no food consumed, or a zero proportional fee).
func InequalityPercentage(foodShares map[string]decimal.Decimal, totalMisc decimal.Decimal, personCount int) decimal.Decimal {
	if len(foodShares) == 0 || personCount == 0 || !totalMisc.IsPositive() {
		return decimal.Zero
	}

	fi, ok := leastFoodShare(foodShares)
	if !ok {
		return decimal.Zero
	}

	total := totalFood(foodShares)
	if !total.IsPositive() {
		return decimal.Zero
	}

	oldMisc := totalMisc.Div(decimal.NewFromInt(int64(personCount)))
	newMisc := totalMisc.Mul(fi).Div(total)
	if !newMisc.IsPositive() {
		return decimal.Zero
	}

	return oldMisc.Sub(newMisc).Div(newMisc).Mul(hundred)
}

// LeastSpenderSaving returns how much currency the least-consuming
// participant would save by switching from Equal to Proportional fees.
func LeastSpenderSaving(foodShares map[string]decimal.Decimal, totalMisc decimal.Decimal, personCount int) decimal.Decimal {
	if len(foodShares) == 0 || personCount == 0 || !totalMisc.IsPositive() {
		return decimal.Zero
	}

	fi, ok := leastFoodShare(foodShares)
	if !ok {
		return decimal.Zero
	}

	oldMisc := totalMisc.Div(decimal.NewFromInt(int64(personCount)))

	total := totalFood(foodShares)
	if !total.IsPositive() {
		return decimal.Zero
	}
	newMisc := totalMisc.Mul(fi).Div(total)

	return oldMisc.Sub(newMisc)
}

// AlternativeWorthwhile reports whether surfacing alternative policies is
// worth it at all: the least spender must save at least the threshold.
func AlternativeWorthwhile(foodShares map[string]decimal.Decimal, totalMisc decimal.Decimal, personCount int) bool {
	saving := LeastSpenderSaving(foodShares, totalMisc, personCount)
	return saving.GreaterThanOrEqual(alternativeSavingThreshold)
}
