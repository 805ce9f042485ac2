package split

import "github.com/shopspring/decimal"

// =============================================================================
// PROPORTIONAL FEE POLICY
// Divides the fee pool in proportion to each participant's food consumption
// =============================================================================

// ProportionalPolicy implements the Policy interface for consumption-weighted splits
type ProportionalPolicy struct{}

// Type returns the policy type identifier
func (p *ProportionalPolicy) Type() PolicyType {
	return PolicyProportional
}

// Allocate gives each participant totalMisc × (food_i / totalFood).
// When nobody consumed anything there is no proportion to follow, so it
// falls back to an equal split.
func (p *ProportionalPolicy) Allocate(foodShares map[string]decimal.Decimal, totalMisc decimal.Decimal, personCount int) map[string]decimal.Decimal {
	if personCount == 0 || !totalMisc.IsPositive() {
		return zeroShares(foodShares)
	}

	total := totalFood(foodShares)
	if !total.IsPositive() {
		equal := &EqualPolicy{}
		return equal.Allocate(foodShares, totalMisc, personCount)
	}

	shares := make(map[string]decimal.Decimal, len(foodShares))
	for id, food := range foodShares {
		shares[id] = totalMisc.Mul(food).Div(total)
	}
	return shares
}
