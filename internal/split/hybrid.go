package split

import "github.com/shopspring/decimal"

// =============================================================================
// HYBRID FEE POLICY
// Per-person arithmetic mean of the Equal and Proportional allocations
// =============================================================================

// HybridPolicy implements the Policy interface by averaging the other two
type HybridPolicy struct{}

var two = decimal.NewFromInt(2)

// Type returns the policy type identifier
func (p *HybridPolicy) Type() PolicyType {
	return PolicyHybrid
}

// Allocate averages the Equal and Proportional results for each participant.
// It is a straight mean of the two allocations, not a re-derivation from
// a separate pool split.
func (p *HybridPolicy) Allocate(foodShares map[string]decimal.Decimal, totalMisc decimal.Decimal, personCount int) map[string]decimal.Decimal {
	if personCount == 0 || !totalMisc.IsPositive() {
		return zeroShares(foodShares)
	}

	equal := (&EqualPolicy{}).Allocate(foodShares, totalMisc, personCount)
	proportional := (&ProportionalPolicy{}).Allocate(foodShares, totalMisc, personCount)

	shares := make(map[string]decimal.Decimal, len(foodShares))
	for id := range foodShares {
		shares[id] = equal[id].Add(proportional[id]).Div(two)
	}
	return shares
}
