package split

import "github.com/shopspring/decimal"

// =============================================================================
// EQUAL FEE POLICY
// Divides the misc+booking fee pool equally among all participants
// =============================================================================

// EqualPolicy implements the Policy interface for equal fee splits
type EqualPolicy struct{}

// Type returns the policy type identifier
func (p *EqualPolicy) Type() PolicyType {
	return PolicyEqual
}

// Allocate gives every participant totalMisc/personCount
func (p *EqualPolicy) Allocate(foodShares map[string]decimal.Decimal, totalMisc decimal.Decimal, personCount int) map[string]decimal.Decimal {
	if personCount == 0 || !totalMisc.IsPositive() {
		return zeroShares(foodShares)
	}

	perPerson := totalMisc.Div(decimal.NewFromInt(int64(personCount)))
	shares := make(map[string]decimal.Decimal, len(foodShares))
	for id := range foodShares {
		shares[id] = perPerson
	}
	return shares
}
