package split

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PolicyType defines the fee-allocation policy
type PolicyType string

const (
	PolicyEqual        PolicyType = "EQUAL"
	PolicyProportional PolicyType = "PROPORTIONAL"
	PolicyHybrid       PolicyType = "HYBRID"
)

// Policy is the interface all fee-allocation policies must implement.
// A policy only ever distributes the misc+booking fee pool; tax, service
// charge and discounts are outside its reach.
type Policy interface {
	// Allocate distributes totalMisc among the participants in foodShares
	Allocate(foodShares map[string]decimal.Decimal, totalMisc decimal.Decimal, personCount int) map[string]decimal.Decimal

	// Type returns the type identifier for this policy
	Type() PolicyType
}

// Factory creates fee-allocation policies based on the requested type
type Factory struct{}

// NewPolicyFactory creates a new factory instance
func NewPolicyFactory() *Factory {
	return &Factory{}
}

// Create returns the appropriate policy implementation based on the type
func (f *Factory) Create(policyType PolicyType) (Policy, error) {
	switch policyType {
	case PolicyEqual:
		return &EqualPolicy{}, nil
	case PolicyProportional:
		return &ProportionalPolicy{}, nil
	case PolicyHybrid:
		return &HybridPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown fee policy: %s", policyType)
	}
}

// CreateFromString creates a policy from a string type (useful for API requests)
func (f *Factory) CreateFromString(policyType string) (Policy, error) {
	return f.Create(PolicyType(policyType))
}

// zeroShares returns an all-zero allocation for the same participants
func zeroShares(foodShares map[string]decimal.Decimal) map[string]decimal.Decimal {
	shares := make(map[string]decimal.Decimal, len(foodShares))
	for id := range foodShares {
		shares[id] = decimal.Zero
	}
	return shares
}

// totalFood sums the food shares
func totalFood(foodShares map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, share := range foodShares {
		total = total.Add(share)
	}
	return total
}
