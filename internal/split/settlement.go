package split

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// totalsEpsilon bounds the drift the fixed-precision divisions may leave
// between the summed shares and the derived bill total.
var totalsEpsilon = decimal.New(1, -9)

// LabeledAmount is one line of a participant's settlement breakdown.
// Deductions carry negative amounts, so the breakdown sums to the final share.
type LabeledAmount struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// PersonShare is one participant's settled position on a bill
type PersonShare struct {
	FoodShare       decimal.Decimal `json:"food_share"`
	TaxServiceShare decimal.Decimal `json:"tax_service_share"`
	FeeShare        decimal.Decimal `json:"fee_share"`
	Discount        decimal.Decimal `json:"discount"`
	Dinecash        decimal.Decimal `json:"dinecash"`
	Cashback        decimal.Decimal `json:"cashback"`
	FinalShare      decimal.Decimal `json:"final_share"`
	Breakdown       []LabeledAmount `json:"breakdown"`
	Items           []LineDetail    `json:"items"`
}

// Result is the full settlement of one bill
type Result struct {
	Policy     PolicyType              `json:"policy"`
	Shares     map[string]*PersonShare `json:"shares"`
	Unassigned []Item                  `json:"unassigned"`

	// Total is the sum of all final shares. It equals Bill.TotalAmount
	// minus the value of unassigned items.
	Total decimal.Decimal `json:"total"`
}

// Settle composes each participant's final owed amount for one bill.
// The arithmetic order is fixed and must not be reordered:
//
//  1. base = food share + tax/service share + fee share
//  2. discount (fixed amounts split equally; percentages apply to
//     food+tax/service only, never to misc/booking fees)
//  3. dinecash, a flat deduction split equally
//  4. 10% cashback on whatever remains
func Settle(bill *Bill, policyType PolicyType) (*Result, error) {
	food, err := ComputeFoodShares(bill)
	if err != nil {
		return nil, err
	}

	policy, err := NewPolicyFactory().Create(policyType)
	if err != nil {
		return nil, err
	}

	personCount := len(bill.ParticipantIDs)
	n := decimal.NewFromInt(int64(personCount))
	fees := policy.Allocate(food.Shares, bill.TotalMisc(), personCount)
	taxService := bill.Tax.Add(bill.ServiceCharge).Div(n)

	dinecashPool := bill.DinecashDeduction
	if dinecashPool.IsNegative() {
		dinecashPool = decimal.Zero
	}
	dinecash := dinecashPool.Div(n)

	result := &Result{
		Policy:     policyType,
		Shares:     make(map[string]*PersonShare, personCount),
		Unassigned: food.Unassigned,
		Total:      decimal.Zero,
	}

	for _, id := range bill.ParticipantIDs {
		foodShare := food.Shares[id]
		feeShare := fees[id]
		base := foodShare.Add(taxService).Add(feeShare)

		var discount decimal.Decimal
		switch bill.Discount.Type {
		case DiscountFixed:
			discount = bill.Discount.Amount.Div(n)
		case DiscountPercentage:
			discount = foodShare.Add(taxService).Mul(bill.Discount.Percentage).Div(hundred)
		default:
			discount = decimal.Zero
		}

		beforeCashback := base.Sub(discount).Sub(dinecash)

		cashback := decimal.Zero
		if bill.CashbackApplied {
			cashback = beforeCashback.Mul(cashbackRate)
		}

		share := &PersonShare{
			FoodShare:       foodShare,
			TaxServiceShare: taxService,
			FeeShare:        feeShare,
			Discount:        discount,
			Dinecash:        dinecash,
			Cashback:        cashback,
			FinalShare:      beforeCashback.Sub(cashback),
			Items:           food.Details[id],
		}
		share.Breakdown = buildBreakdown(share)

		result.Shares[id] = share
		result.Total = result.Total.Add(share.FinalShare)
	}

	if err := checkTotals(bill, food, result.Total); err != nil {
		return nil, err
	}

	return result, nil
}

// buildBreakdown lists the non-zero components, deductions negated
func buildBreakdown(s *PersonShare) []LabeledAmount {
	breakdown := make([]LabeledAmount, 0, 6)
	add := func(label string, amount decimal.Decimal, deduction bool) {
		if amount.IsZero() {
			return
		}
		if deduction {
			amount = amount.Neg()
		}
		breakdown = append(breakdown, LabeledAmount{Label: label, Amount: amount})
	}

	add("Food", s.FoodShare, false)
	add("Tax & Service", s.TaxServiceShare, false)
	add("Misc & Booking", s.FeeShare, false)
	add("Discount", s.Discount, true)
	add("Dinecash", s.Dinecash, true)
	add("Cashback", s.Cashback, true)
	return breakdown
}

// checkTotals asserts that the summed shares match the derived bill total,
// with unassigned items excluded from both sides. A failure here is a
// programming defect in the composition, not bad input.
func checkTotals(bill *Bill, food *FoodShares, got decimal.Decimal) error {
	if len(food.Unassigned) == 0 {
		want := bill.TotalAmount()
		if got.Sub(want).Abs().GreaterThan(totalsEpsilon) {
			return fmt.Errorf("%w: got %s, want %s", ErrInconsistentTotals, got, want)
		}
		return nil
	}

	unassigned := make(map[string]bool, len(food.Unassigned))
	for _, item := range food.Unassigned {
		unassigned[item.ID] = true
	}
	assignedOnly := *bill
	assignedOnly.Items = make([]Item, 0, len(bill.Items))
	for _, item := range bill.Items {
		if !unassigned[item.ID] {
			assignedOnly.Items = append(assignedOnly.Items, item)
		}
	}

	want := assignedOnly.TotalAmount()
	if got.Sub(want).Abs().GreaterThan(totalsEpsilon) {
		return fmt.Errorf("%w: got %s, want %s (excluding unassigned items)", ErrInconsistentTotals, got, want)
	}
	return nil
}
