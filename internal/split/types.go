package split

import "github.com/shopspring/decimal"

// DiscountType identifies which variant of Discount is in effect
type DiscountType string

const (
	DiscountNone       DiscountType = "NONE"
	DiscountFixed      DiscountType = "FIXED"
	DiscountPercentage DiscountType = "PERCENTAGE"
)

// Discount is a tagged variant: NONE carries no value, FIXED carries Amount,
// PERCENTAGE carries Percentage. Amount and Percentage are mutually exclusive.
type Discount struct {
	Type       DiscountType    `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

// Applied reports whether the discount changes the bill at all
func (d Discount) Applied() bool {
	switch d.Type {
	case DiscountFixed:
		return d.Amount.IsPositive()
	case DiscountPercentage:
		return d.Percentage.IsPositive()
	}
	return false
}

// Item is a single line on a bill. AssignedPersonIDs is a multiset: a person
// appearing k times takes k shares of the item's quantity.
type Item struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Quantity          int             `json:"quantity"`
	AssignedPersonIDs []string        `json:"assigned_person_ids"`
}

// TotalPrice returns unit price times quantity
func (i Item) TotalPrice() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Bill is the engine's read-only view of one restaurant bill. The engine
// never mutates it; every computation returns new structures.
type Bill struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Items             []Item          `json:"items"`
	Tax               decimal.Decimal `json:"tax"`
	ServiceCharge     decimal.Decimal `json:"service_charge"`
	MiscFees          decimal.Decimal `json:"misc_fees"`
	BookingFees       decimal.Decimal `json:"booking_fees"`
	Discount          Discount        `json:"discount"`
	DinecashDeduction decimal.Decimal `json:"dinecash_deduction"`
	CashbackApplied   bool            `json:"cashback_applied"`
	ParticipantIDs    []string        `json:"participant_ids"`
	PayeeID           string          `json:"payee_id,omitempty"` // empty when nobody fronted the bill
}

// cashbackRate is the fixed card cashback, applied last in the composition
var cashbackRate = decimal.NewFromFloat(0.10)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// TotalMisc returns the fee pool the allocation policies operate on.
// Tax, service charge and discount are never part of it.
func (b *Bill) TotalMisc() decimal.Decimal {
	return b.MiscFees.Add(b.BookingFees)
}

// TotalAmount derives the authoritative bill total. The order is fixed:
// items+tax+service, then discount, then misc and booking fees, then
// dinecash (floored at zero), then the 10% cashback.
func (b *Bill) TotalAmount() decimal.Decimal {
	base := decimal.Zero
	for _, item := range b.Items {
		base = base.Add(item.TotalPrice())
	}
	base = base.Add(b.Tax).Add(b.ServiceCharge)

	discounted := base
	switch b.Discount.Type {
	case DiscountFixed:
		discounted = base.Sub(b.Discount.Amount)
	case DiscountPercentage:
		discounted = base.Mul(one.Sub(b.Discount.Percentage.Div(hundred)))
	}

	afterMisc := discounted.Add(b.MiscFees).Add(b.BookingFees)

	dinecash := b.DinecashDeduction
	if dinecash.IsNegative() {
		dinecash = decimal.Zero
	}
	beforeCashback := afterMisc.Sub(dinecash)

	if b.CashbackApplied {
		return beforeCashback.Mul(one.Sub(cashbackRate))
	}
	return beforeCashback
}
