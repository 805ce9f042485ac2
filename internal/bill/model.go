package bill

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/daem0n707/Payman/internal/split"
)

// Item is one stored line of a bill
type Item struct {
	ID                string          `json:"id"`
	BillID            string          `json:"bill_id"`
	Name              string          `json:"name"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Quantity          int             `json:"quantity"`
	AssignedPersonIDs []string        `json:"assigned_person_ids"`
}

// Bill is the stored form of a restaurant bill. The engine never sees this
// type directly; ToSplit produces the read-only view it computes over.
type Bill struct {
	ID                     string          `json:"id"`
	RestaurantName         string          `json:"restaurant_name"`
	SectionName            string          `json:"section_name"`
	PayeeID                *string         `json:"payee_id,omitempty"`
	Items                  []Item          `json:"items"`
	Tax                    decimal.Decimal `json:"tax"`
	ServiceCharge          decimal.Decimal `json:"service_charge"`
	MiscFees               decimal.Decimal `json:"misc_fees"`
	BookingFees            decimal.Decimal `json:"booking_fees"`
	Discount               split.Discount  `json:"discount"`
	DinecashDeduction      decimal.Decimal `json:"dinecash_deduction"`
	CashbackApplied        bool            `json:"cashback_applied"`
	ParticipatingPersonIDs []string        `json:"participating_person_ids"`
	DeletedAt              *time.Time      `json:"deleted_at,omitempty"`
	CreatedAt              time.Time       `json:"created_at"`
}

// ToSplit converts the stored bill to the engine's input type
func (b *Bill) ToSplit() *split.Bill {
	items := make([]split.Item, len(b.Items))
	for i, item := range b.Items {
		items[i] = split.Item{
			ID:                item.ID,
			Name:              item.Name,
			UnitPrice:         item.UnitPrice,
			Quantity:          item.Quantity,
			AssignedPersonIDs: item.AssignedPersonIDs,
		}
	}

	payeeID := ""
	if b.PayeeID != nil {
		payeeID = *b.PayeeID
	}

	return &split.Bill{
		ID:                b.ID,
		Name:              b.RestaurantName,
		Items:             items,
		Tax:               b.Tax,
		ServiceCharge:     b.ServiceCharge,
		MiscFees:          b.MiscFees,
		BookingFees:       b.BookingFees,
		Discount:          b.Discount,
		DinecashDeduction: b.DinecashDeduction,
		CashbackApplied:   b.CashbackApplied,
		ParticipantIDs:    b.ParticipatingPersonIDs,
		PayeeID:           payeeID,
	}
}

// TotalAmount derives the bill total in the engine's canonical order
func (b *Bill) TotalAmount() decimal.Decimal {
	return b.ToSplit().TotalAmount()
}
