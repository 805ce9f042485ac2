package bill

import (
	"github.com/shopspring/decimal"

	"github.com/daem0n707/Payman/internal/split"
)

// ItemRequest is one line of a bill in a create/update request
type ItemRequest struct {
	Name              string          `json:"name" validate:"required,min=1,max=255"`
	UnitPrice         decimal.Decimal `json:"unit_price" validate:"required"`
	Quantity          int             `json:"quantity" validate:"required,gt=0"`
	AssignedPersonIDs []string        `json:"assigned_person_ids"`
}

// CreateBillRequest represents the request to create a bill. The payload
// is the already-structured bill: receipt scanning happens upstream.
type CreateBillRequest struct {
	RestaurantName         string           `json:"restaurant_name" validate:"required,min=1,max=255"`
	SectionName            string           `json:"section_name,omitempty"`
	PayeeID                *string          `json:"payee_id,omitempty"`
	Items                  []*ItemRequest   `json:"items"`
	Tax                    decimal.Decimal  `json:"tax"`
	ServiceCharge          decimal.Decimal  `json:"service_charge"`
	MiscFees               decimal.Decimal  `json:"misc_fees"`
	BookingFees            decimal.Decimal  `json:"booking_fees"`
	Discount               *split.Discount  `json:"discount,omitempty"`
	DinecashDeduction      decimal.Decimal  `json:"dinecash_deduction"`
	CashbackApplied        bool             `json:"cashback_applied"`
	ParticipatingPersonIDs []string         `json:"participating_person_ids"`
}

// UpdateBillRequest replaces the mutable parts of a bill. Items, when
// present, replace the full item list.
type UpdateBillRequest struct {
	RestaurantName         *string          `json:"restaurant_name,omitempty" validate:"omitempty,min=1,max=255"`
	SectionName            *string          `json:"section_name,omitempty"`
	PayeeID                *string          `json:"payee_id,omitempty"`
	Items                  []*ItemRequest   `json:"items,omitempty"`
	Tax                    *decimal.Decimal `json:"tax,omitempty"`
	ServiceCharge          *decimal.Decimal `json:"service_charge,omitempty"`
	MiscFees               *decimal.Decimal `json:"misc_fees,omitempty"`
	BookingFees            *decimal.Decimal `json:"booking_fees,omitempty"`
	Discount               *split.Discount  `json:"discount,omitempty"`
	DinecashDeduction      *decimal.Decimal `json:"dinecash_deduction,omitempty"`
	CashbackApplied        *bool            `json:"cashback_applied,omitempty"`
	ParticipatingPersonIDs []string         `json:"participating_person_ids,omitempty"`
}

// ItemResponse represents one bill line in a response
type ItemResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Quantity          int             `json:"quantity"`
	TotalPrice        decimal.Decimal `json:"total_price"`
	AssignedPersonIDs []string        `json:"assigned_person_ids"`
}

// BillResponse represents the response for a bill
type BillResponse struct {
	ID                     string          `json:"id"`
	RestaurantName         string          `json:"restaurant_name"`
	SectionName            string          `json:"section_name,omitempty"`
	PayeeID                *string         `json:"payee_id,omitempty"`
	Items                  []*ItemResponse `json:"items"`
	Tax                    decimal.Decimal `json:"tax"`
	ServiceCharge          decimal.Decimal `json:"service_charge"`
	MiscFees               decimal.Decimal `json:"misc_fees"`
	BookingFees            decimal.Decimal `json:"booking_fees"`
	Discount               split.Discount  `json:"discount"`
	DinecashDeduction      decimal.Decimal `json:"dinecash_deduction"`
	CashbackApplied        bool            `json:"cashback_applied"`
	ParticipatingPersonIDs []string        `json:"participating_person_ids"`
	TotalAmount            decimal.Decimal `json:"total_amount"`
	DeletedAt              *string         `json:"deleted_at,omitempty"`
	CreatedAt              string          `json:"created_at"`
}

// PersonShareResponse is one participant's settled position on a bill
type PersonShareResponse struct {
	PersonID   string                `json:"person_id"`
	PersonName string                `json:"person_name,omitempty"`
	FinalShare decimal.Decimal       `json:"final_share"`
	Breakdown  []split.LabeledAmount `json:"breakdown"`
	Items      []split.LineDetail    `json:"items"`
}

// SplitResponse is the settlement of one bill under one policy
type SplitResponse struct {
	BillID          string                 `json:"bill_id"`
	Policy          split.PolicyType       `json:"policy"`
	Shares          []*PersonShareResponse `json:"shares"`
	UnassignedItems []*ItemResponse        `json:"unassigned_items,omitempty"`
	Total           decimal.Decimal        `json:"total"`
}

// PolicyOptionResponse describes one fee policy applied to a bill
type PolicyOptionResponse struct {
	Policy    split.PolicyType           `json:"policy"`
	FeeShares map[string]decimal.Decimal `json:"fee_shares"`
}

// PolicyOptionsResponse feeds the "is an alternative policy worth offering"
// decision: the per-policy fee allocations plus the inequality numbers for
// the least-consuming participant.
type PolicyOptionsResponse struct {
	BillID               string                  `json:"bill_id"`
	Options              []*PolicyOptionResponse `json:"options"`
	InequalityPercentage decimal.Decimal         `json:"inequality_percentage"`
	LeastSpenderSaving   decimal.Decimal         `json:"least_spender_saving"`
	Worthwhile           bool                    `json:"worthwhile"`
}

// ToResponse converts a stored bill to its response DTO
func (b *Bill) ToResponse() *BillResponse {
	items := make([]*ItemResponse, len(b.Items))
	for i, item := range b.Items {
		items[i] = item.ToResponse()
	}

	resp := &BillResponse{
		ID:                     b.ID,
		RestaurantName:         b.RestaurantName,
		SectionName:            b.SectionName,
		PayeeID:                b.PayeeID,
		Items:                  items,
		Tax:                    b.Tax,
		ServiceCharge:          b.ServiceCharge,
		MiscFees:               b.MiscFees,
		BookingFees:            b.BookingFees,
		Discount:               b.Discount,
		DinecashDeduction:      b.DinecashDeduction,
		CashbackApplied:        b.CashbackApplied,
		ParticipatingPersonIDs: b.ParticipatingPersonIDs,
		TotalAmount:            b.TotalAmount(),
		CreatedAt:              b.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if b.DeletedAt != nil {
		deletedAt := b.DeletedAt.Format("2006-01-02T15:04:05Z")
		resp.DeletedAt = &deletedAt
	}
	return resp
}

// ToResponse converts a stored item to its response DTO
func (i *Item) ToResponse() *ItemResponse {
	return &ItemResponse{
		ID:                i.ID,
		Name:              i.Name,
		UnitPrice:         i.UnitPrice,
		Quantity:          i.Quantity,
		TotalPrice:        i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity))),
		AssignedPersonIDs: i.AssignedPersonIDs,
	}
}
