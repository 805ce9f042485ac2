package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/daem0n707/Payman/internal/split"
)

// DebtResponse is one directed debt between two people
type DebtResponse struct {
	PayerID   string          `json:"payer_id"`
	PayerName string          `json:"payer_name,omitempty"`
	PayeeID   string          `json:"payee_id"`
	PayeeName string          `json:"payee_name,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
}

// UnassignedItemResponse flags an item excluded from the ledger
type UnassignedItemResponse struct {
	BillID   string     `json:"bill_id"`
	BillName string     `json:"bill_name"`
	Item     split.Item `json:"item"`
}

// SettlementsResponse is the cross-bill debt picture
type SettlementsResponse struct {
	Debts           []*DebtResponse           `json:"debts"`
	Simplified      bool                      `json:"simplified"`
	SkippedBills    []SkippedBill             `json:"skipped_bills,omitempty"`
	UnassignedItems []*UnassignedItemResponse `json:"unassigned_items,omitempty"`
}
