package split

import "github.com/shopspring/decimal"

// LineDetail records one allocation of an item to a person, for breakdowns
type LineDetail struct {
	ItemID   string          `json:"item_id"`
	ItemName string          `json:"item_name"`
	Quantity decimal.Decimal `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
}

// FoodShares is the result of splitting a bill's items among its participants
type FoodShares struct {
	// Shares maps each participant to their portion of item costs only.
	// Tax, service and fees are added later during settlement.
	Shares map[string]decimal.Decimal

	// Details lists the per-item allocations behind each share
	Details map[string][]LineDetail

	// Unassigned holds items whose assignment multiset is empty after
	// filtering to participants. They contribute to nobody's share and
	// must be surfaced to the caller as a warning.
	Unassigned []Item
}

// TotalFood returns the sum of all food shares
func (f *FoodShares) TotalFood() decimal.Decimal {
	total := decimal.Zero
	for _, share := range f.Shares {
		total = total.Add(share)
	}
	return total
}

// ComputeFoodShares splits each item's cost among the people assigned to it.
// Each occurrence in the assignment multiset receives quantity/n units and
// totalPrice/n currency, so a person listed twice takes a double share.
// Assignments to people outside the participant set are dropped; an item
// with no surviving assignment is recorded as unassigned rather than split.
func ComputeFoodShares(bill *Bill) (*FoodShares, error) {
	if len(bill.ParticipantIDs) == 0 {
		return nil, ErrNoParticipants
	}

	participants := make(map[string]bool, len(bill.ParticipantIDs))
	for _, id := range bill.ParticipantIDs {
		participants[id] = true
	}

	result := &FoodShares{
		Shares:  make(map[string]decimal.Decimal, len(bill.ParticipantIDs)),
		Details: make(map[string][]LineDetail, len(bill.ParticipantIDs)),
	}
	for _, id := range bill.ParticipantIDs {
		result.Shares[id] = decimal.Zero
	}

	for _, item := range bill.Items {
		assigned := make([]string, 0, len(item.AssignedPersonIDs))
		for _, id := range item.AssignedPersonIDs {
			if participants[id] {
				assigned = append(assigned, id)
			}
		}

		if len(assigned) == 0 {
			result.Unassigned = append(result.Unassigned, item)
			continue
		}

		n := decimal.NewFromInt(int64(len(assigned)))
		amount := item.TotalPrice().Div(n)
		quantity := decimal.NewFromInt(int64(item.Quantity)).Div(n)

		for _, id := range assigned {
			result.Shares[id] = result.Shares[id].Add(amount)
			result.Details[id] = append(result.Details[id], LineDetail{
				ItemID:   item.ID,
				ItemName: item.Name,
				Quantity: quantity,
				Amount:   amount,
			})
		}
	}

	return result, nil
}
