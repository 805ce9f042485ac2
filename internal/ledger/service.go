package ledger

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/daem0n707/Payman/internal/bill"
	"github.com/daem0n707/Payman/internal/person"
	"github.com/daem0n707/Payman/internal/split"
)

// Service builds the cross-bill settlement view from stored bills
type Service struct {
	billRepo   *bill.Repository
	personRepo *person.Repository
}

// NewService creates a new ledger service with dependencies injected
func NewService(billRepo *bill.Repository, personRepo *person.Repository) *Service {
	return &Service{billRepo: billRepo, personRepo: personRepo}
}

// Settlements settles every live bill and returns the aggregated debts.
// When simplified is true (the default surface), each pair of people is
// netted down to a single directed debt.
func (s *Service) Settlements(ctx context.Context, simplified bool) (*SettlementsResponse, error) {
	stored, err := s.billRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	bills := make([]*split.Bill, len(stored))
	for i, b := range stored {
		bills[i] = b.ToSplit()
	}

	ledger := Build(bills)

	debts := ledger.Debts
	if simplified {
		debts = ledger.Simplify()
	}

	resp := &SettlementsResponse{
		Simplified:   simplified,
		SkippedBills: ledger.Skipped,
	}

	for _, unassigned := range ledger.Unassigned {
		resp.UnassignedItems = append(resp.UnassignedItems, &UnassignedItemResponse{
			BillID:   unassigned.BillID,
			BillName: unassigned.BillName,
			Item:     unassigned.Item,
		})
	}

	resp.Debts, err = s.resolveDebts(ctx, debts)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// resolveDebts flattens the debt graph into a deterministic list with
// person names attached
func (s *Service) resolveDebts(ctx context.Context, debts map[string]map[string]decimal.Decimal) ([]*DebtResponse, error) {
	ids := make(map[string]bool)
	for payer, edges := range debts {
		ids[payer] = true
		for payee := range edges {
			ids[payee] = true
		}
	}

	personIDs := make([]string, 0, len(ids))
	for id := range ids {
		personIDs = append(personIDs, id)
	}
	people, err := s.personRepo.GetByIDs(ctx, personIDs)
	if err != nil {
		return nil, err
	}
	nameOf := func(id string) string {
		if p, ok := people[id]; ok {
			return p.Name
		}
		return ""
	}

	resolved := make([]*DebtResponse, 0)
	for payer, edges := range debts {
		for payee, amount := range edges {
			if !amount.IsPositive() {
				continue
			}
			resolved = append(resolved, &DebtResponse{
				PayerID:   payer,
				PayerName: nameOf(payer),
				PayeeID:   payee,
				PayeeName: nameOf(payee),
				Amount:    amount,
			})
		}
	}

	sort.Slice(resolved, func(i, j int) bool {
		if resolved[i].PayerID != resolved[j].PayerID {
			return resolved[i].PayerID < resolved[j].PayerID
		}
		return resolved[i].PayeeID < resolved[j].PayeeID
	})

	return resolved, nil
}
