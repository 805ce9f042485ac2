package ledger

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/daem0n707/Payman/internal/split"
)

// Common errors
var (
	ErrNoPayee = errors.New("bill has no payee")
)

// SkippedBill explains why a bill contributed nothing to the ledger
type SkippedBill struct {
	BillID   string `json:"bill_id"`
	BillName string `json:"bill_name"`
	Reason   string `json:"reason"`
}

// UnassignedItem is an item whose cost cannot be attributed to any debt
type UnassignedItem struct {
	BillID   string     `json:"bill_id"`
	BillName string     `json:"bill_name"`
	Item     split.Item `json:"item"`
}

// Ledger aggregates per-bill debts across many bills into a directed graph.
// Debts maps payer -> payee -> accumulated amount.
type Ledger struct {
	Debts      map[string]map[string]decimal.Decimal
	Skipped    []SkippedBill
	Unassigned []UnassignedItem
}

// Build settles every bill and accumulates each non-payee participant's
// final share as a directed debt toward the bill's payee. Fee allocation
// always uses the Equal policy here: the alternative policies are a
// per-bill presentation choice and never feed the cross-bill ledger.
//
// Bills that cannot contribute (no payee, no participants, settlement
// failure) are skipped and reported; one bad bill never aborts the batch.
func Build(bills []*split.Bill) *Ledger {
	ledger := &Ledger{
		Debts: make(map[string]map[string]decimal.Decimal),
	}

	for _, bill := range bills {
		if bill.PayeeID == "" {
			ledger.skip(bill, ErrNoPayee.Error())
			continue
		}
		if len(bill.ParticipantIDs) == 0 {
			ledger.skip(bill, split.ErrNoParticipants.Error())
			continue
		}

		result, err := split.Settle(bill, split.PolicyEqual)
		if err != nil {
			ledger.skip(bill, err.Error())
			continue
		}

		for _, item := range result.Unassigned {
			ledger.Unassigned = append(ledger.Unassigned, UnassignedItem{
				BillID:   bill.ID,
				BillName: bill.Name,
				Item:     item,
			})
		}

		for id, share := range result.Shares {
			if id == bill.PayeeID || !share.FinalShare.IsPositive() {
				continue
			}
			ledger.add(id, bill.PayeeID, share.FinalShare)
		}
	}

	return ledger
}

func (l *Ledger) skip(bill *split.Bill, reason string) {
	l.Skipped = append(l.Skipped, SkippedBill{
		BillID:   bill.ID,
		BillName: bill.Name,
		Reason:   reason,
	})
}

func (l *Ledger) add(payerID, payeeID string, amount decimal.Decimal) {
	if l.Debts[payerID] == nil {
		l.Debts[payerID] = make(map[string]decimal.Decimal)
	}
	l.Debts[payerID][payeeID] = l.Debts[payerID][payeeID].Add(amount)
}

// amountBetween returns what payer owes payee, zero when no edge exists
func (l *Ledger) amountBetween(payerID, payeeID string) decimal.Decimal {
	if edges, ok := l.Debts[payerID]; ok {
		return edges[payeeID]
	}
	return decimal.Zero
}

// personIDs returns every id appearing in the graph, sorted for determinism
func (l *Ledger) personIDs() []string {
	seen := make(map[string]bool)
	for payer, edges := range l.Debts {
		seen[payer] = true
		for payee := range edges {
			seen[payee] = true
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Simplify nets each unordered pair down to at most one directed edge:
// if A owes B more than B owes A, a single A->B edge for the difference
// survives; equal debts cancel entirely. This is pairwise netting only —
// debts are never routed through a third person.
func (l *Ledger) Simplify() map[string]map[string]decimal.Decimal {
	simplified := make(map[string]map[string]decimal.Decimal)
	emit := func(payerID, payeeID string, amount decimal.Decimal) {
		if simplified[payerID] == nil {
			simplified[payerID] = make(map[string]decimal.Decimal)
		}
		simplified[payerID][payeeID] = amount
	}

	ids := l.personIDs()
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			x := l.amountBetween(ids[i], ids[j])
			y := l.amountBetween(ids[j], ids[i])

			switch {
			case x.GreaterThan(y):
				emit(ids[i], ids[j], x.Sub(y))
			case y.GreaterThan(x):
				emit(ids[j], ids[i], y.Sub(x))
			}
		}
	}

	return simplified
}
