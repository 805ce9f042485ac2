package ledger

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/daem0n707/Payman/internal/split"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var testEpsilon = decimal.New(1, -9)

func approxEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(testEpsilon)
}

// sharedBill builds a bill with one item split between alice and bob
func sharedBill(id, payeeID string, itemPrice string) *split.Bill {
	return &split.Bill{
		ID:   id,
		Name: id,
		Items: []split.Item{
			{ID: id + "-i1", Name: "Dinner", UnitPrice: dec(itemPrice), Quantity: 1, AssignedPersonIDs: []string{"alice", "bob"}},
		},
		ParticipantIDs: []string{"alice", "bob"},
		PayeeID:        payeeID,
	}
}

func TestBuildAccumulatesDebtsTowardPayee(t *testing.T) {
	// alice fronted a $100 dinner split in half, so bob owes her $50
	ledger := Build([]*split.Bill{sharedBill("b1", "alice", "100")})

	if got := ledger.Debts["bob"]["alice"]; !approxEqual(got, dec("50")) {
		t.Errorf("bob owes alice %s, want 50", got)
	}
	if _, ok := ledger.Debts["alice"]; ok {
		t.Error("the payee must not owe themselves")
	}
	if len(ledger.Skipped) != 0 {
		t.Errorf("skipped = %+v, want none", ledger.Skipped)
	}
}

func TestBuildAccumulatesAcrossBills(t *testing.T) {
	ledger := Build([]*split.Bill{
		sharedBill("b1", "alice", "100"),
		sharedBill("b2", "alice", "40"),
	})

	if got := ledger.Debts["bob"]["alice"]; !approxEqual(got, dec("70")) {
		t.Errorf("bob owes alice %s, want 70", got)
	}
}

func TestSimplifyNetsOpposingDebts(t *testing.T) {
	// bill1: alice fronted, bob owes 50. bill2: bob fronted, alice owes 30.
	// The larger creditor wins: a single bob->alice edge of 20 remains.
	ledger := Build([]*split.Bill{
		sharedBill("b1", "alice", "100"),
		sharedBill("b2", "bob", "60"),
	})

	simplified := ledger.Simplify()

	if got := simplified["bob"]["alice"]; !approxEqual(got, dec("20")) {
		t.Errorf("simplified bob->alice = %s, want 20", got)
	}
	if _, ok := simplified["alice"]; ok {
		t.Errorf("alice->bob edge should have been netted away, got %+v", simplified["alice"])
	}
}

func TestSimplifyCancelsEqualDebts(t *testing.T) {
	ledger := Build([]*split.Bill{
		sharedBill("b1", "alice", "80"),
		sharedBill("b2", "bob", "80"),
	})

	simplified := ledger.Simplify()
	if len(simplified) != 0 {
		t.Errorf("equal opposing debts must cancel, got %+v", simplified)
	}
}

func TestSimplifyDoesNotRouteThroughThirdParties(t *testing.T) {
	// alice owes bob, bob owes carol. Pairwise netting keeps both edges;
	// it never converts them into alice owing carol.
	bills := []*split.Bill{
		{
			ID:             "b1",
			Items:          []split.Item{{ID: "x", UnitPrice: dec("30"), Quantity: 1, AssignedPersonIDs: []string{"alice"}}},
			ParticipantIDs: []string{"alice", "bob"},
			PayeeID:        "bob",
		},
		{
			ID:             "b2",
			Items:          []split.Item{{ID: "y", UnitPrice: dec("30"), Quantity: 1, AssignedPersonIDs: []string{"bob"}}},
			ParticipantIDs: []string{"bob", "carol"},
			PayeeID:        "carol",
		},
	}

	simplified := Build(bills).Simplify()

	if got := simplified["alice"]["bob"]; !approxEqual(got, dec("30")) {
		t.Errorf("alice->bob = %s, want 30", got)
	}
	if got := simplified["bob"]["carol"]; !approxEqual(got, dec("30")) {
		t.Errorf("bob->carol = %s, want 30", got)
	}
	if _, ok := simplified["alice"]["carol"]; ok {
		t.Error("transitive netting is out of scope, alice->carol must not exist")
	}
}

func TestBuildSkipsBillsWithoutPayee(t *testing.T) {
	noPayee := sharedBill("b1", "", "100")
	good := sharedBill("b2", "alice", "40")

	ledger := Build([]*split.Bill{noPayee, good})

	if len(ledger.Skipped) != 1 || ledger.Skipped[0].BillID != "b1" {
		t.Fatalf("skipped = %+v, want just b1", ledger.Skipped)
	}
	if ledger.Skipped[0].Reason != ErrNoPayee.Error() {
		t.Errorf("skip reason = %q, want %q", ledger.Skipped[0].Reason, ErrNoPayee.Error())
	}
	// the bad bill never aborts the batch
	if got := ledger.Debts["bob"]["alice"]; !approxEqual(got, dec("20")) {
		t.Errorf("bob owes alice %s, want 20", got)
	}
}

func TestBuildSkipsBillsWithoutParticipants(t *testing.T) {
	bill := &split.Bill{ID: "b1", PayeeID: "alice"}

	ledger := Build([]*split.Bill{bill})

	if len(ledger.Skipped) != 1 {
		t.Fatalf("skipped = %+v, want one entry", ledger.Skipped)
	}
	if ledger.Skipped[0].Reason != split.ErrNoParticipants.Error() {
		t.Errorf("skip reason = %q, want %q", ledger.Skipped[0].Reason, split.ErrNoParticipants.Error())
	}
}

func TestBuildSurfacesUnassignedItems(t *testing.T) {
	bill := sharedBill("b1", "alice", "100")
	bill.Items = append(bill.Items, split.Item{ID: "b1-i2", Name: "Mystery", UnitPrice: dec("40"), Quantity: 1})

	ledger := Build([]*split.Bill{bill})

	if len(ledger.Unassigned) != 1 || ledger.Unassigned[0].Item.ID != "b1-i2" {
		t.Fatalf("unassigned = %+v, want just b1-i2", ledger.Unassigned)
	}
	// the unattributable $40 never becomes debt
	if got := ledger.Debts["bob"]["alice"]; !approxEqual(got, dec("50")) {
		t.Errorf("bob owes alice %s, want 50", got)
	}
}

func TestBuildAppliesBillAdjustments(t *testing.T) {
	// dinecash and cashback flow through the per-bill settlement before
	// the debt edge is recorded: (50 - 10) * 0.9 = 36
	bill := sharedBill("b1", "alice", "100")
	bill.DinecashDeduction = dec("20")
	bill.CashbackApplied = true

	ledger := Build([]*split.Bill{bill})

	if got := ledger.Debts["bob"]["alice"]; !approxEqual(got, dec("36")) {
		t.Errorf("bob owes alice %s, want 36", got)
	}
}
