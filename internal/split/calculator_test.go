package split

import (
	"testing"

	"github.com/shopspring/decimal"
)

// dec parses a decimal literal, failing the build on typos rather than runtime
func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var testEpsilon = decimal.New(1, -9)

func approxEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(testEpsilon)
}

func TestComputeFoodShares(t *testing.T) {
	tests := []struct {
		name         string
		bill         *Bill
		wantErr      error
		validateFunc func(t *testing.T, shares *FoodShares)
	}{
		{
			name: "items assigned to single people",
			bill: &Bill{
				Items: []Item{
					{ID: "i1", Name: "Steak", UnitPrice: dec("100"), Quantity: 1, AssignedPersonIDs: []string{"alice"}},
					{ID: "i2", Name: "Pasta", UnitPrice: dec("50"), Quantity: 2, AssignedPersonIDs: []string{"bob"}},
				},
				ParticipantIDs: []string{"alice", "bob", "carol"},
			},
			validateFunc: func(t *testing.T, shares *FoodShares) {
				if !approxEqual(shares.Shares["alice"], dec("100")) {
					t.Errorf("alice food share = %s, want 100", shares.Shares["alice"])
				}
				if !approxEqual(shares.Shares["bob"], dec("100")) {
					t.Errorf("bob food share = %s, want 100", shares.Shares["bob"])
				}
				if !shares.Shares["carol"].IsZero() {
					t.Errorf("carol food share = %s, want 0", shares.Shares["carol"])
				}
				if len(shares.Unassigned) != 0 {
					t.Errorf("unassigned items = %d, want 0", len(shares.Unassigned))
				}
			},
		},
		{
			name: "item shared between two people",
			bill: &Bill{
				Items: []Item{
					{ID: "i1", Name: "Platter", UnitPrice: dec("30"), Quantity: 1, AssignedPersonIDs: []string{"alice", "bob"}},
				},
				ParticipantIDs: []string{"alice", "bob"},
			},
			validateFunc: func(t *testing.T, shares *FoodShares) {
				if !approxEqual(shares.Shares["alice"], dec("15")) {
					t.Errorf("alice food share = %s, want 15", shares.Shares["alice"])
				}
				if !approxEqual(shares.Shares["bob"], dec("15")) {
					t.Errorf("bob food share = %s, want 15", shares.Shares["bob"])
				}
			},
		},
		{
			name: "multiset assignment gives a double share",
			bill: &Bill{
				Items: []Item{
					// alice takes two of three units, bob one
					{ID: "i1", Name: "Dumplings", UnitPrice: dec("12"), Quantity: 3, AssignedPersonIDs: []string{"alice", "alice", "bob"}},
				},
				ParticipantIDs: []string{"alice", "bob"},
			},
			validateFunc: func(t *testing.T, shares *FoodShares) {
				if !approxEqual(shares.Shares["alice"], dec("24")) {
					t.Errorf("alice food share = %s, want 24", shares.Shares["alice"])
				}
				if !approxEqual(shares.Shares["bob"], dec("12")) {
					t.Errorf("bob food share = %s, want 12", shares.Shares["bob"])
				}
				if len(shares.Details["alice"]) != 2 {
					t.Errorf("alice line details = %d, want 2", len(shares.Details["alice"]))
				}
			},
		},
		{
			name: "assignment to a non-participant is recovered as unassigned",
			bill: &Bill{
				Items: []Item{
					{ID: "i1", Name: "Soup", UnitPrice: dec("20"), Quantity: 1, AssignedPersonIDs: []string{"mallory"}},
					{ID: "i2", Name: "Bread", UnitPrice: dec("5"), Quantity: 1, AssignedPersonIDs: []string{"alice", "mallory"}},
				},
				ParticipantIDs: []string{"alice", "bob"},
			},
			validateFunc: func(t *testing.T, shares *FoodShares) {
				// i1 has no participants left, i2 falls entirely to alice
				if len(shares.Unassigned) != 1 || shares.Unassigned[0].ID != "i1" {
					t.Fatalf("unassigned = %+v, want just i1", shares.Unassigned)
				}
				if !approxEqual(shares.Shares["alice"], dec("5")) {
					t.Errorf("alice food share = %s, want 5", shares.Shares["alice"])
				}
			},
		},
		{
			name: "unassigned item excluded from every share",
			bill: &Bill{
				Items: []Item{
					{ID: "i1", Name: "Mystery", UnitPrice: dec("40"), Quantity: 1},
				},
				ParticipantIDs: []string{"alice", "bob"},
			},
			validateFunc: func(t *testing.T, shares *FoodShares) {
				if len(shares.Unassigned) != 1 {
					t.Fatalf("unassigned items = %d, want 1", len(shares.Unassigned))
				}
				if !shares.TotalFood().IsZero() {
					t.Errorf("total food = %s, want 0", shares.TotalFood())
				}
			},
		},
		{
			name:    "no participants",
			bill:    &Bill{Items: []Item{{ID: "i1", UnitPrice: dec("10"), Quantity: 1}}},
			wantErr: ErrNoParticipants,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := ComputeFoodShares(tt.bill)
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Fatalf("ComputeFoodShares() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ComputeFoodShares() unexpected error: %v", err)
			}
			tt.validateFunc(t, shares)
		})
	}
}

func TestComputeFoodSharesConservation(t *testing.T) {
	// the summed shares must equal the assigned item totals exactly enough
	// that many-bill aggregation never drifts
	bill := &Bill{
		Items: []Item{
			{ID: "i1", UnitPrice: dec("33.33"), Quantity: 3, AssignedPersonIDs: []string{"a", "b", "c"}},
			{ID: "i2", UnitPrice: dec("7.77"), Quantity: 1, AssignedPersonIDs: []string{"a", "b"}},
			{ID: "i3", UnitPrice: dec("19.99"), Quantity: 2, AssignedPersonIDs: []string{"c"}},
		},
		ParticipantIDs: []string{"a", "b", "c"},
	}

	shares, err := ComputeFoodShares(bill)
	if err != nil {
		t.Fatalf("ComputeFoodShares() error: %v", err)
	}

	want := dec("99.99").Add(dec("7.77")).Add(dec("39.98"))
	if !approxEqual(shares.TotalFood(), want) {
		t.Errorf("total food = %s, want %s", shares.TotalFood(), want)
	}
}
