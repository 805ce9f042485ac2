package split

import (
	"testing"

	"github.com/shopspring/decimal"
)

func sumAllocation(shares map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, s := range shares {
		total = total.Add(s)
	}
	return total
}

func TestEqualPolicy(t *testing.T) {
	food := map[string]decimal.Decimal{
		"alice": dec("100"),
		"bob":   dec("50"),
		"carol": decimal.Zero,
	}

	shares := (&EqualPolicy{}).Allocate(food, dec("30"), 3)

	for id, share := range shares {
		if !approxEqual(share, dec("10")) {
			t.Errorf("%s fee share = %s, want 10", id, share)
		}
	}
	if !approxEqual(sumAllocation(shares), dec("30")) {
		t.Errorf("allocation sum = %s, want 30", sumAllocation(shares))
	}
}

func TestProportionalPolicy(t *testing.T) {
	food := map[string]decimal.Decimal{
		"alice": dec("75"),
		"bob":   dec("25"),
		"carol": decimal.Zero,
	}

	shares := (&ProportionalPolicy{}).Allocate(food, dec("20"), 3)

	if !approxEqual(shares["alice"], dec("15")) {
		t.Errorf("alice fee share = %s, want 15", shares["alice"])
	}
	if !approxEqual(shares["bob"], dec("5")) {
		t.Errorf("bob fee share = %s, want 5", shares["bob"])
	}
	if !shares["carol"].IsZero() {
		t.Errorf("carol consumed nothing but owes %s in fees", shares["carol"])
	}
	if !approxEqual(sumAllocation(shares), dec("20")) {
		t.Errorf("allocation sum = %s, want 20", sumAllocation(shares))
	}
}

func TestProportionalPolicyFallsBackToEqual(t *testing.T) {
	food := map[string]decimal.Decimal{
		"alice": decimal.Zero,
		"bob":   decimal.Zero,
	}

	shares := (&ProportionalPolicy{}).Allocate(food, dec("10"), 2)

	for id, share := range shares {
		if !approxEqual(share, dec("5")) {
			t.Errorf("%s fee share = %s, want 5 (equal fallback)", id, share)
		}
	}
}

func TestHybridPolicyIsTheMean(t *testing.T) {
	food := map[string]decimal.Decimal{
		"alice": dec("90"),
		"bob":   dec("10"),
	}
	totalMisc := dec("40")

	equal := (&EqualPolicy{}).Allocate(food, totalMisc, 2)
	proportional := (&ProportionalPolicy{}).Allocate(food, totalMisc, 2)
	hybrid := (&HybridPolicy{}).Allocate(food, totalMisc, 2)

	for id := range food {
		want := equal[id].Add(proportional[id]).Div(dec("2"))
		if !approxEqual(hybrid[id], want) {
			t.Errorf("%s hybrid share = %s, want mean %s", id, hybrid[id], want)
		}
	}
	// alice: (20 + 36) / 2, bob: (20 + 4) / 2
	if !approxEqual(hybrid["alice"], dec("28")) {
		t.Errorf("alice hybrid share = %s, want 28", hybrid["alice"])
	}
	if !approxEqual(hybrid["bob"], dec("12")) {
		t.Errorf("bob hybrid share = %s, want 12", hybrid["bob"])
	}
}

func TestAllocateEdgeCases(t *testing.T) {
	food := map[string]decimal.Decimal{"alice": dec("10"), "bob": dec("20")}

	policies := []Policy{&EqualPolicy{}, &ProportionalPolicy{}, &HybridPolicy{}}
	for _, policy := range policies {
		t.Run(string(policy.Type()), func(t *testing.T) {
			for _, misc := range []decimal.Decimal{decimal.Zero, dec("-5")} {
				shares := policy.Allocate(food, misc, 2)
				if len(shares) != len(food) {
					t.Fatalf("allocation has %d entries, want %d", len(shares), len(food))
				}
				for id, share := range shares {
					if !share.IsZero() {
						t.Errorf("misc %s: %s fee share = %s, want 0", misc, id, share)
					}
				}
			}

			shares := policy.Allocate(food, dec("10"), 0)
			for id, share := range shares {
				if !share.IsZero() {
					t.Errorf("zero person count: %s fee share = %s, want 0", id, share)
				}
			}
		})
	}
}

func TestPolicyFactory(t *testing.T) {
	factory := NewPolicyFactory()

	for _, pt := range []PolicyType{PolicyEqual, PolicyProportional, PolicyHybrid} {
		policy, err := factory.Create(pt)
		if err != nil {
			t.Fatalf("Create(%s) error: %v", pt, err)
		}
		if policy.Type() != pt {
			t.Errorf("Create(%s).Type() = %s", pt, policy.Type())
		}
	}

	if _, err := factory.CreateFromString("WEIGHTED"); err == nil {
		t.Error("expected error for unknown policy type")
	}
}
