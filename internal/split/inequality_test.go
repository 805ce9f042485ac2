package split

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestInequalityPercentage(t *testing.T) {
	tests := []struct {
		name        string
		foodShares  map[string]decimal.Decimal
		totalMisc   decimal.Decimal
		personCount int
		want        decimal.Decimal
	}{
		{
			// least spender: food 10 of 100 total. Equal misc = 15,
			// proportional misc = 3, overpayment = 400%.
			name:        "light eater heavily overpays under equal",
			foodShares:  map[string]decimal.Decimal{"a": dec("10"), "b": dec("90")},
			totalMisc:   dec("30"),
			personCount: 2,
			want:        dec("400"),
		},
		{
			name:        "even consumption means no inequality",
			foodShares:  map[string]decimal.Decimal{"a": dec("50"), "b": dec("50")},
			totalMisc:   dec("30"),
			personCount: 2,
			want:        decimal.Zero,
		},
		{
			name:        "empty shares",
			foodShares:  map[string]decimal.Decimal{},
			totalMisc:   dec("30"),
			personCount: 2,
			want:        decimal.Zero,
		},
		{
			name:        "no fee pool",
			foodShares:  map[string]decimal.Decimal{"a": dec("10"), "b": dec("90")},
			totalMisc:   decimal.Zero,
			personCount: 2,
			want:        decimal.Zero,
		},
		{
			name:        "nobody consumed anything",
			foodShares:  map[string]decimal.Decimal{"a": decimal.Zero, "b": decimal.Zero},
			totalMisc:   dec("30"),
			personCount: 2,
			want:        decimal.Zero,
		},
		{
			name:        "least spender consumed nothing so proportional fee is zero",
			foodShares:  map[string]decimal.Decimal{"a": decimal.Zero, "b": dec("90")},
			totalMisc:   dec("30"),
			personCount: 2,
			want:        decimal.Zero,
		},
		{
			name:        "zero person count",
			foodShares:  map[string]decimal.Decimal{"a": dec("10")},
			totalMisc:   dec("30"),
			personCount: 0,
			want:        decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InequalityPercentage(tt.foodShares, tt.totalMisc, tt.personCount)
			if !approxEqual(got, tt.want) {
				t.Errorf("InequalityPercentage() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLeastSpenderSaving(t *testing.T) {
	food := map[string]decimal.Decimal{"a": dec("10"), "b": dec("90")}

	// equal fee 15, proportional fee 3
	saving := LeastSpenderSaving(food, dec("30"), 2)
	if !approxEqual(saving, dec("12")) {
		t.Errorf("LeastSpenderSaving() = %s, want 12", saving)
	}
}

func TestAlternativeWorthwhile(t *testing.T) {
	// saving of 12 clears the threshold
	unequal := map[string]decimal.Decimal{"a": dec("10"), "b": dec("90")}
	if !AlternativeWorthwhile(unequal, dec("30"), 2) {
		t.Error("expected alternatives to be worth offering for a 12 saving")
	}

	// near-even consumption saves the least spender only 0.10
	nearEven := map[string]decimal.Decimal{"a": dec("49"), "b": dec("51")}
	if AlternativeWorthwhile(nearEven, dec("10"), 2) {
		t.Error("expected alternatives to be suppressed for a 0.10 saving")
	}
}
