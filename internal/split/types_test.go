package split

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestBillTotalAmountOrderOfOperations(t *testing.T) {
	tests := []struct {
		name string
		bill *Bill
		want decimal.Decimal
	}{
		{
			name: "plain bill",
			bill: &Bill{
				Items:         []Item{{UnitPrice: dec("100"), Quantity: 2}},
				Tax:           dec("10"),
				ServiceCharge: dec("5"),
				MiscFees:      dec("20"),
				BookingFees:   dec("5"),
			},
			want: dec("240"),
		},
		{
			// discount hits items+tax+service before fees are added,
			// dinecash comes off after fees, cashback applies last:
			// 215 * 0.9 = 193.5, +30 = 223.5, -30 = 193.5, * 0.9 = 174.15
			name: "every adjustment at once",
			bill: &Bill{
				Items:             []Item{{UnitPrice: dec("100"), Quantity: 2}},
				Tax:               dec("10"),
				ServiceCharge:     dec("5"),
				MiscFees:          dec("30"),
				Discount:          Discount{Type: DiscountPercentage, Percentage: dec("10")},
				DinecashDeduction: dec("30"),
				CashbackApplied:   true,
			},
			want: dec("174.15"),
		},
		{
			name: "fixed discount subtracts before fees",
			bill: &Bill{
				Items:    []Item{{UnitPrice: dec("50"), Quantity: 1}},
				Tax:      dec("5"),
				MiscFees: dec("10"),
				Discount: Discount{Type: DiscountFixed, Amount: dec("15")},
			},
			want: dec("50"),
		},
		{
			name: "negative dinecash is floored to zero",
			bill: &Bill{
				Items:             []Item{{UnitPrice: dec("50"), Quantity: 1}},
				DinecashDeduction: dec("-20"),
			},
			want: dec("50"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.bill.TotalAmount()
			if !approxEqual(got, tt.want) {
				t.Errorf("TotalAmount() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestItemTotalPrice(t *testing.T) {
	item := Item{UnitPrice: dec("12.50"), Quantity: 3}
	if !item.TotalPrice().Equal(dec("37.50")) {
		t.Errorf("TotalPrice() = %s, want 37.50", item.TotalPrice())
	}
}

func TestDiscountApplied(t *testing.T) {
	tests := []struct {
		name     string
		discount Discount
		want     bool
	}{
		{"none", Discount{Type: DiscountNone}, false},
		{"zero value", Discount{}, false},
		{"fixed with amount", Discount{Type: DiscountFixed, Amount: dec("10")}, true},
		{"fixed without amount", Discount{Type: DiscountFixed}, false},
		{"percentage", Discount{Type: DiscountPercentage, Percentage: dec("5")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.discount.Applied(); got != tt.want {
				t.Errorf("Applied() = %v, want %v", got, tt.want)
			}
		})
	}
}
