package bill

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/daem0n707/Payman/internal/split"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestToSplit(t *testing.T) {
	payee := "p1"
	stored := &Bill{
		ID:             "b1",
		RestaurantName: "Thai Garden",
		PayeeID:        &payee,
		Items: []Item{
			{ID: "i1", Name: "Pad Thai", UnitPrice: dec("12.50"), Quantity: 2, AssignedPersonIDs: []string{"p1", "p2"}},
		},
		Tax:                    dec("3"),
		ServiceCharge:          dec("2"),
		MiscFees:               dec("5"),
		BookingFees:            dec("1"),
		Discount:               split.Discount{Type: split.DiscountFixed, Amount: dec("4")},
		DinecashDeduction:      dec("2"),
		CashbackApplied:        true,
		ParticipatingPersonIDs: []string{"p1", "p2"},
		CreatedAt:              time.Now(),
	}

	engine := stored.ToSplit()

	if engine.ID != "b1" || engine.Name != "Thai Garden" {
		t.Errorf("identity not carried over: %q %q", engine.ID, engine.Name)
	}
	if engine.PayeeID != "p1" {
		t.Errorf("expected payee p1, got %q", engine.PayeeID)
	}
	if len(engine.Items) != 1 || !engine.Items[0].TotalPrice().Equal(dec("25")) {
		t.Errorf("items not converted: %+v", engine.Items)
	}
	if engine.Discount.Type != split.DiscountFixed || !engine.Discount.Amount.Equal(dec("4")) {
		t.Errorf("discount not carried over: %+v", engine.Discount)
	}

	// a missing payee converts to the engine's empty-string sentinel
	stored.PayeeID = nil
	if got := stored.ToSplit().PayeeID; got != "" {
		t.Errorf("expected empty payee, got %q", got)
	}
}

func TestTotalAmountDelegates(t *testing.T) {
	stored := &Bill{
		Items: []Item{
			{ID: "i1", Name: "Burger", UnitPrice: dec("10"), Quantity: 1},
		},
		Tax:                    dec("1"),
		ParticipatingPersonIDs: []string{"p1"},
	}

	if got := stored.TotalAmount(); !got.Equal(dec("11")) {
		t.Errorf("expected 11, got %s", got)
	}
}

func TestNormalizeDiscount(t *testing.T) {
	tests := []struct {
		name string
		in   *split.Discount
		want split.Discount
	}{
		{
			name: "nil maps to none",
			in:   nil,
			want: split.Discount{Type: split.DiscountNone},
		},
		{
			name: "fixed keeps amount only",
			in:   &split.Discount{Type: split.DiscountFixed, Amount: dec("5"), Percentage: dec("10")},
			want: split.Discount{Type: split.DiscountFixed, Amount: dec("5")},
		},
		{
			name: "percentage keeps percentage only",
			in:   &split.Discount{Type: split.DiscountPercentage, Amount: dec("5"), Percentage: dec("10")},
			want: split.Discount{Type: split.DiscountPercentage, Percentage: dec("10")},
		},
		{
			name: "unknown type maps to none",
			in:   &split.Discount{Type: split.DiscountType("VOUCHER"), Amount: dec("5")},
			want: split.Discount{Type: split.DiscountNone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeDiscount(tt.in)
			if got.Type != tt.want.Type || !got.Amount.Equal(tt.want.Amount) || !got.Percentage.Equal(tt.want.Percentage) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestValidateDiscount(t *testing.T) {
	if err := validateDiscount(split.Discount{Type: split.DiscountNone}); err != nil {
		t.Errorf("none should validate: %v", err)
	}
	if err := validateDiscount(split.Discount{Type: split.DiscountFixed, Amount: dec("-1")}); err == nil {
		t.Error("negative fixed amount should fail")
	}
	if err := validateDiscount(split.Discount{Type: split.DiscountPercentage, Percentage: dec("120")}); err == nil {
		t.Error("percentage above 100 should fail")
	}
	if err := validateDiscount(split.Discount{Type: split.DiscountPercentage, Percentage: dec("15")}); err != nil {
		t.Errorf("valid percentage should pass: %v", err)
	}
}
