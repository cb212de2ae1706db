package ingredient

import (
	"errors"
	"testing"

	"github.com/hugohenrick/sorveteria-pos/internal/domain/failure"
)

func TestIngredientValidate(t *testing.T) {
	tests := []struct {
		name string
		in   Ingredient
		want error
	}{
		{"ok", Ingredient{Name: "Leite", PurchaseUnit: "l", ConsumptionUnit: "ml", ConsumptionPerPurchase: 1000}, nil},
		{"empty name", Ingredient{Name: " ", PurchaseUnit: "l", ConsumptionUnit: "ml", ConsumptionPerPurchase: 1000}, ErrEmptyName},
		{"zero factor", Ingredient{Name: "Leite", PurchaseUnit: "l", ConsumptionUnit: "ml"}, ErrInvalidConversion},
		{"mixed categories", Ingredient{Name: "Cone", PurchaseUnit: "kg", ConsumptionUnit: "unit", ConsumptionPerPurchase: 40}, ErrUnitMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestToConsumption(t *testing.T) {
	in := Ingredient{Name: "Chocolate", PurchaseUnit: "kg", ConsumptionUnit: "g", ConsumptionPerPurchase: 1000}

	tests := []struct {
		amount float64
		unit   string
		want   float64
	}{
		{250, "", 250},
		{250, "g", 250},
		{2, "kg", 2000},
		{1, "oz", 28.3495},
	}
	for _, tt := range tests {
		got, err := in.ToConsumption(tt.amount, tt.unit)
		if err != nil {
			t.Fatalf("ToConsumption(%v, %q) error: %v", tt.amount, tt.unit, err)
		}
		if got != tt.want {
			t.Errorf("ToConsumption(%v, %q) = %v, want %v", tt.amount, tt.unit, got, tt.want)
		}
	}

	if _, err := in.ToConsumption(1, "ml"); !errors.Is(err, failure.ErrValidation) {
		t.Errorf("expected validation error for unit of another category, got %v", err)
	}
}

func TestAdjustmentValidate(t *testing.T) {
	if err := (Adjustment{Delta: 0, Reason: "contagem"}).Validate(); !errors.Is(err, ErrZeroAdjustment) {
		t.Errorf("got %v, want ErrZeroAdjustment", err)
	}
	if err := (Adjustment{Delta: -3, Reason: ""}).Validate(); !errors.Is(err, ErrEmptyReason) {
		t.Errorf("got %v, want ErrEmptyReason", err)
	}
	if err := (Adjustment{Delta: -3, Reason: "quebra"}).Validate(); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}

func TestNewStockMovement(t *testing.T) {
	m := NewStockMovement("shop", "ing", 100, -30, "venda", "emp")
	if m.NewStock != 70 || m.ID == "" {
		t.Errorf("unexpected movement %+v", m)
	}
}
