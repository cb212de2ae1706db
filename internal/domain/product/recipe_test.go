package product

import (
	"errors"
	"reflect"
	"testing"

	"github.com/hugohenrick/sorveteria-pos/internal/domain/ingredient"
)

func TestResolve(t *testing.T) {
	cone := Recipe{
		FixedLine{IngredientID: "casquinha", Quantity: 1},
		VariableLine{Category: "sabor", Quantity: 80},
		FixedLine{IngredientID: "calda", Quantity: 15},
	}
	morango := &ingredient.Ingredient{ID: "morango", Name: "Morango", Category: "sabor"}
	granulado := &ingredient.Ingredient{ID: "granulado", Name: "Granulado", Category: "cobertura"}

	tests := []struct {
		name    string
		recipe  Recipe
		choice  *ingredient.Ingredient
		want    []Usage
		wantErr error
	}{
		{
			name:   "fixed only",
			recipe: Recipe{FixedLine{IngredientID: "leite", Quantity: 200}},
			want:   []Usage{{IngredientID: "leite", Quantity: 200}},
		},
		{
			name:   "variable resolved in place",
			recipe: cone,
			choice: morango,
			want: []Usage{
				{IngredientID: "casquinha", Quantity: 1},
				{IngredientID: "morango", Quantity: 80},
				{IngredientID: "calda", Quantity: 15},
			},
		},
		{name: "missing choice", recipe: cone, wantErr: ErrMissingVariableSelection},
		{name: "wrong category", recipe: cone, choice: granulado, wantErr: ErrInvalidVariableChoice},
		{name: "choice without variable line", recipe: Recipe{FixedLine{IngredientID: "leite", Quantity: 1}}, choice: morango, wantErr: ErrUnexpectedVariableChoice},
		{
			name:    "two variable lines",
			recipe:  Recipe{VariableLine{Category: "sabor", Quantity: 1}, VariableLine{Category: "sabor", Quantity: 1}},
			choice:  morango,
			wantErr: ErrMultipleVariableLines,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.recipe, tt.choice)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	recipe := Recipe{VariableLine{Category: "sabor", Quantity: 80}, FixedLine{IngredientID: "casquinha", Quantity: 1}}
	choice := &ingredient.Ingredient{ID: "flocos", Category: "Sabor"}

	first, err := Resolve(recipe, choice)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, _ := Resolve(recipe, choice)
		if UsageSignature(again) != UsageSignature(first) {
			t.Fatalf("signature changed: %q vs %q", UsageSignature(again), UsageSignature(first))
		}
	}
}

func TestMultiply(t *testing.T) {
	got := Multiply([]Usage{{"a", 1.5}, {"b", 2}, {"a", 0.5}}, 3)
	want := map[string]float64{"a": 6, "b": 6}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Multiply() = %v, want %v", got, want)
	}
}
