package memory

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/hugohenrick/sorveteria-pos/internal/domain/product"
)

const seedYAML = `
shops:
  - id: loja
    ingredients:
      - {id: casquinha, name: Casquinha, category: embalagem, purchase_unit: box, consumption_unit: unit, consumption_per_purchase: 24, stock: 48}
      - {id: morango, name: Morango, category: sabor, purchase_unit: kg, consumption_unit: g, consumption_per_purchase: 1000, stock: 500}
    products:
      - id: cone
        name: Casquinha
        price: "8.50"
        recipe:
          - {ingredient: casquinha, quantity: 1}
          - {category: sabor, quantity: 80}
    payment_methods:
      - {id: dinheiro, name: Dinheiro, type: cash}
      - {id: cartao, name: Cartão, type: electronic, enabled: false}
  - id: loja-fechada
    active: false
`

func TestLoadSeed(t *testing.T) {
	s := NewStore()
	if err := LoadSeed(s, strings.NewReader(seedYAML)); err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}
	ctx := context.Background()

	if ok, _ := s.Shops().ValidateShop(ctx, "loja"); !ok {
		t.Error("loja should be active")
	}
	if ok, _ := s.Shops().ValidateShop(ctx, "loja-fechada"); ok {
		t.Error("loja-fechada should be inactive")
	}

	p, err := s.Products().FindByID(ctx, "loja", "cone")
	if err != nil {
		t.Fatal(err)
	}
	if p.Price.String() != "8.5" || len(p.Recipe) != 2 {
		t.Errorf("product = %+v", p)
	}
	if _, ok := p.Recipe.Variable(); !ok {
		t.Error("recipe should carry the variable line")
	}
	if _, ok := p.Recipe[0].(product.FixedLine); !ok {
		t.Errorf("first line = %T, want FixedLine", p.Recipe[0])
	}

	i, err := s.Ingredients().FindByID(ctx, "loja", "morango")
	if err != nil || i.Stock != 500 {
		t.Errorf("morango = %+v, %v", i, err)
	}

	methods, _ := s.PaymentMethods().List(ctx, "loja")
	if len(methods) != 2 || !methods[0].Enabled || methods[1].Enabled {
		t.Errorf("methods = %+v", methods)
	}
}

func TestLoadSeedRejectsInvalidRecords(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unit mismatch", `
shops:
  - id: loja
    ingredients:
      - {id: leite, name: Leite, purchase_unit: kg, consumption_unit: ml, consumption_per_purchase: 1000}
`},
		{"bad price", `
shops:
  - id: loja
    products:
      - {id: x, name: X, price: "abc"}
`},
		{"ambiguous recipe line", `
shops:
  - id: loja
    products:
      - id: x
        name: X
        price: "1"
        recipe:
          - {ingredient: leite, category: sabor, quantity: 1}
`},
		{"unknown payment type", `
shops:
  - id: loja
    payment_methods:
      - {id: vale, name: Vale, type: voucher}
`},
		{"unknown field", `
shops:
  - id: loja
    tables: 4
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			if err := LoadSeed(s, strings.NewReader(tt.yaml)); err == nil {
				t.Fatal("LoadSeed should fail")
			}
			if ok, _ := s.Shops().ValidateShop(context.Background(), "loja"); ok {
				t.Error("nothing may be stored from an invalid seed")
			}
		})
	}
}

func TestBundledSeedLoads(t *testing.T) {
	if _, err := os.Stat("../../../seeds/sorveteria.yaml"); err != nil {
		t.Skip("seed de demonstração ausente")
	}
	if err := LoadSeedFile(NewStore(), "../../../seeds/sorveteria.yaml"); err != nil {
		t.Fatalf("LoadSeedFile: %v", err)
	}
}
