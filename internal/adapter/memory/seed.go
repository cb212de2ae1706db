package memory

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hugohenrick/sorveteria-pos/internal/domain/ingredient"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/payment"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/product"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Seed é o conteúdo inicial de uma loja no armazenamento em memória
type Seed struct {
	Shops []SeedShop `yaml:"shops"`
}

// SeedShop descreve uma loja com catálogo, estoque e formas de pagamento
type SeedShop struct {
	ID             string              `yaml:"id"`
	Active         *bool               `yaml:"active"` // ausente vale true
	Ingredients    []SeedIngredient    `yaml:"ingredients"`
	Products       []SeedProduct       `yaml:"products"`
	PaymentMethods []SeedPaymentMethod `yaml:"payment_methods"`
}

// SeedIngredient descreve um ingrediente; stock em unidades de consumo
type SeedIngredient struct {
	ID                     string  `yaml:"id"`
	Name                   string  `yaml:"name"`
	Category               string  `yaml:"category"`
	PurchaseUnit           string  `yaml:"purchase_unit"`
	ConsumptionUnit        string  `yaml:"consumption_unit"`
	ConsumptionPerPurchase float64 `yaml:"consumption_per_purchase"`
	Stock                  float64 `yaml:"stock"`
}

// SeedProduct descreve um produto e sua receita
type SeedProduct struct {
	ID       string           `yaml:"id"`
	Name     string           `yaml:"name"`
	Category string           `yaml:"category"`
	Price    string           `yaml:"price"`
	Recipe   []SeedRecipeLine `yaml:"recipe"`
}

// SeedRecipeLine traz ingredient para linhas fixas ou category para a linha variável
type SeedRecipeLine struct {
	Ingredient string  `yaml:"ingredient"`
	Category   string  `yaml:"category"`
	Quantity   float64 `yaml:"quantity"`
}

// SeedPaymentMethod descreve uma forma de pagamento
type SeedPaymentMethod struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Enabled *bool  `yaml:"enabled"` // ausente vale true
}

// LoadSeedFile lê o arquivo YAML e aplica o conteúdo no store
func LoadSeedFile(s *Store, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("falha ao abrir seed: %w", err)
	}
	defer f.Close()
	return LoadSeed(s, f)
}

// LoadSeed decodifica o YAML e aplica o conteúdo no store. Nada é gravado se
// algum registro for inválido.
func LoadSeed(s *Store, r io.Reader) error {
	var seed Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		return fmt.Errorf("falha ao ler seed: %w", err)
	}

	now := time.Now()
	var (
		ingredients []*ingredient.Ingredient
		products    []*product.Product
		methods     []*payment.Method
	)
	for _, sh := range seed.Shops {
		if sh.ID == "" {
			return fmt.Errorf("seed: loja sem id")
		}

		for _, si := range sh.Ingredients {
			i := &ingredient.Ingredient{
				ID:                     si.ID,
				ShopID:                 sh.ID,
				Name:                   si.Name,
				Category:               si.Category,
				PurchaseUnit:           si.PurchaseUnit,
				ConsumptionUnit:        si.ConsumptionUnit,
				ConsumptionPerPurchase: si.ConsumptionPerPurchase,
				Stock:                  si.Stock,
				CreatedAt:              now,
				UpdatedAt:              now,
			}
			if err := i.Validate(); err != nil {
				return fmt.Errorf("seed: ingrediente %s: %w", si.ID, err)
			}
			ingredients = append(ingredients, i)
		}

		for _, sp := range sh.Products {
			p, err := sp.toProduct(sh.ID, now)
			if err != nil {
				return fmt.Errorf("seed: produto %s: %w", sp.ID, err)
			}
			products = append(products, p)
		}

		for _, sm := range sh.PaymentMethods {
			m := &payment.Method{
				ID:      sm.ID,
				ShopID:  sh.ID,
				Name:    sm.Name,
				Type:    payment.MethodType(sm.Type),
				Enabled: sm.Enabled == nil || *sm.Enabled,
			}
			if !m.Type.IsValid() {
				return fmt.Errorf("seed: forma de pagamento %s: tipo %q inválido", sm.ID, sm.Type)
			}
			methods = append(methods, m)
		}
	}

	for _, sh := range seed.Shops {
		s.PutShop(sh.ID, sh.Active == nil || *sh.Active)
	}
	for _, i := range ingredients {
		s.PutIngredient(i)
	}
	for _, p := range products {
		s.PutProduct(p)
	}
	for _, m := range methods {
		s.PutPaymentMethod(m)
	}
	return nil
}

func (sp SeedProduct) toProduct(shopID string, now time.Time) (*product.Product, error) {
	price, err := decimal.NewFromString(sp.Price)
	if err != nil {
		return nil, fmt.Errorf("preço %q inválido: %w", sp.Price, err)
	}

	recipe := make(product.Recipe, 0, len(sp.Recipe))
	for _, l := range sp.Recipe {
		switch {
		case l.Ingredient != "" && l.Category == "":
			recipe = append(recipe, product.FixedLine{IngredientID: l.Ingredient, Quantity: l.Quantity})
		case l.Category != "" && l.Ingredient == "":
			recipe = append(recipe, product.VariableLine{Category: l.Category, Quantity: l.Quantity})
		default:
			return nil, fmt.Errorf("linha de receita precisa de ingredient ou category, não ambos")
		}
	}

	p := &product.Product{
		ID:        sp.ID,
		ShopID:    shopID,
		Name:      sp.Name,
		Category:  sp.Category,
		Price:     price,
		Recipe:    recipe,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
