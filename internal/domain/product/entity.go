package product

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hugohenrick/sorveteria-pos/internal/domain/failure"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound = fmt.Errorf("%w: produto não encontrado", failure.ErrNotFound)
	ErrNegativePrice   = fmt.Errorf("%w: preço de venda não pode ser negativo", failure.ErrValidation)
)

// Product representa um item vendável com sua receita
type Product struct {
	ID        string          `json:"id"`
	ShopID    string          `json:"shop_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Recipe    Recipe          `json:"-"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Validate verifica preço e receita
func (p *Product) Validate() error {
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	return p.Recipe.Validate()
}

// Usage é o consumo concreto de um ingrediente por unidade de produto
type Usage struct {
	IngredientID string  `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
}

// UsageSignature gera a identidade textual de uma lista de consumos.
// Duas listas iguais elemento a elemento produzem a mesma assinatura.
func UsageSignature(usages []Usage) string {
	parts := make([]string, 0, len(usages))
	for _, u := range usages {
		parts = append(parts, u.IngredientID+"="+strconv.FormatFloat(u.Quantity, 'g', -1, 64))
	}
	return strings.Join(parts, ";")
}

// Multiply retorna o consumo total de n unidades, somado por ingrediente
func Multiply(usages []Usage, n int) map[string]float64 {
	out := make(map[string]float64, len(usages))
	for _, u := range usages {
		out[u.IngredientID] += u.Quantity * float64(n)
	}
	return out
}
