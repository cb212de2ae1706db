// Package order mantém os pedidos em aberto (comandas) e seus carrinhos.
package order

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/failure"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/ingredient"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/product"
	"github.com/shopspring/decimal"
)

var (
	ErrLineNotFound = fmt.Errorf("%w: item não encontrado no pedido", failure.ErrNotFound)
	ErrEmptyCart    = fmt.Errorf("%w: pedido sem itens", failure.ErrValidation)
)

var lineNamespace = uuid.MustParse("8f1c6a52-3f0e-4d84-9a3b-6a7d0f2c9e11")

// LineKey gera a identidade estável de uma linha a partir do produto e da assinatura de consumo
func LineKey(productID, usageSignature string) string {
	return uuid.NewSHA1(lineNamespace, []byte(productID+"|"+usageSignature)).String()
}

// Line é um item do pedido com o consumo já resolvido
type Line struct {
	Key             string          `json:"key"`
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	IngredientsUsed []product.Usage `json:"ingredients_used"`
}

// Subtotal retorna preço unitário vezes quantidade
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart é a lista ordenada de linhas de um pedido; não é segura para uso concorrente
type Cart struct {
	lines []*Line
}

// NewCart cria um carrinho vazio
func NewCart() *Cart {
	return &Cart{}
}

// AddProduct resolve a receita e soma uma unidade à linha equivalente,
// ou cria uma nova linha
func (c *Cart) AddProduct(p *product.Product, choice *ingredient.Ingredient) (Line, error) {
	usages, err := product.Resolve(p.Recipe, choice)
	if err != nil {
		return Line{}, err
	}

	key := LineKey(p.ID, product.UsageSignature(usages))
	if l := c.find(key); l != nil {
		l.Quantity++
		return *l, nil
	}

	l := &Line{
		Key:             key,
		ProductID:       p.ID,
		ProductName:     p.Name,
		Quantity:        1,
		UnitPrice:       p.Price,
		IngredientsUsed: usages,
	}
	c.lines = append(c.lines, l)
	return *l, nil
}

// SetQuantity ajusta a quantidade da linha identificada por produto e assinatura.
// Quantidade menor ou igual a zero remove a linha.
func (c *Cart) SetQuantity(productID, usageSignature string, quantity int) error {
	return c.SetQuantityByKey(LineKey(productID, usageSignature), quantity)
}

// SetQuantityByKey ajusta a quantidade da linha pela chave
func (c *Cart) SetQuantityByKey(key string, quantity int) error {
	for i, l := range c.lines {
		if l.Key != key {
			continue
		}
		if quantity <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
		l.Quantity = quantity
		return nil
	}
	return ErrLineNotFound
}

// Lines retorna uma cópia das linhas
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.lines))
	for _, l := range c.lines {
		cp := *l
		cp.IngredientsUsed = append([]product.Usage(nil), l.IngredientsUsed...)
		out = append(out, cp)
	}
	return out
}

// Total soma os subtotais; é sempre recalculado
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Reservations soma, por ingrediente, o consumo de todas as linhas
func (c *Cart) Reservations() map[string]float64 {
	reserved := make(map[string]float64)
	for _, l := range c.lines {
		for id, qty := range product.Multiply(l.IngredientsUsed, l.Quantity) {
			reserved[id] += qty
		}
	}
	return reserved
}

// IsEmpty informa se não há linhas
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Clear remove todas as linhas
func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) find(key string) *Line {
	for _, l := range c.lines {
		if l.Key == key {
			return l
		}
	}
	return nil
}
