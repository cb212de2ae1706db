// Package availability calcula quantas unidades de cada produto ainda podem
// ser vendidas a partir do estoque atual e das reservas do pedido em aberto.
//
// O resultado é uma visão derivada: deve ser recalculado após qualquer
// alteração no carrinho ou no estoque, e nunca é persistido.
package availability

import (
	"math"
	"sort"
	"strings"

	"github.com/hugohenrick/sorveteria-pos/internal/domain/ingredient"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/product"
)

// Reserver é qualquer coisa que reserve ingredientes, normalmente um carrinho
type Reserver interface {
	Reservations() map[string]float64
}

// ProductAvailability é o estado vendável de um produto
type ProductAvailability struct {
	Product        *product.Product
	IsAvailable    bool
	AvailableUnits int
	Unbounded      bool // apenas linhas variáveis, ou receita vazia
}

// ChoiceAvailability é a disponibilidade do produto para uma escolha concreta da linha variável
type ChoiceAvailability struct {
	Ingredient     *ingredient.Ingredient
	IsAvailable    bool
	AvailableUnits int
}

// Engine guarda um instantâneo de estoque e reservas
type Engine struct {
	stock    map[string]*ingredient.Ingredient
	reserved map[string]float64
}

// NewEngine cria o motor para o estoque informado; cart pode ser nil
func NewEngine(ingredients []*ingredient.Ingredient, cart Reserver) *Engine {
	stock := make(map[string]*ingredient.Ingredient, len(ingredients))
	for _, i := range ingredients {
		stock[i.ID] = i
	}

	reserved := map[string]float64{}
	if cart != nil {
		reserved = cart.Reservations()
	}

	return &Engine{stock: stock, reserved: reserved}
}

// Free retorna o estoque livre do ingrediente, descontadas as reservas
func (e *Engine) Free(ingredientID string) (float64, bool) {
	i, ok := e.stock[ingredientID]
	if !ok {
		return 0, false
	}
	return i.Stock - e.reserved[ingredientID], true
}

// lineUnits aplica floor((estoque - reservado) / quantidade) para uma linha fixa.
// Linhas malformadas ou ingredientes inexistentes resultam em zero.
func (e *Engine) lineUnits(ingredientID string, quantity float64) float64 {
	if quantity <= 0 || math.IsNaN(quantity) {
		return 0
	}
	free, ok := e.Free(ingredientID)
	if !ok {
		return 0
	}
	return math.Floor(free / quantity)
}

// Units retorna as unidades disponíveis para a receita; +Inf se nenhuma linha fixa a limita
func (e *Engine) Units(recipe product.Recipe) float64 {
	units := math.Inf(1)
	for _, line := range recipe {
		switch l := line.(type) {
		case product.FixedLine:
			units = math.Min(units, e.lineUnits(l.IngredientID, l.Quantity))
		case product.VariableLine:
			// limitada apenas depois da escolha do cliente
		}
	}
	return math.Max(0, units)
}

// Evaluate calcula a disponibilidade de um produto
func (e *Engine) Evaluate(p *product.Product) ProductAvailability {
	units := e.Units(p.Recipe)
	return newProductAvailability(p, units)
}

// EvaluateAll calcula a disponibilidade de todos os produtos, na ordem recebida
func (e *Engine) EvaluateAll(products []*product.Product) []ProductAvailability {
	out := make([]ProductAvailability, 0, len(products))
	for _, p := range products {
		out = append(out, e.Evaluate(p))
	}
	return out
}

// Options lista os ingredientes que podem preencher a linha variável do produto,
// com a disponibilidade que cada escolha permitiria. Produtos sem linha variável
// retornam lista vazia.
func (e *Engine) Options(p *product.Product) []ChoiceAvailability {
	variable, ok := p.Recipe.Variable()
	if !ok {
		return []ChoiceAvailability{}
	}

	candidates := make([]*ingredient.Ingredient, 0)
	for _, i := range e.stock {
		if strings.EqualFold(i.Category, variable.Category) {
			candidates = append(candidates, i)
		}
	}
	sort.Slice(candidates, func(a, b int) bool {
		if candidates[a].Name == candidates[b].Name {
			return candidates[a].ID < candidates[b].ID
		}
		return candidates[a].Name < candidates[b].Name
	})

	out := make([]ChoiceAvailability, 0, len(candidates))
	for _, c := range candidates {
		usages, err := product.Resolve(p.Recipe, c)
		if err != nil {
			continue
		}
		units := e.UsageUnits(usages)
		if math.IsInf(units, 1) {
			units = 0
		}
		out = append(out, ChoiceAvailability{
			Ingredient:     c,
			IsAvailable:    units > 0,
			AvailableUnits: toUnits(units),
		})
	}
	return out
}

// UsageUnits calcula quantas unidades cabem para um consumo já resolvido.
// O consumo é somado por ingrediente antes da divisão, pois a escolha variável
// pode repetir um ingrediente de uma linha fixa. Consumo vazio resulta em +Inf.
func (e *Engine) UsageUnits(usages []product.Usage) float64 {
	units := math.Inf(1)
	for id, qty := range product.Multiply(usages, 1) {
		units = math.Min(units, e.lineUnits(id, qty))
	}
	return math.Max(0, units)
}

func newProductAvailability(p *product.Product, units float64) ProductAvailability {
	if math.IsInf(units, 1) {
		return ProductAvailability{Product: p, IsAvailable: true, Unbounded: true}
	}
	return ProductAvailability{
		Product:        p,
		IsAvailable:    units > 0,
		AvailableUnits: toUnits(units),
	}
}

// maxUnits limita a contagem de unidades; quantidades ínfimas na receita
// estourariam a conversão para int
const maxUnits = math.MaxInt32

func toUnits(units float64) int {
	if units >= maxUnits {
		return maxUnits
	}
	return int(units)
}
