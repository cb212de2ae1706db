package dto

import (
	"github.com/hugohenrick/sorveteria-pos/internal/domain/availability"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/payment"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/product"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/unit"
	"github.com/shopspring/decimal"
)

// ProductAvailabilityResponse representa um produto na tela de venda
type ProductAvailabilityResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Price          decimal.Decimal `json:"price"`
	IsAvailable    bool            `json:"is_available"`
	AvailableUnits *int            `json:"available_units"` // null quando não há limite
	HasVariable    bool            `json:"has_variable"`
}

// ToProductAvailabilityResponse converte a disponibilidade calculada
func ToProductAvailabilityResponse(pa availability.ProductAvailability) ProductAvailabilityResponse {
	resp := ProductAvailabilityResponse{
		ID:          pa.Product.ID,
		Name:        pa.Product.Name,
		Category:    pa.Product.Category,
		Price:       pa.Product.Price,
		IsAvailable: pa.IsAvailable,
	}
	_, resp.HasVariable = pa.Product.Recipe.Variable()
	if !pa.Unbounded {
		units := pa.AvailableUnits
		resp.AvailableUnits = &units
	}
	return resp
}

// ToProductAvailabilityList converte a lista de disponibilidades
func ToProductAvailabilityList(list []availability.ProductAvailability) []ProductAvailabilityResponse {
	out := make([]ProductAvailabilityResponse, 0, len(list))
	for _, pa := range list {
		out = append(out, ToProductAvailabilityResponse(pa))
	}
	return out
}

// ChoiceResponse representa uma escolha possível da linha variável
type ChoiceResponse struct {
	IngredientID   string `json:"ingredient_id"`
	Name           string `json:"name"`
	IsAvailable    bool   `json:"is_available"`
	AvailableUnits int    `json:"available_units"`
}

// ProductOptionsResponse lista as escolhas de um produto com linha variável
type ProductOptionsResponse struct {
	ProductID string           `json:"product_id"`
	Category  string           `json:"category"`
	Quantity  float64          `json:"quantity"`
	Choices   []ChoiceResponse `json:"choices"`
}

// ToProductOptionsResponse converte as escolhas calculadas
func ToProductOptionsResponse(p *product.Product, choices []availability.ChoiceAvailability) ProductOptionsResponse {
	resp := ProductOptionsResponse{ProductID: p.ID, Choices: make([]ChoiceResponse, 0, len(choices))}
	if v, ok := p.Recipe.Variable(); ok {
		resp.Category = v.Category
		resp.Quantity = v.Quantity
	}
	for _, c := range choices {
		resp.Choices = append(resp.Choices, ChoiceResponse{
			IngredientID:   c.Ingredient.ID,
			Name:           c.Ingredient.Name,
			IsAvailable:    c.IsAvailable,
			AvailableUnits: c.AvailableUnits,
		})
	}
	return resp
}

// PaymentMethodResponse representa uma forma de pagamento
type PaymentMethodResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// ToPaymentMethodList converte as formas de pagamento
func ToPaymentMethodList(methods []*payment.Method) []PaymentMethodResponse {
	out := make([]PaymentMethodResponse, 0, len(methods))
	for _, m := range methods {
		out = append(out, PaymentMethodResponse{ID: m.ID, Name: m.Name, Type: string(m.Type)})
	}
	return out
}

// UnitCategoryResponse agrupa as unidades de uma categoria
type UnitCategoryResponse struct {
	Category string   `json:"category"`
	Units    []string `json:"units"`
}

// ToUnitTable monta a tabela de unidades na ordem de exibição
func ToUnitTable() []UnitCategoryResponse {
	out := make([]UnitCategoryResponse, 0)
	for _, c := range unit.Categories() {
		out = append(out, UnitCategoryResponse{Category: string(c), Units: unit.UnitsInCategory(c)})
	}
	return out
}
