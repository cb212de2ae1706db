package dto

import (
	"time"

	"github.com/hugohenrick/sorveteria-pos/internal/domain/order"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/payment"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/product"
	"github.com/shopspring/decimal"
)

// OpenTabRequest representa a abertura de uma comanda
type OpenTabRequest struct {
	Label string `json:"label"`
}

// AddItemRequest adiciona uma unidade de produto à comanda
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	ChoiceID  string `json:"choice_id"` // ingrediente escolhido para a linha variável
}

// SetQuantityRequest ajusta a quantidade de uma linha; zero remove
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// AddPaymentRequest registra um pagamento na comanda
type AddPaymentRequest struct {
	MethodID string          `json:"method_id" binding:"required"`
	Amount   decimal.Decimal `json:"amount"`
}

// TabLineResponse representa uma linha da comanda
type TabLineResponse struct {
	Key             string          `json:"key"`
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	IngredientsUsed []product.Usage `json:"ingredients_used"`
}

// TabResponse representa o estado de uma comanda
type TabResponse struct {
	ID         string            `json:"id"`
	Label      string            `json:"label"`
	EmployeeID string            `json:"employee_id"`
	OpenedAt   time.Time         `json:"opened_at"`
	Lines      []TabLineResponse `json:"lines"`
	Total      decimal.Decimal   `json:"total"`
	Payments   []payment.Payment `json:"payments"`
	Remaining  decimal.Decimal   `json:"remaining"`
	Change     decimal.Decimal   `json:"change"`
	Complete   bool              `json:"complete"`
}

// ToTabResponse converte a visão da comanda
func ToTabResponse(v order.View) TabResponse {
	resp := TabResponse{
		ID:         v.ID,
		Label:      v.Label,
		EmployeeID: v.EmployeeID,
		OpenedAt:   v.OpenedAt,
		Lines:      make([]TabLineResponse, 0, len(v.Lines)),
		Total:      v.Total,
		Payments:   v.Payments,
		Remaining:  v.Remaining,
		Change:     v.Change,
		Complete:   v.Complete,
	}
	if resp.Payments == nil {
		resp.Payments = []payment.Payment{}
	}
	for _, l := range v.Lines {
		resp.Lines = append(resp.Lines, TabLineResponse{
			Key:             l.Key,
			ProductID:       l.ProductID,
			ProductName:     l.ProductName,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			Subtotal:        l.Subtotal(),
			IngredientsUsed: l.IngredientsUsed,
		})
	}
	return resp
}

// ToTabList converte a lista de comandas
func ToTabList(views []order.View) []TabResponse {
	out := make([]TabResponse, 0, len(views))
	for _, v := range views {
		out = append(out, ToTabResponse(v))
	}
	return out
}
