package dto

import (
	"time"

	"github.com/hugohenrick/sorveteria-pos/internal/domain/ingredient"
)

// AdjustStockRequest representa um ajuste manual de estoque. Amount pode ser
// negativo; Unit vazia significa a unidade de consumo.
type AdjustStockRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	Unit   string  `json:"unit"`
	Reason string  `json:"reason" binding:"required"`
}

// IngredientResponse representa um ingrediente com seu saldo
type IngredientResponse struct {
	ID                     string    `json:"id"`
	Name                   string    `json:"name"`
	Category               string    `json:"category"`
	PurchaseUnit           string    `json:"purchase_unit"`
	ConsumptionUnit        string    `json:"consumption_unit"`
	ConsumptionPerPurchase float64   `json:"consumption_per_purchase"`
	Stock                  float64   `json:"stock"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// ToIngredientList converte a lista de ingredientes
func ToIngredientList(list []*ingredient.Ingredient) []IngredientResponse {
	out := make([]IngredientResponse, 0, len(list))
	for _, i := range list {
		out = append(out, IngredientResponse{
			ID:                     i.ID,
			Name:                   i.Name,
			Category:               i.Category,
			PurchaseUnit:           i.PurchaseUnit,
			ConsumptionUnit:        i.ConsumptionUnit,
			ConsumptionPerPurchase: i.ConsumptionPerPurchase,
			Stock:                  i.Stock,
			UpdatedAt:              i.UpdatedAt,
		})
	}
	return out
}

// StockMovementResponse representa uma movimentação de estoque
type StockMovementResponse struct {
	ID            string    `json:"id"`
	IngredientID  string    `json:"ingredient_id"`
	Delta         float64   `json:"delta"`
	PreviousStock float64   `json:"previous_stock"`
	NewStock      float64   `json:"new_stock"`
	Reason        string    `json:"reason"`
	ActorID       string    `json:"actor_id"`
	SaleID        string    `json:"sale_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToStockMovementResponse converte uma movimentação
func ToStockMovementResponse(m *ingredient.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:            m.ID,
		IngredientID:  m.IngredientID,
		Delta:         m.Delta,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		Reason:        m.Reason,
		ActorID:       m.ActorID,
		SaleID:        m.SaleID,
		CreatedAt:     m.CreatedAt,
	}
}

// ToStockMovementList converte a lista de movimentações
func ToStockMovementList(list []*ingredient.StockMovement) []StockMovementResponse {
	out := make([]StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToStockMovementResponse(m))
	}
	return out
}
