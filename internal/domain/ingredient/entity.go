package ingredient

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/failure"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/unit"
)

var (
	ErrEmptyName          = fmt.Errorf("%w: nome do ingrediente não pode ser vazio", failure.ErrValidation)
	ErrInvalidConversion  = fmt.Errorf("%w: fator de conversão deve ser positivo", failure.ErrValidation)
	ErrUnitMismatch       = fmt.Errorf("%w: unidades de compra e consumo devem ser da mesma categoria", failure.ErrValidation)
	ErrUnknownUnit        = fmt.Errorf("%w: unidade desconhecida", failure.ErrValidation)
	ErrZeroAdjustment     = fmt.Errorf("%w: ajuste de estoque não pode ser zero", failure.ErrValidation)
	ErrEmptyReason        = fmt.Errorf("%w: motivo do ajuste é obrigatório", failure.ErrValidation)
	ErrNonPositiveAmount  = fmt.Errorf("%w: quantidade a baixar deve ser positiva", failure.ErrValidation)
	ErrIngredientNotFound = fmt.Errorf("%w: ingrediente não encontrado", failure.ErrNotFound)
	ErrInsufficientStock  = fmt.Errorf("%w: estoque insuficiente", failure.ErrConflict)
)

// Ingredient representa um insumo controlado em unidades de consumo
type Ingredient struct {
	ID                     string    `json:"id"`
	ShopID                 string    `json:"shop_id"`
	Name                   string    `json:"name"`
	Category               string    `json:"category"` // usado para casar linhas variáveis de receita
	PurchaseUnit           string    `json:"purchase_unit"`
	ConsumptionUnit        string    `json:"consumption_unit"`
	ConsumptionPerPurchase float64   `json:"consumption_per_purchase"`
	Stock                  float64   `json:"stock"` // em unidades de consumo
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// Validate verifica nome, fator de conversão e coerência das unidades
func (i *Ingredient) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyName
	}
	if i.ConsumptionPerPurchase <= 0 {
		return ErrInvalidConversion
	}
	if !unit.SameCategory(i.PurchaseUnit, i.ConsumptionUnit) {
		return ErrUnitMismatch
	}
	return nil
}

// ToConsumption converte uma quantidade expressa em unitName para unidades de consumo.
// Uma unidade vazia significa que a quantidade já está em unidades de consumo.
func (i *Ingredient) ToConsumption(amount float64, unitName string) (float64, error) {
	if unitName == "" || strings.EqualFold(unitName, i.ConsumptionUnit) {
		return amount, nil
	}
	if strings.EqualFold(unitName, i.PurchaseUnit) {
		return amount * i.ConsumptionPerPurchase, nil
	}
	converted, ok := unit.Convert(amount, unitName, i.ConsumptionUnit)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownUnit, unitName)
	}
	return converted, nil
}

// StockMovement é o registro de auditoria de toda alteração de estoque
type StockMovement struct {
	ID            string    `json:"id"`
	ShopID        string    `json:"shop_id"`
	IngredientID  string    `json:"ingredient_id"`
	Delta         float64   `json:"delta"`
	PreviousStock float64   `json:"previous_stock"`
	NewStock      float64   `json:"new_stock"`
	Reason        string    `json:"reason"`
	ActorID       string    `json:"actor_id"`
	SaleID        string    `json:"sale_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewStockMovement cria um movimento a partir do estoque anterior e do delta aplicado
func NewStockMovement(shopID, ingredientID string, previous, delta float64, reason, actorID string) *StockMovement {
	return &StockMovement{
		ID:            uuid.New().String(),
		ShopID:        shopID,
		IngredientID:  ingredientID,
		Delta:         delta,
		PreviousStock: previous,
		NewStock:      previous + delta,
		Reason:        reason,
		ActorID:       actorID,
		CreatedAt:     time.Now(),
	}
}

// Adjustment descreve um ajuste manual de estoque já convertido para unidades de consumo
type Adjustment struct {
	IngredientID string
	Delta        float64
	Reason       string
	ActorID      string
}

// Validate verifica delta e motivo
func (a Adjustment) Validate() error {
	if a.Delta == 0 {
		return ErrZeroAdjustment
	}
	if strings.TrimSpace(a.Reason) == "" {
		return ErrEmptyReason
	}
	return nil
}
