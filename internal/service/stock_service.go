package service

import (
	"context"

	"github.com/hugohenrick/sorveteria-pos/internal/domain/ingredient"
	"github.com/hugohenrick/sorveteria-pos/pkg/logger"
)

// StockService aplica ajustes manuais auditados
type StockService struct {
	ingredients ingredient.Repository
	log         logger.Logger
}

// NewStockService cria uma nova instância de StockService
func NewStockService(ingredients ingredient.Repository, log logger.Logger) *StockService {
	return &StockService{
		ingredients: ingredients,
		log:         log.With("component", "stock"),
	}
}

// List retorna os ingredientes da loja com o estoque atual
func (s *StockService) List(ctx context.Context, shopID string) ([]*ingredient.Ingredient, error) {
	return s.ingredients.List(ctx, shopID)
}

// Adjust converte a quantidade para unidades de consumo e aplica o ajuste relativo
func (s *StockService) Adjust(ctx context.Context, shopID, ingredientID string, amount float64, unitName, reason, actorID string) (*ingredient.StockMovement, error) {
	ing, err := s.ingredients.FindByID(ctx, shopID, ingredientID)
	if err != nil {
		return nil, err
	}

	delta, err := ing.ToConsumption(amount, unitName)
	if err != nil {
		return nil, err
	}

	adj := ingredient.Adjustment{IngredientID: ingredientID, Delta: delta, Reason: reason, ActorID: actorID}
	if err := adj.Validate(); err != nil {
		return nil, err
	}

	m, err := s.ingredients.AdjustStock(ctx, shopID, adj)
	if err != nil {
		return nil, err
	}

	s.log.Info("estoque ajustado",
		"shop_id", shopID,
		"ingredient_id", ingredientID,
		"delta", delta,
		"new_stock", m.NewStock,
		"actor_id", actorID,
	)
	return m, nil
}

// Movements retorna o histórico de movimentos do ingrediente
func (s *StockService) Movements(ctx context.Context, shopID, ingredientID string, limit int) ([]*ingredient.StockMovement, error) {
	if _, err := s.ingredients.FindByID(ctx, shopID, ingredientID); err != nil {
		return nil, err
	}
	return s.ingredients.ListMovements(ctx, shopID, ingredientID, limit)
}
