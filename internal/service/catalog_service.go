package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/sorveteria-pos/internal/domain/availability"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/failure"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/ingredient"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/product"
	"github.com/hugohenrick/sorveteria-pos/pkg/logger"
)

// ErrProductUnavailable indica que o estoque livre não cobre mais uma unidade
var ErrProductUnavailable = fmt.Errorf("%w: produto indisponível no estoque atual", failure.ErrValidation)

// CatalogService lê catálogo e estoque e calcula a disponibilidade
type CatalogService struct {
	ingredients ingredient.Repository
	products    product.Repository
	log         logger.Logger
}

// NewCatalogService cria uma nova instância de CatalogService
func NewCatalogService(ingredients ingredient.Repository, products product.Repository, log logger.Logger) *CatalogService {
	return &CatalogService{
		ingredients: ingredients,
		products:    products,
		log:         log.With("component", "catalog"),
	}
}

// Engine monta o motor de disponibilidade com o estoque atual e as reservas informadas
func (s *CatalogService) Engine(ctx context.Context, shopID string, cart availability.Reserver) (*availability.Engine, error) {
	ingredients, err := s.ingredients.List(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar ingredientes: %w", err)
	}
	return availability.NewEngine(ingredients, cart), nil
}

// Availability calcula a disponibilidade de todos os produtos da loja
func (s *CatalogService) Availability(ctx context.Context, shopID string, cart availability.Reserver) ([]availability.ProductAvailability, error) {
	products, err := s.products.List(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar produtos: %w", err)
	}

	engine, err := s.Engine(ctx, shopID, cart)
	if err != nil {
		return nil, err
	}
	return engine.EvaluateAll(products), nil
}

// Options lista as escolhas possíveis para a linha variável do produto
func (s *CatalogService) Options(ctx context.Context, shopID, productID string, cart availability.Reserver) (*product.Product, []availability.ChoiceAvailability, error) {
	p, err := s.products.FindByID(ctx, shopID, productID)
	if err != nil {
		return nil, nil, err
	}

	engine, err := s.Engine(ctx, shopID, cart)
	if err != nil {
		return nil, nil, err
	}
	return p, engine.Options(p), nil
}

// Selection carrega o produto e, se informado, o ingrediente escolhido para a linha variável
func (s *CatalogService) Selection(ctx context.Context, shopID, productID, choiceID string) (*product.Product, *ingredient.Ingredient, error) {
	p, err := s.products.FindByID(ctx, shopID, productID)
	if err != nil {
		return nil, nil, err
	}
	if choiceID == "" {
		return p, nil, nil
	}

	choice, err := s.ingredients.FindByID(ctx, shopID, choiceID)
	if errors.Is(err, ingredient.ErrIngredientNotFound) {
		return nil, nil, fmt.Errorf("%w: %s", product.ErrInvalidVariableChoice, choiceID)
	}
	if err != nil {
		return nil, nil, err
	}
	return p, choice, nil
}
