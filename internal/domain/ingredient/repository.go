package ingredient

import "context"

// Repository define as operações de persistência para ingredientes
type Repository interface {
	// List retorna todos os ingredientes da loja
	List(ctx context.Context, shopID string) ([]*Ingredient, error)

	// FindByID busca um ingrediente da loja
	FindByID(ctx context.Context, shopID, id string) (*Ingredient, error)

	// DecrementStock baixa o estoque de forma relativa e condicional;
	// retorna ErrInsufficientStock se o saldo atual não cobre a quantidade.
	// É a baixa avulsa do estoque de ingredientes; a venda usa a mesma
	// condição dentro da própria transação em sale.Repository.Create
	DecrementStock(ctx context.Context, shopID, id string, amount float64) error

	// AdjustStock aplica um ajuste manual relativo e grava o movimento de auditoria
	AdjustStock(ctx context.Context, shopID string, adj Adjustment) (*StockMovement, error)

	// ListMovements retorna os movimentos de um ingrediente, do mais recente ao mais antigo
	ListMovements(ctx context.Context, shopID, ingredientID string, limit int) ([]*StockMovement, error)
}
