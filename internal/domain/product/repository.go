package product

import "context"

// Repository define as operações de leitura do catálogo
type Repository interface {
	// List retorna todos os produtos da loja com suas receitas
	List(ctx context.Context, shopID string) ([]*Product, error)

	// FindByID busca um produto da loja
	FindByID(ctx context.Context, shopID, id string) (*Product, error)
}
