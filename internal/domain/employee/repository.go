package employee

import "context"

// Repository define as operações de persistência para funcionários
type Repository interface {
	// Create grava um funcionário; ErrDuplicateEmail se o email já existir na loja
	Create(ctx context.Context, e *Employee) error

	FindByID(ctx context.Context, shopID, id string) (*Employee, error)

	// FindByEmail busca um funcionário pelo email dentro da loja
	FindByEmail(ctx context.Context, shopID, email string) (*Employee, error)

	CountByShop(ctx context.Context, shopID string) (int, error)

	UpdateLastLogin(ctx context.Context, shopID, id string) error
}
