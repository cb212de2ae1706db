package cashsession

import "context"

// Repository define as operações de persistência para caixas
type Repository interface {
	// GetOpen retorna o caixa aberto da loja ou ErrNoOpenSession
	GetOpen(ctx context.Context, shopID string) (*CashSession, error)

	// FindByID busca um caixa da loja
	FindByID(ctx context.Context, shopID, id string) (*CashSession, error)

	// Create grava um caixa aberto; ErrConcurrentOpen se outro já estiver aberto
	Create(ctx context.Context, session *CashSession) error

	// Close grava o fechamento apenas se o caixa ainda estiver aberto
	// (senão ErrConcurrentClose) e se o número de vendas do caixa ainda for
	// Totals.SaleCount (senão ErrStaleTotals)
	Close(ctx context.Context, session *CashSession) error

	// List retorna os caixas da loja, dos mais recentes aos mais antigos
	List(ctx context.Context, shopID string, limit, offset int) ([]*CashSession, error)
}
