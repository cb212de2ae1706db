package sale

import (
	"context"
	"time"
)

// Repository define as operações de persistência para vendas
type Repository interface {
	// Create grava a venda e baixa o estoque de cada ingrediente consumido na
	// mesma transação. Se algum ingrediente não tiver saldo suficiente, nada é
	// gravado e o erro é ingredient.ErrInsufficientStock. O caixa da venda é
	// conferido na mesma transação: fechado, o erro é cashsession.ErrConcurrentClose.
	Create(ctx context.Context, sale *Sale) error

	// FindByID busca uma venda da loja
	FindByID(ctx context.Context, shopID, id string) (*Sale, error)

	// ListByDateRange retorna as vendas com data entre start e end, inclusive
	ListByDateRange(ctx context.Context, shopID string, start, end time.Time) ([]*Sale, error)

	// ListBySession retorna as vendas registradas no caixa informado
	ListBySession(ctx context.Context, shopID, sessionID string) ([]*Sale, error)
}
