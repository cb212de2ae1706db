package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/sorveteria-pos/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
)

// ShopValidator implementa a interface shop.Validator consultando a tabela de lojas
type ShopValidator struct {
	db *database.PostgresDB
}

// NewShopValidator cria uma nova instância de ShopValidator
func NewShopValidator(db *database.PostgresDB) *ShopValidator {
	return &ShopValidator{db: db}
}

// ValidateShop verifica se uma loja existe e está ativa
func (v *ShopValidator) ValidateShop(ctx context.Context, shopID string) (bool, error) {
	conn, err := v.db.GetConnection(ctx)
	if err != nil {
		return false, fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	var active bool
	err = conn.QueryRow(ctx, "SELECT active FROM shops WHERE id = $1", shopID).Scan(&active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return false, nil
		}
		return false, fmt.Errorf("falha ao buscar loja: %w", err)
	}
	return active, nil
}
