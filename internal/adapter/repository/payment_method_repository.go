package repository

import (
	"context"
	"fmt"

	"github.com/hugohenrick/sorveteria-pos/internal/domain/payment"
	"github.com/hugohenrick/sorveteria-pos/internal/infrastructure/database"
)

// PostgresPaymentMethodRepository implementa a interface payment.Repository usando PostgreSQL
type PostgresPaymentMethodRepository struct {
	db *database.PostgresDB
}

// NewPostgresPaymentMethodRepository cria uma nova instância de PostgresPaymentMethodRepository
func NewPostgresPaymentMethodRepository(db *database.PostgresDB) *PostgresPaymentMethodRepository {
	return &PostgresPaymentMethodRepository{db: db}
}

// List implementa payment.Repository.List
func (r *PostgresPaymentMethodRepository) List(ctx context.Context, shopID string) ([]*payment.Method, error) {
	conn, err := r.db.GetConnection(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
		SELECT id, shop_id, name, type, enabled
		  FROM payment_methods
		 WHERE shop_id = $1
		 ORDER BY name`, shopID)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar formas de pagamento: %w", err)
	}
	defer rows.Close()

	out := make([]*payment.Method, 0)
	for rows.Next() {
		m := &payment.Method{}
		var methodType string
		if err := rows.Scan(&m.ID, &m.ShopID, &m.Name, &methodType, &m.Enabled); err != nil {
			return nil, fmt.Errorf("falha ao ler forma de pagamento: %w", err)
		}
		m.Type = payment.MethodType(methodType)
		out = append(out, m)
	}
	return out, rows.Err()
}
