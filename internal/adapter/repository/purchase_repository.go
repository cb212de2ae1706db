package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/hugohenrick/sorveteria-pos/internal/domain/purchase"
	"github.com/hugohenrick/sorveteria-pos/internal/infrastructure/database"
)

// PostgresPurchaseRepository implementa a interface purchase.Repository usando PostgreSQL
type PostgresPurchaseRepository struct {
	db *database.PostgresDB
}

// NewPostgresPurchaseRepository cria uma nova instância de PostgresPurchaseRepository
func NewPostgresPurchaseRepository(db *database.PostgresDB) *PostgresPurchaseRepository {
	return &PostgresPurchaseRepository{db: db}
}

// Create implementa purchase.Repository.Create
func (r *PostgresPurchaseRepository) Create(ctx context.Context, p *purchase.Purchase) error {
	conn, err := r.db.GetConnection(ctx)
	if err != nil {
		return fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
		INSERT INTO purchases (id, shop_id, employee_id, session_id, kind, description, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.ShopID, p.EmployeeID, nullable(p.SessionID), string(p.Kind), p.Description, p.Total, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao inserir compra: %w", err)
	}
	return nil
}

// ListByDateRange implementa purchase.Repository.ListByDateRange
func (r *PostgresPurchaseRepository) ListByDateRange(ctx context.Context, shopID string, start, end time.Time) ([]*purchase.Purchase, error) {
	conn, err := r.db.GetConnection(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
		SELECT id, shop_id, employee_id, session_id, kind, description, total, created_at
		  FROM purchases
		 WHERE shop_id = $1 AND created_at BETWEEN $2 AND $3
		 ORDER BY created_at`, shopID, start, end)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar compras: %w", err)
	}
	defer rows.Close()

	out := make([]*purchase.Purchase, 0)
	for rows.Next() {
		p := &purchase.Purchase{}
		var (
			sessionID *string
			kind      string
		)
		if err := rows.Scan(&p.ID, &p.ShopID, &p.EmployeeID, &sessionID, &kind,
			&p.Description, &p.Total, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("falha ao ler compra: %w", err)
		}
		p.SessionID = deref(sessionID)
		p.Kind = purchase.Kind(kind)
		out = append(out, p)
	}
	return out, rows.Err()
}
