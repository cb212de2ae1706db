package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/sorveteria-pos/internal/domain/cashsession"
	"github.com/hugohenrick/sorveteria-pos/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const cashSessionColumns = `id, shop_id, employee_id, status, opening_balance, start_time, end_time,
	cash_sales, electronic_sales, total_expenses, counted_cash, expected_cash_in_box, difference, notes, sale_count`

// PostgresCashSessionRepository implementa a interface cashsession.Repository usando PostgreSQL
type PostgresCashSessionRepository struct {
	db *database.PostgresDB
}

// NewPostgresCashSessionRepository cria uma nova instância de PostgresCashSessionRepository
func NewPostgresCashSessionRepository(db *database.PostgresDB) *PostgresCashSessionRepository {
	return &PostgresCashSessionRepository{db: db}
}

// GetOpen implementa cashsession.Repository.GetOpen
func (r *PostgresCashSessionRepository) GetOpen(ctx context.Context, shopID string) (*cashsession.CashSession, error) {
	cs, err := r.findOne(ctx, "shop_id = $1 AND status = 'open'", shopID)
	if errors.Is(err, cashsession.ErrSessionNotFound) {
		return nil, cashsession.ErrNoOpenSession
	}
	return cs, err
}

// FindByID implementa cashsession.Repository.FindByID
func (r *PostgresCashSessionRepository) FindByID(ctx context.Context, shopID, id string) (*cashsession.CashSession, error) {
	return r.findOne(ctx, "shop_id = $1 AND id = $2", shopID, id)
}

// Create implementa cashsession.Repository.Create. O índice único parcial
// garante no máximo um caixa aberto por loja.
func (r *PostgresCashSessionRepository) Create(ctx context.Context, cs *cashsession.CashSession) error {
	conn, err := r.db.GetConnection(ctx)
	if err != nil {
		return fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
		INSERT INTO cash_sessions (id, shop_id, employee_id, status, opening_balance, start_time)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		cs.ID, cs.ShopID, cs.EmployeeID, string(cs.Status), cs.OpeningBalance, cs.StartTime,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return cashsession.ErrConcurrentOpen
		}
		return fmt.Errorf("falha ao abrir caixa: %w", err)
	}
	return nil
}

// Close implementa cashsession.Repository.Close
func (r *PostgresCashSessionRepository) Close(ctx context.Context, cs *cashsession.CashSession) error {
	if cs.Closing == nil || cs.EndTime == nil {
		return fmt.Errorf("caixa %s sem fechamento", cs.ID)
	}

	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		// FOR UPDATE espera as vendas em andamento neste caixa terminarem
		var status string
		err := tx.QueryRow(ctx,
			"SELECT status FROM cash_sessions WHERE id = $1 AND shop_id = $2 FOR UPDATE",
			cs.ID, cs.ShopID,
		).Scan(&status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
				return cashsession.ErrSessionNotFound
			}
			return fmt.Errorf("falha ao bloquear caixa: %w", err)
		}
		if cashsession.Status(status) != cashsession.StatusOpen {
			return cashsession.ErrConcurrentClose
		}

		c := cs.Closing
		var sales int
		if err := tx.QueryRow(ctx,
			"SELECT COUNT(*) FROM sales WHERE shop_id = $1 AND session_id = $2",
			cs.ShopID, cs.ID,
		).Scan(&sales); err != nil {
			return fmt.Errorf("falha ao contar vendas do caixa: %w", err)
		}
		if sales != c.SaleCount {
			return cashsession.ErrStaleTotals
		}

		_, err = tx.Exec(ctx, `
			UPDATE cash_sessions
			   SET status = $1, end_time = $2, cash_sales = $3, electronic_sales = $4,
			       total_expenses = $5, counted_cash = $6, expected_cash_in_box = $7,
			       difference = $8, notes = $9, sale_count = $10
			 WHERE id = $11 AND shop_id = $12`,
			string(cashsession.StatusClosed), *cs.EndTime, c.CashSales, c.ElectronicSales,
			c.TotalExpenses, c.CountedCash, c.ExpectedCashInBox, c.Difference, c.Notes, c.SaleCount,
			cs.ID, cs.ShopID,
		)
		if err != nil {
			return fmt.Errorf("falha ao fechar caixa: %w", err)
		}
		return nil
	})
}

// List implementa cashsession.Repository.List
func (r *PostgresCashSessionRepository) List(ctx context.Context, shopID string, limit, offset int) ([]*cashsession.CashSession, error) {
	conn, err := r.db.GetConnection(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	query := "SELECT " + cashSessionColumns + " FROM cash_sessions WHERE shop_id = $1 ORDER BY start_time DESC OFFSET $2"
	args := []interface{}{shopID, offset}
	if limit > 0 {
		query += " LIMIT $3"
		args = append(args, limit)
	}

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar caixas: %w", err)
	}
	defer rows.Close()

	out := make([]*cashsession.CashSession, 0)
	for rows.Next() {
		cs, err := scanCashSession(rows)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler caixa: %w", err)
		}
		out = append(out, cs)
	}
	return out, rows.Err()
}

func (r *PostgresCashSessionRepository) findOne(ctx context.Context, filter string, args ...interface{}) (*cashsession.CashSession, error) {
	conn, err := r.db.GetConnection(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	cs, err := scanCashSession(conn.QueryRow(ctx, "SELECT "+cashSessionColumns+" FROM cash_sessions WHERE "+filter, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return nil, cashsession.ErrSessionNotFound
		}
		return nil, fmt.Errorf("falha ao buscar caixa: %w", err)
	}
	return cs, nil
}

func scanCashSession(row pgx.Row) (*cashsession.CashSession, error) {
	cs := &cashsession.CashSession{}
	var (
		status                                    string
		endTime                                   *time.Time
		cashSales, electronicSales, totalExpenses decimal.NullDecimal
		counted, expected, difference             decimal.NullDecimal
		notes                                     string
		saleCount                                 int
	)
	err := row.Scan(
		&cs.ID,
		&cs.ShopID,
		&cs.EmployeeID,
		&status,
		&cs.OpeningBalance,
		&cs.StartTime,
		&endTime,
		&cashSales,
		&electronicSales,
		&totalExpenses,
		&counted,
		&expected,
		&difference,
		&notes,
		&saleCount,
	)
	if err != nil {
		return nil, err
	}

	cs.Status = cashsession.Status(status)
	cs.EndTime = endTime
	if cs.Status == cashsession.StatusClosed {
		cs.Closing = &cashsession.Reconciliation{
			Totals: cashsession.Totals{
				CashSales:       cashSales.Decimal,
				ElectronicSales: electronicSales.Decimal,
				TotalExpenses:   totalExpenses.Decimal,
				SaleCount:       saleCount,
			},
			CountedCash:       counted.Decimal,
			ExpectedCashInBox: expected.Decimal,
			Difference:        difference.Decimal,
			Notes:             notes,
		}
	}
	return cs, nil
}
