package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/sorveteria-pos/internal/domain/cashsession"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/ingredient"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/payment"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/sale"
	"github.com/hugohenrick/sorveteria-pos/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Motivo gravado nas movimentações geradas por venda
const saleMovementReason = "venda"

// PostgresSaleRepository implementa a interface sale.Repository usando PostgreSQL
type PostgresSaleRepository struct {
	db *database.PostgresDB
}

// NewPostgresSaleRepository cria uma nova instância de PostgresSaleRepository
func NewPostgresSaleRepository(db *database.PostgresDB) *PostgresSaleRepository {
	return &PostgresSaleRepository{db: db}
}

// Create implementa sale.Repository.Create. Venda, itens, pagamentos e baixas
// de estoque são gravados na mesma transação.
func (r *PostgresSaleRepository) Create(ctx context.Context, s *sale.Sale) error {
	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		// FOR SHARE segura o fechamento do caixa até o commit da venda
		var status string
		err := tx.QueryRow(ctx,
			"SELECT status FROM cash_sessions WHERE id = $1 AND shop_id = $2 FOR SHARE",
			s.SessionID, s.ShopID,
		).Scan(&status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
				return cashsession.ErrSessionNotFound
			}
			return fmt.Errorf("falha ao verificar caixa da venda: %w", err)
		}
		if cashsession.Status(status) != cashsession.StatusOpen {
			return cashsession.ErrConcurrentClose
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO sales (id, shop_id, session_id, employee_id, total, tendered, change, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			s.ID, s.ShopID, s.SessionID, s.EmployeeID, s.Total, s.Tendered, s.Change, s.CreatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("venda %s já registrada: %w", s.ID, err)
			}
			return fmt.Errorf("falha ao inserir venda: %w", err)
		}

		batch := &pgx.Batch{}
		for i, item := range s.Items {
			usage, err := json.Marshal(item.IngredientsUsed)
			if err != nil {
				return fmt.Errorf("falha ao serializar consumo do item: %w", err)
			}
			batch.Queue(`
				INSERT INTO sale_items (sale_id, position, product_id, product_name, quantity, unit_price, ingredients_used)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				s.ID, i, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice, usage,
			)
		}
		for i, p := range s.Payments {
			batch.Queue(`
				INSERT INTO sale_payments (sale_id, position, method_id, method_name, type, amount, tendered)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				s.ID, i, p.MethodID, p.MethodName, string(p.Type), p.Amount, p.Tendered,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("falha ao inserir itens da venda: %w", err)
		}

		// Consumption vem ordenado por ingrediente, o que fixa a ordem dos locks
		for _, u := range s.Consumption() {
			previous, err := decrementStock(ctx, tx, s.ShopID, u.IngredientID, u.Quantity)
			if err != nil {
				return err
			}
			m := ingredient.NewStockMovement(s.ShopID, u.IngredientID, previous, -u.Quantity, saleMovementReason, s.EmployeeID)
			m.SaleID = s.ID
			m.CreatedAt = s.CreatedAt
			if err := insertMovement(ctx, tx, m); err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID implementa sale.Repository.FindByID
func (r *PostgresSaleRepository) FindByID(ctx context.Context, shopID, id string) (*sale.Sale, error) {
	sales, err := r.query(ctx, "s.shop_id = $1 AND s.id = $2", shopID, id)
	if err != nil {
		if isInvalidID(err) {
			return nil, sale.ErrSaleNotFound
		}
		return nil, err
	}
	if len(sales) == 0 {
		return nil, sale.ErrSaleNotFound
	}
	return sales[0], nil
}

// ListByDateRange implementa sale.Repository.ListByDateRange
func (r *PostgresSaleRepository) ListByDateRange(ctx context.Context, shopID string, start, end time.Time) ([]*sale.Sale, error) {
	return r.query(ctx, "s.shop_id = $1 AND s.created_at BETWEEN $2 AND $3", shopID, start, end)
}

// ListBySession implementa sale.Repository.ListBySession
func (r *PostgresSaleRepository) ListBySession(ctx context.Context, shopID, sessionID string) ([]*sale.Sale, error) {
	return r.query(ctx, "s.shop_id = $1 AND s.session_id = $2", shopID, sessionID)
}

// query carrega as vendas que satisfazem o filtro junto com itens e pagamentos
func (r *PostgresSaleRepository) query(ctx context.Context, filter string, args ...interface{}) ([]*sale.Sale, error) {
	conn, err := r.db.GetConnection(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
		SELECT s.id, s.shop_id, s.session_id, s.employee_id, s.total, s.tendered, s.change, s.created_at
		  FROM sales s
		 WHERE `+filter+`
		 ORDER BY s.created_at, s.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar vendas: %w", err)
	}

	sales := make([]*sale.Sale, 0)
	byID := make(map[string]*sale.Sale)
	for rows.Next() {
		s := &sale.Sale{Items: []sale.Item{}, Payments: []payment.Payment{}}
		if err := rows.Scan(&s.ID, &s.ShopID, &s.SessionID, &s.EmployeeID,
			&s.Total, &s.Tendered, &s.Change, &s.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("falha ao ler venda: %w", err)
		}
		sales = append(sales, s)
		byID[s.ID] = s
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return sales, nil
	}

	if err := loadSaleItems(ctx, conn, byID, filter, args...); err != nil {
		return nil, err
	}
	if err := loadSalePayments(ctx, conn, byID, filter, args...); err != nil {
		return nil, err
	}
	return sales, nil
}

func loadSaleItems(ctx context.Context, conn *pgxpool.Conn, byID map[string]*sale.Sale, filter string, args ...interface{}) error {
	rows, err := conn.Query(ctx, `
		SELECT si.sale_id, si.product_id, si.product_name, si.quantity, si.unit_price, si.ingredients_used
		  FROM sale_items si
		  JOIN sales s ON s.id = si.sale_id
		 WHERE `+filter+`
		 ORDER BY si.sale_id, si.position`, args...)
	if err != nil {
		return fmt.Errorf("falha ao buscar itens da venda: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			saleID string
			usage  []byte
			item   sale.Item
		)
		if err := rows.Scan(&saleID, &item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPrice, &usage); err != nil {
			return fmt.Errorf("falha ao ler item da venda: %w", err)
		}
		if err := json.Unmarshal(usage, &item.IngredientsUsed); err != nil {
			return fmt.Errorf("consumo do item inválido: %w", err)
		}
		if s, ok := byID[saleID]; ok {
			s.Items = append(s.Items, item)
		}
	}
	return rows.Err()
}

func loadSalePayments(ctx context.Context, conn *pgxpool.Conn, byID map[string]*sale.Sale, filter string, args ...interface{}) error {
	rows, err := conn.Query(ctx, `
		SELECT sp.sale_id, sp.method_id, sp.method_name, sp.type, sp.amount, sp.tendered
		  FROM sale_payments sp
		  JOIN sales s ON s.id = sp.sale_id
		 WHERE `+filter+`
		 ORDER BY sp.sale_id, sp.position`, args...)
	if err != nil {
		return fmt.Errorf("falha ao buscar pagamentos da venda: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			saleID, methodType string
			p                  payment.Payment
		)
		if err := rows.Scan(&saleID, &p.MethodID, &p.MethodName, &methodType, &p.Amount, &p.Tendered); err != nil {
			return fmt.Errorf("falha ao ler pagamento da venda: %w", err)
		}
		p.Type = payment.MethodType(methodType)
		if s, ok := byID[saleID]; ok {
			s.Payments = append(s.Payments, p)
		}
	}
	return rows.Err()
}
