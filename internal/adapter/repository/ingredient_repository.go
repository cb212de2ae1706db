package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/sorveteria-pos/internal/domain/ingredient"
	"github.com/hugohenrick/sorveteria-pos/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
)

const ingredientColumns = `id, shop_id, name, category, purchase_unit, consumption_unit,
	consumption_per_purchase, stock, created_at, updated_at`

// PostgresIngredientRepository implementa a interface ingredient.Repository usando PostgreSQL
type PostgresIngredientRepository struct {
	db *database.PostgresDB
}

// NewPostgresIngredientRepository cria uma nova instância de PostgresIngredientRepository
func NewPostgresIngredientRepository(db *database.PostgresDB) *PostgresIngredientRepository {
	return &PostgresIngredientRepository{db: db}
}

// List implementa ingredient.Repository.List
func (r *PostgresIngredientRepository) List(ctx context.Context, shopID string) ([]*ingredient.Ingredient, error) {
	conn, err := r.db.GetConnection(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx,
		"SELECT "+ingredientColumns+" FROM ingredients WHERE shop_id = $1 ORDER BY name, id", shopID)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar ingredientes: %w", err)
	}
	defer rows.Close()

	out := make([]*ingredient.Ingredient, 0)
	for rows.Next() {
		i, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler ingrediente: %w", err)
		}
		out = append(out, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("falha ao iterar ingredientes: %w", err)
	}
	return out, nil
}

// FindByID implementa ingredient.Repository.FindByID
func (r *PostgresIngredientRepository) FindByID(ctx context.Context, shopID, id string) (*ingredient.Ingredient, error) {
	conn, err := r.db.GetConnection(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	i, err := scanIngredient(conn.QueryRow(ctx,
		"SELECT "+ingredientColumns+" FROM ingredients WHERE shop_id = $1 AND id = $2", shopID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return nil, ingredient.ErrIngredientNotFound
		}
		return nil, fmt.Errorf("falha ao buscar ingrediente: %w", err)
	}
	return i, nil
}

// DecrementStock implementa ingredient.Repository.DecrementStock.
// A baixa é condicional: nunca deixa o estoque negativo.
func (r *PostgresIngredientRepository) DecrementStock(ctx context.Context, shopID, id string, amount float64) error {
	if amount <= 0 {
		return ingredient.ErrNonPositiveAmount
	}
	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		_, err := decrementStock(ctx, tx, shopID, id, amount)
		return err
	})
}

// AdjustStock implementa ingredient.Repository.AdjustStock
func (r *PostgresIngredientRepository) AdjustStock(ctx context.Context, shopID string, adj ingredient.Adjustment) (*ingredient.StockMovement, error) {
	if err := adj.Validate(); err != nil {
		return nil, err
	}

	var movement *ingredient.StockMovement
	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		var newStock float64
		err := tx.QueryRow(ctx, `
			UPDATE ingredients
			   SET stock = stock + $1, updated_at = NOW()
			 WHERE shop_id = $2 AND id = $3 AND stock + $1 >= 0
			RETURNING stock`,
			adj.Delta, shopID, adj.IngredientID,
		).Scan(&newStock)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return missingOrInsufficient(ctx, tx, shopID, adj.IngredientID)
			}
			if isInvalidID(err) {
				return ingredient.ErrIngredientNotFound
			}
			return fmt.Errorf("falha ao ajustar estoque: %w", err)
		}

		movement = ingredient.NewStockMovement(shopID, adj.IngredientID, newStock-adj.Delta, adj.Delta, adj.Reason, adj.ActorID)
		movement.NewStock = newStock
		return insertMovement(ctx, tx, movement)
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// ListMovements implementa ingredient.Repository.ListMovements
func (r *PostgresIngredientRepository) ListMovements(ctx context.Context, shopID, ingredientID string, limit int) ([]*ingredient.StockMovement, error) {
	conn, err := r.db.GetConnection(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	query := `
		SELECT id, shop_id, ingredient_id, delta, previous_stock, new_stock, reason, actor_id, sale_id, created_at
		  FROM stock_movements
		 WHERE shop_id = $1 AND ingredient_id = $2
		 ORDER BY created_at DESC`
	args := []interface{}{shopID, ingredientID}
	if limit > 0 {
		query += " LIMIT $3"
		args = append(args, limit)
	}

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar movimentações: %w", err)
	}
	defer rows.Close()

	out := make([]*ingredient.StockMovement, 0)
	for rows.Next() {
		m := &ingredient.StockMovement{}
		var saleID *string
		if err := rows.Scan(&m.ID, &m.ShopID, &m.IngredientID, &m.Delta, &m.PreviousStock,
			&m.NewStock, &m.Reason, &m.ActorID, &saleID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("falha ao ler movimentação: %w", err)
		}
		m.SaleID = deref(saleID)
		out = append(out, m)
	}
	return out, rows.Err()
}

// decrementStock aplica a baixa condicional e retorna o estoque anterior
func decrementStock(ctx context.Context, tx pgx.Tx, shopID, id string, amount float64) (float64, error) {
	var newStock float64
	err := tx.QueryRow(ctx, `
		UPDATE ingredients
		   SET stock = stock - $1, updated_at = NOW()
		 WHERE shop_id = $2 AND id = $3 AND stock >= $1
		RETURNING stock`,
		amount, shopID, id,
	).Scan(&newStock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, missingOrInsufficient(ctx, tx, shopID, id)
		}
		if isInvalidID(err) {
			return 0, fmt.Errorf("%w: %s", ingredient.ErrIngredientNotFound, id)
		}
		if isCheckViolation(err) {
			return 0, fmt.Errorf("%w: %s", ingredient.ErrInsufficientStock, id)
		}
		return 0, fmt.Errorf("falha ao baixar estoque: %w", err)
	}
	return newStock + amount, nil
}

// missingOrInsufficient distingue ingrediente inexistente de estoque insuficiente
// depois de um UPDATE condicional que não afetou linhas
func missingOrInsufficient(ctx context.Context, tx pgx.Tx, shopID, id string) error {
	var name string
	err := tx.QueryRow(ctx, "SELECT name FROM ingredients WHERE shop_id = $1 AND id = $2", shopID, id).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: %s", ingredient.ErrIngredientNotFound, id)
		}
		return fmt.Errorf("falha ao verificar ingrediente: %w", err)
	}
	return fmt.Errorf("%w: %s", ingredient.ErrInsufficientStock, name)
}

func insertMovement(ctx context.Context, tx pgx.Tx, m *ingredient.StockMovement) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO stock_movements (
			id, shop_id, ingredient_id, delta, previous_stock, new_stock, reason, actor_id, sale_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.ShopID, m.IngredientID, m.Delta, m.PreviousStock, m.NewStock,
		m.Reason, m.ActorID, nullable(m.SaleID), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar movimentação: %w", err)
	}
	return nil
}

func scanIngredient(row pgx.Row) (*ingredient.Ingredient, error) {
	i := &ingredient.Ingredient{}
	err := row.Scan(
		&i.ID,
		&i.ShopID,
		&i.Name,
		&i.Category,
		&i.PurchaseUnit,
		&i.ConsumptionUnit,
		&i.ConsumptionPerPurchase,
		&i.Stock,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return i, nil
}
