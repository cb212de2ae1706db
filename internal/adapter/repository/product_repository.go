package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/sorveteria-pos/internal/domain/product"
	"github.com/hugohenrick/sorveteria-pos/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Tipos de linha de receita gravados em recipe_lines.kind
const (
	recipeLineFixed    = "fixed"
	recipeLineVariable = "variable"
)

// PostgresProductRepository implementa a interface product.Repository usando PostgreSQL
type PostgresProductRepository struct {
	db *database.PostgresDB
}

// NewPostgresProductRepository cria uma nova instância de PostgresProductRepository
func NewPostgresProductRepository(db *database.PostgresDB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

// List implementa product.Repository.List
func (r *PostgresProductRepository) List(ctx context.Context, shopID string) ([]*product.Product, error) {
	conn, err := r.db.GetConnection(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
		SELECT id, shop_id, name, category, price, created_at, updated_at
		  FROM products
		 WHERE shop_id = $1
		 ORDER BY name, id`, shopID)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar produtos: %w", err)
	}

	products := make([]*product.Product, 0)
	byID := make(map[string]*product.Product)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("falha ao ler produto: %w", err)
		}
		products = append(products, p)
		byID[p.ID] = p
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("falha ao iterar produtos: %w", err)
	}

	if err := r.loadRecipes(ctx, conn, byID,
		`SELECT rl.product_id, rl.kind, rl.ingredient_id, rl.category, rl.quantity
		   FROM recipe_lines rl
		   JOIN products p ON p.id = rl.product_id
		  WHERE p.shop_id = $1
		  ORDER BY rl.product_id, rl.position`, shopID); err != nil {
		return nil, err
	}
	return products, nil
}

// FindByID implementa product.Repository.FindByID
func (r *PostgresProductRepository) FindByID(ctx context.Context, shopID, id string) (*product.Product, error) {
	conn, err := r.db.GetConnection(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	p, err := scanProduct(conn.QueryRow(ctx, `
		SELECT id, shop_id, name, category, price, created_at, updated_at
		  FROM products
		 WHERE shop_id = $1 AND id = $2`, shopID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return nil, product.ErrProductNotFound
		}
		return nil, fmt.Errorf("falha ao buscar produto: %w", err)
	}

	if err := r.loadRecipes(ctx, conn, map[string]*product.Product{p.ID: p},
		`SELECT product_id, kind, ingredient_id, category, quantity
		   FROM recipe_lines
		  WHERE product_id = $1
		  ORDER BY position`, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// loadRecipes preenche a receita de cada produto do mapa
func (r *PostgresProductRepository) loadRecipes(ctx context.Context, conn *pgxpool.Conn, byID map[string]*product.Product, query string, args ...interface{}) error {
	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("falha ao buscar receitas: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			productID, kind        string
			ingredientID, category *string
			quantity               float64
		)
		if err := rows.Scan(&productID, &kind, &ingredientID, &category, &quantity); err != nil {
			return fmt.Errorf("falha ao ler linha de receita: %w", err)
		}
		p, ok := byID[productID]
		if !ok {
			continue
		}

		switch kind {
		case recipeLineFixed:
			p.Recipe = append(p.Recipe, product.FixedLine{IngredientID: deref(ingredientID), Quantity: quantity})
		case recipeLineVariable:
			p.Recipe = append(p.Recipe, product.VariableLine{Category: deref(category), Quantity: quantity})
		default:
			return fmt.Errorf("tipo de linha de receita desconhecido: %s", kind)
		}
	}
	return rows.Err()
}

func scanProduct(row pgx.Row) (*product.Product, error) {
	p := &product.Product{}
	if err := row.Scan(&p.ID, &p.ShopID, &p.Name, &p.Category, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return p, nil
}
