package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/sorveteria-pos/internal/domain/employee"
	"github.com/hugohenrick/sorveteria-pos/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `id, shop_id, name, email, password, role, status, last_login_at, created_at, updated_at`

// PostgresEmployeeRepository implementa a interface employee.Repository usando PostgreSQL
type PostgresEmployeeRepository struct {
	db *database.PostgresDB
}

// NewPostgresEmployeeRepository cria uma nova instância de PostgresEmployeeRepository
func NewPostgresEmployeeRepository(db *database.PostgresDB) *PostgresEmployeeRepository {
	return &PostgresEmployeeRepository{db: db}
}

// Create implementa employee.Repository.Create
func (r *PostgresEmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	conn, err := r.db.GetConnection(ctx)
	if err != nil {
		return fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
		INSERT INTO employees (`+employeeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		e.ID, e.ShopID, e.Name, e.Email, e.Password, string(e.Role), string(e.Status),
		e.LastLoginAt, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.ErrDuplicateEmail
		}
		return fmt.Errorf("falha ao inserir funcionário: %w", err)
	}
	return nil
}

// FindByID implementa employee.Repository.FindByID
func (r *PostgresEmployeeRepository) FindByID(ctx context.Context, shopID, id string) (*employee.Employee, error) {
	return r.findOne(ctx, "shop_id = $1 AND id = $2", shopID, id)
}

// FindByEmail implementa employee.Repository.FindByEmail
func (r *PostgresEmployeeRepository) FindByEmail(ctx context.Context, shopID, email string) (*employee.Employee, error) {
	return r.findOne(ctx, "shop_id = $1 AND LOWER(email) = LOWER($2)", shopID, email)
}

// CountByShop implementa employee.Repository.CountByShop
func (r *PostgresEmployeeRepository) CountByShop(ctx context.Context, shopID string) (int, error) {
	conn, err := r.db.GetConnection(ctx)
	if err != nil {
		return 0, fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	var count int
	if err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM employees WHERE shop_id = $1", shopID).Scan(&count); err != nil {
		if isInvalidID(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("falha ao contar funcionários: %w", err)
	}
	return count, nil
}

// UpdateLastLogin implementa employee.Repository.UpdateLastLogin
func (r *PostgresEmployeeRepository) UpdateLastLogin(ctx context.Context, shopID, id string) error {
	conn, err := r.db.GetConnection(ctx)
	if err != nil {
		return fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx,
		"UPDATE employees SET last_login_at = NOW(), updated_at = NOW() WHERE shop_id = $1 AND id = $2",
		shopID, id)
	if err != nil {
		return fmt.Errorf("falha ao atualizar último login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *PostgresEmployeeRepository) findOne(ctx context.Context, filter string, args ...interface{}) (*employee.Employee, error) {
	conn, err := r.db.GetConnection(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	e := &employee.Employee{}
	var role, status string
	err = conn.QueryRow(ctx, "SELECT "+employeeColumns+" FROM employees WHERE "+filter, args...).Scan(
		&e.ID,
		&e.ShopID,
		&e.Name,
		&e.Email,
		&e.Password,
		&role,
		&status,
		&e.LastLoginAt,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("falha ao buscar funcionário: %w", err)
	}

	e.Role = employee.Role(role)
	e.Status = employee.Status(status)
	return e, nil
}
