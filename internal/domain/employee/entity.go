package employee

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/failure"
	"golang.org/x/crypto/bcrypt"
)

// Role representa o papel do funcionário na loja
type Role string

// Status representa o status do funcionário
type Status string

const (
	RoleAdmin   Role = "admin"   // dono da loja
	RoleManager Role = "manager" // gerente: ajusta estoque e vê relatórios
	RoleCashier Role = "cashier" // operador de caixa
)

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

const minPasswordLength = 6

var (
	ErrEmptyName          = fmt.Errorf("%w: nome do funcionário é obrigatório", failure.ErrValidation)
	ErrInvalidEmail       = fmt.Errorf("%w: email inválido", failure.ErrValidation)
	ErrInvalidRole        = fmt.Errorf("%w: papel inválido", failure.ErrValidation)
	ErrWeakPassword       = fmt.Errorf("%w: senha deve ter ao menos %d caracteres", failure.ErrValidation, minPasswordLength)
	ErrEmployeeNotFound   = fmt.Errorf("%w: funcionário não encontrado", failure.ErrNotFound)
	ErrDuplicateEmail     = fmt.Errorf("%w: já existe funcionário com este email na loja", failure.ErrConflict)
	ErrAdminAlreadyExists = fmt.Errorf("%w: a loja já possui funcionários cadastrados", failure.ErrConflict)
)

// IsValid verifica se o papel é conhecido
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleCashier
}

// Employee representa um funcionário que opera o caixa
type Employee struct {
	ID          string     `json:"id"`
	ShopID      string     `json:"shop_id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Password    string     `json:"-"` // hash bcrypt
	Role        Role       `json:"role"`
	Status      Status     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewEmployee valida os dados e cria um funcionário ativo com a senha já em hash
func NewEmployee(shopID, name, email, password string, role Role) (*Employee, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}

	now := time.Now()
	e := &Employee{
		ID:        uuid.New().String(),
		ShopID:    shopID,
		Name:      name,
		Email:     email,
		Role:      role,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := e.SetPassword(password); err != nil {
		return nil, err
	}
	return e, nil
}

// SetPassword configura a senha do funcionário com hash
func (e *Employee) SetPassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("falha ao gerar hash da senha: %w", err)
	}
	e.Password = string(hashed)
	return nil
}

// CheckPassword verifica se a senha fornecida é válida
func (e *Employee) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(e.Password), []byte(password)) == nil
}

// IsActive verifica se o funcionário está ativo
func (e *Employee) IsActive() bool {
	return e.Status == StatusActive
}
