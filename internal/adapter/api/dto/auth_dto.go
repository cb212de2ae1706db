package dto

import (
	"time"

	"github.com/hugohenrick/sorveteria-pos/internal/domain/employee"
)

// LoginRequest representa os dados para login
type LoginRequest struct {
	ShopID   string `json:"shop_id" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse representa a resposta de login bem-sucedido
type LoginResponse struct {
	Employee    EmployeeResponse `json:"employee"`
	AccessToken string           `json:"access_token"`
	ExpiresAt   time.Time        `json:"expires_at"`
}

// SetupAdminRequest representa os dados do primeiro administrador da loja
type SetupAdminRequest struct {
	ShopID   string `json:"shop_id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// EmployeeRequest representa os dados para cadastro de funcionário
type EmployeeRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=admin manager cashier"`
}

// EmployeeResponse representa um funcionário sem a senha
type EmployeeResponse struct {
	ID          string     `json:"id"`
	ShopID      string     `json:"shop_id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToEmployeeResponse converte a entidade em resposta
func ToEmployeeResponse(e *employee.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          e.ID,
		ShopID:      e.ShopID,
		Name:        e.Name,
		Email:       e.Email,
		Role:        string(e.Role),
		Status:      string(e.Status),
		LastLoginAt: e.LastLoginAt,
		CreatedAt:   e.CreatedAt,
	}
}
