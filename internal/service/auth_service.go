package service

import (
	"context"
	"errors"
	"time"

	"github.com/hugohenrick/sorveteria-pos/internal/domain/employee"
	"github.com/hugohenrick/sorveteria-pos/pkg/auth"
	"github.com/hugohenrick/sorveteria-pos/pkg/logger"
	"github.com/hugohenrick/sorveteria-pos/pkg/shop"
)

// Erros de autenticação; não pertencem a nenhuma categoria de domínio
var (
	ErrInvalidCredentials = errors.New("email ou senha incorretos")
	ErrEmployeeInactive   = errors.New("funcionário inativo")
)

// Session é o resultado de um login bem-sucedido
type Session struct {
	Employee  *employee.Employee
	Token     string
	ExpiresAt time.Time
}

// AuthService autentica funcionários e cadastra novos acessos
type AuthService struct {
	employees  employee.Repository
	shops      shop.Validator
	jwtService *auth.JWTService
	log        logger.Logger
}

// NewAuthService cria uma nova instância de AuthService
func NewAuthService(employees employee.Repository, shops shop.Validator, jwtService *auth.JWTService, log logger.Logger) *AuthService {
	return &AuthService{
		employees:  employees,
		shops:      shops,
		jwtService: jwtService,
		log:        log.With("component", "auth"),
	}
}

// Login verifica as credenciais e emite um token para a loja informada
func (s *AuthService) Login(ctx context.Context, shopID, email, password string) (*Session, error) {
	active, err := s.shops.ValidateShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, ErrInvalidCredentials
	}

	e, err := s.employees.FindByEmail(ctx, shopID, email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !e.CheckPassword(password) {
		s.log.Warn("senha incorreta", "shop_id", shopID, "employee_id", e.ID)
		return nil, ErrInvalidCredentials
	}
	if !e.IsActive() {
		return nil, ErrEmployeeInactive
	}

	token, err := s.jwtService.GenerateToken(auth.Identity{
		EmployeeID: e.ID,
		ShopID:     e.ShopID,
		Name:       e.Name,
		Role:       string(e.Role),
	})
	if err != nil {
		return nil, err
	}

	// Falha ao registrar o login não impede a entrada
	if err := s.employees.UpdateLastLogin(ctx, shopID, e.ID); err != nil {
		s.log.Error("falha ao registrar último login", "employee_id", e.ID, "error", err)
	}

	s.log.Info("login efetuado", "shop_id", shopID, "employee_id", e.ID, "role", e.Role)
	return &Session{
		Employee:  e,
		Token:     token,
		ExpiresAt: time.Now().Add(s.jwtService.Expiration()),
	}, nil
}

// Me retorna o funcionário do token
func (s *AuthService) Me(ctx context.Context, shopID, employeeID string) (*employee.Employee, error) {
	return s.employees.FindByID(ctx, shopID, employeeID)
}

// SetupAdmin cria o primeiro administrador de uma loja sem funcionários
func (s *AuthService) SetupAdmin(ctx context.Context, shopID, name, email, password string) (*employee.Employee, error) {
	active, err := s.shops.ValidateShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, shop.ErrShopNotActive
	}

	count, err := s.employees.CountByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, employee.ErrAdminAlreadyExists
	}

	return s.create(ctx, shopID, name, email, password, employee.RoleAdmin)
}

// CreateEmployee cadastra um funcionário na loja do administrador
func (s *AuthService) CreateEmployee(ctx context.Context, shopID, name, email, password string, role employee.Role) (*employee.Employee, error) {
	return s.create(ctx, shopID, name, email, password, role)
}

func (s *AuthService) create(ctx context.Context, shopID, name, email, password string, role employee.Role) (*employee.Employee, error) {
	e, err := employee.NewEmployee(shopID, name, email, password, role)
	if err != nil {
		return nil, err
	}
	if err := s.employees.Create(ctx, e); err != nil {
		return nil, err
	}

	s.log.Info("funcionário cadastrado", "shop_id", shopID, "employee_id", e.ID, "role", role)
	return e, nil
}
