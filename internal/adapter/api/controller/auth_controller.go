package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/sorveteria-pos/internal/adapter/api/dto"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/employee"
	"github.com/hugohenrick/sorveteria-pos/internal/service"
	"github.com/hugohenrick/sorveteria-pos/pkg/auth"
	"github.com/hugohenrick/sorveteria-pos/pkg/shop"
)

// AuthController gerencia login e cadastro de funcionários
type AuthController struct {
	authService *service.AuthService
}

// NewAuthController cria uma nova instância de AuthController
func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login autentica um funcionário e retorna um token JWT
// @Summary Autentica um funcionário
// @Description Verifica as credenciais na loja informada e retorna um token JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Credenciais de login"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, "Requisição inválida", err)
		return
	}

	session, err := c.authService.Login(ctx.Request.Context(), request.ShopID, request.Email, request.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Credenciais inválidas", err.Error()))
		case errors.Is(err, service.ErrEmployeeInactive):
			ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(http.StatusForbidden, "Funcionário inativo", err.Error()))
		default:
			respondError(ctx, err, "Erro ao autenticar funcionário")
		}
		return
	}

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		Employee:    dto.ToEmployeeResponse(session.Employee),
		AccessToken: session.Token,
		ExpiresAt:   session.ExpiresAt,
	})
}

// Me retorna o funcionário autenticado
// @Summary Funcionário autenticado
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	current := auth.CurrentEmployee(ctx)
	e, err := c.authService.Me(ctx.Request.Context(), current.ShopID, current.EmployeeID)
	if err != nil {
		respondError(ctx, err, "Erro ao buscar funcionário")
		return
	}
	ctx.JSON(http.StatusOK, dto.ToEmployeeResponse(e))
}

// SetupAdmin cria o primeiro administrador da loja
// @Summary Cria o administrador inicial
// @Description Só funciona enquanto a loja não tiver funcionários
// @Tags setup
// @Accept json
// @Produce json
// @Param admin body dto.SetupAdminRequest true "Dados do administrador"
// @Success 201 {object} dto.EmployeeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /setup/admin [post]
func (c *AuthController) SetupAdmin(ctx *gin.Context) {
	var request dto.SetupAdminRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, "Requisição inválida", err)
		return
	}

	e, err := c.authService.SetupAdmin(ctx.Request.Context(), request.ShopID, request.Name, request.Email, request.Password)
	if err != nil {
		if errors.Is(err, shop.ErrShopNotActive) {
			ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(http.StatusForbidden, "Loja inválida", err.Error()))
			return
		}
		respondError(ctx, err, "Erro ao criar administrador")
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToEmployeeResponse(e))
}

// CreateEmployee cadastra um funcionário na loja do token
// @Summary Cadastra funcionário
// @Tags employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param employee body dto.EmployeeRequest true "Dados do funcionário"
// @Success 201 {object} dto.EmployeeResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /employees [post]
func (c *AuthController) CreateEmployee(ctx *gin.Context) {
	var request dto.EmployeeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, "Requisição inválida", err)
		return
	}

	e, err := c.authService.CreateEmployee(ctx.Request.Context(), shop.GetShopID(ctx),
		request.Name, request.Email, request.Password, employee.Role(request.Role))
	if err != nil {
		respondError(ctx, err, "Erro ao cadastrar funcionário")
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToEmployeeResponse(e))
}
