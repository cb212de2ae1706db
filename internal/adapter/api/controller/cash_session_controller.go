package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/sorveteria-pos/internal/adapter/api/dto"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/purchase"
	"github.com/hugohenrick/sorveteria-pos/internal/service"
	"github.com/hugohenrick/sorveteria-pos/pkg/auth"
	"github.com/hugohenrick/sorveteria-pos/pkg/shop"
)

// CashSessionController gerencia as requisições de caixa e despesas
type CashSessionController struct {
	sessionService *service.CashSessionService
}

// NewCashSessionController cria uma nova instância de CashSessionController
func NewCashSessionController(sessionService *service.CashSessionService) *CashSessionController {
	return &CashSessionController{sessionService: sessionService}
}

// Open abre o caixa da loja
// @Summary Abre o caixa
// @Tags cash-sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session body dto.OpenCashSessionRequest true "Fundo de troco"
// @Success 201 {object} dto.CashSessionResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /cash-sessions [post]
func (c *CashSessionController) Open(ctx *gin.Context) {
	var request dto.OpenCashSessionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, "Requisição inválida", err)
		return
	}

	employee := auth.CurrentEmployee(ctx)
	cs, err := c.sessionService.Open(ctx.Request.Context(), employee.ShopID, employee.EmployeeID, request.OpeningBalance)
	if err != nil {
		respondError(ctx, err, "Erro ao abrir caixa")
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToCashSessionResponse(cs))
}

// List lista os caixas da loja, dos mais recentes aos mais antigos
// @Summary Lista caixas
// @Tags cash-sessions
// @Produce json
// @Security BearerAuth
// @Param page query int false "Página"
// @Param page_size query int false "Itens por página"
// @Success 200 {object} dto.CashSessionListResponse
// @Router /cash-sessions [get]
func (c *CashSessionController) List(ctx *gin.Context) {
	p := dto.ParsePagination(ctx.Query("page"), ctx.Query("page_size"))

	sessions, err := c.sessionService.List(ctx.Request.Context(), shop.GetShopID(ctx), p.PageSize, p.Offset())
	if err != nil {
		respondError(ctx, err, "Erro ao listar caixas")
		return
	}
	ctx.JSON(http.StatusOK, dto.ToCashSessionListResponse(sessions, p))
}

// Current retorna o caixa aberto
// @Summary Caixa aberto
// @Tags cash-sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CashSessionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /cash-sessions/open [get]
func (c *CashSessionController) Current(ctx *gin.Context) {
	cs, err := c.sessionService.Current(ctx.Request.Context(), shop.GetShopID(ctx))
	if err != nil {
		respondError(ctx, err, "Nenhum caixa aberto")
		return
	}
	ctx.JSON(http.StatusOK, dto.ToCashSessionResponse(cs))
}

// GetByID busca um caixa
// @Summary Busca um caixa
// @Tags cash-sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do caixa"
// @Success 200 {object} dto.CashSessionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /cash-sessions/{id} [get]
func (c *CashSessionController) GetByID(ctx *gin.Context) {
	cs, err := c.sessionService.Get(ctx.Request.Context(), shop.GetShopID(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err, "Erro ao buscar caixa")
		return
	}
	ctx.JSON(http.StatusOK, dto.ToCashSessionResponse(cs))
}

// Close fecha o caixa com a contagem do dinheiro
// @Summary Fecha o caixa
// @Description Congela as vendas por tipo, as despesas e a diferença entre o contado e o esperado
// @Tags cash-sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do caixa"
// @Param closing body dto.CloseCashSessionRequest true "Dinheiro contado"
// @Success 200 {object} dto.CashSessionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /cash-sessions/{id}/close [post]
func (c *CashSessionController) Close(ctx *gin.Context) {
	var request dto.CloseCashSessionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, "Requisição inválida", err)
		return
	}

	cs, err := c.sessionService.Close(ctx.Request.Context(), shop.GetShopID(ctx), ctx.Param("id"), request.CountedCash, request.Notes)
	if err != nil {
		respondError(ctx, err, "Erro ao fechar caixa")
		return
	}
	ctx.JSON(http.StatusOK, dto.ToCashSessionResponse(cs))
}

// RecordPurchase lança uma compra ou despesa
// @Summary Lança compra ou despesa
// @Description Associada ao caixa aberto, quando houver
// @Tags purchases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param purchase body dto.CreatePurchaseRequest true "Dados da compra"
// @Success 201 {object} dto.PurchaseResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /purchases [post]
func (c *CashSessionController) RecordPurchase(ctx *gin.Context) {
	var request dto.CreatePurchaseRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, "Requisição inválida", err)
		return
	}

	employee := auth.CurrentEmployee(ctx)
	p, err := c.sessionService.RecordExpense(ctx.Request.Context(), employee.ShopID, employee.EmployeeID,
		purchase.Kind(request.Kind), request.Description, request.Total)
	if err != nil {
		respondError(ctx, err, "Erro ao lançar compra")
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToPurchaseResponse(p))
}
