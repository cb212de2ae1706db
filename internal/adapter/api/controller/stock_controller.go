package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/sorveteria-pos/internal/adapter/api/dto"
	"github.com/hugohenrick/sorveteria-pos/internal/service"
	"github.com/hugohenrick/sorveteria-pos/pkg/auth"
	"github.com/hugohenrick/sorveteria-pos/pkg/shop"
)

// StockController gerencia consultas e ajustes de estoque
type StockController struct {
	stockService *service.StockService
}

// NewStockController cria uma nova instância de StockController
func NewStockController(stockService *service.StockService) *StockController {
	return &StockController{stockService: stockService}
}

// List lista os ingredientes com saldo
// @Summary Lista ingredientes
// @Tags ingredients
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.IngredientResponse
// @Router /ingredients [get]
func (c *StockController) List(ctx *gin.Context) {
	list, err := c.stockService.List(ctx.Request.Context(), shop.GetShopID(ctx))
	if err != nil {
		respondError(ctx, err, "Erro ao listar ingredientes")
		return
	}
	ctx.JSON(http.StatusOK, dto.ToIngredientList(list))
}

// Movements lista as últimas movimentações de um ingrediente
// @Summary Movimentações de estoque
// @Tags ingredients
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do ingrediente"
// @Param limit query int false "Quantidade máxima"
// @Success 200 {array} dto.StockMovementResponse
// @Router /ingredients/{id}/movements [get]
func (c *StockController) Movements(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	list, err := c.stockService.Movements(ctx.Request.Context(), shop.GetShopID(ctx), ctx.Param("id"), limit)
	if err != nil {
		respondError(ctx, err, "Erro ao listar movimentações")
		return
	}
	ctx.JSON(http.StatusOK, dto.ToStockMovementList(list))
}

// Adjust aplica um ajuste manual de estoque
// @Summary Ajusta estoque
// @Description Ajuste relativo na unidade informada; nunca deixa o saldo negativo
// @Tags ingredients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do ingrediente"
// @Param adjustment body dto.AdjustStockRequest true "Quantidade, unidade e motivo"
// @Success 201 {object} dto.StockMovementResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /ingredients/{id}/adjustments [post]
func (c *StockController) Adjust(ctx *gin.Context) {
	var request dto.AdjustStockRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, "Requisição inválida", err)
		return
	}

	employee := auth.CurrentEmployee(ctx)
	m, err := c.stockService.Adjust(ctx.Request.Context(), employee.ShopID, ctx.Param("id"),
		request.Amount, request.Unit, request.Reason, employee.EmployeeID)
	if err != nil {
		respondError(ctx, err, "Erro ao ajustar estoque")
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToStockMovementResponse(m))
}
