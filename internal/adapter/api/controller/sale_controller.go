package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/sorveteria-pos/internal/adapter/api/dto"
	"github.com/hugohenrick/sorveteria-pos/internal/service"
	"github.com/hugohenrick/sorveteria-pos/pkg/shop"
)

// SaleController gerencia as consultas de vendas
type SaleController struct {
	reportService *service.ReportService
	now           func() time.Time
}

// NewSaleController cria uma nova instância de SaleController
func NewSaleController(reportService *service.ReportService) *SaleController {
	return &SaleController{reportService: reportService, now: time.Now}
}

// List lista as vendas de um período
// @Summary Lista vendas
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param start query string false "Início (RFC 3339 ou AAAA-MM-DD)"
// @Param end query string false "Fim (RFC 3339 ou AAAA-MM-DD)"
// @Success 200 {object} dto.SaleListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /sales [get]
func (c *SaleController) List(ctx *gin.Context) {
	start, end, err := parseRange(ctx, c.now())
	if err != nil {
		badRequest(ctx, "Período inválido", err)
		return
	}

	sales, err := c.reportService.Sales(ctx.Request.Context(), shop.GetShopID(ctx), start, end)
	if err != nil {
		respondError(ctx, err, "Erro ao listar vendas")
		return
	}
	ctx.JSON(http.StatusOK, dto.ToSaleListResponse(start, end, sales))
}

// Summary resume as vendas de um período
// @Summary Resumo de vendas
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param start query string false "Início (RFC 3339 ou AAAA-MM-DD)"
// @Param end query string false "Fim (RFC 3339 ou AAAA-MM-DD)"
// @Success 200 {object} dto.SalesSummaryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /sales/summary [get]
func (c *SaleController) Summary(ctx *gin.Context) {
	start, end, err := parseRange(ctx, c.now())
	if err != nil {
		badRequest(ctx, "Período inválido", err)
		return
	}

	summary, err := c.reportService.Summary(ctx.Request.Context(), shop.GetShopID(ctx), start, end)
	if err != nil {
		respondError(ctx, err, "Erro ao resumir vendas")
		return
	}
	ctx.JSON(http.StatusOK, dto.ToSalesSummaryResponse(start, end, summary))
}

// GetByID busca uma venda
// @Summary Busca uma venda
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da venda"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /sales/{id} [get]
func (c *SaleController) GetByID(ctx *gin.Context) {
	s, err := c.reportService.Sale(ctx.Request.Context(), shop.GetShopID(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err, "Erro ao buscar venda")
		return
	}
	ctx.JSON(http.StatusOK, dto.ToSaleResponse(s))
}
