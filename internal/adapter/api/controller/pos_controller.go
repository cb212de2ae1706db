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

// POSController gerencia a tela de venda: catálogo e comandas
type POSController struct {
	tabService *service.TabService
}

// NewPOSController cria uma nova instância de POSController
func NewPOSController(tabService *service.TabService) *POSController {
	return &POSController{tabService: tabService}
}

// ListProducts lista os produtos com disponibilidade
// @Summary Lista produtos disponíveis
// @Description Calcula quantas unidades de cada produto o estoque livre permite, descontando as reservas da comanda
// @Tags pos
// @Produce json
// @Security BearerAuth
// @Param tab_id query string false "ID da comanda"
// @Success 200 {array} dto.ProductAvailabilityResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /pos/products [get]
func (c *POSController) ListProducts(ctx *gin.Context) {
	list, err := c.tabService.Availability(ctx.Request.Context(), shop.GetShopID(ctx), ctx.Query("tab_id"))
	if err != nil {
		respondError(ctx, err, "Erro ao calcular disponibilidade")
		return
	}
	ctx.JSON(http.StatusOK, dto.ToProductAvailabilityList(list))
}

// ProductOptions lista as escolhas da linha variável de um produto
// @Summary Lista escolhas de um produto
// @Tags pos
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Param tab_id query string false "ID da comanda"
// @Success 200 {object} dto.ProductOptionsResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /pos/products/{id}/options [get]
func (c *POSController) ProductOptions(ctx *gin.Context) {
	p, choices, err := c.tabService.Options(ctx.Request.Context(), shop.GetShopID(ctx), ctx.Query("tab_id"), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err, "Erro ao listar escolhas")
		return
	}
	ctx.JSON(http.StatusOK, dto.ToProductOptionsResponse(p, choices))
}

// PaymentMethods lista as formas de pagamento habilitadas
// @Summary Lista formas de pagamento
// @Tags pos
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.PaymentMethodResponse
// @Router /pos/payment-methods [get]
func (c *POSController) PaymentMethods(ctx *gin.Context) {
	methods, err := c.tabService.PaymentMethods(ctx.Request.Context(), shop.GetShopID(ctx))
	if err != nil {
		respondError(ctx, err, "Erro ao listar formas de pagamento")
		return
	}
	ctx.JSON(http.StatusOK, dto.ToPaymentMethodList(methods))
}

// Units retorna a tabela de unidades
// @Summary Tabela de unidades
// @Tags pos
// @Produce json
// @Success 200 {array} dto.UnitCategoryResponse
// @Router /units [get]
func (c *POSController) Units(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.ToUnitTable())
}

// OpenTab abre uma comanda
// @Summary Abre uma comanda
// @Tags tabs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tab body dto.OpenTabRequest false "Identificação da comanda"
// @Success 201 {object} dto.TabResponse
// @Router /pos/tabs [post]
func (c *POSController) OpenTab(ctx *gin.Context) {
	var request dto.OpenTabRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			badRequest(ctx, "Requisição inválida", err)
			return
		}
	}

	employee := auth.CurrentEmployee(ctx)
	v := c.tabService.Open(employee.ShopID, employee.EmployeeID, request.Label)
	ctx.JSON(http.StatusCreated, dto.ToTabResponse(v))
}

// ListTabs lista as comandas abertas da loja
// @Summary Lista comandas abertas
// @Tags tabs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.TabResponse
// @Router /pos/tabs [get]
func (c *POSController) ListTabs(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.ToTabList(c.tabService.List(shop.GetShopID(ctx))))
}

// GetTab busca uma comanda
// @Summary Busca uma comanda
// @Tags tabs
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da comanda"
// @Success 200 {object} dto.TabResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /pos/tabs/{id} [get]
func (c *POSController) GetTab(ctx *gin.Context) {
	v, err := c.tabService.Get(shop.GetShopID(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err, "Erro ao buscar comanda")
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTabResponse(v))
}

// CloseTab descarta uma comanda sem registrar venda
// @Summary Descarta uma comanda
// @Tags tabs
// @Security BearerAuth
// @Param id path string true "ID da comanda"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /pos/tabs/{id} [delete]
func (c *POSController) CloseTab(ctx *gin.Context) {
	if err := c.tabService.Close(shop.GetShopID(ctx), ctx.Param("id")); err != nil {
		respondError(ctx, err, "Erro ao descartar comanda")
		return
	}
	ctx.Status(http.StatusNoContent)
}

// AddItem adiciona uma unidade de produto à comanda
// @Summary Adiciona item à comanda
// @Description Rejeita o item quando o estoque livre não cobre mais uma unidade
// @Tags tabs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da comanda"
// @Param item body dto.AddItemRequest true "Produto e escolha"
// @Success 200 {object} dto.TabResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /pos/tabs/{id}/items [post]
func (c *POSController) AddItem(ctx *gin.Context) {
	var request dto.AddItemRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, "Requisição inválida", err)
		return
	}

	v, _, err := c.tabService.AddItem(ctx.Request.Context(), shop.GetShopID(ctx), ctx.Param("id"), request.ProductID, request.ChoiceID)
	if err != nil {
		respondError(ctx, err, "Erro ao adicionar item")
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTabResponse(v))
}

// SetQuantity ajusta a quantidade de uma linha da comanda
// @Summary Ajusta quantidade de uma linha
// @Tags tabs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da comanda"
// @Param line_key path string true "Chave da linha"
// @Param quantity body dto.SetQuantityRequest true "Nova quantidade; zero remove"
// @Success 200 {object} dto.TabResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /pos/tabs/{id}/items/{line_key} [put]
func (c *POSController) SetQuantity(ctx *gin.Context) {
	var request dto.SetQuantityRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, "Requisição inválida", err)
		return
	}

	v, err := c.tabService.SetQuantity(shop.GetShopID(ctx), ctx.Param("id"), ctx.Param("line_key"), *request.Quantity)
	if err != nil {
		respondError(ctx, err, "Erro ao ajustar quantidade")
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTabResponse(v))
}

// AddPayment registra um pagamento na comanda
// @Summary Registra pagamento
// @Tags tabs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da comanda"
// @Param payment body dto.AddPaymentRequest true "Forma de pagamento e valor"
// @Success 200 {object} dto.TabResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /pos/tabs/{id}/payments [post]
func (c *POSController) AddPayment(ctx *gin.Context) {
	var request dto.AddPaymentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, "Requisição inválida", err)
		return
	}

	v, err := c.tabService.AddPayment(ctx.Request.Context(), shop.GetShopID(ctx), ctx.Param("id"), request.MethodID, request.Amount)
	if err != nil {
		respondError(ctx, err, "Erro ao registrar pagamento")
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTabResponse(v))
}

// RemovePayment remove um pagamento da comanda
// @Summary Remove pagamento
// @Tags tabs
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da comanda"
// @Param index path int true "Posição do pagamento"
// @Success 200 {object} dto.TabResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /pos/tabs/{id}/payments/{index} [delete]
func (c *POSController) RemovePayment(ctx *gin.Context) {
	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		badRequest(ctx, "Posição inválida", err)
		return
	}

	v, err := c.tabService.RemovePayment(shop.GetShopID(ctx), ctx.Param("id"), index)
	if err != nil {
		respondError(ctx, err, "Erro ao remover pagamento")
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTabResponse(v))
}

// Checkout liquida a comanda
// @Summary Finaliza a venda
// @Description Grava a venda e baixa o estoque numa única transação; o carrinho só é esvaziado se a venda for gravada
// @Tags tabs
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da comanda"
// @Success 201 {object} dto.SaleResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /pos/tabs/{id}/checkout [post]
func (c *POSController) Checkout(ctx *gin.Context) {
	employee := auth.CurrentEmployee(ctx)
	s, err := c.tabService.Checkout(ctx.Request.Context(), employee.ShopID, ctx.Param("id"), employee.EmployeeID)
	if err != nil {
		respondError(ctx, err, "Erro ao finalizar venda")
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToSaleResponse(s))
}
