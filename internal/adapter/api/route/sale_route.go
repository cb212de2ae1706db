package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/sorveteria-pos/internal/adapter/api/controller"
	"github.com/hugohenrick/sorveteria-pos/pkg/auth"
)

// SetupSaleRoutes configura as rotas de consulta de vendas
func SetupSaleRoutes(router *gin.RouterGroup, saleController *controller.SaleController) {
	saleRouter := router.Group("/sales")
	{
		saleRouter.GET("", saleController.List)
		saleRouter.GET("/summary",
			auth.RoleAuthMiddleware(auth.RoleAdmin, auth.RoleManager),
			saleController.Summary,
		)
		saleRouter.GET("/:id", saleController.GetByID)
	}
}
