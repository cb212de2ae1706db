package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/sorveteria-pos/internal/adapter/api/controller"
	"github.com/hugohenrick/sorveteria-pos/pkg/auth"
)

// SetupStockRoutes configura as rotas de estoque
func SetupStockRoutes(router *gin.RouterGroup, stockController *controller.StockController) {
	stockRouter := router.Group("/ingredients")
	{
		stockRouter.GET("", stockController.List)
		stockRouter.GET("/:id/movements", stockController.Movements)

		// Ajustes manuais apenas para gerentes
		stockRouter.POST("/:id/adjustments",
			auth.RoleAuthMiddleware(auth.RoleAdmin, auth.RoleManager),
			stockController.Adjust,
		)
	}
}
