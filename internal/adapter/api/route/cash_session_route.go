package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/sorveteria-pos/internal/adapter/api/controller"
)

// SetupCashSessionRoutes configura as rotas de caixa e de compras
func SetupCashSessionRoutes(router *gin.RouterGroup, cashSessionController *controller.CashSessionController) {
	sessionRouter := router.Group("/cash-sessions")
	{
		sessionRouter.POST("", cashSessionController.Open)
		sessionRouter.GET("", cashSessionController.List)
		sessionRouter.GET("/open", cashSessionController.Current)
		sessionRouter.GET("/:id", cashSessionController.GetByID)
		sessionRouter.POST("/:id/close", cashSessionController.Close)
	}

	router.POST("/purchases", cashSessionController.RecordPurchase)
}
