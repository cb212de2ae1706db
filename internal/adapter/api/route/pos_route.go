package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/sorveteria-pos/internal/adapter/api/controller"
)

// SetupPOSRoutes configura as rotas da tela de venda. O grupo recebido já
// exige autenticação e loja válida.
func SetupPOSRoutes(router *gin.RouterGroup, posController *controller.POSController) {
	router.GET("/units", posController.Units)

	posRouter := router.Group("/pos")
	{
		posRouter.GET("/products", posController.ListProducts)
		posRouter.GET("/products/:id/options", posController.ProductOptions)
		posRouter.GET("/payment-methods", posController.PaymentMethods)

		// Comandas
		posRouter.POST("/tabs", posController.OpenTab)
		posRouter.GET("/tabs", posController.ListTabs)
		posRouter.GET("/tabs/:id", posController.GetTab)
		posRouter.DELETE("/tabs/:id", posController.CloseTab)
		posRouter.POST("/tabs/:id/items", posController.AddItem)
		posRouter.PUT("/tabs/:id/items/:line_key", posController.SetQuantity)
		posRouter.POST("/tabs/:id/payments", posController.AddPayment)
		posRouter.DELETE("/tabs/:id/payments/:index", posController.RemovePayment)
		posRouter.POST("/tabs/:id/checkout", posController.Checkout)
	}
}
