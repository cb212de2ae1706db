package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/sorveteria-pos/internal/adapter/api/controller"
)

// SetupSetupRoutes configura as rotas para configuração inicial da loja
func SetupSetupRoutes(router *gin.RouterGroup, authController *controller.AuthController) {
	setupRouter := router.Group("/setup")
	{
		// Sem autenticação; recusa lojas que já têm funcionários
		setupRouter.POST("/admin", authController.SetupAdmin)
	}
}
