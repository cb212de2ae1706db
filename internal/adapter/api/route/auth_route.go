package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/sorveteria-pos/internal/adapter/api/controller"
	"github.com/hugohenrick/sorveteria-pos/pkg/auth"
)

// SetupAuthRoutes configura as rotas públicas de autenticação
func SetupAuthRoutes(router *gin.RouterGroup, authController *controller.AuthController) {
	authRouter := router.Group("/auth")
	{
		authRouter.POST("/login", authController.Login)
	}
}

// SetupEmployeeRoutes configura as rotas que exigem funcionário autenticado
func SetupEmployeeRoutes(router *gin.RouterGroup, authController *controller.AuthController) {
	router.GET("/auth/me", authController.Me)

	// Cadastro de funcionários apenas para administradores
	router.POST("/employees", auth.RoleAuthMiddleware(auth.RoleAdmin), authController.CreateEmployee)
}
