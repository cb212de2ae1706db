package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/hugohenrick/sorveteria-pos/docs"
	"github.com/hugohenrick/sorveteria-pos/internal/adapter/api/controller"
	"github.com/hugohenrick/sorveteria-pos/internal/adapter/api/route"
	"github.com/hugohenrick/sorveteria-pos/internal/adapter/memory"
	"github.com/hugohenrick/sorveteria-pos/internal/adapter/repository"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/cashsession"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/employee"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/ingredient"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/order"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/payment"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/product"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/purchase"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/sale"
	"github.com/hugohenrick/sorveteria-pos/internal/infrastructure/database"
	"github.com/hugohenrick/sorveteria-pos/internal/service"
	"github.com/hugohenrick/sorveteria-pos/pkg/auth"
	"github.com/hugohenrick/sorveteria-pos/pkg/logger"
	"github.com/hugohenrick/sorveteria-pos/pkg/shop"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// storage agrupa os repositórios do driver escolhido
type storage struct {
	ingredients ingredient.Repository
	products    product.Repository
	methods     payment.Repository
	sales       sale.Repository
	purchases   purchase.Repository
	sessions    cashsession.Repository
	employees   employee.Repository
	shops       shop.Validator
}

// App representa a aplicação e suas dependências
type App struct {
	router *gin.Engine
	db     *database.PostgresDB
	log    logger.Logger

	jwtService *auth.JWTService
	shops      shop.Validator

	authController        *controller.AuthController
	posController         *controller.POSController
	cashSessionController *controller.CashSessionController
	stockController       *controller.StockController
	saleController        *controller.SaleController
}

// NewApp cria uma nova instância do aplicativo
func NewApp() (*App, error) {
	log := logger.NewLogger()

	jwtService, err := auth.NewJWTService()
	if err != nil {
		return nil, err
	}

	app := &App{log: log, jwtService: jwtService}

	store, err := app.openStorage(getEnv("STORAGE_DRIVER", "postgres"))
	if err != nil {
		return nil, err
	}
	app.shops = store.shops

	// Serviços
	catalog := service.NewCatalogService(store.ingredients, store.products, log)
	checkout := service.NewCheckoutService(store.sales, store.sessions, log)
	tabs := service.NewTabService(order.NewTabs(), catalog, store.methods, checkout, log)
	sessions := service.NewCashSessionService(store.sessions, store.sales, store.purchases, log)
	stock := service.NewStockService(store.ingredients, log)
	reports := service.NewReportService(store.sales)
	authService := service.NewAuthService(store.employees, store.shops, jwtService, log)

	// Controllers
	app.authController = controller.NewAuthController(authService)
	app.posController = controller.NewPOSController(tabs)
	app.cashSessionController = controller.NewCashSessionController(sessions)
	app.stockController = controller.NewStockController(stock)
	app.saleController = controller.NewSaleController(reports)

	// Configurar router com modo correto
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}
	app.router = gin.New()
	app.router.Use(gin.Logger(), gin.Recovery(), cors.New(corsConfig()))

	return app, nil
}

// openStorage cria os repositórios do driver informado
func (a *App) openStorage(driver string) (*storage, error) {
	switch driver {
	case "memory":
		a.log.Warn("usando armazenamento em memória; os dados não sobrevivem ao reinício")
		m := memory.NewStore()
		if seed := os.Getenv("STORAGE_SEED"); seed != "" {
			if err := memory.LoadSeedFile(m, seed); err != nil {
				return nil, err
			}
			a.log.Info("seed carregado", "path", seed)
		} else {
			a.log.Warn("STORAGE_SEED não definido; nenhuma loja cadastrada")
		}
		return &storage{
			ingredients: m.Ingredients(),
			products:    m.Products(),
			methods:     m.PaymentMethods(),
			sales:       m.Sales(),
			purchases:   m.Purchases(),
			sessions:    m.CashSessions(),
			employees:   m.Employees(),
			shops:       m.Shops(),
		}, nil

	case "postgres":
		config := database.NewPostgresConfigFromEnv()
		db, err := database.NewPostgresDB(config)
		if err != nil {
			return nil, err
		}
		a.db = db
		a.log.Info("conectado ao PostgreSQL", "host", config.Host, "database", config.Database)

		return &storage{
			ingredients: repository.NewPostgresIngredientRepository(db),
			products:    repository.NewPostgresProductRepository(db),
			methods:     repository.NewPostgresPaymentMethodRepository(db),
			sales:       repository.NewPostgresSaleRepository(db),
			purchases:   repository.NewPostgresPurchaseRepository(db),
			sessions:    repository.NewPostgresCashSessionRepository(db),
			employees:   repository.NewPostgresEmployeeRepository(db),
			shops:       repository.NewShopValidator(db),
		}, nil

	default:
		return nil, fmt.Errorf("STORAGE_DRIVER desconhecido: %s", driver)
	}
}

// SetupRoutes configura as rotas da aplicação
func (a *App) SetupRoutes(basePath string) {
	api := a.router.Group(basePath)

	// Health check
	api.GET("/health", a.health)

	a.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Rotas públicas
	route.SetupAuthRoutes(api, a.authController)
	route.SetupSetupRoutes(api, a.authController)

	// Rotas que exigem funcionário autenticado e loja ativa
	protected := api.Group("")
	protected.Use(auth.JWTAuthMiddleware(a.jwtService), shop.Middleware(a.shops))

	route.SetupEmployeeRoutes(protected, a.authController)
	route.SetupPOSRoutes(protected, a.posController)
	route.SetupCashSessionRoutes(protected, a.cashSessionController)
	route.SetupStockRoutes(protected, a.stockController)
	route.SetupSaleRoutes(protected, a.saleController)
}

func (a *App) health(c *gin.Context) {
	status := gin.H{"status": "ok", "version": "1.0.0"}
	if a.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := a.db.Ping(ctx); err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
	}
	c.JSON(http.StatusOK, status)
}

// Run inicia o servidor e bloqueia até o contexto ser cancelado
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + getEnv("PORT", "8080"),
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("servidor iniciado", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("encerrando servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// GetRouter retorna o router da aplicação
func (a *App) GetRouter() *gin.Engine {
	return a.router
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}

func corsConfig() cors.Config {
	config := cors.DefaultConfig()
	config.AllowHeaders = append(config.AllowHeaders, "Authorization")

	origins := getEnv("CORS_ALLOWED_ORIGINS", "*")
	if origins == "*" {
		config.AllowAllOrigins = true
		return config
	}
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			config.AllowOrigins = append(config.AllowOrigins, o)
		}
	}
	return config
}

// getEnv retorna o valor de uma variável de ambiente ou um valor padrão
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
