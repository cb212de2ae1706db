package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/sorveteria-pos/internal/adapter/api/controller"
	"github.com/hugohenrick/sorveteria-pos/internal/adapter/api/route"
	"github.com/hugohenrick/sorveteria-pos/internal/adapter/memory"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/ingredient"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/order"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/payment"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/product"
	"github.com/hugohenrick/sorveteria-pos/internal/service"
	"github.com/hugohenrick/sorveteria-pos/pkg/auth"
	"github.com/hugohenrick/sorveteria-pos/pkg/logger"
	"github.com/hugohenrick/sorveteria-pos/pkg/shop"
	"github.com/shopspring/decimal"
)

const shopID = "loja-1"

type testServer struct {
	router  *gin.Engine
	cashier string
	manager string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	store.PutShop(shopID, true)
	store.PutIngredient(&ingredient.Ingredient{
		ID: "leite", ShopID: shopID, Name: "Leite", Category: "laticinio",
		PurchaseUnit: "l", ConsumptionUnit: "ml", ConsumptionPerPurchase: 1000, Stock: 1000,
	})
	store.PutIngredient(&ingredient.Ingredient{
		ID: "morango", ShopID: shopID, Name: "Morango", Category: "fruta",
		PurchaseUnit: "kg", ConsumptionUnit: "g", ConsumptionPerPurchase: 1000, Stock: 300,
	})
	store.PutProduct(&product.Product{
		ID: "milkshake", ShopID: shopID, Name: "Milkshake", Price: decimal.NewFromInt(10),
		Recipe: product.Recipe{
			product.FixedLine{IngredientID: "leite", Quantity: 300},
			product.VariableLine{Category: "fruta", Quantity: 100},
		},
	})
	store.PutPaymentMethod(&payment.Method{ID: "dinheiro", ShopID: shopID, Name: "Dinheiro", Type: payment.TypeCash, Enabled: true})
	store.PutPaymentMethod(&payment.Method{ID: "cartao", ShopID: shopID, Name: "Cartão", Type: payment.TypeElectronic, Enabled: true})

	log := logger.Discard()
	catalog := service.NewCatalogService(store.Ingredients(), store.Products(), log)
	checkout := service.NewCheckoutService(store.Sales(), store.CashSessions(), log)
	tabs := service.NewTabService(order.NewTabs(), catalog, store.PaymentMethods(), checkout, log)
	sessions := service.NewCashSessionService(store.CashSessions(), store.Sales(), store.Purchases(), log)

	jwtService := auth.NewJWTServiceWithKey("segredo-de-teste", time.Hour)
	authController := controller.NewAuthController(service.NewAuthService(store.Employees(), store.Shops(), jwtService, log))
	router := gin.New()
	public := router.Group("/api/v1")
	route.SetupAuthRoutes(public, authController)
	route.SetupSetupRoutes(public, authController)

	protected := router.Group("/api/v1")
	protected.Use(auth.JWTAuthMiddleware(jwtService), shop.Middleware(store.Shops()))

	route.SetupEmployeeRoutes(protected, authController)
	route.SetupPOSRoutes(protected, controller.NewPOSController(tabs))
	route.SetupCashSessionRoutes(protected, controller.NewCashSessionController(sessions))
	route.SetupStockRoutes(protected, controller.NewStockController(service.NewStockService(store.Ingredients(), log)))
	route.SetupSaleRoutes(protected, controller.NewSaleController(service.NewReportService(store.Sales())))

	cashier, err := jwtService.GenerateToken(auth.Identity{EmployeeID: "func-1", ShopID: shopID, Name: "Ana", Role: auth.RoleCashier})
	if err != nil {
		t.Fatalf("erro ao gerar token: %v", err)
	}
	manager, err := jwtService.GenerateToken(auth.Identity{EmployeeID: "func-2", ShopID: shopID, Name: "Bia", Role: auth.RoleManager})
	if err != nil {
		t.Fatalf("erro ao gerar token: %v", err)
	}

	return &testServer{router: router, cashier: cashier, manager: manager}
}

func (s *testServer) do(t *testing.T, token, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("erro ao serializar corpo: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	out := map[string]interface{}{}
	if w.Body.Len() > 0 && w.Body.Bytes()[0] == '{' {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("resposta inválida: %v (%s)", err, w.Body.String())
		}
	}
	return w.Code, out
}

func TestSaleFlowThroughHTTP(t *testing.T) {
	s := newTestServer(t)

	status, session := s.do(t, s.cashier, http.MethodPost, "/cash-sessions", map[string]string{"opening_balance": "50"})
	if status != http.StatusCreated {
		t.Fatalf("abrir caixa: status %d", status)
	}
	sessionID := session["id"].(string)

	status, tab := s.do(t, s.cashier, http.MethodPost, "/pos/tabs", map[string]string{"label": "Mesa 4"})
	if status != http.StatusCreated {
		t.Fatalf("abrir comanda: status %d", status)
	}
	tabID := tab["id"].(string)

	status, _ = s.do(t, s.cashier, http.MethodPost, "/pos/tabs/"+tabID+"/items", map[string]string{"product_id": "milkshake"})
	if status != http.StatusUnprocessableEntity {
		t.Errorf("item sem escolha: status %d, esperado 422", status)
	}

	status, tab = s.do(t, s.cashier, http.MethodPost, "/pos/tabs/"+tabID+"/items",
		map[string]string{"product_id": "milkshake", "choice_id": "morango"})
	if status != http.StatusOK {
		t.Fatalf("adicionar item: status %d", status)
	}
	if tab["total"] != "10" {
		t.Errorf("total = %v, esperado 10", tab["total"])
	}

	status, tab = s.do(t, s.cashier, http.MethodPost, "/pos/tabs/"+tabID+"/payments",
		map[string]string{"method_id": "dinheiro", "amount": "20"})
	if status != http.StatusOK {
		t.Fatalf("pagamento: status %d", status)
	}
	if tab["complete"] != true || tab["change"] != "10" {
		t.Errorf("pagamento: complete=%v change=%v", tab["complete"], tab["change"])
	}

	status, sold := s.do(t, s.cashier, http.MethodPost, "/pos/tabs/"+tabID+"/checkout", nil)
	if status != http.StatusCreated {
		t.Fatalf("checkout: status %d", status)
	}
	if sold["total"] != "10" || sold["session_id"] != sessionID {
		t.Errorf("venda inesperada: %v", sold)
	}

	status, tab = s.do(t, s.cashier, http.MethodGet, "/pos/tabs/"+tabID, nil)
	if status != http.StatusOK || len(tab["lines"].([]interface{})) != 0 {
		t.Errorf("comanda deveria estar vazia após o checkout: %v", tab)
	}

	status, closed := s.do(t, s.cashier, http.MethodPost, "/cash-sessions/"+sessionID+"/close",
		map[string]string{"counted_cash": "60"})
	if status != http.StatusOK {
		t.Fatalf("fechar caixa: status %d", status)
	}
	closing := closed["closing"].(map[string]interface{})
	if closing["cash_sales"] != "10" || closing["expected_cash_in_box"] != "60" || closing["difference"] != "0" {
		t.Errorf("fechamento inesperado: %v", closing)
	}

	status, _ = s.do(t, s.cashier, http.MethodPost, "/cash-sessions/"+sessionID+"/close",
		map[string]string{"counted_cash": "60"})
	if status != http.StatusUnprocessableEntity {
		t.Errorf("fechar duas vezes: status %d, esperado 422", status)
	}
}

func TestCheckoutWithoutOpenSession(t *testing.T) {
	s := newTestServer(t)

	_, tab := s.do(t, s.cashier, http.MethodPost, "/pos/tabs", nil)
	tabID := tab["id"].(string)
	s.do(t, s.cashier, http.MethodPost, "/pos/tabs/"+tabID+"/items", map[string]string{"product_id": "milkshake", "choice_id": "morango"})
	s.do(t, s.cashier, http.MethodPost, "/pos/tabs/"+tabID+"/payments", map[string]string{"method_id": "cartao", "amount": "10"})

	status, _ := s.do(t, s.cashier, http.MethodPost, "/pos/tabs/"+tabID+"/checkout", nil)
	if status != http.StatusUnprocessableEntity {
		t.Errorf("checkout sem caixa: status %d, esperado 422", status)
	}

	status, tab = s.do(t, s.cashier, http.MethodGet, "/pos/tabs/"+tabID, nil)
	if status != http.StatusOK || len(tab["lines"].([]interface{})) != 1 {
		t.Errorf("carrinho deveria ser mantido após falha: %v", tab)
	}
}

func TestStockAdjustmentRequiresManager(t *testing.T) {
	s := newTestServer(t)
	body := map[string]interface{}{"amount": 1, "unit": "l", "reason": "reposição"}

	status, _ := s.do(t, s.cashier, http.MethodPost, "/ingredients/leite/adjustments", body)
	if status != http.StatusForbidden {
		t.Errorf("caixa ajustando estoque: status %d, esperado 403", status)
	}

	status, movement := s.do(t, s.manager, http.MethodPost, "/ingredients/leite/adjustments", body)
	if status != http.StatusCreated {
		t.Fatalf("gerente ajustando estoque: status %d", status)
	}
	if movement["new_stock"] != float64(2000) {
		t.Errorf("novo saldo = %v, esperado 2000", movement["new_stock"])
	}

	status, _ = s.do(t, s.manager, http.MethodPost, "/ingredients/leite/adjustments",
		map[string]interface{}{"amount": -5, "unit": "l", "reason": "perda"})
	if status != http.StatusConflict {
		t.Errorf("ajuste abaixo de zero: status %d, esperado 409", status)
	}
}

func TestRequestsRequireToken(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, "", http.MethodGet, "/pos/products", nil)
	if status != http.StatusUnauthorized {
		t.Errorf("sem token: status %d, esperado 401", status)
	}

	status, _ = s.do(t, s.cashier, http.MethodGet, "/pos/tabs/inexistente", nil)
	if status != http.StatusNotFound {
		t.Errorf("comanda inexistente: status %d, esperado 404", status)
	}
}

func TestAdminSetupAndLogin(t *testing.T) {
	s := newTestServer(t)

	admin := map[string]string{"shop_id": shopID, "name": "Dona Rosa", "email": "rosa@sorveteria.com", "password": "gelato1"}
	status, created := s.do(t, "", http.MethodPost, "/setup/admin", admin)
	if status != http.StatusCreated {
		t.Fatalf("setup admin: status %d", status)
	}
	if created["role"] != "admin" {
		t.Errorf("role = %v", created["role"])
	}
	if _, ok := created["password"]; ok {
		t.Error("senha exposta na resposta")
	}

	status, _ = s.do(t, "", http.MethodPost, "/setup/admin", admin)
	if status != http.StatusConflict {
		t.Errorf("segundo setup: status %d, esperado 409", status)
	}

	status, _ = s.do(t, "", http.MethodPost, "/auth/login",
		map[string]string{"shop_id": shopID, "email": "rosa@sorveteria.com", "password": "errada"})
	if status != http.StatusUnauthorized {
		t.Errorf("senha errada: status %d, esperado 401", status)
	}

	status, login := s.do(t, "", http.MethodPost, "/auth/login",
		map[string]string{"shop_id": shopID, "email": "rosa@sorveteria.com", "password": "gelato1"})
	if status != http.StatusOK {
		t.Fatalf("login: status %d", status)
	}
	token := login["access_token"].(string)

	status, me := s.do(t, token, http.MethodGet, "/auth/me", nil)
	if status != http.StatusOK || me["email"] != "rosa@sorveteria.com" {
		t.Errorf("me: status %d, corpo %v", status, me)
	}

	cashier := map[string]string{"name": "Léo", "email": "leo@sorveteria.com", "password": "casquinha", "role": "cashier"}
	status, _ = s.do(t, s.cashier, http.MethodPost, "/employees", cashier)
	if status != http.StatusForbidden {
		t.Errorf("caixa cadastrando funcionário: status %d, esperado 403", status)
	}
	status, _ = s.do(t, token, http.MethodPost, "/employees", cashier)
	if status != http.StatusCreated {
		t.Errorf("admin cadastrando funcionário: status %d", status)
	}
}
