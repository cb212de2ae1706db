package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newTestRouter(svc *JWTService, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/", JWTAuthMiddleware(svc))
	if len(roles) > 0 {
		group.Use(RoleAuthMiddleware(roles...))
	}
	group.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, CurrentEmployee(c))
	})
	return r
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTServiceWithKey("segredo", time.Hour)
	token, err := svc.GenerateToken(Identity{EmployeeID: "func-1", ShopID: "loja-1", Name: "Ana", Role: RoleCashier})
	if err != nil {
		t.Fatalf("erro ao gerar token: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("erro ao validar token: %v", err)
	}
	if claims.EmployeeID != "func-1" || claims.ShopID != "loja-1" || claims.Role != RoleCashier {
		t.Errorf("claims inesperadas: %+v", claims)
	}

	if _, err := NewJWTServiceWithKey("outra", time.Hour).ValidateToken(token); err != ErrInvalidToken {
		t.Errorf("chave errada: erro = %v, esperado %v", err, ErrInvalidToken)
	}
}

func TestExpiredToken(t *testing.T) {
	svc := NewJWTServiceWithKey("segredo", -time.Minute)
	token, _ := svc.GenerateToken(Identity{EmployeeID: "func-1", ShopID: "loja-1"})

	if _, err := svc.ValidateToken(token); err != ErrExpiredToken {
		t.Errorf("erro = %v, esperado %v", err, ErrExpiredToken)
	}
}

func TestMiddleware(t *testing.T) {
	svc := NewJWTServiceWithKey("segredo", time.Hour)
	cashier, _ := svc.GenerateToken(Identity{EmployeeID: "func-1", ShopID: "loja-1", Role: RoleCashier})
	manager, _ := svc.GenerateToken(Identity{EmployeeID: "func-2", ShopID: "loja-1", Role: RoleManager})

	tests := []struct {
		name   string
		header string
		roles  []string
		status int
	}{
		{"sem cabeçalho", "", nil, http.StatusUnauthorized},
		{"formato inválido", "Token " + cashier, nil, http.StatusUnauthorized},
		{"token válido", "Bearer " + cashier, nil, http.StatusOK},
		{"papel negado", "Bearer " + cashier, []string{RoleAdmin, RoleManager}, http.StatusForbidden},
		{"papel permitido", "Bearer " + manager, []string{RoleAdmin, RoleManager}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			newTestRouter(svc, tt.roles...).ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Errorf("status = %d, esperado %d (%s)", w.Code, tt.status, w.Body.String())
			}
		})
	}
}
