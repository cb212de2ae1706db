package shop

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/sorveteria-pos/internal/adapter/api/dto"
)

// Validator define a interface para validação de loja
type Validator interface {
	ValidateShop(ctx context.Context, shopID string) (bool, error)
}

// Middleware valida a loja definida pelo token. Deve rodar depois da autenticação.
func Middleware(validator Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		shopID := GetShopID(c)
		if shopID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(
				http.StatusBadRequest,
				"Loja não informada",
				ErrShopNotSpecified.Error(),
			))
			return
		}

		valid, err := validator.ValidateShop(c.Request.Context(), shopID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(
				http.StatusInternalServerError,
				"Erro ao validar loja",
				err.Error(),
			))
			return
		}

		if !valid {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				http.StatusForbidden,
				"Loja inválida",
				ErrShopNotActive.Error(),
			))
			return
		}

		c.Request = c.Request.WithContext(SetShopIDContext(c.Request.Context(), shopID))
		c.Next()
	}
}
