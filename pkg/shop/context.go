package shop

import (
	"context"
)

type contextKey string

const (
	// shopIDKey é a chave usada para armazenar o ID da loja no contexto
	shopIDKey contextKey = "shop_id"

	// GinKey é a chave usada no contexto do Gin
	GinKey = "shop_id"
)

// SetShopIDContext define o ID da loja no contexto
func SetShopIDContext(ctx context.Context, shopID string) context.Context {
	return context.WithValue(ctx, shopIDKey, shopID)
}

// GetShopIDFromContext obtém o ID da loja do contexto
func GetShopIDFromContext(ctx context.Context) string {
	if shopID, ok := ctx.Value(shopIDKey).(string); ok {
		return shopID
	}
	return ""
}

// GetShopID obtém o ID da loja de um contexto do Gin
func GetShopID(c interface{ GetString(string) string }) string {
	return c.GetString(GinKey)
}
