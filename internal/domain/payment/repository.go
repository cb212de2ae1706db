package payment

import "context"

// Repository fornece a configuração de formas de pagamento da loja
type Repository interface {
	// List retorna todas as formas de pagamento, habilitadas ou não
	List(ctx context.Context, shopID string) ([]*Method, error)
}
