package payment

import (
	"fmt"

	"github.com/hugohenrick/sorveteria-pos/internal/domain/failure"
	"github.com/shopspring/decimal"
)

var (
	ErrNonPositiveAmount = fmt.Errorf("%w: valor do pagamento deve ser positivo", failure.ErrValidation)
	ErrMethodNotFound    = fmt.Errorf("%w: forma de pagamento não encontrada", failure.ErrValidation)
	ErrMethodDisabled    = fmt.Errorf("%w: forma de pagamento desabilitada", failure.ErrValidation)
	ErrNothingDue        = fmt.Errorf("%w: não há saldo restante para pagamento eletrônico", failure.ErrValidation)
	ErrInvalidIndex      = fmt.Errorf("%w: índice de pagamento inválido", failure.ErrValidation)
	ErrIncomplete        = fmt.Errorf("%w: pagamento ainda não cobre o total", failure.ErrValidation)
	ErrNegativeTotal     = fmt.Errorf("%w: total do pedido não pode ser negativo", failure.ErrValidation)
)

// MethodType representa o tipo da forma de pagamento
type MethodType string

const (
	TypeCash       MethodType = "cash"
	TypeElectronic MethodType = "electronic"
)

// IsValid verifica se o tipo é conhecido
func (t MethodType) IsValid() bool {
	return t == TypeCash || t == TypeElectronic
}

// Method é uma forma de pagamento configurada pela loja
type Method struct {
	ID      string     `json:"id"`
	ShopID  string     `json:"shop_id"`
	Name    string     `json:"name"`
	Type    MethodType `json:"type"`
	Enabled bool       `json:"enabled"`
}

// Payment é uma parcela do pagamento de um pedido.
// Amount é o valor aplicado à venda; Tendered é o valor entregue pelo cliente.
type Payment struct {
	MethodID   string          `json:"method_id"`
	MethodName string          `json:"method_name"`
	Type       MethodType      `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	Tendered   decimal.Decimal `json:"tendered"`
}

// Sum soma os valores aplicados
func Sum(payments []Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// SumByType soma os valores aplicados de um tipo
func SumByType(payments []Payment, t MethodType) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if p.Type == t {
			total = total.Add(p.Amount)
		}
	}
	return total
}
