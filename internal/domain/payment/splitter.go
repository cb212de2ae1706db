package payment

import (
	"github.com/shopspring/decimal"
)

// Splitter acumula pagamentos parciais contra um total fixo
type Splitter struct {
	total    decimal.Decimal
	methods  map[string]Method
	payments []Payment
}

// Tender é o resultado de um pagamento concluído
type Tender struct {
	Payments []Payment       // valores líquidos, somam exatamente o total
	Tendered decimal.Decimal // soma entregue pelo cliente
	Change   decimal.Decimal // troco, sempre atribuído ao dinheiro
}

// NewSplitter cria um divisor para o total informado com as formas de pagamento da loja
func NewSplitter(total decimal.Decimal, methods []*Method) (*Splitter, error) {
	if total.IsNegative() {
		return nil, ErrNegativeTotal
	}

	idx := make(map[string]Method, len(methods))
	for _, m := range methods {
		idx[m.ID] = *m
	}

	return &Splitter{total: total, methods: idx}, nil
}

// Total retorna o total fixado na criação
func (s *Splitter) Total() decimal.Decimal {
	return s.total
}

// Remaining retorna total menos a soma dos pagamentos; negativo indica troco
func (s *Splitter) Remaining() decimal.Decimal {
	return s.total.Sub(Sum(s.payments))
}

// IsComplete informa se o pedido pode ser finalizado
func (s *Splitter) IsComplete() bool {
	return !s.Remaining().IsPositive()
}

// Change retorna o troco devido
func (s *Splitter) Change() decimal.Decimal {
	remaining := s.Remaining()
	if remaining.IsNegative() {
		return remaining.Abs()
	}
	return decimal.Zero
}

// Payments retorna uma cópia dos pagamentos registrados
func (s *Splitter) Payments() []Payment {
	out := make([]Payment, len(s.payments))
	copy(out, s.payments)
	return out
}

// AddPayment registra um pagamento. Pagamentos eletrônicos são limitados ao
// saldo restante; dinheiro é aceito como entregue. Em caso de erro nada muda.
func (s *Splitter) AddPayment(methodID string, amount decimal.Decimal) (Payment, error) {
	if !amount.IsPositive() {
		return Payment{}, ErrNonPositiveAmount
	}

	method, ok := s.methods[methodID]
	if !ok || !method.Type.IsValid() {
		return Payment{}, ErrMethodNotFound
	}
	if !method.Enabled {
		return Payment{}, ErrMethodDisabled
	}

	if method.Type == TypeElectronic {
		remaining := s.Remaining()
		if !remaining.IsPositive() {
			return Payment{}, ErrNothingDue
		}
		amount = decimal.Min(amount, remaining)
	}

	p := Payment{
		MethodID:   method.ID,
		MethodName: method.Name,
		Type:       method.Type,
		Amount:     amount,
		Tendered:   amount,
	}
	s.payments = append(s.payments, p)
	return p, nil
}

// RemovePayment remove o pagamento na posição informada
func (s *Splitter) RemovePayment(index int) error {
	if index < 0 || index >= len(s.payments) {
		return ErrInvalidIndex
	}
	s.payments = append(s.payments[:index], s.payments[index+1:]...)
	return nil
}

// Finalize encerra o pagamento. O troco é descontado das parcelas em dinheiro,
// da mais recente para a mais antiga, de modo que os valores líquidos somem o total.
func (s *Splitter) Finalize() (Tender, error) {
	if !s.IsComplete() {
		return Tender{}, ErrIncomplete
	}

	change := s.Change()
	tender := Tender{
		Payments: s.Payments(),
		Tendered: Sum(s.payments),
		Change:   change,
	}

	left := change
	for i := len(tender.Payments) - 1; i >= 0 && left.IsPositive(); i-- {
		p := &tender.Payments[i]
		if p.Type != TypeCash {
			continue
		}
		cut := decimal.Min(p.Amount, left)
		p.Amount = p.Amount.Sub(cut)
		left = left.Sub(cut)
	}

	return tender, nil
}
