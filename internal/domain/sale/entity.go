package sale

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/failure"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/payment"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/product"
	"github.com/shopspring/decimal"
)

var (
	ErrNoItems         = fmt.Errorf("%w: venda sem itens", failure.ErrValidation)
	ErrInvalidQuantity = fmt.Errorf("%w: quantidade do item deve ser positiva", failure.ErrValidation)
	ErrPaymentMismatch = fmt.Errorf("%w: pagamentos não correspondem ao total da venda", failure.ErrValidation)
	ErrSessionRequired = fmt.Errorf("%w: venda exige um caixa aberto", failure.ErrValidation)
	ErrSaleNotFound    = fmt.Errorf("%w: venda não encontrada", failure.ErrNotFound)
)

// Item é o instantâneo de uma linha vendida
type Item struct {
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	IngredientsUsed []product.Usage `json:"ingredients_used"`
}

// Subtotal retorna preço unitário vezes quantidade
func (i Item) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Sale é o registro imutável de uma venda liquidada
type Sale struct {
	ID         string            `json:"id"`
	ShopID     string            `json:"shop_id"`
	SessionID  string            `json:"session_id"`
	EmployeeID string            `json:"employee_id"`
	Items      []Item            `json:"items"`
	Payments   []payment.Payment `json:"payments"`
	Total      decimal.Decimal   `json:"total"`
	Tendered   decimal.Decimal   `json:"tendered"`
	Change     decimal.Decimal   `json:"change"`
	CreatedAt  time.Time         `json:"created_at"`
}

// NewSale monta a venda a partir dos itens e do pagamento concluído.
// O total é a soma dos subtotais, nunca a soma entregue.
func NewSale(shopID, sessionID, employeeID string, items []Item, tender payment.Tender) (*Sale, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	total := decimal.Zero
	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		total = total.Add(it.Subtotal())
	}

	if !payment.Sum(tender.Payments).Equal(total) {
		return nil, fmt.Errorf("%w: total %s, pago %s", ErrPaymentMismatch, total, payment.Sum(tender.Payments))
	}

	payments := tender.Payments
	if payments == nil {
		payments = []payment.Payment{}
	}

	return &Sale{
		ID:         uuid.New().String(),
		ShopID:     shopID,
		SessionID:  sessionID,
		EmployeeID: employeeID,
		Items:      items,
		Payments:   payments,
		Total:      total,
		Tendered:   tender.Tendered,
		Change:     tender.Change,
		CreatedAt:  time.Now(),
	}, nil
}

// Consumption retorna a baixa de estoque da venda, ordenada por ingrediente.
// Recalcular a partir de uma venda persistida produz a mesma baixa.
func (s *Sale) Consumption() []product.Usage {
	totals := make(map[string]float64)
	for _, it := range s.Items {
		for id, qty := range product.Multiply(it.IngredientsUsed, it.Quantity) {
			totals[id] += qty
		}
	}

	out := make([]product.Usage, 0, len(totals))
	for id, qty := range totals {
		out = append(out, product.Usage{IngredientID: id, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IngredientID < out[j].IngredientID })
	return out
}

// Summary agrega vendas de um período
type Summary struct {
	Count           int             `json:"count"`
	Total           decimal.Decimal `json:"total"`
	CashSales       decimal.Decimal `json:"cash_sales"`
	ElectronicSales decimal.Decimal `json:"electronic_sales"`
}

// Summarize soma as vendas por tipo de pagamento
func Summarize(sales []*Sale) Summary {
	sum := Summary{Total: decimal.Zero, CashSales: decimal.Zero, ElectronicSales: decimal.Zero}
	for _, s := range sales {
		sum.Count++
		sum.Total = sum.Total.Add(s.Total)
		sum.CashSales = sum.CashSales.Add(payment.SumByType(s.Payments, payment.TypeCash))
		sum.ElectronicSales = sum.ElectronicSales.Add(payment.SumByType(s.Payments, payment.TypeElectronic))
	}
	return sum
}
