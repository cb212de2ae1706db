package cashsession

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/failure"
	"github.com/shopspring/decimal"
)

var (
	ErrNegativeOpening    = fmt.Errorf("%w: saldo inicial não pode ser negativo", failure.ErrValidation)
	ErrNegativeCount      = fmt.Errorf("%w: valor contado não pode ser negativo", failure.ErrValidation)
	ErrSessionAlreadyOpen = fmt.Errorf("%w: já existe um caixa aberto", failure.ErrValidation)
	ErrSessionClosed      = fmt.Errorf("%w: caixa já foi fechado", failure.ErrValidation)
	ErrNoOpenSession      = fmt.Errorf("%w: nenhum caixa aberto", failure.ErrNotFound)
	ErrSessionNotFound    = fmt.Errorf("%w: caixa não encontrado", failure.ErrNotFound)
	ErrConcurrentOpen     = fmt.Errorf("%w: outro terminal abriu um caixa", failure.ErrConflict)
	ErrConcurrentClose    = fmt.Errorf("%w: caixa foi fechado por outro terminal", failure.ErrConflict)
	ErrStaleTotals        = fmt.Errorf("%w: novas vendas entraram no caixa durante o fechamento", failure.ErrConflict)
)

// Status representa o estado do caixa
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Totals são os valores apurados a partir das vendas e compras do caixa
type Totals struct {
	CashSales       decimal.Decimal `json:"cash_sales"`
	ElectronicSales decimal.Decimal `json:"electronic_sales"`
	TotalExpenses   decimal.Decimal `json:"total_expenses"`
	SaleCount       int             `json:"sale_count"` // vendas apuradas; o fechamento só grava se ainda for este o total
}

// Reconciliation é o fechamento congelado do caixa
type Reconciliation struct {
	Totals
	CountedCash       decimal.Decimal `json:"counted_cash"`
	ExpectedCashInBox decimal.Decimal `json:"expected_cash_in_box"`
	Difference        decimal.Decimal `json:"difference"` // positivo sobra, negativo falta
	Notes             string          `json:"notes,omitempty"`
}

// CashSession é o turno de caixa de um funcionário
type CashSession struct {
	ID             string          `json:"id"`
	ShopID         string          `json:"shop_id"`
	EmployeeID     string          `json:"employee_id"`
	Status         Status          `json:"status"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	StartTime      time.Time       `json:"start_time"`
	EndTime        *time.Time      `json:"end_time,omitempty"`
	Closing        *Reconciliation `json:"closing,omitempty"`
}

// Open cria um caixa aberto
func Open(shopID, employeeID string, openingBalance decimal.Decimal) (*CashSession, error) {
	if openingBalance.IsNegative() {
		return nil, ErrNegativeOpening
	}

	return &CashSession{
		ID:             uuid.New().String(),
		ShopID:         shopID,
		EmployeeID:     employeeID,
		Status:         StatusOpen,
		OpeningBalance: openingBalance,
		StartTime:      time.Now(),
	}, nil
}

// IsOpen verifica se o caixa está aberto
func (s *CashSession) IsOpen() bool {
	return s.Status == StatusOpen
}

// Reconcile calcula o esperado em caixa e a diferença para o valor contado
func Reconcile(openingBalance, countedCash decimal.Decimal, totals Totals) Reconciliation {
	expected := openingBalance.Add(totals.CashSales).Sub(totals.TotalExpenses)
	return Reconciliation{
		Totals:            totals,
		CountedCash:       countedCash,
		ExpectedCashInBox: expected,
		Difference:        countedCash.Sub(expected),
	}
}

// Close congela o fechamento. A transição é única: um caixa fechado não é reaberto nem recalculado.
func (s *CashSession) Close(countedCash decimal.Decimal, notes string, totals Totals, now time.Time) error {
	if !s.IsOpen() {
		return ErrSessionClosed
	}
	if countedCash.IsNegative() {
		return ErrNegativeCount
	}

	rec := Reconcile(s.OpeningBalance, countedCash, totals)
	rec.Notes = notes

	s.Closing = &rec
	s.EndTime = &now
	s.Status = StatusClosed
	return nil
}
