package purchase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/failure"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidKind      = fmt.Errorf("%w: tipo deve ser purchase ou expense", failure.ErrValidation)
	ErrNonPositiveTotal = fmt.Errorf("%w: valor da despesa deve ser positivo", failure.ErrValidation)
	ErrEmptyDescription = fmt.Errorf("%w: descrição é obrigatória", failure.ErrValidation)
)

// Kind distingue compras de insumos de despesas gerais
type Kind string

const (
	KindPurchase Kind = "purchase"
	KindExpense  Kind = "expense"
)

// Purchase é uma saída de dinheiro registrada pela loja
type Purchase struct {
	ID          string          `json:"id"`
	ShopID      string          `json:"shop_id"`
	EmployeeID  string          `json:"employee_id"`
	SessionID   string          `json:"session_id,omitempty"` // vazio quando lançada fora de um caixa
	Kind        Kind            `json:"kind"`
	Description string          `json:"description"`
	Total       decimal.Decimal `json:"total"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewPurchase cria uma compra ou despesa
func NewPurchase(shopID, employeeID, sessionID string, kind Kind, description string, total decimal.Decimal) (*Purchase, error) {
	if kind != KindPurchase && kind != KindExpense {
		return nil, ErrInvalidKind
	}
	if strings.TrimSpace(description) == "" {
		return nil, ErrEmptyDescription
	}
	if !total.IsPositive() {
		return nil, ErrNonPositiveTotal
	}

	return &Purchase{
		ID:          uuid.New().String(),
		ShopID:      shopID,
		EmployeeID:  employeeID,
		SessionID:   sessionID,
		Kind:        kind,
		Description: strings.TrimSpace(description),
		Total:       total,
		CreatedAt:   time.Now(),
	}, nil
}

// AttributableTo informa se a compra pertence ao caixa. Compras carimbadas
// pertencem ao seu caixa; as demais, ao funcionário que abriu o caixa.
func (p *Purchase) AttributableTo(sessionID, employeeID string) bool {
	if p.SessionID != "" {
		return p.SessionID == sessionID
	}
	return p.EmployeeID == employeeID
}

// TotalFor soma as compras atribuíveis ao caixa
func TotalFor(purchases []*Purchase, sessionID, employeeID string) decimal.Decimal {
	total := decimal.Zero
	for _, p := range purchases {
		if p.AttributableTo(sessionID, employeeID) {
			total = total.Add(p.Total)
		}
	}
	return total
}

// Repository define as operações de persistência para compras e despesas
type Repository interface {
	// Create grava uma compra ou despesa
	Create(ctx context.Context, purchase *Purchase) error

	// ListByDateRange retorna as compras com data entre start e end, inclusive
	ListByDateRange(ctx context.Context, shopID string, start, end time.Time) ([]*Purchase, error)
}
