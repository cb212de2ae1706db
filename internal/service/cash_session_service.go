package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/sorveteria-pos/internal/domain/cashsession"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/payment"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/purchase"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/sale"
	"github.com/hugohenrick/sorveteria-pos/pkg/logger"
	"github.com/shopspring/decimal"
)

// Tentativas de fechamento quando vendas entram durante a apuração
const closeAttempts = 3

// CashSessionService abre, fecha e concilia caixas
type CashSessionService struct {
	sessions  cashsession.Repository
	sales     sale.Repository
	purchases purchase.Repository
	log       logger.Logger
	now       func() time.Time
}

// NewCashSessionService cria uma nova instância de CashSessionService
func NewCashSessionService(sessions cashsession.Repository, sales sale.Repository, purchases purchase.Repository, log logger.Logger) *CashSessionService {
	return &CashSessionService{
		sessions:  sessions,
		sales:     sales,
		purchases: purchases,
		log:       log.With("component", "cash_session"),
		now:       time.Now,
	}
}

// Open abre um caixa para o funcionário; falha se a loja já tiver um caixa aberto
func (s *CashSessionService) Open(ctx context.Context, shopID, employeeID string, openingBalance decimal.Decimal) (*cashsession.CashSession, error) {
	cs, err := cashsession.Open(shopID, employeeID, openingBalance)
	if err != nil {
		return nil, err
	}

	current, err := s.sessions.GetOpen(ctx, shopID)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: %s", cashsession.ErrSessionAlreadyOpen, current.ID)
	case !errors.Is(err, cashsession.ErrNoOpenSession):
		return nil, err
	}

	cs.StartTime = s.now()
	if err := s.sessions.Create(ctx, cs); err != nil {
		return nil, err
	}

	s.log.Info("caixa aberto", "shop_id", shopID, "session_id", cs.ID, "employee_id", employeeID, "opening_balance", openingBalance.String())
	return cs, nil
}

// Current retorna o caixa aberto da loja
func (s *CashSessionService) Current(ctx context.Context, shopID string) (*cashsession.CashSession, error) {
	return s.sessions.GetOpen(ctx, shopID)
}

// Get busca um caixa pelo id
func (s *CashSessionService) Get(ctx context.Context, shopID, sessionID string) (*cashsession.CashSession, error) {
	return s.sessions.FindByID(ctx, shopID, sessionID)
}

// List retorna o histórico de caixas
func (s *CashSessionService) List(ctx context.Context, shopID string, limit, offset int) ([]*cashsession.CashSession, error) {
	return s.sessions.List(ctx, shopID, limit, offset)
}

// Totals apura vendas e despesas do caixa até o instante informado
func (s *CashSessionService) Totals(ctx context.Context, cs *cashsession.CashSession, until time.Time) (cashsession.Totals, error) {
	sales, err := s.sales.ListBySession(ctx, cs.ShopID, cs.ID)
	if err != nil {
		return cashsession.Totals{}, fmt.Errorf("falha ao listar vendas do caixa: %w", err)
	}

	purchases, err := s.purchases.ListByDateRange(ctx, cs.ShopID, cs.StartTime, until)
	if err != nil {
		return cashsession.Totals{}, fmt.Errorf("falha ao listar compras do caixa: %w", err)
	}

	totals := cashsession.Totals{
		CashSales:       decimal.Zero,
		ElectronicSales: decimal.Zero,
		TotalExpenses:   purchase.TotalFor(purchases, cs.ID, cs.EmployeeID),
		SaleCount:       len(sales),
	}
	for _, sl := range sales {
		totals.CashSales = totals.CashSales.Add(payment.SumByType(sl.Payments, payment.TypeCash))
		totals.ElectronicSales = totals.ElectronicSales.Add(payment.SumByType(sl.Payments, payment.TypeElectronic))
	}
	return totals, nil
}

// Close concilia e fecha o caixa. A transição é única e os valores ficam congelados.
func (s *CashSessionService) Close(ctx context.Context, shopID, sessionID string, countedCash decimal.Decimal, notes string) (*cashsession.CashSession, error) {
	if countedCash.IsNegative() {
		return nil, cashsession.ErrNegativeCount
	}

	var cs *cashsession.CashSession
	for attempt := 1; ; attempt++ {
		var err error
		cs, err = s.closeOnce(ctx, shopID, sessionID, countedCash, notes)
		if err == nil {
			break
		}
		// Vendas que entraram depois da apuração: apura de novo
		if !errors.Is(err, cashsession.ErrStaleTotals) || attempt == closeAttempts {
			return nil, err
		}
		s.log.Warn("vendas durante o fechamento, apurando novamente", "session_id", sessionID, "attempt", attempt)
	}

	s.log.Info("caixa fechado",
		"shop_id", shopID,
		"session_id", cs.ID,
		"expected", cs.Closing.ExpectedCashInBox.String(),
		"counted", countedCash.String(),
		"difference", cs.Closing.Difference.String(),
	)
	return cs, nil
}

func (s *CashSessionService) closeOnce(ctx context.Context, shopID, sessionID string, countedCash decimal.Decimal, notes string) (*cashsession.CashSession, error) {
	cs, err := s.sessions.FindByID(ctx, shopID, sessionID)
	if err != nil {
		return nil, err
	}
	if !cs.IsOpen() {
		return nil, cashsession.ErrSessionClosed
	}

	now := s.now()
	totals, err := s.Totals(ctx, cs, now)
	if err != nil {
		return nil, err
	}

	if err := cs.Close(countedCash, notes, totals, now); err != nil {
		return nil, err
	}
	if err := s.sessions.Close(ctx, cs); err != nil {
		return nil, err
	}
	return cs, nil
}

// RecordExpense lança uma compra ou despesa, carimbada com o caixa aberto quando houver
func (s *CashSessionService) RecordExpense(ctx context.Context, shopID, employeeID string, kind purchase.Kind, description string, total decimal.Decimal) (*purchase.Purchase, error) {
	sessionID := ""
	current, err := s.sessions.GetOpen(ctx, shopID)
	switch {
	case err == nil:
		sessionID = current.ID
	case !errors.Is(err, cashsession.ErrNoOpenSession):
		return nil, err
	}

	p, err := purchase.NewPurchase(shopID, employeeID, sessionID, kind, description, total)
	if err != nil {
		return nil, err
	}
	p.CreatedAt = s.now()

	if err := s.purchases.Create(ctx, p); err != nil {
		return nil, err
	}

	s.log.Info("despesa lançada", "shop_id", shopID, "purchase_id", p.ID, "session_id", sessionID, "total", total.String())
	return p, nil
}
