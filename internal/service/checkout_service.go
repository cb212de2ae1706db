package service

import (
	"context"
	"errors"

	"github.com/hugohenrick/sorveteria-pos/internal/domain/cashsession"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/failure"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/order"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/payment"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/sale"
	"github.com/hugohenrick/sorveteria-pos/pkg/logger"
)

// CheckoutService liquida vendas: grava a venda e baixa o estoque numa única unidade atômica
type CheckoutService struct {
	sales    sale.Repository
	sessions cashsession.Repository
	log      logger.Logger
}

// NewCheckoutService cria uma nova instância de CheckoutService
func NewCheckoutService(sales sale.Repository, sessions cashsession.Repository, log logger.Logger) *CheckoutService {
	return &CheckoutService{
		sales:    sales,
		sessions: sessions,
		log:      log.With("component", "checkout"),
	}
}

// Settle grava a venda no caixa aberto da loja. Em caso de erro nenhuma baixa
// é aplicada e o chamador mantém o carrinho para nova tentativa.
func (s *CheckoutService) Settle(ctx context.Context, shopID, employeeID string, lines []order.Line, tender payment.Tender) (*sale.Sale, error) {
	session, err := s.sessions.GetOpen(ctx, shopID)
	if errors.Is(err, cashsession.ErrNoOpenSession) {
		return nil, sale.ErrSessionRequired
	}
	if err != nil {
		return nil, err
	}

	items := make([]sale.Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, sale.Item{
			ProductID:       l.ProductID,
			ProductName:     l.ProductName,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			IngredientsUsed: l.IngredientsUsed,
		})
	}

	sl, err := sale.NewSale(shopID, session.ID, employeeID, items, tender)
	if err != nil {
		return nil, err
	}

	if err := s.sales.Create(ctx, sl); err != nil {
		if errors.Is(err, failure.ErrConflict) {
			s.log.Warn("venda rejeitada por conflito de estoque", "shop_id", shopID, "error", err)
		} else {
			s.log.Error("falha ao gravar venda", "shop_id", shopID, "error", err)
		}
		return nil, err
	}

	s.log.Info("venda registrada",
		"shop_id", shopID,
		"sale_id", sl.ID,
		"session_id", sl.SessionID,
		"total", sl.Total.String(),
		"items", len(sl.Items),
	)
	return sl, nil
}
