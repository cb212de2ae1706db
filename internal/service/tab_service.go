package service

import (
	"context"
	"fmt"

	"github.com/hugohenrick/sorveteria-pos/internal/domain/availability"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/order"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/payment"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/product"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/sale"
	"github.com/hugohenrick/sorveteria-pos/pkg/logger"
	"github.com/shopspring/decimal"
)

type reservations map[string]float64

func (r reservations) Reservations() map[string]float64 { return r }

// TabService coordena comandas, disponibilidade, pagamentos e liquidação
type TabService struct {
	tabs     *order.Tabs
	catalog  *CatalogService
	methods  payment.Repository
	checkout *CheckoutService
	log      logger.Logger
}

// NewTabService cria uma nova instância de TabService
func NewTabService(tabs *order.Tabs, catalog *CatalogService, methods payment.Repository, checkout *CheckoutService, log logger.Logger) *TabService {
	return &TabService{
		tabs:     tabs,
		catalog:  catalog,
		methods:  methods,
		checkout: checkout,
		log:      log.With("component", "tabs"),
	}
}

// Open abre uma nova comanda vazia
func (s *TabService) Open(shopID, employeeID, label string) order.View {
	v := s.tabs.Open(shopID, employeeID, label)
	s.log.Debug("comanda aberta", "shop_id", shopID, "tab_id", v.ID)
	return v
}

// Get retorna a comanda
func (s *TabService) Get(shopID, tabID string) (order.View, error) {
	return s.tabs.Get(shopID, tabID)
}

// List retorna as comandas abertas da loja
func (s *TabService) List(shopID string) []order.View {
	return s.tabs.List(shopID)
}

// Close descarta a comanda sem persistir
func (s *TabService) Close(shopID, tabID string) error {
	return s.tabs.Close(shopID, tabID)
}

// Reservations retorna as reservas da comanda; tabID vazio significa nenhuma
func (s *TabService) Reservations(shopID, tabID string) (availability.Reserver, error) {
	if tabID == "" {
		return reservations{}, nil
	}

	var reserved reservations
	_, err := s.tabs.Update(shopID, tabID, func(t *order.Tab) error {
		reserved = t.Reservations()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reserved, nil
}

// Availability calcula a disponibilidade dos produtos considerando a comanda
func (s *TabService) Availability(ctx context.Context, shopID, tabID string) ([]availability.ProductAvailability, error) {
	reserved, err := s.Reservations(shopID, tabID)
	if err != nil {
		return nil, err
	}
	return s.catalog.Availability(ctx, shopID, reserved)
}

// Options lista as escolhas da linha variável considerando a comanda
func (s *TabService) Options(ctx context.Context, shopID, tabID, productID string) (*product.Product, []availability.ChoiceAvailability, error) {
	reserved, err := s.Reservations(shopID, tabID)
	if err != nil {
		return nil, nil, err
	}
	return s.catalog.Options(ctx, shopID, productID, reserved)
}

// AddItem adiciona uma unidade do produto à comanda, desde que o estoque livre
// (descontadas as reservas da própria comanda) cubra a nova unidade
func (s *TabService) AddItem(ctx context.Context, shopID, tabID, productID, choiceID string) (order.View, order.Line, error) {
	p, choice, err := s.catalog.Selection(ctx, shopID, productID, choiceID)
	if err != nil {
		return order.View{}, order.Line{}, err
	}

	usages, err := product.Resolve(p.Recipe, choice)
	if err != nil {
		return order.View{}, order.Line{}, err
	}

	ingredients, err := s.catalog.ingredients.List(ctx, shopID)
	if err != nil {
		return order.View{}, order.Line{}, fmt.Errorf("falha ao listar ingredientes: %w", err)
	}

	var line order.Line
	v, err := s.tabs.Update(shopID, tabID, func(t *order.Tab) error {
		engine := availability.NewEngine(ingredients, reservations(t.Reservations()))
		if engine.UsageUnits(usages) < 1 {
			return fmt.Errorf("%w: %s", ErrProductUnavailable, p.Name)
		}

		l, err := t.AddProduct(p, choice)
		if err != nil {
			return err
		}
		line = l
		return nil
	})
	if err != nil {
		return v, order.Line{}, err
	}
	return v, line, nil
}

// SetQuantity ajusta a quantidade de uma linha; zero ou negativo remove
func (s *TabService) SetQuantity(shopID, tabID, lineKey string, quantity int) (order.View, error) {
	return s.tabs.Update(shopID, tabID, func(t *order.Tab) error {
		return t.SetQuantity(lineKey, quantity)
	})
}

// AddPayment registra um pagamento na comanda
func (s *TabService) AddPayment(ctx context.Context, shopID, tabID, methodID string, amount decimal.Decimal) (order.View, error) {
	methods, err := s.methods.List(ctx, shopID)
	if err != nil {
		return order.View{}, fmt.Errorf("falha ao listar formas de pagamento: %w", err)
	}

	return s.tabs.Update(shopID, tabID, func(t *order.Tab) error {
		_, err := t.AddPayment(methods, methodID, amount)
		return err
	})
}

// RemovePayment remove um pagamento da comanda
func (s *TabService) RemovePayment(shopID, tabID string, index int) (order.View, error) {
	return s.tabs.Update(shopID, tabID, func(t *order.Tab) error {
		return t.RemovePayment(index)
	})
}

// Checkout finaliza os pagamentos e liquida a venda. O carrinho só é esvaziado
// se a venda for gravada.
func (s *TabService) Checkout(ctx context.Context, shopID, tabID, employeeID string) (*sale.Sale, error) {
	var settled *sale.Sale
	_, err := s.tabs.Update(shopID, tabID, func(t *order.Tab) error {
		tender, err := t.Tender()
		if err != nil {
			return err
		}

		sl, err := s.checkout.Settle(ctx, shopID, employeeID, t.Lines(), tender)
		if err != nil {
			return err
		}

		t.Clear()
		settled = sl
		return nil
	})
	if err != nil {
		return nil, err
	}
	return settled, nil
}

// PaymentMethods lista as formas de pagamento habilitadas
func (s *TabService) PaymentMethods(ctx context.Context, shopID string) ([]*payment.Method, error) {
	methods, err := s.methods.List(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar formas de pagamento: %w", err)
	}

	enabled := make([]*payment.Method, 0, len(methods))
	for _, m := range methods {
		if m.Enabled {
			enabled = append(enabled, m)
		}
	}
	return enabled, nil
}
