// Package memory implementa todos os repositórios em memória. É usado quando
// STORAGE_DRIVER=memory e nos testes dos serviços; segue as mesmas regras de
// atomicidade da implementação PostgreSQL.
package memory

import (
	"sync"

	"github.com/hugohenrick/sorveteria-pos/internal/domain/cashsession"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/employee"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/ingredient"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/payment"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/product"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/purchase"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/sale"
)

// FailureHook permite simular falhas de persistência em pontos nomeados,
// como "sale.insert" ou "stock.decrement:<ingredientID>"
type FailureHook func(point string) error

// Store guarda o estado de todas as lojas
type Store struct {
	mu          sync.RWMutex
	shops       map[string]bool // id -> ativa
	ingredients map[string]map[string]*ingredient.Ingredient
	movements   []*ingredient.StockMovement
	products    map[string][]*product.Product
	methods     map[string][]*payment.Method
	sales       []*sale.Sale
	purchases   []*purchase.Purchase
	sessions    map[string]*cashsession.CashSession
	employees   map[string]*employee.Employee

	failOn FailureHook
}

// NewStore cria um armazenamento vazio
func NewStore() *Store {
	return &Store{
		shops:       make(map[string]bool),
		ingredients: make(map[string]map[string]*ingredient.Ingredient),
		products:    make(map[string][]*product.Product),
		methods:     make(map[string][]*payment.Method),
		sessions:    make(map[string]*cashsession.CashSession),
		employees:   make(map[string]*employee.Employee),
	}
}

// SetFailureHook instala um gancho de falha; nil remove
func (s *Store) SetFailureHook(hook FailureHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failOn = hook
}

func (s *Store) fail(point string) error {
	if s.failOn == nil {
		return nil
	}
	return s.failOn(point)
}

// PutShop cadastra ou atualiza uma loja
func (s *Store) PutShop(id string, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shops[id] = active
}

// PutIngredient cadastra ou substitui um ingrediente
func (s *Store) PutIngredient(i *ingredient.Ingredient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ingredients[i.ShopID] == nil {
		s.ingredients[i.ShopID] = make(map[string]*ingredient.Ingredient)
	}
	cp := *i
	s.ingredients[i.ShopID][i.ID] = &cp
}

// PutProduct cadastra ou substitui um produto
func (s *Store) PutProduct(p *product.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := copyProduct(p)
	list := s.products[p.ShopID]
	for i, existing := range list {
		if existing.ID == p.ID {
			list[i] = cp
			return
		}
	}
	s.products[p.ShopID] = append(list, cp)
}

// PutPaymentMethod cadastra ou substitui uma forma de pagamento
func (s *Store) PutPaymentMethod(m *payment.Method) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *m
	list := s.methods[m.ShopID]
	for i, existing := range list {
		if existing.ID == m.ID {
			list[i] = &cp
			return
		}
	}
	s.methods[m.ShopID] = append(list, &cp)
}

// Employees retorna o repositório de funcionários
func (s *Store) Employees() *EmployeeRepository { return &EmployeeRepository{s: s} }

// Ingredients retorna o repositório de ingredientes
func (s *Store) Ingredients() *IngredientRepository { return &IngredientRepository{s: s} }

// Products retorna o repositório de produtos
func (s *Store) Products() *ProductRepository { return &ProductRepository{s: s} }

// PaymentMethods retorna o repositório de formas de pagamento
func (s *Store) PaymentMethods() *PaymentMethodRepository { return &PaymentMethodRepository{s: s} }

// Sales retorna o repositório de vendas
func (s *Store) Sales() *SaleRepository { return &SaleRepository{s: s} }

// Purchases retorna o repositório de compras
func (s *Store) Purchases() *PurchaseRepository { return &PurchaseRepository{s: s} }

// CashSessions retorna o repositório de caixas
func (s *Store) CashSessions() *CashSessionRepository { return &CashSessionRepository{s: s} }

// Shops retorna o validador de lojas
func (s *Store) Shops() *ShopValidator { return &ShopValidator{s: s} }

func copyProduct(p *product.Product) *product.Product {
	cp := *p
	cp.Recipe = append(product.Recipe(nil), p.Recipe...)
	return &cp
}

func copySale(in *sale.Sale) *sale.Sale {
	cp := *in
	cp.Items = make([]sale.Item, len(in.Items))
	for i, it := range in.Items {
		it.IngredientsUsed = append([]product.Usage(nil), it.IngredientsUsed...)
		cp.Items[i] = it
	}
	cp.Payments = append([]payment.Payment(nil), in.Payments...)
	return &cp
}

func copySession(in *cashsession.CashSession) *cashsession.CashSession {
	cp := *in
	if in.EndTime != nil {
		end := *in.EndTime
		cp.EndTime = &end
	}
	if in.Closing != nil {
		closing := *in.Closing
		cp.Closing = &closing
	}
	return &cp
}
