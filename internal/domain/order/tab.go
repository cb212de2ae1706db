package order

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/failure"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/ingredient"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/payment"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/product"
	"github.com/shopspring/decimal"
)

var ErrTabNotFound = fmt.Errorf("%w: comanda não encontrada", failure.ErrNotFound)

// Tab é um pedido em aberto com carrinho e, opcionalmente, pagamentos em andamento
type Tab struct {
	ID         string
	ShopID     string
	EmployeeID string
	Label      string
	OpenedAt   time.Time

	mu       sync.Mutex
	cart     *Cart
	splitter *payment.Splitter
}

// View é uma cópia imutável do estado da comanda
type View struct {
	ID         string            `json:"id"`
	ShopID     string            `json:"shop_id"`
	EmployeeID string            `json:"employee_id"`
	Label      string            `json:"label"`
	OpenedAt   time.Time         `json:"opened_at"`
	Lines      []Line            `json:"lines"`
	Total      decimal.Decimal   `json:"total"`
	Payments   []payment.Payment `json:"payments"`
	Remaining  decimal.Decimal   `json:"remaining"`
	Change     decimal.Decimal   `json:"change"`
	Complete   bool              `json:"complete"`
}

// AddProduct adiciona uma unidade do produto. Qualquer pagamento em andamento é
// descartado, pois o total do divisor é fixado na criação.
func (t *Tab) AddProduct(p *product.Product, choice *ingredient.Ingredient) (Line, error) {
	line, err := t.cart.AddProduct(p, choice)
	if err != nil {
		return Line{}, err
	}
	t.splitter = nil
	return line, nil
}

// SetQuantity ajusta a quantidade de uma linha pela chave
func (t *Tab) SetQuantity(key string, quantity int) error {
	if err := t.cart.SetQuantityByKey(key, quantity); err != nil {
		return err
	}
	t.splitter = nil
	return nil
}

// AddPayment registra um pagamento; o divisor é criado no primeiro pagamento
func (t *Tab) AddPayment(methods []*payment.Method, methodID string, amount decimal.Decimal) (payment.Payment, error) {
	if t.cart.IsEmpty() {
		return payment.Payment{}, ErrEmptyCart
	}
	if t.splitter == nil {
		s, err := payment.NewSplitter(t.cart.Total(), methods)
		if err != nil {
			return payment.Payment{}, err
		}
		t.splitter = s
	}
	return t.splitter.AddPayment(methodID, amount)
}

// RemovePayment remove um pagamento pela posição
func (t *Tab) RemovePayment(index int) error {
	if t.splitter == nil {
		return payment.ErrInvalidIndex
	}
	return t.splitter.RemovePayment(index)
}

// Tender finaliza os pagamentos; falha se o total ainda não foi coberto
func (t *Tab) Tender() (payment.Tender, error) {
	if t.cart.IsEmpty() {
		return payment.Tender{}, ErrEmptyCart
	}
	if t.splitter == nil {
		if t.cart.Total().IsZero() {
			return payment.Tender{}, nil
		}
		return payment.Tender{}, payment.ErrIncomplete
	}
	return t.splitter.Finalize()
}

// Lines retorna as linhas do carrinho
func (t *Tab) Lines() []Line {
	return t.cart.Lines()
}

// Reservations retorna as reservas de ingredientes do carrinho
func (t *Tab) Reservations() map[string]float64 {
	return t.cart.Reservations()
}

// Clear esvazia o carrinho e descarta pagamentos
func (t *Tab) Clear() {
	t.cart.Clear()
	t.splitter = nil
}

func (t *Tab) view() View {
	v := View{
		ID:         t.ID,
		ShopID:     t.ShopID,
		EmployeeID: t.EmployeeID,
		Label:      t.Label,
		OpenedAt:   t.OpenedAt,
		Lines:      t.cart.Lines(),
		Total:      t.cart.Total(),
		Payments:   []payment.Payment{},
	}
	v.Remaining = v.Total
	if t.splitter != nil {
		v.Payments = t.splitter.Payments()
		v.Remaining = t.splitter.Remaining()
		v.Change = t.splitter.Change()
	}
	v.Complete = !v.Remaining.IsPositive() && len(v.Lines) > 0
	return v
}

// Tabs é o registro de comandas abertas, endereçadas por id
type Tabs struct {
	mu   sync.RWMutex
	tabs map[string]*Tab
}

// NewTabs cria um registro vazio
func NewTabs() *Tabs {
	return &Tabs{tabs: make(map[string]*Tab)}
}

// Open cria uma comanda vazia
func (r *Tabs) Open(shopID, employeeID, label string) View {
	t := &Tab{
		ID:         uuid.New().String(),
		ShopID:     shopID,
		EmployeeID: employeeID,
		Label:      label,
		OpenedAt:   time.Now(),
		cart:       NewCart(),
	}

	r.mu.Lock()
	r.tabs[t.ID] = t
	r.mu.Unlock()

	return t.view()
}

// Get retorna o estado atual da comanda
func (r *Tabs) Get(shopID, id string) (View, error) {
	t, err := r.lookup(shopID, id)
	if err != nil {
		return View{}, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.view(), nil
}

// List retorna as comandas da loja, das mais antigas para as mais novas
func (r *Tabs) List(shopID string) []View {
	r.mu.RLock()
	tabs := make([]*Tab, 0, len(r.tabs))
	for _, t := range r.tabs {
		if t.ShopID == shopID {
			tabs = append(tabs, t)
		}
	}
	r.mu.RUnlock()

	sort.Slice(tabs, func(i, j int) bool { return tabs[i].OpenedAt.Before(tabs[j].OpenedAt) })

	out := make([]View, 0, len(tabs))
	for _, t := range tabs {
		t.mu.Lock()
		out = append(out, t.view())
		t.mu.Unlock()
	}
	return out
}

// Update executa fn com acesso exclusivo à comanda e retorna o estado resultante.
// Se fn falhar, o erro é devolvido junto com o estado atual.
func (r *Tabs) Update(shopID, id string, fn func(*Tab) error) (View, error) {
	t, err := r.lookup(shopID, id)
	if err != nil {
		return View{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	err = fn(t)
	return t.view(), err
}

// Close descarta a comanda sem persistir nada
func (r *Tabs) Close(shopID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tabs[id]
	if !ok || t.ShopID != shopID {
		return ErrTabNotFound
	}
	delete(r.tabs, id)
	return nil
}

func (r *Tabs) lookup(shopID, id string) (*Tab, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tabs[id]
	if !ok || t.ShopID != shopID {
		return nil, ErrTabNotFound
	}
	return t, nil
}
