package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hugohenrick/sorveteria-pos/internal/domain/cashsession"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/ingredient"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/payment"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/product"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/purchase"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/sale"
)

// IngredientRepository implementa ingredient.Repository
type IngredientRepository struct{ s *Store }

// List implementa ingredient.Repository.List
func (r *IngredientRepository) List(ctx context.Context, shopID string) ([]*ingredient.Ingredient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*ingredient.Ingredient, 0, len(r.s.ingredients[shopID]))
	for _, i := range r.s.ingredients[shopID] {
		cp := *i
		out = append(out, &cp)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out, nil
}

// FindByID implementa ingredient.Repository.FindByID
func (r *IngredientRepository) FindByID(ctx context.Context, shopID, id string) (*ingredient.Ingredient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i, ok := r.s.ingredients[shopID][id]
	if !ok {
		return nil, ingredient.ErrIngredientNotFound
	}
	cp := *i
	return &cp, nil
}

// DecrementStock implementa ingredient.Repository.DecrementStock
func (r *IngredientRepository) DecrementStock(ctx context.Context, shopID, id string, amount float64) error {
	if amount <= 0 {
		return ingredient.ErrNonPositiveAmount
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i, ok := r.s.ingredients[shopID][id]
	if !ok {
		return ingredient.ErrIngredientNotFound
	}
	if i.Stock < amount {
		return fmt.Errorf("%w: %s", ingredient.ErrInsufficientStock, i.Name)
	}
	if err := r.s.fail("stock.decrement:" + id); err != nil {
		return err
	}
	i.Stock -= amount
	i.UpdatedAt = time.Now()
	return nil
}

// AdjustStock implementa ingredient.Repository.AdjustStock
func (r *IngredientRepository) AdjustStock(ctx context.Context, shopID string, adj ingredient.Adjustment) (*ingredient.StockMovement, error) {
	if err := adj.Validate(); err != nil {
		return nil, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i, ok := r.s.ingredients[shopID][adj.IngredientID]
	if !ok {
		return nil, ingredient.ErrIngredientNotFound
	}
	if adj.Delta < 0 && i.Stock+adj.Delta < 0 {
		return nil, fmt.Errorf("%w: %s", ingredient.ErrInsufficientStock, i.Name)
	}
	if err := r.s.fail("stock.adjust:" + adj.IngredientID); err != nil {
		return nil, err
	}

	m := ingredient.NewStockMovement(shopID, i.ID, i.Stock, adj.Delta, adj.Reason, adj.ActorID)
	i.Stock = m.NewStock
	i.UpdatedAt = m.CreatedAt
	r.s.movements = append(r.s.movements, m)

	cp := *m
	return &cp, nil
}

// ListMovements implementa ingredient.Repository.ListMovements
func (r *IngredientRepository) ListMovements(ctx context.Context, shopID, ingredientID string, limit int) ([]*ingredient.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*ingredient.StockMovement, 0)
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if m.ShopID != shopID || m.IngredientID != ingredientID {
			continue
		}
		cp := *m
		out = append(out, &cp)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// ProductRepository implementa product.Repository
type ProductRepository struct{ s *Store }

// List implementa product.Repository.List
func (r *ProductRepository) List(ctx context.Context, shopID string) ([]*product.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*product.Product, 0, len(r.s.products[shopID]))
	for _, p := range r.s.products[shopID] {
		out = append(out, copyProduct(p))
	}
	return out, nil
}

// FindByID implementa product.Repository.FindByID
func (r *ProductRepository) FindByID(ctx context.Context, shopID, id string) (*product.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.products[shopID] {
		if p.ID == id {
			return copyProduct(p), nil
		}
	}
	return nil, product.ErrProductNotFound
}

// PaymentMethodRepository implementa payment.Repository
type PaymentMethodRepository struct{ s *Store }

// List implementa payment.Repository.List
func (r *PaymentMethodRepository) List(ctx context.Context, shopID string) ([]*payment.Method, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*payment.Method, 0, len(r.s.methods[shopID]))
	for _, m := range r.s.methods[shopID] {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

// SaleRepository implementa sale.Repository
type SaleRepository struct{ s *Store }

// Create implementa sale.Repository.Create. As baixas são aplicadas numa cópia
// do estoque e só publicadas se todas passarem.
func (r *SaleRepository) Create(ctx context.Context, sl *sale.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cs, ok := r.s.sessions[sl.SessionID]
	if !ok || cs.ShopID != sl.ShopID {
		return cashsession.ErrSessionNotFound
	}
	if !cs.IsOpen() {
		return cashsession.ErrConcurrentClose
	}

	stock := r.s.ingredients[sl.ShopID]
	staged := make(map[string]float64)
	movements := make([]*ingredient.StockMovement, 0)

	for _, u := range sl.Consumption() {
		i, ok := stock[u.IngredientID]
		if !ok {
			return fmt.Errorf("%w: %s", ingredient.ErrIngredientNotFound, u.IngredientID)
		}
		if i.Stock < u.Quantity {
			return fmt.Errorf("%w: %s", ingredient.ErrInsufficientStock, i.Name)
		}
		if err := r.s.fail("stock.decrement:" + u.IngredientID); err != nil {
			return fmt.Errorf("falha ao baixar estoque: %w", err)
		}
		staged[u.IngredientID] = i.Stock - u.Quantity

		m := ingredient.NewStockMovement(sl.ShopID, i.ID, i.Stock, -u.Quantity, "venda", sl.EmployeeID)
		m.SaleID = sl.ID
		movements = append(movements, m)
	}

	if err := r.s.fail("sale.insert"); err != nil {
		return fmt.Errorf("falha ao inserir venda: %w", err)
	}

	for id, qty := range staged {
		stock[id].Stock = qty
		stock[id].UpdatedAt = sl.CreatedAt
	}
	r.s.movements = append(r.s.movements, movements...)
	r.s.sales = append(r.s.sales, copySale(sl))
	return nil
}

// FindByID implementa sale.Repository.FindByID
func (r *SaleRepository) FindByID(ctx context.Context, shopID, id string) (*sale.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, sl := range r.s.sales {
		if sl.ShopID == shopID && sl.ID == id {
			return copySale(sl), nil
		}
	}
	return nil, sale.ErrSaleNotFound
}

// ListByDateRange implementa sale.Repository.ListByDateRange
func (r *SaleRepository) ListByDateRange(ctx context.Context, shopID string, start, end time.Time) ([]*sale.Sale, error) {
	return r.filter(func(sl *sale.Sale) bool {
		return sl.ShopID == shopID && !sl.CreatedAt.Before(start) && !sl.CreatedAt.After(end)
	}), nil
}

// ListBySession implementa sale.Repository.ListBySession
func (r *SaleRepository) ListBySession(ctx context.Context, shopID, sessionID string) ([]*sale.Sale, error) {
	return r.filter(func(sl *sale.Sale) bool {
		return sl.ShopID == shopID && sl.SessionID == sessionID
	}), nil
}

func (r *SaleRepository) filter(keep func(*sale.Sale) bool) []*sale.Sale {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*sale.Sale, 0)
	for _, sl := range r.s.sales {
		if keep(sl) {
			out = append(out, copySale(sl))
		}
	}
	return out
}

// PurchaseRepository implementa purchase.Repository
type PurchaseRepository struct{ s *Store }

// Create implementa purchase.Repository.Create
func (r *PurchaseRepository) Create(ctx context.Context, p *purchase.Purchase) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.fail("purchase.insert"); err != nil {
		return err
	}
	cp := *p
	r.s.purchases = append(r.s.purchases, &cp)
	return nil
}

// ListByDateRange implementa purchase.Repository.ListByDateRange
func (r *PurchaseRepository) ListByDateRange(ctx context.Context, shopID string, start, end time.Time) ([]*purchase.Purchase, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*purchase.Purchase, 0)
	for _, p := range r.s.purchases {
		if p.ShopID == shopID && !p.CreatedAt.Before(start) && !p.CreatedAt.After(end) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

// CashSessionRepository implementa cashsession.Repository
type CashSessionRepository struct{ s *Store }

// GetOpen implementa cashsession.Repository.GetOpen
func (r *CashSessionRepository) GetOpen(ctx context.Context, shopID string) (*cashsession.CashSession, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if cs := r.openLocked(shopID); cs != nil {
		return copySession(cs), nil
	}
	return nil, cashsession.ErrNoOpenSession
}

// FindByID implementa cashsession.Repository.FindByID
func (r *CashSessionRepository) FindByID(ctx context.Context, shopID, id string) (*cashsession.CashSession, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	cs, ok := r.s.sessions[id]
	if !ok || cs.ShopID != shopID {
		return nil, cashsession.ErrSessionNotFound
	}
	return copySession(cs), nil
}

// Create implementa cashsession.Repository.Create
func (r *CashSessionRepository) Create(ctx context.Context, cs *cashsession.CashSession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.openLocked(cs.ShopID) != nil {
		return cashsession.ErrConcurrentOpen
	}
	if err := r.s.fail("session.insert"); err != nil {
		return err
	}
	r.s.sessions[cs.ID] = copySession(cs)
	return nil
}

// Close implementa cashsession.Repository.Close
func (r *CashSessionRepository) Close(ctx context.Context, cs *cashsession.CashSession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.sessions[cs.ID]
	if !ok || stored.ShopID != cs.ShopID {
		return cashsession.ErrSessionNotFound
	}
	if !stored.IsOpen() {
		return cashsession.ErrConcurrentClose
	}
	sales := 0
	for _, sl := range r.s.sales {
		if sl.ShopID == cs.ShopID && sl.SessionID == cs.ID {
			sales++
		}
	}
	if cs.Closing == nil || sales != cs.Closing.SaleCount {
		return cashsession.ErrStaleTotals
	}
	if err := r.s.fail("session.close"); err != nil {
		return err
	}
	r.s.sessions[cs.ID] = copySession(cs)
	return nil
}

// List implementa cashsession.Repository.List
func (r *CashSessionRepository) List(ctx context.Context, shopID string, limit, offset int) ([]*cashsession.CashSession, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := make([]*cashsession.CashSession, 0)
	for _, cs := range r.s.sessions {
		if cs.ShopID == shopID {
			all = append(all, copySession(cs))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].StartTime.After(all[j].StartTime) })

	if offset >= len(all) {
		return []*cashsession.CashSession{}, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *CashSessionRepository) openLocked(shopID string) *cashsession.CashSession {
	for _, cs := range r.s.sessions {
		if cs.ShopID == shopID && cs.IsOpen() {
			return cs
		}
	}
	return nil
}

// ShopValidator implementa shop.Validator
type ShopValidator struct{ s *Store }

// ValidateShop verifica se a loja existe e está ativa
func (v *ShopValidator) ValidateShop(ctx context.Context, shopID string) (bool, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	return v.s.shops[shopID], nil
}
