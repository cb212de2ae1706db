package service

import (
	"context"
	"errors"
	"testing"

	"github.com/hugohenrick/sorveteria-pos/internal/domain/cashsession"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/failure"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/order"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/sale"
	"github.com/hugohenrick/sorveteria-pos/pkg/logger"
)

// sessionsClosedAfterRead executa after logo depois do primeiro GetOpen
type sessionsClosedAfterRead struct {
	cashsession.Repository
	after func()
}

func (r *sessionsClosedAfterRead) GetOpen(ctx context.Context, shopID string) (*cashsession.CashSession, error) {
	cs, err := r.Repository.GetOpen(ctx, shopID)
	if err == nil && r.after != nil {
		after := r.after
		r.after = nil
		after()
	}
	return cs, err
}

// salesAfterList executa after logo depois do primeiro ListBySession
type salesAfterList struct {
	sale.Repository
	after func()
}

func (r *salesAfterList) ListBySession(ctx context.Context, shopID, sessionID string) ([]*sale.Sale, error) {
	sales, err := r.Repository.ListBySession(ctx, shopID, sessionID)
	if err == nil && r.after != nil {
		after := r.after
		r.after = nil
		after()
	}
	return sales, err
}

func TestCheckoutRejectedWhenSessionClosesMidSettlement(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cs, err := f.sessions.Open(ctx, shopID, "emp-1", money("0"))
	if err != nil {
		t.Fatal(err)
	}

	sessions := &sessionsClosedAfterRead{Repository: f.store.CashSessions()}
	sessions.after = func() {
		if _, err := f.sessions.Close(ctx, shopID, cs.ID, money("0"), "outro terminal"); err != nil {
			t.Errorf("Close: %v", err)
		}
	}
	checkout := NewCheckoutService(f.store.Sales(), sessions, logger.Discard())
	tabs := NewTabService(order.NewTabs(), f.catalog, f.store.PaymentMethods(), checkout, logger.Discard())

	tab := tabs.Open(shopID, "emp-1", "")
	if _, _, err := tabs.AddItem(ctx, shopID, tab.ID, "waffle", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := tabs.AddPayment(ctx, shopID, tab.ID, "dinheiro", money("7")); err != nil {
		t.Fatal(err)
	}

	_, err = tabs.Checkout(ctx, shopID, tab.ID, "emp-1")
	if !errors.Is(err, cashsession.ErrConcurrentClose) || !errors.Is(err, failure.ErrConflict) {
		t.Fatalf("Checkout error = %v, want ErrConcurrentClose", err)
	}
	if got := f.stockOf(t, "farinha"); got != 1000 {
		t.Errorf("farinha stock = %v, want 1000", got)
	}
	if n := f.salesCount(t); n != 0 {
		t.Errorf("sales = %d, want 0", n)
	}

	v, _ := tabs.Get(shopID, tab.ID)
	if len(v.Lines) != 1 {
		t.Errorf("cart must survive the rejected settlement, got %+v", v)
	}
}

func TestCloseRecountsSalesCommittedDuringClose(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cs, err := f.sessions.Open(ctx, shopID, "emp-1", money("10"))
	if err != nil {
		t.Fatal(err)
	}

	tab := f.openTabWithWaffles(t, 1)
	if _, err := f.tabs.AddPayment(ctx, shopID, tab.ID, "dinheiro", money("7")); err != nil {
		t.Fatal(err)
	}

	sales := &salesAfterList{Repository: f.store.Sales()}
	sales.after = func() {
		if _, err := f.tabs.Checkout(ctx, shopID, tab.ID, "emp-1"); err != nil {
			t.Errorf("Checkout: %v", err)
		}
	}
	closer := NewCashSessionService(f.store.CashSessions(), sales, f.store.Purchases(), logger.Discard())

	closed, err := closer.Close(ctx, shopID, cs.ID, money("17"), "")
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	c := closed.Closing
	if c.SaleCount != 1 || !c.CashSales.Equal(money("7")) || !c.Difference.IsZero() {
		t.Errorf("closing = %+v, want the sale committed during close", c)
	}
}
