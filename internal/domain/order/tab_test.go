package order

import (
	"errors"
	"sync"
	"testing"

	"github.com/hugohenrick/sorveteria-pos/internal/domain/payment"
	"github.com/shopspring/decimal"
)

var methods = []*payment.Method{
	{ID: "dinheiro", Name: "Dinheiro", Type: payment.TypeCash, Enabled: true},
	{ID: "pix", Name: "Pix", Type: payment.TypeElectronic, Enabled: true},
}

func TestTabsAreIsolatedPerShop(t *testing.T) {
	r := NewTabs()
	v := r.Open("loja-1", "emp", "Mesa 4")

	if _, err := r.Get("loja-2", v.ID); !errors.Is(err, ErrTabNotFound) {
		t.Errorf("other shop should not see the tab, got %v", err)
	}
	if err := r.Close("loja-2", v.ID); !errors.Is(err, ErrTabNotFound) {
		t.Errorf("other shop should not close the tab, got %v", err)
	}
	if len(r.List("loja-1")) != 1 || len(r.List("loja-2")) != 0 {
		t.Error("List should filter by shop")
	}

	if err := r.Close("loja-1", v.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Get("loja-1", v.ID); !errors.Is(err, ErrTabNotFound) {
		t.Error("closed tab should be gone")
	}
}

func TestTabPaymentFlow(t *testing.T) {
	r := NewTabs()
	v := r.Open("loja", "emp", "")

	_, err := r.Update("loja", v.ID, func(tab *Tab) error {
		_, err := tab.AddPayment(methods, "pix", decimal.NewFromInt(1))
		return err
	})
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("payment on empty tab: got %v, want ErrEmptyCart", err)
	}

	v, err = r.Update("loja", v.ID, func(tab *Tab) error {
		if _, err := tab.AddProduct(agua, nil); err != nil {
			return err
		}
		_, err := tab.AddPayment(methods, "dinheiro", decimal.NewFromInt(10))
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	if !v.Complete || !v.Change.Equal(decimal.NewFromInt(6)) {
		t.Errorf("view = complete %v change %s, want true and 6", v.Complete, v.Change)
	}

	v, _ = r.Update("loja", v.ID, func(tab *Tab) error {
		_, err := tab.AddProduct(agua, nil)
		return err
	})
	if len(v.Payments) != 0 || !v.Remaining.Equal(decimal.NewFromInt(8)) {
		t.Errorf("cart change must reset payments, got %d payments remaining %s", len(v.Payments), v.Remaining)
	}

	_, err = r.Update("loja", v.ID, func(tab *Tab) error {
		_, err := tab.Tender()
		return err
	})
	if !errors.Is(err, payment.ErrIncomplete) {
		t.Errorf("tender without payments: got %v, want ErrIncomplete", err)
	}
}

func TestTabsConcurrentUpdates(t *testing.T) {
	r := NewTabs()
	v := r.Open("loja", "emp", "")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Update("loja", v.ID, func(tab *Tab) error {
				_, err := tab.AddProduct(agua, nil)
				return err
			})
		}()
	}
	wg.Wait()

	got, _ := r.Get("loja", v.ID)
	if len(got.Lines) != 1 || got.Lines[0].Quantity != 50 {
		t.Errorf("expected one line with quantity 50, got %+v", got.Lines)
	}
}
