package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hugohenrick/sorveteria-pos/internal/adapter/memory"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/cashsession"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/failure"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/ingredient"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/order"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/payment"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/product"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/purchase"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/sale"
	"github.com/hugohenrick/sorveteria-pos/pkg/logger"
	"github.com/shopspring/decimal"
)

const shopID = "loja-1"

type fixture struct {
	store    *memory.Store
	catalog  *CatalogService
	tabs     *TabService
	sessions *CashSessionService
	stock    *StockService
	reports  *ReportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	store.PutShop(shopID, true)
	for _, i := range []*ingredient.Ingredient{
		{ID: "farinha", ShopID: shopID, Name: "Farinha", Category: "seco", PurchaseUnit: "kg", ConsumptionUnit: "g", ConsumptionPerPurchase: 1000, Stock: 1000},
		{ID: "casquinha", ShopID: shopID, Name: "Casquinha", Category: "embalagem", PurchaseUnit: "box", ConsumptionUnit: "unit", ConsumptionPerPurchase: 24, Stock: 10},
		{ID: "morango", ShopID: shopID, Name: "Morango", Category: "sabor", PurchaseUnit: "l", ConsumptionUnit: "ml", ConsumptionPerPurchase: 1000, Stock: 500},
		{ID: "chocolate", ShopID: shopID, Name: "Chocolate", Category: "sabor", PurchaseUnit: "l", ConsumptionUnit: "ml", ConsumptionPerPurchase: 1000, Stock: 500},
	} {
		store.PutIngredient(i)
	}
	store.PutProduct(&product.Product{
		ID: "waffle", ShopID: shopID, Name: "Waffle", Price: decimal.NewFromInt(7),
		Recipe: product.Recipe{product.FixedLine{IngredientID: "farinha", Quantity: 200}},
	})
	store.PutProduct(&product.Product{
		ID: "cone", ShopID: shopID, Name: "Casquinha", Price: decimal.RequireFromString("8.5"),
		Recipe: product.Recipe{
			product.FixedLine{IngredientID: "casquinha", Quantity: 1},
			product.VariableLine{Category: "sabor", Quantity: 100},
		},
	})
	store.PutPaymentMethod(&payment.Method{ID: "dinheiro", ShopID: shopID, Name: "Dinheiro", Type: payment.TypeCash, Enabled: true})
	store.PutPaymentMethod(&payment.Method{ID: "pix", ShopID: shopID, Name: "Pix", Type: payment.TypeElectronic, Enabled: true})

	log := logger.Discard()
	catalog := NewCatalogService(store.Ingredients(), store.Products(), log)
	checkout := NewCheckoutService(store.Sales(), store.CashSessions(), log)

	return &fixture{
		store:    store,
		catalog:  catalog,
		tabs:     NewTabService(order.NewTabs(), catalog, store.PaymentMethods(), checkout, log),
		sessions: NewCashSessionService(store.CashSessions(), store.Sales(), store.Purchases(), log),
		stock:    NewStockService(store.Ingredients(), log),
		reports:  NewReportService(store.Sales()),
	}
}

func (f *fixture) stockOf(t *testing.T, id string) float64 {
	t.Helper()
	i, err := f.store.Ingredients().FindByID(context.Background(), shopID, id)
	if err != nil {
		t.Fatal(err)
	}
	return i.Stock
}

func (f *fixture) salesCount(t *testing.T) int {
	t.Helper()
	sales, err := f.reports.Sales(context.Background(), shopID, time.Time{}, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	return len(sales)
}

func (f *fixture) openTabWithWaffles(t *testing.T, n int) order.View {
	t.Helper()
	ctx := context.Background()
	v := f.tabs.Open(shopID, "emp-1", "balcão")
	for i := 0; i < n; i++ {
		if _, _, err := f.tabs.AddItem(ctx, shopID, v.ID, "waffle", ""); err != nil {
			t.Fatalf("AddItem: %v", err)
		}
	}
	return v
}

func money(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func TestCheckoutDecrementsStockAndClearsCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.sessions.Open(ctx, shopID, "emp-1", money("100")); err != nil {
		t.Fatal(err)
	}

	tab := f.openTabWithWaffles(t, 2)
	if _, err := f.tabs.AddPayment(ctx, shopID, tab.ID, "dinheiro", money("20")); err != nil {
		t.Fatal(err)
	}

	sl, err := f.tabs.Checkout(ctx, shopID, tab.ID, "emp-1")
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if !sl.Total.Equal(money("14")) || !sl.Change.Equal(money("6")) {
		t.Errorf("sale total %s change %s, want 14 and 6", sl.Total, sl.Change)
	}
	if !payment.Sum(sl.Payments).Equal(sl.Total) {
		t.Errorf("net payments %s must equal total %s", payment.Sum(sl.Payments), sl.Total)
	}
	if got := f.stockOf(t, "farinha"); got != 600 {
		t.Errorf("farinha stock = %v, want 600", got)
	}

	v, _ := f.tabs.Get(shopID, tab.ID)
	if len(v.Lines) != 0 || len(v.Payments) != 0 {
		t.Errorf("cart should be cleared after settlement, got %+v", v)
	}
}

func TestCheckoutFailureIsAtomic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.sessions.Open(ctx, shopID, "emp-1", money("0"))

	tab := f.openTabWithWaffles(t, 1)
	f.tabs.AddPayment(ctx, shopID, tab.ID, "pix", money("7"))

	boom := errors.New("conexão perdida")
	f.store.SetFailureHook(func(point string) error {
		if point == "stock.decrement:farinha" {
			return boom
		}
		return nil
	})

	if _, err := f.tabs.Checkout(ctx, shopID, tab.ID, "emp-1"); !errors.Is(err, boom) {
		t.Fatalf("Checkout error = %v, want store failure", err)
	}
	if got := f.stockOf(t, "farinha"); got != 1000 {
		t.Errorf("farinha stock = %v, want 1000 after failed settlement", got)
	}
	if n := f.salesCount(t); n != 0 {
		t.Errorf("sales = %d, want 0", n)
	}

	v, _ := f.tabs.Get(shopID, tab.ID)
	if len(v.Lines) != 1 || !v.Complete {
		t.Errorf("cart and payments must survive a failed settlement, got %+v", v)
	}

	f.store.SetFailureHook(nil)
	if _, err := f.tabs.Checkout(ctx, shopID, tab.ID, "emp-1"); err != nil {
		t.Fatalf("retry should succeed: %v", err)
	}
	if got := f.stockOf(t, "farinha"); got != 800 {
		t.Errorf("farinha stock = %v, want 800 after retry", got)
	}
}

func TestCheckoutConflictWhenStockConsumedElsewhere(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.sessions.Open(ctx, shopID, "emp-1", money("0"))

	tab := f.openTabWithWaffles(t, 2)
	f.tabs.AddPayment(ctx, shopID, tab.ID, "dinheiro", money("14"))

	if _, err := f.stock.Adjust(ctx, shopID, "farinha", -700, "g", "outro terminal", "emp-2"); err != nil {
		t.Fatal(err)
	}

	_, err := f.tabs.Checkout(ctx, shopID, tab.ID, "emp-1")
	if !errors.Is(err, failure.ErrConflict) || !errors.Is(err, ingredient.ErrInsufficientStock) {
		t.Fatalf("Checkout error = %v, want insufficient stock conflict", err)
	}
	if got := f.stockOf(t, "farinha"); got != 300 {
		t.Errorf("farinha stock = %v, want 300", got)
	}
	if f.salesCount(t) != 0 {
		t.Error("no sale may be recorded on conflict")
	}
}

func TestCheckoutRequiresOpenSessionAndPayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tab := f.openTabWithWaffles(t, 1)

	if _, err := f.tabs.Checkout(ctx, shopID, tab.ID, "emp-1"); !errors.Is(err, payment.ErrIncomplete) {
		t.Errorf("unpaid checkout: got %v, want ErrIncomplete", err)
	}

	f.tabs.AddPayment(ctx, shopID, tab.ID, "dinheiro", money("7"))
	if _, err := f.tabs.Checkout(ctx, shopID, tab.ID, "emp-1"); !errors.Is(err, sale.ErrSessionRequired) {
		t.Errorf("checkout without session: got %v, want ErrSessionRequired", err)
	}
	if got := f.stockOf(t, "farinha"); got != 1000 {
		t.Errorf("stock changed without a sale: %v", got)
	}
}

func TestPersistedSaleReproducesDecrement(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.sessions.Open(ctx, shopID, "emp-1", money("0"))

	tab := f.tabs.Open(shopID, "emp-1", "")
	f.tabs.AddItem(ctx, shopID, tab.ID, "cone", "morango")
	f.tabs.AddItem(ctx, shopID, tab.ID, "cone", "morango")
	f.tabs.AddItem(ctx, shopID, tab.ID, "cone", "chocolate")
	f.tabs.AddPayment(ctx, shopID, tab.ID, "pix", money("25.5"))

	before := map[string]float64{}
	for _, id := range []string{"casquinha", "morango", "chocolate"} {
		before[id] = f.stockOf(t, id)
	}

	sl, err := f.tabs.Checkout(ctx, shopID, tab.ID, "emp-1")
	if err != nil {
		t.Fatal(err)
	}

	stored, err := f.store.Sales().FindByID(ctx, shopID, sl.ID)
	if err != nil {
		t.Fatal(err)
	}
	for _, u := range stored.Consumption() {
		if got := before[u.IngredientID] - f.stockOf(t, u.IngredientID); got != u.Quantity {
			t.Errorf("%s decremented by %v, persisted sale says %v", u.IngredientID, got, u.Quantity)
		}
	}
	if len(stored.Items) != 2 {
		t.Errorf("expected two lines (two flavors), got %d", len(stored.Items))
	}
}

func TestAddItemRespectsReservations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tab := f.openTabWithWaffles(t, 5)

	if _, _, err := f.tabs.AddItem(ctx, shopID, tab.ID, "waffle", ""); !errors.Is(err, ErrProductUnavailable) {
		t.Fatalf("sixth waffle: got %v, want ErrProductUnavailable", err)
	}

	list, err := f.tabs.Availability(ctx, shopID, tab.ID)
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range list {
		if a.Product.ID == "waffle" && (a.IsAvailable || a.AvailableUnits != 0) {
			t.Errorf("waffle should be unavailable with the whole stock reserved, got %+v", a)
		}
		if a.Product.ID == "cone" && a.AvailableUnits != 10 {
			t.Errorf("cone availability = %d, want 10", a.AvailableUnits)
		}
	}

	other, err := f.tabs.Availability(ctx, shopID, "")
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range other {
		if a.Product.ID == "waffle" && a.AvailableUnits != 5 {
			t.Errorf("without reservations waffle = %d, want 5", a.AvailableUnits)
		}
	}
}

func TestAddItemVariableChoiceErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tab := f.tabs.Open(shopID, "emp-1", "")

	tests := []struct {
		choice string
		want   error
	}{
		{"", product.ErrMissingVariableSelection},
		{"farinha", product.ErrInvalidVariableChoice},
		{"pistache", product.ErrInvalidVariableChoice},
	}
	for _, tt := range tests {
		if _, _, err := f.tabs.AddItem(ctx, shopID, tab.ID, "cone", tt.choice); !errors.Is(err, tt.want) {
			t.Errorf("choice %q: got %v, want %v", tt.choice, err, tt.want)
		}
	}
}

func TestCashSessionReconciliation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	t0 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	f.sessions.now = func() time.Time { return t0 }

	cs, err := f.sessions.Open(ctx, shopID, "emp-1", money("50000"))
	if err != nil {
		t.Fatal(err)
	}

	for _, payments := range [][]payment.Payment{
		{{Type: payment.TypeCash, Amount: money("70000")}},
		{{Type: payment.TypeCash, Amount: money("50000")}, {Type: payment.TypeElectronic, Amount: money("30000")}},
	} {
		total := payment.Sum(payments)
		sl, err := sale.NewSale(shopID, cs.ID, "emp-1", []sale.Item{{ProductID: "x", Quantity: 1, UnitPrice: total}}, payment.Tender{Payments: payments})
		if err != nil {
			t.Fatal(err)
		}
		sl.CreatedAt = t0.Add(time.Minute)
		if err := f.store.Sales().Create(ctx, sl); err != nil {
			t.Fatal(err)
		}
	}

	f.sessions.now = func() time.Time { return t0.Add(time.Hour) }
	if _, err := f.sessions.RecordExpense(ctx, shopID, "emp-1", purchase.KindPurchase, "leite", money("25000")); err != nil {
		t.Fatal(err)
	}
	f.store.Purchases().Create(ctx, &purchase.Purchase{ID: "p2", ShopID: shopID, EmployeeID: "emp-1", Kind: purchase.KindExpense, Total: money("15000"), CreatedAt: t0.Add(2 * time.Hour)})
	f.store.Purchases().Create(ctx, &purchase.Purchase{ID: "p3", ShopID: shopID, EmployeeID: "emp-2", Kind: purchase.KindExpense, Total: money("999"), CreatedAt: t0.Add(2 * time.Hour)})
	f.store.Purchases().Create(ctx, &purchase.Purchase{ID: "p4", ShopID: shopID, EmployeeID: "emp-1", Kind: purchase.KindExpense, Total: money("999"), CreatedAt: t0.Add(-time.Hour)})

	f.sessions.now = func() time.Time { return t0.Add(8 * time.Hour) }
	closed, err := f.sessions.Close(ctx, shopID, cs.ID, money("128000"), "fim do turno")
	if err != nil {
		t.Fatal(err)
	}

	rec := closed.Closing
	checks := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"cash sales", rec.CashSales, "120000"},
		{"electronic sales", rec.ElectronicSales, "30000"},
		{"expenses", rec.TotalExpenses, "40000"},
		{"expected", rec.ExpectedCashInBox, "130000"},
		{"difference", rec.Difference, "-2000"},
	}
	for _, c := range checks {
		if !c.got.Equal(money(c.want)) {
			t.Errorf("%s = %s, want %s", c.name, c.got, c.want)
		}
	}
	if closed.Status != cashsession.StatusClosed || !closed.EndTime.Equal(t0.Add(8*time.Hour)) {
		t.Errorf("unexpected closed session %+v", closed)
	}

	if _, err := f.sessions.Close(ctx, shopID, cs.ID, money("1"), ""); !errors.Is(err, cashsession.ErrSessionClosed) {
		t.Errorf("second close: got %v, want ErrSessionClosed", err)
	}
}

func TestCashSessionOpenRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.sessions.Open(ctx, shopID, "emp-1", money("-5")); !errors.Is(err, cashsession.ErrNegativeOpening) {
		t.Errorf("negative opening: got %v", err)
	}

	cs, err := f.sessions.Open(ctx, shopID, "emp-1", money("10"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.sessions.Open(ctx, shopID, "emp-2", money("10")); !errors.Is(err, cashsession.ErrSessionAlreadyOpen) {
		t.Errorf("second open: got %v, want ErrSessionAlreadyOpen", err)
	}
	if _, err := f.sessions.Close(ctx, shopID, cs.ID, money("-1"), ""); !errors.Is(err, cashsession.ErrNegativeCount) {
		t.Errorf("negative count: got %v", err)
	}
	if _, err := f.sessions.Close(ctx, shopID, "nope", money("1"), ""); !errors.Is(err, cashsession.ErrSessionNotFound) {
		t.Errorf("unknown session: got %v", err)
	}

	current, err := f.sessions.Current(ctx, shopID)
	if err != nil || current.ID != cs.ID {
		t.Errorf("Current() = %v, %v", current, err)
	}
}

func TestStockAdjustConvertsUnits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m, err := f.stock.Adjust(ctx, shopID, "farinha", 2, "kg", "compra", "emp-1")
	if err != nil {
		t.Fatal(err)
	}
	if m.Delta != 2000 || m.NewStock != 3000 {
		t.Errorf("movement = %+v, want delta 2000 new 3000", m)
	}

	if _, err := f.stock.Adjust(ctx, shopID, "farinha", -5000, "", "quebra", "emp-1"); !errors.Is(err, ingredient.ErrInsufficientStock) {
		t.Errorf("over-decrement: got %v, want ErrInsufficientStock", err)
	}
	if _, err := f.stock.Adjust(ctx, shopID, "farinha", 1, "ml", "x", "emp-1"); !errors.Is(err, ingredient.ErrUnknownUnit) {
		t.Errorf("cross-category unit: got %v", err)
	}
	if _, err := f.stock.Adjust(ctx, shopID, "farinha", 1, "g", " ", "emp-1"); !errors.Is(err, ingredient.ErrEmptyReason) {
		t.Errorf("empty reason: got %v", err)
	}

	history, err := f.stock.Movements(ctx, shopID, "farinha", 10)
	if err != nil || len(history) != 1 {
		t.Errorf("Movements() = %d entries, err %v; want 1", len(history), err)
	}
}

func TestReportSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.sessions.Open(ctx, shopID, "emp-1", money("0"))

	tab := f.openTabWithWaffles(t, 1)
	f.tabs.AddPayment(ctx, shopID, tab.ID, "pix", money("3"))
	f.tabs.AddPayment(ctx, shopID, tab.ID, "dinheiro", money("10"))
	if _, err := f.tabs.Checkout(ctx, shopID, tab.ID, "emp-1"); err != nil {
		t.Fatal(err)
	}

	sum, err := f.reports.Summary(ctx, shopID, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if sum.Count != 1 || !sum.Total.Equal(money("7")) || !sum.CashSales.Equal(money("4")) || !sum.ElectronicSales.Equal(money("3")) {
		t.Errorf("Summary() = %+v", sum)
	}

	if _, err := f.reports.Summary(ctx, shopID, time.Now(), time.Now().Add(-time.Minute)); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("inverted range: got %v", err)
	}
}
