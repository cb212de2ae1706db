package payment

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

var methods = []*Method{
	{ID: "dinheiro", Name: "Dinheiro", Type: TypeCash, Enabled: true},
	{ID: "pix", Name: "Pix", Type: TypeElectronic, Enabled: true},
	{ID: "cartao", Name: "Cartão", Type: TypeElectronic, Enabled: true},
	{ID: "cheque", Name: "Cheque", Type: TypeCash, Enabled: false},
}

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func newSplitter(t *testing.T, total string) *Splitter {
	t.Helper()
	s, err := NewSplitter(d(total), methods)
	if err != nil {
		t.Fatalf("NewSplitter: %v", err)
	}
	return s
}

func TestExactPaymentCompletes(t *testing.T) {
	s := newSplitter(t, "30")

	for _, p := range []struct {
		method string
		amount string
	}{{"pix", "10"}, {"dinheiro", "12.5"}, {"cartao", "7.5"}} {
		if _, err := s.AddPayment(p.method, d(p.amount)); err != nil {
			t.Fatalf("AddPayment(%s, %s): %v", p.method, p.amount, err)
		}
	}

	if !s.Remaining().IsZero() {
		t.Errorf("Remaining() = %s, want 0", s.Remaining())
	}
	if !s.IsComplete() {
		t.Error("splitter should be complete")
	}
	if !s.Change().IsZero() {
		t.Errorf("Change() = %s, want 0", s.Change())
	}
}

func TestCashOverpaymentGivesChange(t *testing.T) {
	s := newSplitter(t, "17")
	if _, err := s.AddPayment("dinheiro", d("20")); err != nil {
		t.Fatal(err)
	}

	if !s.Remaining().Equal(d("-3")) {
		t.Errorf("Remaining() = %s, want -3", s.Remaining())
	}
	if !s.Change().Equal(d("3")) {
		t.Errorf("Change() = %s, want 3", s.Change())
	}

	tender, err := s.Finalize()
	if err != nil {
		t.Fatal(err)
	}
	if !tender.Payments[0].Amount.Equal(d("17")) || !tender.Payments[0].Tendered.Equal(d("20")) {
		t.Errorf("cash leg = %+v, want amount 17 tendered 20", tender.Payments[0])
	}
	if !Sum(tender.Payments).Equal(d("17")) {
		t.Errorf("net payments = %s, want 17", Sum(tender.Payments))
	}
}

func TestElectronicIsClamped(t *testing.T) {
	s := newSplitter(t, "25")
	if _, err := s.AddPayment("dinheiro", d("5")); err != nil {
		t.Fatal(err)
	}

	p, err := s.AddPayment("cartao", d("100"))
	if err != nil {
		t.Fatal(err)
	}
	if !p.Amount.Equal(d("20")) {
		t.Errorf("electronic amount = %s, want clamped 20", p.Amount)
	}

	if _, err := s.AddPayment("pix", d("1")); !errors.Is(err, ErrNothingDue) {
		t.Errorf("electronic payment with nothing due: got %v, want ErrNothingDue", err)
	}
}

func TestAddPaymentRejections(t *testing.T) {
	tests := []struct {
		name   string
		method string
		amount string
		want   error
	}{
		{"zero", "dinheiro", "0", ErrNonPositiveAmount},
		{"negative", "pix", "-1", ErrNonPositiveAmount},
		{"unknown method", "boleto", "5", ErrMethodNotFound},
		{"disabled method", "cheque", "5", ErrMethodDisabled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSplitter(t, "10")
			if _, err := s.AddPayment(tt.method, d(tt.amount)); !errors.Is(err, tt.want) {
				t.Errorf("AddPayment() error = %v, want %v", err, tt.want)
			}
			if len(s.Payments()) != 0 || !s.Remaining().Equal(d("10")) {
				t.Error("rejected payment must not change state")
			}
		})
	}
}

func TestRemovePayment(t *testing.T) {
	s := newSplitter(t, "10")
	s.AddPayment("pix", d("4"))
	s.AddPayment("dinheiro", d("6"))

	if err := s.RemovePayment(0); err != nil {
		t.Fatal(err)
	}
	if !s.Remaining().Equal(d("4")) {
		t.Errorf("Remaining() = %s, want 4", s.Remaining())
	}
	if err := s.RemovePayment(5); !errors.Is(err, ErrInvalidIndex) {
		t.Errorf("RemovePayment(5) error = %v, want ErrInvalidIndex", err)
	}
}

func TestFinalizeBeforeCompletion(t *testing.T) {
	s := newSplitter(t, "10")
	s.AddPayment("pix", d("9.99"))

	if _, err := s.Finalize(); !errors.Is(err, ErrIncomplete) {
		t.Errorf("Finalize() error = %v, want ErrIncomplete", err)
	}
}

func TestChangeComesOffLatestCashLegs(t *testing.T) {
	s := newSplitter(t, "50")
	s.AddPayment("dinheiro", d("10"))
	s.AddPayment("pix", d("30"))
	s.AddPayment("dinheiro", d("15"))

	tender, err := s.Finalize()
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"10", "30", "10"}
	for i, w := range want {
		if !tender.Payments[i].Amount.Equal(d(w)) {
			t.Errorf("payment %d amount = %s, want %s", i, tender.Payments[i].Amount, w)
		}
	}
	if !tender.Change.Equal(d("5")) || !tender.Tendered.Equal(d("55")) {
		t.Errorf("tender = change %s tendered %s, want 5 and 55", tender.Change, tender.Tendered)
	}
	if !SumByType(tender.Payments, TypeCash).Equal(d("20")) {
		t.Errorf("net cash = %s, want 20", SumByType(tender.Payments, TypeCash))
	}
}

func TestZeroTotalIsImmediatelyComplete(t *testing.T) {
	s := newSplitter(t, "0")
	if !s.IsComplete() {
		t.Error("zero total should be complete")
	}
	if _, err := NewSplitter(d("-1"), methods); !errors.Is(err, ErrNegativeTotal) {
		t.Errorf("NewSplitter(-1) error = %v", err)
	}
}
