package dto

import (
	"time"

	"github.com/hugohenrick/sorveteria-pos/internal/domain/payment"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/product"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/sale"
	"github.com/shopspring/decimal"
)

// SaleItemResponse representa um item vendido
type SaleItemResponse struct {
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	IngredientsUsed []product.Usage `json:"ingredients_used"`
}

// SaleResponse representa uma venda liquidada
type SaleResponse struct {
	ID         string             `json:"id"`
	SessionID  string             `json:"session_id"`
	EmployeeID string             `json:"employee_id"`
	Items      []SaleItemResponse `json:"items"`
	Payments   []payment.Payment  `json:"payments"`
	Total      decimal.Decimal    `json:"total"`
	Tendered   decimal.Decimal    `json:"tendered"`
	Change     decimal.Decimal    `json:"change"`
	CreatedAt  time.Time          `json:"created_at"`
}

// ToSaleResponse converte uma venda
func ToSaleResponse(s *sale.Sale) SaleResponse {
	resp := SaleResponse{
		ID:         s.ID,
		SessionID:  s.SessionID,
		EmployeeID: s.EmployeeID,
		Items:      make([]SaleItemResponse, 0, len(s.Items)),
		Payments:   s.Payments,
		Total:      s.Total,
		Tendered:   s.Tendered,
		Change:     s.Change,
		CreatedAt:  s.CreatedAt,
	}
	for _, i := range s.Items {
		resp.Items = append(resp.Items, SaleItemResponse{
			ProductID:       i.ProductID,
			ProductName:     i.ProductName,
			Quantity:        i.Quantity,
			UnitPrice:       i.UnitPrice,
			Subtotal:        i.Subtotal(),
			IngredientsUsed: i.IngredientsUsed,
		})
	}
	return resp
}

// SaleListResponse representa as vendas de um período
type SaleListResponse struct {
	Start time.Time      `json:"start"`
	End   time.Time      `json:"end"`
	Sales []SaleResponse `json:"sales"`
}

// ToSaleListResponse converte a lista de vendas
func ToSaleListResponse(start, end time.Time, sales []*sale.Sale) SaleListResponse {
	resp := SaleListResponse{Start: start, End: end, Sales: make([]SaleResponse, 0, len(sales))}
	for _, s := range sales {
		resp.Sales = append(resp.Sales, ToSaleResponse(s))
	}
	return resp
}

// SalesSummaryResponse representa o resumo de vendas de um período
type SalesSummaryResponse struct {
	Start           time.Time       `json:"start"`
	End             time.Time       `json:"end"`
	Count           int             `json:"count"`
	Total           decimal.Decimal `json:"total"`
	CashSales       decimal.Decimal `json:"cash_sales"`
	ElectronicSales decimal.Decimal `json:"electronic_sales"`
}

// ToSalesSummaryResponse converte o resumo
func ToSalesSummaryResponse(start, end time.Time, s sale.Summary) SalesSummaryResponse {
	return SalesSummaryResponse{
		Start:           start,
		End:             end,
		Count:           s.Count,
		Total:           s.Total,
		CashSales:       s.CashSales,
		ElectronicSales: s.ElectronicSales,
	}
}
