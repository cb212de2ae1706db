package dto

import (
	"time"

	"github.com/hugohenrick/sorveteria-pos/internal/domain/cashsession"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/purchase"
	"github.com/shopspring/decimal"
)

// OpenCashSessionRequest representa a abertura de caixa
type OpenCashSessionRequest struct {
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// CloseCashSessionRequest representa o fechamento de caixa
type CloseCashSessionRequest struct {
	CountedCash decimal.Decimal `json:"counted_cash"`
	Notes       string          `json:"notes"`
}

// ReconciliationResponse representa o fechamento congelado
type ReconciliationResponse struct {
	CashSales         decimal.Decimal `json:"cash_sales"`
	ElectronicSales   decimal.Decimal `json:"electronic_sales"`
	TotalExpenses     decimal.Decimal `json:"total_expenses"`
	SaleCount         int             `json:"sale_count"`
	CountedCash       decimal.Decimal `json:"counted_cash"`
	ExpectedCashInBox decimal.Decimal `json:"expected_cash_in_box"`
	Difference        decimal.Decimal `json:"difference"`
	Notes             string          `json:"notes,omitempty"`
}

// CashSessionResponse representa um caixa
type CashSessionResponse struct {
	ID             string                  `json:"id"`
	EmployeeID     string                  `json:"employee_id"`
	Status         string                  `json:"status"`
	OpeningBalance decimal.Decimal         `json:"opening_balance"`
	StartTime      time.Time               `json:"start_time"`
	EndTime        *time.Time              `json:"end_time,omitempty"`
	Closing        *ReconciliationResponse `json:"closing,omitempty"`
}

// ToCashSessionResponse converte um caixa
func ToCashSessionResponse(cs *cashsession.CashSession) CashSessionResponse {
	resp := CashSessionResponse{
		ID:             cs.ID,
		EmployeeID:     cs.EmployeeID,
		Status:         string(cs.Status),
		OpeningBalance: cs.OpeningBalance,
		StartTime:      cs.StartTime,
		EndTime:        cs.EndTime,
	}
	if c := cs.Closing; c != nil {
		resp.Closing = &ReconciliationResponse{
			CashSales:         c.CashSales,
			ElectronicSales:   c.ElectronicSales,
			TotalExpenses:     c.TotalExpenses,
			SaleCount:         c.SaleCount,
			CountedCash:       c.CountedCash,
			ExpectedCashInBox: c.ExpectedCashInBox,
			Difference:        c.Difference,
			Notes:             c.Notes,
		}
	}
	return resp
}

// CashSessionListResponse representa uma página de caixas
type CashSessionListResponse struct {
	Sessions []CashSessionResponse `json:"sessions"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
}

// ToCashSessionListResponse converte uma página de caixas
func ToCashSessionListResponse(sessions []*cashsession.CashSession, p Pagination) CashSessionListResponse {
	resp := CashSessionListResponse{
		Sessions: make([]CashSessionResponse, 0, len(sessions)),
		Page:     p.Page,
		PageSize: p.PageSize,
	}
	for _, cs := range sessions {
		resp.Sessions = append(resp.Sessions, ToCashSessionResponse(cs))
	}
	return resp
}

// CreatePurchaseRequest representa o lançamento de uma compra ou despesa
type CreatePurchaseRequest struct {
	Kind        string          `json:"kind" binding:"required,oneof=purchase expense"`
	Description string          `json:"description" binding:"required"`
	Total       decimal.Decimal `json:"total"`
}

// PurchaseResponse representa uma compra ou despesa
type PurchaseResponse struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employee_id"`
	SessionID   string          `json:"session_id,omitempty"`
	Kind        string          `json:"kind"`
	Description string          `json:"description"`
	Total       decimal.Decimal `json:"total"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToPurchaseResponse converte uma compra
func ToPurchaseResponse(p *purchase.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:          p.ID,
		EmployeeID:  p.EmployeeID,
		SessionID:   p.SessionID,
		Kind:        string(p.Kind),
		Description: p.Description,
		Total:       p.Total,
		CreatedAt:   p.CreatedAt,
	}
}
