package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hugohenrick/sorveteria-pos/internal/domain/failure"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/sale"
)

// ErrInvalidRange indica período com fim anterior ao início
var ErrInvalidRange = fmt.Errorf("%w: data final anterior à inicial", failure.ErrValidation)

// ReportService consulta vendas por período
type ReportService struct {
	sales sale.Repository
}

// NewReportService cria uma nova instância de ReportService
func NewReportService(sales sale.Repository) *ReportService {
	return &ReportService{sales: sales}
}

// Sales lista as vendas do período, limites inclusos
func (s *ReportService) Sales(ctx context.Context, shopID string, start, end time.Time) ([]*sale.Sale, error) {
	if end.Before(start) {
		return nil, ErrInvalidRange
	}
	return s.sales.ListByDateRange(ctx, shopID, start, end)
}

// Summary agrega as vendas do período
func (s *ReportService) Summary(ctx context.Context, shopID string, start, end time.Time) (sale.Summary, error) {
	sales, err := s.Sales(ctx, shopID, start, end)
	if err != nil {
		return sale.Summary{}, err
	}
	return sale.Summarize(sales), nil
}

// Sale busca uma venda da loja
func (s *ReportService) Sale(ctx context.Context, shopID, saleID string) (*sale.Sale, error) {
	return s.sales.FindByID(ctx, shopID, saleID)
}
