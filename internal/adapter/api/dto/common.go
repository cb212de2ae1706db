package dto

import "strconv"

// Limites da paginação de listagens
const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ErrorResponse é o corpo de toda resposta de erro da API
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// NewErrorResponse cria uma nova resposta de erro
func NewErrorResponse(code int, message, details string) ErrorResponse {
	return ErrorResponse{Code: code, Message: message, Details: details}
}

// Pagination é a página pedida na query string
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Offset retorna o deslocamento correspondente à página
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ParsePagination lê page e page_size; valores ausentes ou inválidos caem no padrão
func ParsePagination(page, pageSize string) Pagination {
	p := Pagination{Page: 1, PageSize: defaultPageSize}
	if n, err := strconv.Atoi(page); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.Atoi(pageSize); err == nil && n > 0 {
		p.PageSize = min(n, maxPageSize)
	}
	return p
}
