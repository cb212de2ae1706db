package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/sorveteria-pos/internal/adapter/api/dto"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/failure"
)

// statusFor traduz a categoria do erro de domínio em status HTTP
func statusFor(err error) int {
	switch failure.Kind(err) {
	case failure.ErrValidation:
		return http.StatusUnprocessableEntity
	case failure.ErrConflict:
		return http.StatusConflict
	case failure.ErrNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError escreve a resposta de erro com o status da categoria
func respondError(ctx *gin.Context, err error, message string) {
	status := statusFor(err)
	ctx.JSON(status, dto.NewErrorResponse(status, message, err.Error()))
}

// badRequest responde erros de leitura da requisição
func badRequest(ctx *gin.Context, message string, err error) {
	details := ""
	if err != nil {
		details = err.Error()
	}
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, message, details))
}

var errInvalidDate = errors.New("data inválida, use RFC 3339 ou AAAA-MM-DD")

// parseRange lê start e end da query. Sem valores, usa o dia corrente.
// Um end só com data cobre o dia inteiro.
func parseRange(ctx *gin.Context, now time.Time) (time.Time, time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	start, _, err := parseDate(ctx.Query("start"), today)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start: %w", err)
	}

	end, dateOnly, err := parseDate(ctx.Query("end"), today)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end: %w", err)
	}
	if dateOnly {
		end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return start, end, nil
}

func parseDate(value string, fallback time.Time) (time.Time, bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, true, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, false, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", value, fallback.Location()); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, errInvalidDate
}
