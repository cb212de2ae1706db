package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos de erro do PostgreSQL usados pelos repositórios
const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
	pgInvalidText     = "22P02"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgCode(err) == pgUniqueViolation
}

func isCheckViolation(err error) bool {
	return pgCode(err) == pgCheckViolation
}

// isInvalidID indica um identificador que nem chega a ser um UUID válido
func isInvalidID(err error) bool {
	return pgCode(err) == pgInvalidText
}

// nullable converte string vazia em NULL
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
