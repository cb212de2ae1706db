package shop

import "errors"

// Erros comuns relacionados à loja da requisição
var (
	ErrShopNotSpecified = errors.New("loja não especificada")
	ErrShopNotActive    = errors.New("loja não encontrada ou inativa")
)
