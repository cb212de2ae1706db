// Package failure define as categorias de erro compartilhadas pelo domínio.
//
// Cada erro específico de um pacote embrulha uma destas categorias, de modo
// que a camada HTTP decide o status apenas com errors.Is.
package failure

import "errors"

var (
	// ErrValidation indica uma entrada inválida do chamador; nenhum estado é alterado
	ErrValidation = errors.New("dados inválidos")

	// ErrConflict indica que o estado mudou concorrentemente; o chamador pode reler e tentar de novo
	ErrConflict = errors.New("conflito de estado")

	// ErrNotFound indica que o registro não existe para a loja informada
	ErrNotFound = errors.New("registro não encontrado")
)

// Kind retorna a categoria do erro, ou nil quando o erro é de infraestrutura
func Kind(err error) error {
	switch {
	case errors.Is(err, ErrValidation):
		return ErrValidation
	case errors.Is(err, ErrConflict):
		return ErrConflict
	case errors.Is(err, ErrNotFound):
		return ErrNotFound
	default:
		return nil
	}
}
