package product

import (
	"fmt"
	"strings"

	"github.com/hugohenrick/sorveteria-pos/internal/domain/failure"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/ingredient"
)

var (
	ErrMissingVariableSelection = fmt.Errorf("%w: escolha do ingrediente variável é obrigatória", failure.ErrValidation)
	ErrInvalidVariableChoice    = fmt.Errorf("%w: ingrediente escolhido não pertence à categoria da receita", failure.ErrValidation)
	ErrUnexpectedVariableChoice = fmt.Errorf("%w: produto não possui ingrediente variável", failure.ErrValidation)
	ErrMultipleVariableLines    = fmt.Errorf("%w: receita possui mais de uma linha variável", failure.ErrValidation)
)

// RecipeLine é uma linha de receita: FixedLine ou VariableLine
type RecipeLine interface {
	Amount() float64
	recipeLine()
}

// FixedLine consome sempre o mesmo ingrediente
type FixedLine struct {
	IngredientID string
	Quantity     float64
}

// VariableLine consome qualquer ingrediente da categoria, escolhido na venda
type VariableLine struct {
	Category string
	Quantity float64
}

func (l FixedLine) Amount() float64    { return l.Quantity }
func (l VariableLine) Amount() float64 { return l.Quantity }

func (FixedLine) recipeLine()    {}
func (VariableLine) recipeLine() {}

// Recipe é a lista ordenada de linhas de um produto
type Recipe []RecipeLine

// Validate garante no máximo uma linha variável
func (r Recipe) Validate() error {
	variables := 0
	for _, line := range r {
		if _, ok := line.(VariableLine); ok {
			variables++
		}
	}
	if variables > 1 {
		return ErrMultipleVariableLines
	}
	return nil
}

// Variable retorna a linha variável da receita, se existir
func (r Recipe) Variable() (VariableLine, bool) {
	for _, line := range r {
		if v, ok := line.(VariableLine); ok {
			return v, true
		}
	}
	return VariableLine{}, false
}

// Resolve expande a receita em consumos concretos.
// choice é obrigatório se e somente se a receita tiver linha variável.
func Resolve(recipe Recipe, choice *ingredient.Ingredient) ([]Usage, error) {
	if err := recipe.Validate(); err != nil {
		return nil, err
	}

	variable, hasVariable := recipe.Variable()
	switch {
	case hasVariable && choice == nil:
		return nil, ErrMissingVariableSelection
	case !hasVariable && choice != nil:
		return nil, ErrUnexpectedVariableChoice
	case hasVariable && !strings.EqualFold(choice.Category, variable.Category):
		return nil, fmt.Errorf("%w: %s não é %s", ErrInvalidVariableChoice, choice.Name, variable.Category)
	}

	usages := make([]Usage, 0, len(recipe))
	for _, line := range recipe {
		switch l := line.(type) {
		case FixedLine:
			usages = append(usages, Usage{IngredientID: l.IngredientID, Quantity: l.Quantity})
		case VariableLine:
			usages = append(usages, Usage{IngredientID: choice.ID, Quantity: l.Quantity})
		}
	}
	return usages, nil
}
