// Package unit contém a tabela estática de unidades de compra e consumo.
package unit

import "strings"

// Category agrupa unidades que podem ser convertidas entre si
type Category string

const (
	CategoryMass   Category = "mass"
	CategoryVolume Category = "volume"
	CategoryUnit   Category = "unit"
)

// Unit é uma unidade com fator relativo à unidade base da categoria
// (grama, mililitro ou unidade)
type Unit struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Factor   float64  `json:"factor"`
}

var categories = []Category{CategoryMass, CategoryVolume, CategoryUnit}

// table mantém a ordem de exibição; a primeira unidade de cada categoria é a base
var table = map[Category][]Unit{
	CategoryMass: {
		{Name: "g", Category: CategoryMass, Factor: 1},
		{Name: "kg", Category: CategoryMass, Factor: 1000},
		{Name: "lb", Category: CategoryMass, Factor: 453.592},
		{Name: "oz", Category: CategoryMass, Factor: 28.3495},
	},
	CategoryVolume: {
		{Name: "ml", Category: CategoryVolume, Factor: 1},
		{Name: "l", Category: CategoryVolume, Factor: 1000},
		{Name: "gal", Category: CategoryVolume, Factor: 3785.41},
	},
	CategoryUnit: {
		{Name: "unit", Category: CategoryUnit, Factor: 1},
		{Name: "dozen", Category: CategoryUnit, Factor: 12},
		{Name: "box", Category: CategoryUnit, Factor: 24},
	},
}

var byName = func() map[string]Unit {
	idx := make(map[string]Unit)
	for _, units := range table {
		for _, u := range units {
			idx[u.Name] = u
		}
	}
	return idx
}()

// Categories retorna as categorias na ordem de exibição
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// UnitsInCategory retorna os nomes das unidades da categoria, em ordem
func UnitsInCategory(c Category) []string {
	units := table[c]
	names := make([]string, 0, len(units))
	for _, u := range units {
		names = append(names, u.Name)
	}
	return names
}

// Lookup busca uma unidade pelo nome, sem diferenciar maiúsculas
func Lookup(name string) (Unit, bool) {
	u, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	return u, ok
}

// CategoryOf retorna a categoria de uma unidade
func CategoryOf(name string) (Category, bool) {
	u, ok := Lookup(name)
	if !ok {
		return "", false
	}
	return u.Category, true
}

// SameCategory informa se as duas unidades existem e pertencem à mesma categoria
func SameCategory(a, b string) bool {
	ca, okA := CategoryOf(a)
	cb, okB := CategoryOf(b)
	return okA && okB && ca == cb
}

// Convert converte uma quantidade de uma unidade para outra da mesma categoria
func Convert(amount float64, from, to string) (float64, bool) {
	uf, okF := Lookup(from)
	ut, okT := Lookup(to)
	if !okF || !okT || uf.Category != ut.Category {
		return 0, false
	}
	return amount * uf.Factor / ut.Factor, true
}
