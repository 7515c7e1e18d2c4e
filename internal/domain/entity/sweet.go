package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de dulces aceptadas por el catálogo.
const (
	CategoryChocolate = "chocolate"
	CategoryGummy     = "gummy"
	CategoryHardCandy = "hard-candy"
	CategoryLollipop  = "lollipop"
	CategoryFudge     = "fudge"
	CategoryToffee    = "toffee"
	CategoryMint      = "mint"
	CategoryNougat    = "nougat"
	CategoryOther     = "other"
)

// Límites de almacenamiento: quantity es INTEGER y price NUMERIC(12,2).
const (
	MaxQuantity = 1<<31 - 1
	MaxPrice    = "9999999999.99"
)

// Categories lista cerrada en el orden en que se muestra al cliente.
var Categories = []string{
	CategoryChocolate, CategoryGummy, CategoryHardCandy, CategoryLollipop,
	CategoryFudge, CategoryToffee, CategoryMint, CategoryNougat, CategoryOther,
}

// IsValidCategory indica si c pertenece a la enumeración.
func IsValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Sweet representa un artículo del catálogo con su stock actual.
// Quantity nunca es negativa: la base lo impone con CHECK y las compras usan un UPDATE condicional.
type Sweet struct {
	ID          string
	Name        string
	Category    string
	Price       decimal.Decimal
	Quantity    int
	Description string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
