package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSweetRequest entrada para crear un dulce. Sus reglas también validan el resultado de un update.
type CreateSweetRequest struct {
	Name        string          `json:"name" validate:"required,max=64"`
	Category    string          `json:"category" validate:"required,oneof=chocolate gummy hard-candy lollipop fudge toffee mint nougat other"`
	Price       decimal.Decimal `json:"price" validate:"gt=0,lte=9999999999.99,cents"`
	Quantity    int             `json:"quantity" validate:"min=0,max=2147483647"`
	Description string          `json:"description,omitempty" validate:"omitempty,max=500"`
	ImageURL    string          `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

// UpdateSweetRequest actualización parcial; los campos nil no se tocan.
type UpdateSweetRequest struct {
	Name        *string          `json:"name,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Quantity    *int             `json:"quantity,omitempty"`
	Description *string          `json:"description,omitempty"`
	ImageURL    *string          `json:"imageUrl,omitempty"`
}

// SweetResponse salida de un dulce.
type SweetResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// SweetSearch filtros opcionales de búsqueda; los vacíos no restringen.
type SweetSearch struct {
	PageRequest
	Name     string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}
