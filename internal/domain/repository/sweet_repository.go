package repository

import (
	"context"
	"time"

	"github.com/jhoicas/fudge-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SweetFilter criterios opcionales de búsqueda; un campo vacío/nil no restringe.
type SweetFilter struct {
	Name     string // substring, sin distinguir mayúsculas
	Category string // coincidencia exacta
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// SweetPatch columnas a escribir en un update parcial; nil deja la columna como está.
type SweetPatch struct {
	Name        *string
	Category    *string
	Price       *decimal.Decimal
	Quantity    *int
	Description *string
	ImageURL    *string
	UpdatedAt   time.Time
}

// SweetRepository define el puerto de persistencia para Sweet (DIP).
type SweetRepository interface {
	Create(ctx context.Context, sweet *entity.Sweet) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Sweet, error)
	// Update escribe sólo las columnas presentes en patch en una única operación y
	// devuelve el registro resultante. domain.ErrNotFound si no existe.
	Update(ctx context.Context, id string, patch SweetPatch) (*entity.Sweet, error)
	// Delete elimina por ID. domain.ErrNotFound si no existe.
	Delete(ctx context.Context, id string) error
	// List devuelve la página pedida y el total de registros que cumplen el filtro,
	// en orden de inserción.
	List(ctx context.Context, filter SweetFilter, limit, offset int) ([]*entity.Sweet, int, error)
	// AdjustQuantity suma delta al stock en una sola operación condicional
	// (0 <= quantity + delta <= entity.MaxQuantity). domain.ErrNotFound si no existe,
	// domain.ErrInsufficientStock si quedaría negativo, domain.ErrStockLimit si superaría el máximo.
	AdjustQuantity(ctx context.Context, id string, delta int) (*entity.Sweet, error)
}
