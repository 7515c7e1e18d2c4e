package repository

import (
	"context"

	"github.com/jhoicas/fudge-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del libro de movimientos.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListBySweet devuelve movimientos del más reciente al más antiguo junto con el total.
	ListBySweet(ctx context.Context, sweetID string, limit, offset int) ([]*entity.StockMovement, int, error)
}
