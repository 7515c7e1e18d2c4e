package inventory

import (
	"context"

	"github.com/jhoicas/fudge-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// El ajuste de stock y su movimiento en el ledger se confirman juntos o no se confirman.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		sweetRepo repository.SweetRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
