package memory

import (
	"context"

	"github.com/jhoicas/fudge-api/internal/domain/entity"
	"github.com/jhoicas/fudge-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación en memoria del ledger.
type StockMovementRepo struct {
	s    *Store
	inTx bool
}

// Create agrega un movimiento al final del ledger.
func (r *StockMovementRepo) Create(_ context.Context, movement *entity.StockMovement) error {
	defer r.s.lock(r.inTx)()
	cp := *movement
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

// ListBySweet movimientos de un dulce del más reciente al más antiguo.
func (r *StockMovementRepo) ListBySweet(_ context.Context, sweetID string, limit, offset int) ([]*entity.StockMovement, int, error) {
	defer r.s.rlock(r.inTx)()
	var matched []*entity.StockMovement
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		if m := r.s.movements[i]; m.SweetID == sweetID {
			matched = append(matched, m)
		}
	}
	total := len(matched)
	if offset >= total {
		return []*entity.StockMovement{}, total, nil
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	out := make([]*entity.StockMovement, 0, end-offset)
	for _, m := range matched[offset:end] {
		cp := *m
		out = append(out, &cp)
	}
	return out, total, nil
}
