package memory

import (
	"context"

	"github.com/jhoicas/fudge-api/internal/application/inventory"
	"github.com/jhoicas/fudge-api/internal/domain/entity"
	"github.com/jhoicas/fudge-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta fn con el lock de escritura tomado; si fn falla restaura el estado previo.
type TxRunner struct {
	s *Store
}

// Run serializa la tx completa contra el resto de operaciones del store.
func (r *TxRunner) Run(ctx context.Context, fn func(
	sweetRepo repository.SweetRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sweets := make(map[string]*entity.Sweet, len(r.s.sweets))
	for k, v := range r.s.sweets {
		sweets[k] = v
	}
	order := append([]string(nil), r.s.order...)
	movements := append([]*entity.StockMovement(nil), r.s.movements...)

	err := fn(&SweetRepo{s: r.s, inTx: true}, &StockMovementRepo{s: r.s, inTx: true})
	if err != nil {
		r.s.sweets = sweets
		r.s.order = order
		r.s.movements = movements
		return err
	}
	return nil
}
