package memory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/fudge-api/internal/domain"
	"github.com/jhoicas/fudge-api/internal/domain/entity"
	"github.com/jhoicas/fudge-api/internal/domain/repository"
)

var _ repository.SweetRepository = (*SweetRepo)(nil)

// SweetRepo implementación en memoria de SweetRepository.
type SweetRepo struct {
	s    *Store
	inTx bool
}

// Create persiste un dulce al final del orden de inserción.
func (r *SweetRepo) Create(_ context.Context, sweet *entity.Sweet) error {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.sweets[sweet.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *sweet
	r.s.sweets[cp.ID] = &cp
	r.s.order = append(r.s.order, cp.ID)
	return nil
}

// GetByID obtiene un dulce; (nil, nil) si no existe.
func (r *SweetRepo) GetByID(_ context.Context, id string) (*entity.Sweet, error) {
	defer r.s.rlock(r.inTx)()
	s, ok := r.s.sweets[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

// Update aplica bajo el lock sólo los campos presentes en patch.
func (r *SweetRepo) Update(_ context.Context, id string, patch repository.SweetPatch) (*entity.Sweet, error) {
	defer r.s.lock(r.inTx)()
	old, ok := r.s.sweets[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *old
	if patch.Name != nil {
		cp.Name = *patch.Name
	}
	if patch.Category != nil {
		cp.Category = *patch.Category
	}
	if patch.Price != nil {
		cp.Price = *patch.Price
	}
	if patch.Quantity != nil {
		cp.Quantity = *patch.Quantity
	}
	if patch.Description != nil {
		cp.Description = *patch.Description
	}
	if patch.ImageURL != nil {
		cp.ImageURL = *patch.ImageURL
	}
	cp.UpdatedAt = patch.UpdatedAt
	r.s.sweets[id] = &cp
	out := cp
	return &out, nil
}

// Delete elimina el dulce y su ledger.
func (r *SweetRepo) Delete(_ context.Context, id string) error {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.sweets[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.sweets, id)
	for i, v := range r.s.order {
		if v == id {
			r.s.order = append(r.s.order[:i:i], r.s.order[i+1:]...)
			break
		}
	}
	kept := r.s.movements[:0:0]
	for _, m := range r.s.movements {
		if m.SweetID != id {
			kept = append(kept, m)
		}
	}
	r.s.movements = kept
	return nil
}

// List filtra en orden de inserción y devuelve la página pedida con el total.
func (r *SweetRepo) List(_ context.Context, filter repository.SweetFilter, limit, offset int) ([]*entity.Sweet, int, error) {
	defer r.s.rlock(r.inTx)()
	name := strings.ToLower(filter.Name)
	var matched []*entity.Sweet
	for _, id := range r.s.order {
		s := r.s.sweets[id]
		if name != "" && !strings.Contains(strings.ToLower(s.Name), name) {
			continue
		}
		if filter.Category != "" && s.Category != filter.Category {
			continue
		}
		if filter.MinPrice != nil && s.Price.LessThan(*filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && s.Price.GreaterThan(*filter.MaxPrice) {
			continue
		}
		matched = append(matched, s)
	}
	total := len(matched)
	if offset >= total {
		return []*entity.Sweet{}, total, nil
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	out := make([]*entity.Sweet, 0, end-offset)
	for _, s := range matched[offset:end] {
		cp := *s
		out = append(out, &cp)
	}
	return out, total, nil
}

// AdjustQuantity aplica delta bajo el lock; quantity queda siempre en [0, entity.MaxQuantity].
func (r *SweetRepo) AdjustQuantity(_ context.Context, id string, delta int) (*entity.Sweet, error) {
	defer r.s.lock(r.inTx)()
	s, ok := r.s.sweets[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	// comparaciones sin sumar: quantity está en [0, MaxQuantity] y delta puede ser cualquier int
	if delta < -s.Quantity {
		return nil, domain.ErrInsufficientStock
	}
	if delta > entity.MaxQuantity-s.Quantity {
		return nil, domain.ErrStockLimit
	}
	cp := *s
	cp.Quantity += delta
	cp.UpdatedAt = time.Now().UTC()
	r.s.sweets[id] = &cp
	out := cp
	return &out, nil
}
