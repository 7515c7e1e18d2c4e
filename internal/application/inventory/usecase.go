package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/fudge-api/internal/application/dto"
	"github.com/jhoicas/fudge-api/internal/application/usecase"
	"github.com/jhoicas/fudge-api/internal/domain"
	"github.com/jhoicas/fudge-api/internal/domain/entity"
	"github.com/jhoicas/fudge-api/internal/domain/repository"
)

// UseCase motor de stock: compras, reposiciones y consulta del ledger.
type UseCase struct {
	tx        TxRunner
	sweetRepo repository.SweetRepository
	movRepo   repository.StockMovementRepository
	pageSize  int
	now       func() time.Time
}

// NewUseCase construye el motor. pageSize es el límite por defecto del listado de movimientos.
func NewUseCase(tx TxRunner, sweetRepo repository.SweetRepository, movRepo repository.StockMovementRepository, pageSize int) *UseCase {
	if pageSize <= 0 {
		pageSize = 14
	}
	return &UseCase{tx: tx, sweetRepo: sweetRepo, movRepo: movRepo, pageSize: pageSize, now: time.Now}
}

// Purchase descuenta quantity unidades si hay stock suficiente y registra un PURCHASE.
// Errores: ErrInvalidQuantity (quantity fuera de [1, MaxQuantity]), ErrNotFound, ErrInsufficientStock.
func (uc *UseCase) Purchase(ctx context.Context, userID, sweetID string, quantity int) (*dto.SweetResponse, error) {
	return uc.apply(ctx, userID, sweetID, entity.MovementTypePurchase, quantity)
}

// Restock suma quantity unidades y registra un RESTOCK.
// Errores: ErrInvalidQuantity (quantity fuera de [1, MaxQuantity]), ErrNotFound,
// ErrStockLimit si el total superaría entity.MaxQuantity.
func (uc *UseCase) Restock(ctx context.Context, userID, sweetID string, quantity int) (*dto.SweetResponse, error) {
	return uc.apply(ctx, userID, sweetID, entity.MovementTypeRestock, quantity)
}

func (uc *UseCase) apply(ctx context.Context, userID, sweetID, movType string, quantity int) (*dto.SweetResponse, error) {
	if quantity <= 0 || quantity > entity.MaxQuantity {
		return nil, domain.ErrInvalidQuantity
	}
	if _, err := uuid.Parse(sweetID); err != nil {
		return nil, domain.ErrNotFound
	}
	delta := quantity
	if movType == entity.MovementTypePurchase {
		delta = -quantity
	}

	var updated *entity.Sweet
	err := uc.tx.Run(ctx, func(sweetRepo repository.SweetRepository, movRepo repository.StockMovementRepository) error {
		s, err := sweetRepo.AdjustQuantity(ctx, sweetID, delta)
		if err != nil {
			return err
		}
		updated = s
		return movRepo.Create(ctx, &entity.StockMovement{
			ID:                uuid.New().String(),
			SweetID:           sweetID,
			UserID:            userID,
			Type:              movType,
			Quantity:          quantity,
			ResultingQuantity: s.Quantity,
			CreatedAt:         uc.now().UTC(),
		})
	})
	if err != nil {
		return nil, err
	}
	resp := usecase.ToSweetResponse(updated)
	return &resp, nil
}

// ListMovements página del ledger de un dulce, del más reciente al más antiguo.
func (uc *UseCase) ListMovements(ctx context.Context, sweetID string, page dto.PageRequest) (*dto.PageResult[dto.MovementResponse], error) {
	if _, err := uuid.Parse(sweetID); err != nil {
		return nil, domain.ErrNotFound
	}
	s, err := uc.sweetRepo.GetByID(ctx, sweetID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage(uc.pageSize)
	list, total, err := uc.movRepo.ListBySweet(ctx, sweetID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MovementResponse{
			ID:                m.ID,
			SweetID:           m.SweetID,
			UserID:            m.UserID,
			Type:              m.Type,
			Quantity:          m.Quantity,
			ResultingQuantity: m.ResultingQuantity,
			CreatedAt:         m.CreatedAt,
		})
	}
	return &dto.PageResult[dto.MovementResponse]{Data: out, Pagination: dto.NewPagination(page, total)}, nil
}
