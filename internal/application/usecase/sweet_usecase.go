package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/fudge-api/internal/application/dto"
	"github.com/jhoicas/fudge-api/internal/application/validation"
	"github.com/jhoicas/fudge-api/internal/domain"
	"github.com/jhoicas/fudge-api/internal/domain/entity"
	"github.com/jhoicas/fudge-api/internal/domain/repository"
)

// SweetUseCase casos de uso CRUD y búsqueda del catálogo. El stock se mueve vía inventory.
type SweetUseCase struct {
	repo     repository.SweetRepository
	pageSize int
	now      func() time.Time
}

// NewSweetUseCase construye el caso de uso. pageSize es el límite por defecto de los listados.
func NewSweetUseCase(repo repository.SweetRepository, pageSize int) *SweetUseCase {
	if pageSize <= 0 {
		pageSize = 14
	}
	return &SweetUseCase{repo: repo, pageSize: pageSize, now: time.Now}
}

// Create valida y persiste un dulce nuevo.
func (uc *SweetUseCase) Create(ctx context.Context, in dto.CreateSweetRequest) (*dto.SweetResponse, error) {
	normalize(&in)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	sweet := &entity.Sweet{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Category:    in.Category,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, sweet); err != nil {
		return nil, err
	}
	resp := ToSweetResponse(sweet)
	return &resp, nil
}

// Get obtiene un dulce por ID. ErrNotFound si no existe o el ID no es un UUID.
func (uc *SweetUseCase) Get(ctx context.Context, id string) (*dto.SweetResponse, error) {
	sweet, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToSweetResponse(sweet)
	return &resp, nil
}

// List página del catálogo completo en orden de inserción.
func (uc *SweetUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.PageResult[dto.SweetResponse], error) {
	return uc.list(ctx, repository.SweetFilter{}, page)
}

// Search página filtrada por nombre, categoría y rango de precio.
func (uc *SweetUseCase) Search(ctx context.Context, q dto.SweetSearch) (*dto.PageResult[dto.SweetResponse], error) {
	filter := repository.SweetFilter{
		Name:     validation.Text(q.Name),
		Category: validation.Category(q.Category),
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
	}
	return uc.list(ctx, filter, q.PageRequest)
}

func (uc *SweetUseCase) list(ctx context.Context, filter repository.SweetFilter, page dto.PageRequest) (*dto.PageResult[dto.SweetResponse], error) {
	page.DefaultPage(uc.pageSize)
	list, total, err := uc.repo.List(ctx, filter, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	out := make([]dto.SweetResponse, 0, len(list))
	for _, s := range list {
		out = append(out, ToSweetResponse(s))
	}
	return &dto.PageResult[dto.SweetResponse]{Data: out, Pagination: dto.NewPagination(page, total)}, nil
}

// Update valida los campos presentes contra el registro actual con las reglas de creación
// y escribe sólo esos campos. Las columnas ausentes del patch (quantity incluida) no se
// reescriben, así una compra concurrente nunca se pierde.
func (uc *SweetUseCase) Update(ctx context.Context, id string, in dto.UpdateSweetRequest) (*dto.SweetResponse, error) {
	current, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	merged := dto.CreateSweetRequest{
		Name:        current.Name,
		Category:    current.Category,
		Price:       current.Price,
		Quantity:    current.Quantity,
		Description: current.Description,
		ImageURL:    current.ImageURL,
	}
	if in.Name != nil {
		merged.Name = *in.Name
	}
	if in.Category != nil {
		merged.Category = *in.Category
	}
	if in.Price != nil {
		merged.Price = *in.Price
	}
	if in.Quantity != nil {
		merged.Quantity = *in.Quantity
	}
	if in.Description != nil {
		merged.Description = *in.Description
	}
	if in.ImageURL != nil {
		merged.ImageURL = *in.ImageURL
	}
	normalize(&merged)
	if err := validation.Struct(merged); err != nil {
		return nil, err
	}

	patch := repository.SweetPatch{UpdatedAt: uc.now().UTC()}
	if in.Name != nil {
		patch.Name = &merged.Name
	}
	if in.Category != nil {
		patch.Category = &merged.Category
	}
	if in.Price != nil {
		patch.Price = &merged.Price
	}
	if in.Quantity != nil {
		patch.Quantity = &merged.Quantity
	}
	if in.Description != nil {
		patch.Description = &merged.Description
	}
	if in.ImageURL != nil {
		patch.ImageURL = &merged.ImageURL
	}
	sweet, err := uc.repo.Update(ctx, current.ID, patch)
	if err != nil {
		return nil, err
	}
	resp := ToSweetResponse(sweet)
	return &resp, nil
}

// Delete elimina un dulce. ErrNotFound si no existe.
func (uc *SweetUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *SweetUseCase) get(ctx context.Context, id string) (*entity.Sweet, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	sweet, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sweet == nil {
		return nil, domain.ErrNotFound
	}
	return sweet, nil
}

func normalize(in *dto.CreateSweetRequest) {
	in.Name = validation.Text(in.Name)
	in.Category = validation.Category(in.Category)
	in.Description = validation.Text(in.Description)
	in.ImageURL = validation.Text(in.ImageURL)
}

// ToSweetResponse proyección de salida de un dulce.
func ToSweetResponse(s *entity.Sweet) dto.SweetResponse {
	return dto.SweetResponse{
		ID:          s.ID,
		Name:        s.Name,
		Category:    s.Category,
		Price:       s.Price,
		Quantity:    s.Quantity,
		Description: s.Description,
		ImageURL:    s.ImageURL,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
