package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fudge-api/internal/domain"
	"github.com/jhoicas/fudge-api/internal/domain/entity"
	"github.com/jhoicas/fudge-api/internal/domain/repository"
)

var _ repository.SweetRepository = (*SweetRepo)(nil)

const sweetColumns = `id, name, category, price, quantity, description, image_url, created_at, updated_at`

// SweetRepo implementación del puerto SweetRepository sobre PostgreSQL (usable con pool o tx).
type SweetRepo struct {
	q Querier
}

// NewSweetRepository construye el adaptador de persistencia para dulces. Pasar pool o tx (Querier).
func NewSweetRepository(q Querier) *SweetRepo {
	return &SweetRepo{q: q}
}

// Create persiste un nuevo dulce.
func (r *SweetRepo) Create(ctx context.Context, s *entity.Sweet) error {
	query := `
		INSERT INTO sweets (` + sweetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Name, s.Category, s.Price, s.Quantity, s.Description, s.ImageURL,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isCheckViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert sweet: %w", err)
	}
	return nil
}

// GetByID obtiene un dulce por ID.
func (r *SweetRepo) GetByID(ctx context.Context, id string) (*entity.Sweet, error) {
	s, err := scanSweet(r.q.QueryRow(ctx, `SELECT `+sweetColumns+` FROM sweets WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sweet: %w", err)
	}
	return s, nil
}

// Update escribe sólo las columnas presentes en el patch; quantity no se toca salvo que
// venga en él, así no pisa compras confirmadas entre la lectura y la escritura.
func (r *SweetRepo) Update(ctx context.Context, id string, patch repository.SweetPatch) (*entity.Sweet, error) {
	set, args := buildSweetSet(patch)
	query := `UPDATE sweets SET ` + set + ` WHERE id = $1 RETURNING ` + sweetColumns
	s, err := scanSweet(r.q.QueryRow(ctx, query, append([]any{id}, args...)...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		if isCheckViolation(err) {
			return nil, domain.ErrInvalidInput
		}
		return nil, fmt.Errorf("update sweet: %w", err)
	}
	return s, nil
}

// Delete elimina un dulce; el ledger se borra en cascada.
func (r *SweetRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM sweets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sweet: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve la página filtrada en orden de inserción y el total que cumple el filtro.
func (r *SweetRepo) List(ctx context.Context, filter repository.SweetFilter, limit, offset int) ([]*entity.Sweet, int, error) {
	where, args := buildSweetWhere(filter)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM sweets`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sweets: %w", err)
	}

	pos := len(args) + 1
	query := `SELECT ` + sweetColumns + ` FROM sweets` + where +
		fmt.Sprintf(" ORDER BY created_at, id LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sweets: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Sweet, 0, limit)
	for rows.Next() {
		s, err := scanSweet(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan sweet: %w", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

// AdjustQuantity suma delta en un único UPDATE condicional: quantity queda en
// [0, MaxQuantity] aunque haya compras concurrentes sobre el mismo dulce. La suma se
// hace en bigint para que el límite de INTEGER no salte como error 22003.
func (r *SweetRepo) AdjustQuantity(ctx context.Context, id string, delta int) (*entity.Sweet, error) {
	query := `
		UPDATE sweets SET quantity = quantity + $2::bigint, updated_at = NOW()
		WHERE id = $1 AND quantity + $2::bigint BETWEEN 0 AND $3
		RETURNING ` + sweetColumns
	s, err := scanSweet(r.q.QueryRow(ctx, query, id, int64(delta), int64(entity.MaxQuantity)))
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("adjust quantity: %w", err)
	}
	// sin filas: o no existe o el resultado cae fuera de rango
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM sweets WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check sweet: %w", err)
	}
	if !exists {
		return nil, domain.ErrNotFound
	}
	if delta > 0 {
		return nil, domain.ErrStockLimit
	}
	return nil, domain.ErrInsufficientStock
}

func scanSweet(row pgx.Row) (*entity.Sweet, error) {
	var s entity.Sweet
	err := row.Scan(
		&s.ID, &s.Name, &s.Category, &s.Price, &s.Quantity, &s.Description, &s.ImageURL,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
