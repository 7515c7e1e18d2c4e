package memory

import (
	"context"

	"github.com/jhoicas/fudge-api/internal/domain"
	"github.com/jhoicas/fudge-api/internal/domain/entity"
	"github.com/jhoicas/fudge-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	s *Store
}

// Create persiste un usuario. ErrEmailAlreadyExists si el email está tomado.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	defer r.s.lock(false)()
	if _, ok := r.s.emails[user.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	u := *user
	r.s.users[u.ID] = &u
	r.s.emails[u.Email] = u.ID
	return nil
}

// GetByID obtiene un usuario por ID; (nil, nil) si no existe.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	defer r.s.rlock(false)()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// GetByEmail obtiene un usuario por email; (nil, nil) si no existe.
func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	defer r.s.rlock(false)()
	id, ok := r.s.emails[email]
	if !ok {
		return nil, nil
	}
	cp := *r.s.users[id]
	return &cp, nil
}

// Count número de usuarios registrados.
func (r *UserRepo) Count() int {
	defer r.s.rlock(false)()
	return len(r.s.users)
}

// UpsertAdmin crea la cuenta como admin o promueve la existente con ese email.
func (r *UserRepo) UpsertAdmin(_ context.Context, user *entity.User) error {
	defer r.s.lock(false)()
	if id, ok := r.s.emails[user.Email]; ok {
		cp := *r.s.users[id]
		cp.Username = user.Username
		cp.PasswordHash = user.PasswordHash
		cp.Role = entity.RoleAdmin
		cp.UpdatedAt = user.UpdatedAt
		r.s.users[id] = &cp
		return nil
	}
	u := *user
	u.Role = entity.RoleAdmin
	r.s.users[u.ID] = &u
	r.s.emails[u.Email] = u.ID
	return nil
}
