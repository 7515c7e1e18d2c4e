// Package seed crea la cuenta administradora inicial y un catálogo de ejemplo.
// El registro público siempre crea cuentas user; los admin solo nacen aquí.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/fudge-api/internal/application/dto"
	"github.com/jhoicas/fudge-api/internal/application/validation"
	"github.com/jhoicas/fudge-api/internal/domain/entity"
	"github.com/jhoicas/fudge-api/internal/domain/repository"
)

// AdminUpserter crea la cuenta o la promueve a admin si el email ya existe.
type AdminUpserter interface {
	UpsertAdmin(ctx context.Context, user *entity.User) error
}

// AdminInput datos de la cuenta administradora.
type AdminInput struct {
	Username string
	Email    string
	Password string
}

// Seeder carga datos iniciales.
type Seeder struct {
	users      AdminUpserter
	sweets     repository.SweetRepository
	bcryptCost int
}

// NewSeeder construye el seeder.
func NewSeeder(users AdminUpserter, sweets repository.SweetRepository, bcryptCost int) *Seeder {
	if bcryptCost == 0 {
		bcryptCost = 12
	}
	return &Seeder{users: users, sweets: sweets, bcryptCost: bcryptCost}
}

// Admin valida los datos con las mismas reglas del registro y hace upsert de la cuenta admin.
func (s *Seeder) Admin(ctx context.Context, in AdminInput) (*entity.User, error) {
	req := dto.RegisterRequest{
		Username: validation.Text(in.Username),
		Email:    validation.Email(in.Email),
		Password: in.Password,
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("seed: hash password: %w", err)
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.UpsertAdmin(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

type sample struct {
	name, category, price, description string
	quantity                           int
}

var catalog = []sample{
	{"Caramel Chocolate", entity.CategoryChocolate, "2.50", "Milk chocolate with a soft caramel centre", 40},
	{"Dark Chocolate Truffle", entity.CategoryChocolate, "3.20", "70% cocoa ganache", 25},
	{"Sour Gummy Worms", entity.CategoryGummy, "1.10", "", 120},
	{"Butterscotch Drops", entity.CategoryHardCandy, "0.90", "", 80},
	{"Rainbow Swirl Lollipop", entity.CategoryLollipop, "1.75", "", 30},
	{"Vanilla Fudge", entity.CategoryFudge, "2.80", "Made with clotted cream", 15},
	{"Salted Toffee", entity.CategoryToffee, "2.10", "", 4},
	{"Peppermint Creams", entity.CategoryMint, "1.40", "", 60},
	{"Almond Nougat", entity.CategoryNougat, "3.60", "", 3},
	{"Mystery Bag", entity.CategoryOther, "5.00", "A little bit of everything", 10},
}

// SampleCatalog inserta el catálogo de ejemplo si todavía no hay dulces. Devuelve cuántos insertó.
func (s *Seeder) SampleCatalog(ctx context.Context) (int, error) {
	_, total, err := s.sweets.List(ctx, repository.SweetFilter{}, 1, 0)
	if err != nil {
		return 0, fmt.Errorf("seed: contar dulces: %w", err)
	}
	if total > 0 {
		return 0, nil
	}
	for i, it := range catalog {
		// created_at escalonado para conservar el orden del catálogo
		ts := time.Now().UTC().Add(time.Duration(i) * time.Millisecond)
		sweet := &entity.Sweet{
			ID:          uuid.New().String(),
			Name:        it.name,
			Category:    it.category,
			Price:       decimal.RequireFromString(it.price),
			Quantity:    it.quantity,
			Description: it.description,
			CreatedAt:   ts,
			UpdatedAt:   ts,
		}
		if err := s.sweets.Create(ctx, sweet); err != nil {
			return i, fmt.Errorf("seed: crear %q: %w", it.name, err)
		}
	}
	return len(catalog), nil
}
