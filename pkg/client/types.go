package client

import (
	"time"

	"github.com/shopspring/decimal"
)

// Roles de usuario.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User proyección pública de un usuario.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// IsAdmin indica si el usuario tiene rol admin.
func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// AuthResult respuesta de login y registro.
type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Sweet dulce del catálogo.
type Sweet struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// SweetInput cuerpo de creación y de actualización parcial; los nil no se envían.
type SweetInput struct {
	Name        *string          `json:"name,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Quantity    *int             `json:"quantity,omitempty"`
	Description *string          `json:"description,omitempty"`
	ImageURL    *string          `json:"imageUrl,omitempty"`
}

// SearchFilters filtros de búsqueda; los vacíos no se envían.
type SearchFilters struct {
	Name     string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Page     int
	Limit    int
}

// Movement entrada del ledger de stock.
type Movement struct {
	ID                string    `json:"id"`
	SweetID           string    `json:"sweetId"`
	UserID            string    `json:"userId"`
	Type              string    `json:"type"`
	Quantity          int       `json:"quantity"`
	ResultingQuantity int       `json:"resultingQuantity"`
	CreatedAt         time.Time `json:"createdAt"`
}

// Pagination metadatos de página.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// Page página de resultados.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// String puntero a s, para armar SweetInput.
func String(s string) *string { return &s }

// Int puntero a n, para armar SweetInput.
func Int(n int) *int { return &n }

// Price parsea un precio decimal; panic si el literal no es válido.
func Price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
