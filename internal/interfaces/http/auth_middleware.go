package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fudge-api/internal/domain/entity"
)

// Locals keys para el usuario autenticado en Fiber.
const (
	LocalUser   = "user"
	LocalUserID = "user_id"
)

// TokenResolver resuelve un JWT al usuario vigente.
// Lo implementa *auth.AuthUseCase; el uso de interfaz permite probar el middleware aislado.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*entity.User, error)
}

// AuthMiddleware valida el Bearer Token, carga el usuario y lo deja en c.Locals.
// Un token válido de un usuario que ya no existe se rechaza igual que uno inválido.
func AuthMiddleware(resolver TokenResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return fail(c, fiber.StatusUnauthorized, "Access token required")
		}
		user, err := resolver.ResolveToken(c.UserContext(), strings.TrimSpace(parts[1]))
		if err != nil || user == nil {
			return fail(c, fiber.StatusUnauthorized, "Invalid token")
		}
		c.Locals(LocalUser, user)
		c.Locals(LocalUserID, user.ID)
		return c.Next()
	}
}

// RequireAdmin exige rol admin. Debe montarse después de AuthMiddleware.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetUser(c)
		if user == nil {
			return fail(c, fiber.StatusUnauthorized, "Access token required")
		}
		if !user.IsAdmin() {
			return fail(c, fiber.StatusForbidden, "Admin access required")
		}
		return c.Next()
	}
}

// GetUser devuelve el usuario autenticado (después del middleware de auth).
func GetUser(c *fiber.Ctx) *entity.User {
	u, _ := c.Locals(LocalUser).(*entity.User)
	return u
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
