package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/jhoicas/fudge-api/internal/application/auth"
	"github.com/jhoicas/fudge-api/internal/application/inventory"
	"github.com/jhoicas/fudge-api/internal/application/report"
	"github.com/jhoicas/fudge-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	SweetUC     *usecase.SweetUseCase
	InventoryUC *inventory.UseCase
	ReportUC    *report.UseCase

	// AuthRateLimit peticiones por minuto e IP en /api/auth; 0 desactiva el límite.
	AuthRateLimit int
	// LimiterStorage almacenamiento compartido del limiter (Redis); nil usa memoria local.
	LimiterStorage fiber.Storage
}

// Router registra las rutas de la API y el fallback 404. Debe llamarse después de
// montar cualquier otra ruta (swagger) en la app.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return ok(c, "OK", fiber.Map{"status": "ok", "time": time.Now().UTC()})
	})

	api := app.Group("/api")
	authenticate := AuthMiddleware(deps.AuthUC)
	admin := RequireAdmin()

	// Auth (público, con límite de peticiones)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	if deps.AuthRateLimit > 0 {
		authGroup.Use(authLimiter(deps.AuthRateLimit, deps.LimiterStorage))
	}
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", authenticate, authHandler.Me)

	// Sweets (protegido). Las rutas estáticas van antes de /:id.
	sweetHandler := NewSweetHandler(deps.SweetUC)
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	reportHandler := NewReportHandler(deps.ReportUC)

	sweets := api.Group("/sweets", authenticate)
	sweets.Get("/", sweetHandler.List)
	sweets.Get("/search", sweetHandler.Search)
	sweets.Get("/report", admin, reportHandler.StockReport)
	sweets.Post("/", admin, sweetHandler.Create)
	sweets.Get("/:id", sweetHandler.Get)
	sweets.Put("/:id", admin, sweetHandler.Update)
	sweets.Post("/:id", admin, sweetHandler.Update)
	sweets.Delete("/:id", admin, sweetHandler.Delete)
	sweets.Post("/:id/purchase", inventoryHandler.Purchase)
	sweets.Post("/:id/restock", admin, inventoryHandler.Restock)
	sweets.Get("/:id/movements", admin, inventoryHandler.Movements)

	app.Use(func(c *fiber.Ctx) error {
		return fail(c, fiber.StatusNotFound, "Route not found")
	})
}

func authLimiter(perMinute int, storage fiber.Storage) fiber.Handler {
	cfg := limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "auth:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return fail(c, fiber.StatusTooManyRequests, "Too many requests, please try again later")
		},
	}
	if storage != nil {
		cfg.Storage = storage
	}
	return limiter.New(cfg)
}
