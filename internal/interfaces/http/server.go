package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/fudge-api/internal/domain"
	"github.com/jhoicas/fudge-api/pkg/logger"
)

// ServerConfig parámetros de la app Fiber.
type ServerConfig struct {
	AppName      string
	CORSOrigins  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// NewApp crea la app Fiber con el manejador de errores y la cadena de middlewares común:
// recover, request id, log de peticiones, helmet y CORS.
func NewApp(cfg ServerConfig, log *logger.Logger) *fiber.App {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 10 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = 120 * time.Second
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		IdleTimeout:           cfg.IdleTimeout,
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler(log),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(log))
	app.Use(helmet.New())
	app.Use(corsMiddleware(cfg.CORSOrigins))
	return app
}

func corsMiddleware(origins string) fiber.Handler {
	origins = strings.TrimSpace(origins)
	if origins == "" {
		origins = "*"
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowCredentials: origins != "*",
	})
}

// RequestLogger registra método, ruta, status y latencia. Deja en el UserContext un
// logger con el request_id para el resto de la cadena.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqLog := log.WithRequest(c.GetRespHeader(fiber.HeaderXRequestID))
		c.SetUserContext(reqLog.IntoContext(c.UserContext()))

		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			// el ErrorHandler todavía no ha escrito la respuesta
			var fe *fiber.Error
			switch {
			case errors.As(err, &fe):
				status = fe.Code
			default:
				status = statusFor(err)
			}
		}
		ev := reqLog.Info()
		if status >= fiber.StatusInternalServerError {
			ev = reqLog.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
		return err
	}
}

// ErrorHandler convierte cualquier error que escape de un handler en el sobre estándar.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			msg := fe.Message
			if fe.Code == fiber.StatusNotFound {
				msg = "Resource not found"
			}
			return fail(c, fe.Code, msg)
		}

		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return fail(c, fiber.StatusBadRequest, verr.Error(), verr.Details...)
		}

		status := statusFor(err)
		switch status {
		case fiber.StatusBadRequest:
			if errors.Is(err, domain.ErrDuplicate) || errors.Is(err, domain.ErrEmailAlreadyExists) {
				return fail(c, status, "Duplicate field value entered")
			}
			return fail(c, status, "Invalid input")
		case fiber.StatusNotFound:
			return fail(c, status, "Resource not found")
		case fiber.StatusUnauthorized:
			return fail(c, status, "Invalid token")
		case fiber.StatusForbidden:
			return fail(c, status, "Admin access required")
		}

		logger.FromContext(c.UserContext(), log).Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error no controlado")
		return fail(c, fiber.StatusInternalServerError, "Server Error")
	}
}

// statusFor mapea errores de dominio a status HTTP.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrEmailAlreadyExists),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrStockLimit):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	}
	return fiber.StatusInternalServerError
}
