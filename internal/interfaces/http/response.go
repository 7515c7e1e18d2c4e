package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fudge-api/internal/application/dto"
)

// ok responde 200 con el sobre estándar.
func ok(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(dto.Envelope{Success: true, Message: message, Data: data})
}

// created responde 201 con el sobre estándar.
func created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(dto.Envelope{Success: true, Message: message, Data: data})
}

// fail responde con el status indicado y success=false.
func fail(c *fiber.Ctx, status int, message string, errs ...string) error {
	return c.Status(status).JSON(dto.Envelope{Success: false, Message: message, Errors: errs})
}
