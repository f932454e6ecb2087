package handler

import (
	"github.com/gofiber/fiber/v2"
)

// failurePayload is the body of every failed request: a human-readable
// message plus the triggering error's text verbatim. The frontend is
// human-operated, so no machine-readable code is included.
type failurePayload struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// writeFailure emits the standard failure body.
func writeFailure(c *fiber.Ctx, status int, message string, err error) error {
	p := failurePayload{Message: message}
	if err != nil {
		p.Error = err.Error()
	}
	return c.Status(status).JSON(p)
}

// ErrorHandler standardizes errors Fiber raises outside handler bodies
// (unknown routes, disallowed methods, body limits).
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusMethodNotAllowed:
			return writeFailure(c, status, "Método no permitido. Solo se acepta POST.", nil)
		case fiber.StatusNotFound:
			return writeFailure(c, status, "Recurso no encontrado.", nil)
		default:
			return writeFailure(c, status, "Error interno del servidor.", err)
		}
	}
}
