package handler

import (
	_ "embed"
	"encoding/base64"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"intakeapi/internal/model"
	"intakeapi/internal/payment"
	"intakeapi/internal/service"
)

//go:embed openapi.yaml
var openapiSpec []byte

// RegisterRoutes attaches the intake workflow's HTTP entry points. Handlers
// stay thin: parse, delegate, answer. Every handler failure is a 500 with
// the triggering error's message verbatim.
func RegisterRoutes(app *fiber.App, intakeSvc service.IntakeService, sigSvc service.SignatureService, gateway payment.Gateway) {
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.Send(openapiSpec)
	})
	app.Get("/docs/*", swagger.New(swagger.Config{
		URL: "/openapi.yaml",
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	})

	// Generate, deliver, and record a clinical history.
	app.Post("/intake", func(c *fiber.Ctx) error {
		var rec model.IntakeRecord
		if err := c.BodyParser(&rec); err != nil {
			return writeFailure(c, fiber.StatusInternalServerError,
				"No se recibieron datos válidos en la solicitud.", fmt.Errorf("%w: %v", model.ErrParse, err))
		}

		res, err := intakeSvc.Process(c.UserContext(), rec)
		if err != nil {
			return writeFailure(c, fiber.StatusInternalServerError, "Error interno del servidor.", err)
		}

		// ?attach=true returns the PDF itself, base64-encoded, for variants
		// where the frontend offers a direct download.
		if c.Query("attach") == "true" {
			c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+res.Filename+`"`)
			c.Set("X-Content-Transfer-Encoding", "base64")
			c.Type("pdf")
			return c.SendString(base64.StdEncoding.EncodeToString(res.PDF))
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "¡Proceso completado con éxito! La historia clínica fue enviada a tu correo.",
		})
	})

	// Re-download an archived document copy by its generated filename.
	app.Get("/historias/:filename", func(c *fiber.Ctx) error {
		rc, size, err := intakeSvc.Archived(c.UserContext(), c.Params("filename"))
		if err != nil {
			return writeFailure(c, fiber.StatusNotFound, "Recurso no encontrado.", err)
		}
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+c.Params("filename")+`"`)
		c.Type("pdf")
		return c.SendStream(rc, int(size))
	})

	// Forward the prepared record to the alternate webhook delivery path.
	app.Post("/intake/relay", func(c *fiber.Ctx) error {
		var rec model.IntakeRecord
		if err := c.BodyParser(&rec); err != nil {
			return writeFailure(c, fiber.StatusInternalServerError,
				"No se recibieron datos válidos en la solicitud.", fmt.Errorf("%w: %v", model.ErrParse, err))
		}

		if err := intakeSvc.Relay(c.UserContext(), rec); err != nil {
			return writeFailure(c, fiber.StatusInternalServerError, "Error interno del servidor.", err)
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "¡Proceso iniciado con éxito! La historia clínica será enviada a tu correo en unos momentos.",
		})
	})

	// Receive, persist, and relay digitally captured signatures.
	app.Post("/signatures", func(c *fiber.Ctx) error {
		var p model.SignaturePayload
		if err := c.BodyParser(&p); err != nil {
			return writeFailure(c, fiber.StatusInternalServerError,
				"No se recibieron datos válidos en la solicitud.", fmt.Errorf("%w: %v", model.ErrParse, err))
		}

		if err := sigSvc.Relay(c.UserContext(), p); err != nil {
			return writeFailure(c, fiber.StatusInternalServerError, "Error interno del servidor.", err)
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": true,
			"message": "Firmas recibidas, guardadas y correos enviados.",
		})
	})

	// Create a single-use payment link at the processor.
	app.Post("/payment-links", func(c *fiber.Ctx) error {
		var req model.PaymentLinkRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "No se recibieron datos válidos en la solicitud.",
			})
		}
		if err := req.Validate(); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		}

		linkID, err := gateway.CreateLink(c.UserContext(), req)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": true,
			"linkId":  linkID,
		})
	})
}
