package main

import (
	"context"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"intakeapi/internal/config"
	"intakeapi/internal/document"
	handlers "intakeapi/internal/http/handler"
	"intakeapi/internal/http/middleware"
	"intakeapi/internal/mail"
	"intakeapi/internal/otel"
	"intakeapi/internal/payment"
	"intakeapi/internal/service"
	"intakeapi/internal/sheets"
	"intakeapi/internal/storage"
	"intakeapi/internal/webhook"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration from environment variables (.env auto-loaded if
	// present) and fail fast before touching any external service.
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("configuración inválida: %v", err)
	}

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatalf("no se pudo inicializar el trazado: %v", err)
	}
	defer shutdownTracing(ctx)

	// Session dates and record timestamps use the practice's timezone.
	loc, err := time.LoadLocation("America/Bogota")
	if err != nil {
		loc = time.UTC
	}

	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("no se pudo inicializar el almacenamiento de objetos: %v", err)
	}

	filler, err := document.NewTemplateFiller(cfg.Intake.TemplatePath)
	if err != nil {
		log.Fatalf("plantilla de historia clínica: %v", err)
	}
	converter := document.NewSofficeConverter(cfg.Intake.SofficeBin)
	protector := document.NewPDFProtector()
	mailer := mail.NewSMTPSender(cfg.SMTP, cfg.PracticeName)

	var ledger sheets.Ledger
	if cfg.Sheets.Enabled {
		ledger, err = sheets.NewGoogleLedger(ctx, cfg.Sheets)
		if err != nil {
			log.Fatalf("no se pudo inicializar la hoja de registro: %v", err)
		}
	}

	hook := webhook.NewHTTPForwarder(cfg.WebhookURL)
	gateway := payment.NewWompiGateway(cfg.Wompi)

	opts := service.IntakeOptions{
		Encrypt:          cfg.Intake.Encrypt,
		Record:           cfg.Sheets.Enabled,
		DisclosePassword: cfg.SMTP.DisclosePassword,
		ClinicianEmail:   cfg.ClinicianEmail,
		Professional:     cfg.Professional,
		Location:         loc,
	}
	intakeSvc := service.NewIntakeService(filler, converter, protector, mailer, ledger, objStore, hook, opts, log)
	sigSvc := service.NewSignatureService(mailer, objStore, cfg.ClinicianEmail, opts, log)

	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandlerWithLogging(log),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(otelfiber.Middleware())

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("no se pudo registrar las métricas: %v", err)
	}
	app.Use(promMW.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, intakeSvc, sigSvc, gateway)

	addr := ":" + cfg.Port
	if err := app.Listen(addr); err != nil {
		log.Fatalf("no se pudo iniciar el servidor: %v", err)
	}
}

// ErrorHandlerWithLogging wraps the standard error handler so framework-level
// failures still reach the structured log.
func ErrorHandlerWithLogging(log *logrus.Logger) fiber.ErrorHandler {
	base := handlers.ErrorHandler()
	return func(c *fiber.Ctx, err error) error {
		log.WithFields(logrus.Fields{
			"path":  c.Path(),
			"error": err.Error(),
		}).Warn("request failed")
		return base(c, err)
	}
}
