package config

import (
	"fmt"
	"os"
	"strconv"
)

// ConfigurationError names the environment variable whose absence prevented
// startup. It is raised before any external call is attempted.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("error de configuración: la variable de entorno %q no fue encontrada", e.Key)
}

// SMTPConfig holds the authenticated mail-transport settings.
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	// DisclosePassword controls whether the derived document password is
	// included in the patient's copy of the email, not only the clinician's.
	DisclosePassword bool
}

// SheetsConfig holds the record-keeping spreadsheet settings. CredentialsB64
// is the service-account JSON, base64-encoded as supplied by the platform.
type SheetsConfig struct {
	Enabled        bool
	SpreadsheetID  string
	CredentialsB64 string
	SheetRange     string
}

// WompiConfig holds the payment-processor settings.
type WompiConfig struct {
	PublicKey   string
	APIURL      string
	RedirectURL string
}

// MinIOConfig holds object storage settings for archived artifacts and
// signature images.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// IntakeConfig holds the document-generation pipeline switches.
type IntakeConfig struct {
	TemplatePath string
	SofficeBin   string
	Encrypt      bool
}

// AppConfig is the centralized configuration struct, populated once at
// startup from environment variables and injected into each component.
type AppConfig struct {
	Port           string
	PracticeName   string
	ClinicianEmail string
	Professional   string
	WebhookURL     string
	SMTP           SMTPConfig
	Sheets         SheetsConfig
	Wompi          WompiConfig
	MinIO          MinIOConfig
	Intake         IntakeConfig
}

// Load reads configuration from environment variables. A .env file can be
// auto-loaded by importing: _ "github.com/joho/godotenv/autoload".
func Load() *AppConfig {
	return &AppConfig{
		Port:           getEnv("PORT", "8080"),
		PracticeName:   getEnv("MAIL_FROM_NAME", "Kevin Criado Psicología"),
		ClinicianEmail: getEnv("CLINICIAN_EMAIL", ""),
		Professional:   getEnv("PROFESSIONAL_NAME", "Kevin Criado Pérez"),
		WebhookURL:     getEnv("ZAPIER_WEBHOOK_URL", ""),
		SMTP: SMTPConfig{
			Host:             getEnv("SMTP_HOST", ""),
			Port:             getEnvInt("SMTP_PORT", 587),
			User:             getEnv("SMTP_USER", ""),
			Pass:             getEnv("SMTP_PASS", ""),
			DisclosePassword: getEnvBool("SMTP_DISCLOSE_PASSWORD", false),
		},
		Sheets: SheetsConfig{
			Enabled:        getEnvBool("SHEETS_ENABLED", true),
			SpreadsheetID:  getEnv("SHEETS_SPREADSHEET_ID", ""),
			CredentialsB64: getEnv("SHEETS_CREDENTIALS_B64", ""),
			SheetRange:     getEnv("SHEETS_RANGE", "Registros!A:K"),
		},
		Wompi: WompiConfig{
			PublicKey:   getEnv("WOMPI_PUBLIC_KEY", ""),
			APIURL:      getEnv("WOMPI_API_URL", "https://production.wompi.co/v1/payment_links"),
			RedirectURL: getEnv("WOMPI_REDIRECT_URL", ""),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Intake: IntakeConfig{
			TemplatePath: getEnv("TEMPLATE_PATH", ""),
			SofficeBin:   getEnv("SOFFICE_BIN", "soffice"),
			Encrypt:      getEnvBool("INTAKE_ENCRYPT", true),
		},
	}
}

// Validate fails fast on any missing required variable, before any external
// call is attempted. Optional subsystems only require their variables when
// enabled.
func (c *AppConfig) Validate() error {
	required := []struct {
		key string
		val string
	}{
		{"SMTP_HOST", c.SMTP.Host},
		{"SMTP_USER", c.SMTP.User},
		{"SMTP_PASS", c.SMTP.Pass},
		{"CLINICIAN_EMAIL", c.ClinicianEmail},
		{"TEMPLATE_PATH", c.Intake.TemplatePath},
		{"WOMPI_PUBLIC_KEY", c.Wompi.PublicKey},
		{"ZAPIER_WEBHOOK_URL", c.WebhookURL},
		{"MINIO_ENDPOINT", c.MinIO.Endpoint},
		{"MINIO_ACCESS_KEY", c.MinIO.AccessKey},
		{"MINIO_SECRET_KEY", c.MinIO.SecretKey},
		{"MINIO_BUCKET", c.MinIO.Bucket},
	}
	for _, r := range required {
		if r.val == "" {
			return &ConfigurationError{Key: r.key}
		}
	}
	if c.Sheets.Enabled {
		if c.Sheets.SpreadsheetID == "" {
			return &ConfigurationError{Key: "SHEETS_SPREADSHEET_ID"}
		}
		if c.Sheets.CredentialsB64 == "" {
			return &ConfigurationError{Key: "SHEETS_CREDENTIALS_B64"}
		}
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
