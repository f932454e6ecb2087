package config

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SMTP_HOST", "smtp.zoho.com")
	t.Setenv("SMTP_USER", "consulta@example.com")
	t.Setenv("SMTP_PASS", "secret")
	t.Setenv("CLINICIAN_EMAIL", "psicologia@example.com")
	t.Setenv("TEMPLATE_PATH", "/srv/plantilla.docx")
	t.Setenv("WOMPI_PUBLIC_KEY", "pub_test_key")
	t.Setenv("ZAPIER_WEBHOOK_URL", "https://hooks.example.com/x")
	t.Setenv("MINIO_ENDPOINT", "minio:9000")
	t.Setenv("MINIO_ACCESS_KEY", "ak")
	t.Setenv("MINIO_SECRET_KEY", "sk")
	t.Setenv("MINIO_BUCKET", "pacientes")
	t.Setenv("SHEETS_SPREADSHEET_ID", "sheet-id")
	t.Setenv("SHEETS_CREDENTIALS_B64", "e30=")
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("SMTP_DISCLOSE_PASSWORD", "true")
	t.Setenv("INTAKE_ENCRYPT", "false")

	cfg := Load()

	assert.Equal(t, "smtp.zoho.com", cfg.SMTP.Host)
	assert.Equal(t, 465, cfg.SMTP.Port)
	assert.True(t, cfg.SMTP.DisclosePassword)
	assert.False(t, cfg.Intake.Encrypt)
	assert.Equal(t, "soffice", cfg.Intake.SofficeBin)
	assert.Equal(t, "Registros!A:K", cfg.Sheets.SheetRange)
	assert.Equal(t, "https://production.wompi.co/v1/payment_links", cfg.Wompi.APIURL)
}

func TestValidate(t *testing.T) {
	setRequiredEnv(t)
	require.NoError(t, Load().Validate())

	t.Run("missing smtp credentials", func(t *testing.T) {
		t.Setenv("SMTP_PASS", "")
		err := Load().Validate()
		require.Error(t, err)

		var cerr *ConfigurationError
		require.True(t, errors.As(err, &cerr))
		assert.Equal(t, "SMTP_PASS", cerr.Key)
	})

	t.Run("sheets variables only required when enabled", func(t *testing.T) {
		t.Setenv("SHEETS_SPREADSHEET_ID", "")

		err := Load().Validate()
		var cerr *ConfigurationError
		require.True(t, errors.As(err, &cerr))
		assert.Equal(t, "SHEETS_SPREADSHEET_ID", cerr.Key)

		t.Setenv("SHEETS_ENABLED", "false")
		assert.NoError(t, Load().Validate())
	})
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
