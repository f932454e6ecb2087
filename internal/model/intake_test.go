package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveConsentFlags(t *testing.T) {
	tests := []struct {
		name          string
		grabacion     string
		transcripcion string
		want          ConsentFlags
	}{
		{
			name:          "both authorized",
			grabacion:     "SI",
			transcripcion: "SI",
			want:          ConsentFlags{"X", " ", "X", " "},
		},
		{
			name:          "recording only",
			grabacion:     "SI",
			transcripcion: "NO",
			want:          ConsentFlags{"X", " ", " ", "X"},
		},
		{
			name:          "both denied",
			grabacion:     "NO",
			transcripcion: "NO",
			want:          ConsentFlags{" ", "X", " ", "X"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := IntakeRecord{Fields: map[string]string{
				FieldGrabacion:     tt.grabacion,
				FieldTranscripcion: tt.transcripcion,
			}}
			got := DeriveConsentFlags(rec)
			assert.Equal(t, tt.want, got)

			// Exactly one of each pair is marked.
			assert.NotEqual(t, got.GrabacionSI, got.GrabacionNO)
			assert.NotEqual(t, got.TranscripcionSI, got.TranscripcionNO)
		})
	}
}

func TestAccessPassword(t *testing.T) {
	pw := AccessPassword("Ana Ruiz", "123", "2026-09-01")
	assert.Equal(t, "AR12320260901", pw)

	// Deterministic for fixed input.
	assert.Equal(t, pw, AccessPassword("Ana Ruiz", "123", "2026-09-01"))

	// Changing any input changes the password.
	assert.NotEqual(t, pw, AccessPassword("Ana Gómez Ruiz", "123", "2026-09-01"))
	assert.NotEqual(t, pw, AccessPassword("Ana Ruiz", "124", "2026-09-01"))
	assert.NotEqual(t, pw, AccessPassword("Ana Ruiz", "123", "2026-09-02"))
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "AR", Initials("Ana Ruiz"))
	assert.Equal(t, "JAGM", Initials("juan antonio gómez martínez"))
	assert.Equal(t, "", Initials("   "))
}

func TestDateDigits(t *testing.T) {
	assert.Equal(t, "20260901", DateDigits("2026-09-01"))
	assert.Equal(t, "01092026", DateDigits("01/09/2026"))
	assert.Equal(t, "", DateDigits("hoy"))
}

func TestDocumentFilename(t *testing.T) {
	assert.Equal(t, "HC_123_20260901.pdf", DocumentFilename("123", "2026-09-01"))
}

func TestIntakeRecordUnmarshal(t *testing.T) {
	body := `{
		"DOCUMENTO": "123",
		"NOMBRE_COMPLETO": "Ana Ruiz",
		"EDAD": 27,
		"autoriza_grabacion": "SI",
		"representante": {"nombre": "Luis Ruiz", "email": "luis@example.com"}
	}`

	var rec IntakeRecord
	require.NoError(t, json.Unmarshal([]byte(body), &rec))

	assert.Equal(t, "123", rec.Get(FieldDocumento))
	assert.Equal(t, "Ana Ruiz", rec.Get(FieldNombreCompleto))
	assert.Equal(t, "27", rec.Get("EDAD"), "scalars are stringified")
	require.NotNil(t, rec.Representative)
	assert.Equal(t, "luis@example.com", rec.Representative["email"])
	assert.Empty(t, rec.Get("representante"), "sub-record is not a flat field")
}

func TestIntakeRecordValidate(t *testing.T) {
	valid := IntakeRecord{Fields: map[string]string{
		FieldDocumento:      "123",
		FieldNombreCompleto: "Ana Ruiz",
		FieldGrabacion:      "SI",
		FieldTranscripcion:  "NO",
	}}
	assert.NoError(t, valid.Validate())

	missingDoc := IntakeRecord{Fields: map[string]string{
		FieldNombreCompleto: "Ana Ruiz",
		FieldGrabacion:      "SI",
		FieldTranscripcion:  "NO",
	}}
	assert.Error(t, missingDoc.Validate())

	badConsent := IntakeRecord{Fields: map[string]string{
		FieldDocumento:      "123",
		FieldNombreCompleto: "Ana Ruiz",
		FieldGrabacion:      "tal vez",
		FieldTranscripcion:  "NO",
	}}
	assert.Error(t, badConsent.Validate())
}
