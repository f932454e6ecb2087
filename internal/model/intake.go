package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Field names the intake form must always submit.
const (
	FieldDocumento      = "DOCUMENTO"
	FieldNombreCompleto = "NOMBRE_COMPLETO"
	FieldEmail          = "EMAIL"
	FieldFechaSesion    = "FECHA_SESION"
	FieldMotivo         = "MOTIVO_CONSULTA"
	FieldGrabacion      = "autoriza_grabacion"
	FieldTranscripcion  = "autoriza_transcripcion"
)

const representativeField = "representante"

var validate = validator.New()

// IntakeRecord is the flat form-field → value mapping submitted by the intake
// form. Minors carry an additional representative sub-record. A record lives
// for the duration of one request only; it is never persisted beyond the
// spreadsheet row and the rendered document.
type IntakeRecord struct {
	Fields         map[string]string
	Representative map[string]string
}

// UnmarshalJSON accepts the frontend's flat JSON object. String values are
// taken as-is, scalar non-strings are stringified, and the optional
// "representante" object becomes the Representative sub-record.
func (r *IntakeRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Fields = make(map[string]string, len(raw))
	for k, v := range raw {
		if k == representativeField {
			rep := map[string]string{}
			if err := json.Unmarshal(v, &rep); err != nil {
				return fmt.Errorf("campo %q: %w", k, err)
			}
			r.Representative = rep
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			r.Fields[k] = s
			continue
		}
		var anyVal any
		if err := json.Unmarshal(v, &anyVal); err != nil {
			return fmt.Errorf("campo %q: %w", k, err)
		}
		r.Fields[k] = fmt.Sprint(anyVal)
	}
	return nil
}

// Get returns the value of a form field, or "" when absent.
func (r IntakeRecord) Get(key string) string {
	return r.Fields[key]
}

// requiredIntakeFields is the minimal identity/consent subset every
// submission must carry before any external call is made.
type requiredIntakeFields struct {
	Documento      string `validate:"required"`
	NombreCompleto string `validate:"required"`
	Grabacion      string `validate:"required,oneof=SI NO"`
	Transcripcion  string `validate:"required,oneof=SI NO"`
}

// Validate checks the required identity and consent fields.
func (r IntakeRecord) Validate() error {
	req := requiredIntakeFields{
		Documento:      r.Get(FieldDocumento),
		NombreCompleto: r.Get(FieldNombreCompleto),
		Grabacion:      r.Get(FieldGrabacion),
		Transcripcion:  r.Get(FieldTranscripcion),
	}
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("datos de formulario incompletos: %w", err)
	}
	return nil
}

// ConsentFlags are the four derived checkbox markers embedded into the
// generated document. Exactly one of each SI/NO pair is "X", the other " ".
type ConsentFlags struct {
	GrabacionSI     string
	GrabacionNO     string
	TranscripcionSI string
	TranscripcionNO string
}

// DeriveConsentFlags computes the checkbox markers from the two consent
// answers. Any answer other than "SI" marks the NO box.
func DeriveConsentFlags(rec IntakeRecord) ConsentFlags {
	mark := func(answer string, want string) string {
		if answer == want {
			return "X"
		}
		return " "
	}
	grab := rec.Get(FieldGrabacion)
	trans := rec.Get(FieldTranscripcion)
	return ConsentFlags{
		GrabacionSI:     mark(grab, "SI"),
		GrabacionNO:     mark(grab, "NO"),
		TranscripcionSI: mark(trans, "SI"),
		TranscripcionNO: mark(trans, "NO"),
	}
}

// Map returns the placeholder names the document template uses for the flags.
func (f ConsentFlags) Map() map[string]string {
	return map[string]string{
		"GRABACION_SI":     f.GrabacionSI,
		"GRABACION_NO":     f.GrabacionNO,
		"TRANSCRIPCION_SI": f.TranscripcionSI,
		"TRANSCRIPCION_NO": f.TranscripcionNO,
	}
}

// Initials returns the first letter of every whitespace-separated word of a
// full name, uppercased. "Ana Ruiz" → "AR".
func Initials(fullName string) string {
	var b strings.Builder
	for _, word := range strings.Fields(fullName) {
		for _, r := range word {
			b.WriteRune(unicode.ToUpper(r))
			break
		}
	}
	return b.String()
}

// DateDigits strips everything but digits from a date string, so both
// "2026-09-01" and "01/09/2026" collapse to their digit form.
func DateDigits(date string) string {
	var b strings.Builder
	for _, r := range date {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// AccessPassword derives the document password from patient identity fields:
// initials + document number + date digits. It is obfuscation for email
// transit, not authentication; no cryptographic strength is claimed.
func AccessPassword(fullName, document, date string) string {
	return Initials(fullName) + document + DateDigits(date)
}

// DocumentFilename names the generated artifact: HC_<document>_<YYYYMMDD>.pdf.
func DocumentFilename(document, date string) string {
	return fmt.Sprintf("HC_%s_%s.pdf", document, DateDigits(date))
}
