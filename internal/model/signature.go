package model

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Signature payload types submitted by the signing frontend.
const (
	SignatureAdult = "ADULTO"
	SignatureMinor = "MENOR_DE_EDAD"
)

// SignatureParty identifies one signer and carries their base64 data-URL
// signature image.
type SignatureParty struct {
	Nombre    string `json:"nombre"`
	Documento string `json:"documento"`
	Email     string `json:"email"`
	Telefono  string `json:"telefono"`
	Firma     string `json:"firma"`
}

// SignaturePayload is the body of a signature submission. Adults sign for
// themselves; minors additionally carry the legal representative who signs
// the consent while the minor provides assent.
type SignaturePayload struct {
	Type          string          `json:"type"`
	Paciente      SignatureParty  `json:"paciente"`
	Representante *SignatureParty `json:"representante,omitempty"`
}

// IsMinor reports whether the payload is a minor-with-representative case.
func (p SignaturePayload) IsMinor() bool {
	return p.Type == SignatureMinor && p.Representante != nil
}

// LegalSigner returns the party whose signature carries legal weight: the
// representative when present, otherwise the patient.
func (p SignaturePayload) LegalSigner() SignatureParty {
	if p.Representante != nil {
		return *p.Representante
	}
	return p.Paciente
}

// RecolorSignature rewrites the white stroke color token embedded in a
// signature data URL to black, so the stroke is visible on a white document
// background. Empty input stays empty.
func RecolorSignature(dataURL string) string {
	if dataURL == "" {
		return ""
	}
	return strings.ReplaceAll(dataURL, "rgb(255, 255, 255)", "rgb(0, 0, 0)")
}

// DecodeSignature strips the data-URL prefix and decodes the base64 image
// bytes.
func DecodeSignature(dataURL string) ([]byte, error) {
	payload := dataURL
	if idx := strings.Index(dataURL, ";base64,"); idx >= 0 {
		payload = dataURL[idx+len(";base64,"):]
	}
	b, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("firma no es base64 válido: %w", err)
	}
	return b, nil
}
