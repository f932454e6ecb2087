package model

import (
	"errors"
	"fmt"
)

// Pipeline error classes. Components wrap the underlying library error with
// the matching sentinel so handlers and tests can classify failures with
// errors.Is while the verbatim message still reaches the response body.
var (
	ErrParse           = errors.New("solicitud inválida")
	ErrTemplateMissing = errors.New("plantilla no encontrada")
	ErrConversion      = errors.New("conversión a PDF fallida")
	ErrEncryption      = errors.New("cifrado del PDF fallido")
	ErrDelivery        = errors.New("envío de correo fallido")
	ErrRecording       = errors.New("registro en hoja de cálculo fallido")
	ErrPaymentGateway  = errors.New("pasarela de pagos respondió con error")
	ErrRelay           = errors.New("procesamiento de firmas fallido")
)

// RenderError reports a template placeholder that had no corresponding field
// in the submitted record. No partial render is returned alongside it.
type RenderError struct {
	Placeholder string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("marcador sin resolver en la plantilla: %s", e.Placeholder)
}
