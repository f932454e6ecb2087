package document

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"intakeapi/internal/model"
)

// Protector password-protects a PDF buffer. Printing stays allowed; editing
// and copying are denied.
type Protector interface {
	Protect(pdf []byte, password string) ([]byte, error)
}

// PDFProtector encrypts with pdfcpu using the derived access password as
// both user and owner password.
type PDFProtector struct{}

// NewPDFProtector returns a ready Protector.
func NewPDFProtector() *PDFProtector {
	return &PDFProtector{}
}

// Protect returns the encrypted PDF, or EncryptionError when the library
// rejects the input.
func (p *PDFProtector) Protect(pdf []byte, password string) ([]byte, error) {
	conf := pdfmodel.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password
	conf.Permissions = pdfmodel.PermissionsPrint

	var buf bytes.Buffer
	if err := api.Encrypt(bytes.NewReader(pdf), &buf, conf); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrEncryption, err)
	}
	return buf.Bytes(), nil
}
