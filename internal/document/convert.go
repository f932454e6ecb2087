package document

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"intakeapi/internal/model"
)

// Converter turns a filled DOCX buffer into an equivalent PDF buffer.
type Converter interface {
	Convert(ctx context.Context, doc []byte) ([]byte, error)
}

// SofficeConverter shells out to the LibreOffice binary through a scoped
// temporary directory. The directory is removed on every exit path so
// repeated invocations of a long-lived worker never accumulate files.
type SofficeConverter struct {
	bin string
}

// NewSofficeConverter builds a converter around the given binary name or
// path ("soffice" by default).
func NewSofficeConverter(bin string) *SofficeConverter {
	return &SofficeConverter{bin: bin}
}

// Convert writes the document to a temp file, runs the converter headless,
// and reads the produced PDF back. A converter failure is terminal for the
// request; nothing is retried.
func (c *SofficeConverter) Convert(ctx context.Context, doc []byte) ([]byte, error) {
	dir, err := os.MkdirTemp("", "hc-convert-*")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrConversion, err)
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "documento.docx")
	if err := os.WriteFile(in, doc, 0o600); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrConversion, err)
	}

	cmd := exec.CommandContext(ctx, c.bin, "--headless", "--convert-to", "pdf", "--outdir", dir, in)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%w: %v: %s", model.ErrConversion, err, out)
	}

	pdf, err := os.ReadFile(filepath.Join(dir, "documento.pdf"))
	if err != nil {
		return nil, fmt.Errorf("%w: el convertidor no produjo salida: %v", model.ErrConversion, err)
	}
	return pdf, nil
}
