package document

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"regexp"

	docx "github.com/lukasjarosch/go-docx"

	"intakeapi/internal/model"
)

// Filler produces a filled clinical-history document from an intake record.
type Filler interface {
	Fill(rec model.IntakeRecord, flags model.ConsentFlags) ([]byte, error)
}

// TemplateFiller fills a fixed DOCX template by placeholder substitution.
// The template is re-opened per request so a filled document never leaks
// state into the next one; filling is deterministic for identical input.
type TemplateFiller struct {
	path string
}

// NewTemplateFiller verifies the template exists up front so a missing file
// fails at startup, not on the first patient submission.
func NewTemplateFiller(path string) (*TemplateFiller, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrTemplateMissing, path)
	}
	return &TemplateFiller{path: path}, nil
}

// leftover matches a placeholder token that survived substitution, meaning
// the submitted record had no value for it.
var leftover = regexp.MustCompile(`\{([A-Z0-9_]+)\}`)

// Fill replaces every named placeholder with the matching field value or
// derived consent flag. It returns no partial output: an unresolved
// placeholder aborts the render with its name.
func (f *TemplateFiller) Fill(rec model.IntakeRecord, flags model.ConsentFlags) ([]byte, error) {
	doc, err := docx.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrTemplateMissing, err)
	}

	placeholders := make(docx.PlaceholderMap, len(rec.Fields)+4)
	for k, v := range rec.Fields {
		placeholders[k] = v
	}
	for k, v := range flags.Map() {
		placeholders[k] = v
	}

	if err := doc.ReplaceAll(placeholders); err != nil {
		return nil, fmt.Errorf("sustitución de marcadores fallida: %w", err)
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, fmt.Errorf("escritura del documento fallida: %w", err)
	}

	if name, err := unresolvedPlaceholder(buf.Bytes()); err == nil && name != "" {
		return nil, &model.RenderError{Placeholder: name}
	}
	return buf.Bytes(), nil
}

// unresolvedPlaceholder scans the filled document's main part for a
// placeholder token that had no corresponding field.
func unresolvedPlaceholder(filled []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(filled), int64(len(filled)))
	if err != nil {
		return "", err
	}
	for _, file := range zr.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", err
		}
		content := new(bytes.Buffer)
		_, err = content.ReadFrom(rc)
		rc.Close()
		if err != nil {
			return "", err
		}
		if m := leftover.FindSubmatch(content.Bytes()); m != nil {
			return string(m[1]), nil
		}
	}
	return "", nil
}
