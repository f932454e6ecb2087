package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"intakeapi/internal/document"
	"intakeapi/internal/mail"
	"intakeapi/internal/model"
	"intakeapi/internal/sheets"
	"intakeapi/internal/storage"
	"intakeapi/internal/webhook"
)

// overridable in tests
var timeNow = time.Now

// IntakeOptions collapse the historical handler variants into configuration
// switches: encrypt or not, record or not, disclose the password to the
// patient or not.
type IntakeOptions struct {
	Encrypt          bool
	Record           bool
	DisclosePassword bool
	ClinicianEmail   string
	Professional     string
	Location         *time.Location
}

// IntakeResult is what a successful pipeline run produced.
type IntakeResult struct {
	Filename     string
	Password     string
	PDF          []byte
	SessionLabel string
}

// IntakeService runs the clinical-document generation-and-delivery pipeline.
type IntakeService interface {
	// Process fills the template, converts, optionally encrypts, emails
	// clinician and patient, archives a copy, and appends the record row.
	Process(ctx context.Context, rec model.IntakeRecord) (*IntakeResult, error)
	// Relay derives the consent flags and forwards the prepared record to
	// the alternate webhook delivery path instead of generating locally.
	Relay(ctx context.Context, rec model.IntakeRecord) error
	// Archived streams a previously archived document copy by filename.
	Archived(ctx context.Context, filename string) (io.ReadCloser, int64, error)
}

type intakeService struct {
	filler document.Filler
	conv   document.Converter
	prot   document.Protector
	mailer mail.Sender
	ledger sheets.Ledger
	store  storage.Storage
	hook   webhook.Forwarder
	opts   IntakeOptions
	log    *logrus.Entry
}

// NewIntakeService wires the pipeline. ledger may be nil when recording is
// disabled; store may be nil to skip archiving.
func NewIntakeService(
	filler document.Filler,
	conv document.Converter,
	prot document.Protector,
	mailer mail.Sender,
	ledger sheets.Ledger,
	store storage.Storage,
	hook webhook.Forwarder,
	opts IntakeOptions,
	log *logrus.Logger,
) IntakeService {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &intakeService{
		filler: filler,
		conv:   conv,
		prot:   prot,
		mailer: mailer,
		ledger: ledger,
		store:  store,
		hook:   hook,
		opts:   opts,
		log:    log.WithField("component", "intake"),
	}
}

func (s *intakeService) Process(ctx context.Context, rec model.IntakeRecord) (*IntakeResult, error) {
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrParse, err)
	}

	flags := model.DeriveConsentFlags(rec)

	filled, err := s.filler.Fill(rec, flags)
	if err != nil {
		return nil, err
	}

	pdf, err := s.conv.Convert(ctx, filled)
	if err != nil {
		return nil, err
	}

	fullName := rec.Get(model.FieldNombreCompleto)
	docNumber := rec.Get(model.FieldDocumento)
	sessionDate := rec.Get(model.FieldFechaSesion)
	if sessionDate == "" {
		sessionDate = timeNow().In(s.opts.Location).Format("2006-01-02")
	}

	password := model.AccessPassword(fullName, docNumber, sessionDate)
	filename := model.DocumentFilename(docNumber, sessionDate)

	if s.opts.Encrypt {
		pdf, err = s.prot.Protect(pdf, password)
		if err != nil {
			return nil, err
		}
	}

	if err := s.notify(ctx, rec, pdf, filename, password); err != nil {
		return nil, err
	}

	s.archive(ctx, pdf, filename)

	res := &IntakeResult{Filename: filename, Password: password, PDF: pdf}

	if s.opts.Record && s.ledger != nil {
		label, err := s.record(ctx, rec, sessionDate, password, filename)
		if err != nil {
			// The emails already went out; the failure is still fatal to
			// the request and nothing is rolled back.
			return nil, err
		}
		res.SessionLabel = label
	}

	s.log.WithFields(logrus.Fields{
		"documento": docNumber,
		"archivo":   filename,
	}).Info("historia clínica generada y enviada")

	return res, nil
}

// notify sends the clinician and patient messages concurrently and joins
// them all-must-succeed. Both sends are always attempted; a sent message is
// never rolled back on the other's failure.
func (s *intakeService) notify(ctx context.Context, rec model.IntakeRecord, pdf []byte, filename, password string) error {
	fullName := rec.Get(model.FieldNombreCompleto)
	attachment := mail.Attachment{Filename: filename, Content: pdf}

	clinician := mail.Message{
		To:      s.opts.ClinicianEmail,
		ReplyTo: rec.Get(model.FieldEmail),
		Subject: fmt.Sprintf("[HISTORIA CLÍNICA] %s (%s)", fullName, rec.Get(model.FieldDocumento)),
		HTML: fmt.Sprintf(`<h2>Historia Clínica Generada</h2>
<p>Se generó la historia clínica del paciente <strong>%s</strong>.</p>
<p>Contraseña del documento: <strong>%s</strong></p>`, fullName, password),
		Attachments: []mail.Attachment{attachment},
	}

	var clinErr, patientErr error
	g := new(errgroup.Group)
	g.Go(func() error {
		clinErr = s.mailer.Send(ctx, clinician)
		return nil
	})

	patientEmail := s.patientEmail(rec)
	if patientEmail != "" {
		patient := mail.Message{
			To:          patientEmail,
			Subject:     "Tu historia clínica - Kevin Criado Psicología",
			HTML:        s.patientBody(fullName, password),
			Attachments: []mail.Attachment{attachment},
		}
		g.Go(func() error {
			patientErr = s.mailer.Send(ctx, patient)
			return nil
		})
	}

	_ = g.Wait()
	if err := errors.Join(clinErr, patientErr); err != nil {
		return fmt.Errorf("%w: %v", model.ErrDelivery, err)
	}
	return nil
}

// patientEmail prefers the representative's address for minors.
func (s *intakeService) patientEmail(rec model.IntakeRecord) string {
	if rec.Representative != nil {
		if email := rec.Representative["email"]; email != "" {
			return email
		}
	}
	return rec.Get(model.FieldEmail)
}

func (s *intakeService) patientBody(fullName, password string) string {
	body := fmt.Sprintf(`<h2>Historia Clínica</h2>
<p>Estimado(a) %s,</p>
<p>Adjuntamos el documento de tu historia clínica.</p>`, fullName)
	if s.opts.DisclosePassword {
		body += fmt.Sprintf("<p>Contraseña de acceso: <strong>%s</strong></p>", password)
	} else {
		body += "<p>La contraseña de acceso te será comunicada por un canal aparte.</p>"
	}
	return body
}

// archive stores a copy of the final PDF. Best-effort: the emails are the
// system of record, so a storage failure is logged, not fatal.
func (s *intakeService) archive(ctx context.Context, pdf []byte, filename string) {
	if s.store == nil {
		return
	}
	_, err := s.store.Put(ctx, "historias/"+filename, bytes.NewReader(pdf), storage.PutOptions{
		Size:        int64(len(pdf)),
		ContentType: "application/pdf",
		Metadata:    map[string]string{"original-filename": filename},
	})
	if err != nil {
		s.log.WithError(err).Warn("no se pudo archivar el PDF")
	}
}

// record counts prior same-day sessions and appends the row. Read-then-append
// has no locking; concurrent submissions may record duplicate counts.
func (s *intakeService) record(ctx context.Context, rec model.IntakeRecord, sessionDate, password, filename string) (string, error) {
	docNumber := rec.Get(model.FieldDocumento)

	prior, err := s.ledger.CountSessions(ctx, docNumber, sessionDate)
	if err != nil {
		return "", err
	}
	label := fmt.Sprintf("Sesión %d", prior+1)

	row := model.SpreadsheetRow{
		Date:         sessionDate,
		Time:         timeNow().In(s.opts.Location).Format("15:04"),
		Document:     docNumber,
		FullName:     rec.Get(model.FieldNombreCompleto),
		Reason:       rec.Get(model.FieldMotivo),
		Password:     password,
		Filename:     filename,
		Channel:      "Email",
		SessionLabel: label,
		Professional: s.opts.Professional,
		Status:       "Enviado",
	}
	if err := s.ledger.Append(ctx, row); err != nil {
		return "", err
	}
	return label, nil
}

// Archived retrieves an archived document copy from object storage. Archiving
// is best-effort, so a missing copy is a normal outcome for older records.
func (s *intakeService) Archived(ctx context.Context, filename string) (io.ReadCloser, int64, error) {
	if s.store == nil {
		return nil, 0, errors.New("el archivo de historias no está configurado")
	}
	rc, info, err := s.store.Get(ctx, "historias/"+filename)
	if err != nil {
		return nil, 0, err
	}
	return rc, info.Size, nil
}

func (s *intakeService) Relay(ctx context.Context, rec model.IntakeRecord) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("%w: %v", model.ErrParse, err)
	}

	flags := model.DeriveConsentFlags(rec)
	payload := make(map[string]string, len(rec.Fields)+4)
	for k, v := range rec.Fields {
		payload[k] = v
	}
	for k, v := range flags.Map() {
		payload[k] = v
	}

	if err := s.hook.Forward(ctx, payload); err != nil {
		return err
	}
	s.log.WithField("documento", rec.Get(model.FieldDocumento)).Info("registro reenviado al webhook")
	return nil
}
