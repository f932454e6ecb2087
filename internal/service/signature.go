package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"intakeapi/internal/mail"
	"intakeapi/internal/model"
	"intakeapi/internal/storage"
)

// SignatureService relays digitally captured signatures: recolors them,
// persists the images, and notifies clinician and signer.
type SignatureService interface {
	Relay(ctx context.Context, p model.SignaturePayload) error
}

type signatureService struct {
	mailer         mail.Sender
	store          storage.Storage
	clinicianEmail string
	opts           IntakeOptions
	log            *logrus.Entry
}

// NewSignatureService wires the relay.
func NewSignatureService(mailer mail.Sender, store storage.Storage, clinicianEmail string, opts IntakeOptions, log *logrus.Logger) SignatureService {
	return &signatureService{
		mailer:         mailer,
		store:          store,
		clinicianEmail: clinicianEmail,
		opts:           opts,
		log:            log.WithField("component", "firmas"),
	}
}

func (s *signatureService) Relay(ctx context.Context, p model.SignaturePayload) error {
	legal := p.LegalSigner()
	patient := p.Paciente

	legalSig := model.RecolorSignature(legal.Firma)
	var minorSig string
	if p.IsMinor() {
		minorSig = model.RecolorSignature(patient.Firma)
	}
	if legalSig == "" {
		return fmt.Errorf("%w: falta la firma principal", model.ErrRelay)
	}

	folder := strings.ReplaceAll(patient.Nombre, " ", "_") + "_" + patient.Documento

	legalPNG, err := model.DecodeSignature(legalSig)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrRelay, err)
	}
	legalFile := fmt.Sprintf("firma_paciente_%s.png", patient.Documento)
	if err := s.persist(ctx, folder, legalFile, legalPNG); err != nil {
		return err
	}

	var minorPNG []byte
	if minorSig != "" {
		minorPNG, err = model.DecodeSignature(minorSig)
		if err != nil {
			return fmt.Errorf("%w: %v", model.ErrRelay, err)
		}
		minorFile := fmt.Sprintf("firma_menor_%s.png", patient.Documento)
		if err := s.persist(ctx, folder, minorFile, minorPNG); err != nil {
			return err
		}
	}

	if err := s.notify(ctx, p, legalPNG, minorPNG); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"documento": patient.Documento,
		"menor":     p.IsMinor(),
	}).Info("firmas recibidas, guardadas y notificadas")
	return nil
}

func (s *signatureService) persist(ctx context.Context, folder, filename string, png []byte) error {
	key := folder + "/firmas/" + filename
	_, err := s.store.Put(ctx, key, bytes.NewReader(png), storage.PutOptions{
		Size:        int64(len(png)),
		ContentType: "image/png",
	})
	if err != nil {
		return fmt.Errorf("%w: guardado de %s: %v", model.ErrRelay, filename, err)
	}
	return nil
}

// notify sends the clinician message with the signature images attached and
// the confirmation to the signer, concurrently, all-must-succeed.
func (s *signatureService) notify(ctx context.Context, p model.SignaturePayload, legalPNG, minorPNG []byte) error {
	legal := p.LegalSigner()
	patient := p.Paciente

	attachments := []mail.Attachment{{
		Filename: fmt.Sprintf("firma_principal_%s.png", strings.ReplaceAll(legal.Nombre, " ", "_")),
		Content:  legalPNG,
	}}
	if minorPNG != nil {
		attachments = append(attachments, mail.Attachment{
			Filename: fmt.Sprintf("firma_menor_%s.png", strings.ReplaceAll(patient.Nombre, " ", "_")),
			Content:  minorPNG,
		})
	}

	clinician := mail.Message{
		To:      s.clinicianEmail,
		ReplyTo: legal.Email,
		Subject: fmt.Sprintf("[FIRMA VÁLIDA] Documentos Clínicos Firmados por %s", legal.Nombre),
		HTML: fmt.Sprintf(`<h2>Documentación Clínica Firmada</h2>
<p>Se recibieron las firmas digitales para el paciente <strong>%s</strong>.</p>
<p>Las imágenes quedaron guardadas en la carpeta del paciente.</p>`, patient.Nombre),
		Attachments: attachments,
	}

	confirmation := mail.Message{
		To:      legal.Email,
		Subject: "Confirmación de Documentos Firmados - Kevin Criado Psicología",
		HTML: fmt.Sprintf(`<h2>Proceso de firma completado</h2>
<p>Estimado(a) %s,</p>
<p>Se ha recibido correctamente su firma digital y la del paciente %s.</p>
<p>Los documentos serán completados tras la sesión clínica.</p>`, legal.Nombre, patient.Nombre),
	}

	var clinErr, confErr error
	g := new(errgroup.Group)
	g.Go(func() error {
		clinErr = s.mailer.Send(ctx, clinician)
		return nil
	})
	g.Go(func() error {
		confErr = s.mailer.Send(ctx, confirmation)
		return nil
	})
	_ = g.Wait()

	if err := errors.Join(clinErr, confErr); err != nil {
		return fmt.Errorf("%w: %v", model.ErrRelay, err)
	}
	return nil
}
