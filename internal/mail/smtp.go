package mail

import (
	"bytes"
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"intakeapi/internal/config"
	"intakeapi/internal/model"
)

// SMTPSender delivers messages through the practice's mail provider. Each
// Send dials a fresh authenticated session and discards it afterwards; no
// transport state spans requests.
type SMTPSender struct {
	cfg      config.SMTPConfig
	fromName string
}

// NewSMTPSender builds a sender from validated configuration.
func NewSMTPSender(cfg config.SMTPConfig, fromName string) *SMTPSender {
	return &SMTPSender{cfg: cfg, fromName: fromName}
}

// Send delivers one message. Failures carry the provider's error verbatim
// inside a DeliveryError.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m, err := s.build(msg)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrDelivery, err)
	}

	client, err := gomail.NewClient(s.cfg.Host,
		gomail.WithPort(s.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.User),
		gomail.WithPassword(s.cfg.Pass),
		gomail.WithTLSPortPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrDelivery, err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("%w: %v", model.ErrDelivery, err)
	}
	return nil
}

// build assembles the wire message from the logical one.
func (s *SMTPSender) build(msg Message) (*gomail.Msg, error) {
	m := gomail.NewMsg()
	if err := m.FromFormat(s.fromName, s.cfg.User); err != nil {
		return nil, err
	}
	if err := m.To(msg.To); err != nil {
		return nil, err
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return nil, err
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextHTML, msg.HTML)
	for _, att := range msg.Attachments {
		if err := m.AttachReader(att.Filename, bytes.NewReader(att.Content)); err != nil {
			return nil, err
		}
	}
	return m, nil
}
