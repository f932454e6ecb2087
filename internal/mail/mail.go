package mail

import "context"

// Package mail delivers the pipeline's outbound email over authenticated
// SMTP. One message's failure never rolls back an already-sent message;
// partial delivery is possible and is not reconciled.

// Attachment is one file carried by a message.
type Attachment struct {
	Filename string
	Content  []byte
}

// Message is one logical email: a single recipient, HTML body, and zero or
// more attachments.
type Message struct {
	To          string
	ReplyTo     string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Sender delivers a single message over an authenticated session.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
