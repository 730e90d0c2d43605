package mailer

import (
	"context"
	"errors"
)

var ErrNoRecipients = errors.New("no notification recipients configured")

type Message struct {
	To      []string
	Subject string
	HTML    string
	Text    string // derived from HTML when empty
}

type Sender interface {
	Send(ctx context.Context, m Message) error
}

type noop struct{}

// NewNoop drops every message; used when MAIL_PROVIDER=none.
func NewNoop() Sender { return noop{} }

func (noop) Send(context.Context, Message) error { return nil }
