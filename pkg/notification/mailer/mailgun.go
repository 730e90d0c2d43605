package mailer

import (
	"context"
	"errors"

	"github.com/mailgun/mailgun-go/v4"
)

type MailgunConfig struct {
	Domain string
	Key    string
	From   string
}

type mailgunSender struct {
	cfg MailgunConfig
	mg  *mailgun.MailgunImpl
}

func NewMailgun(cfg MailgunConfig) (Sender, error) {
	if cfg.Key == "" || cfg.Domain == "" || cfg.From == "" {
		return nil, errors.New("invalid Mailgun configuration")
	}
	return &mailgunSender{cfg: cfg, mg: mailgun.NewMailgun(cfg.Domain, cfg.Key)}, nil
}

func (s *mailgunSender) Send(ctx context.Context, m Message) error {
	if len(m.To) == 0 {
		return ErrNoRecipients
	}
	text := m.Text
	if text == "" {
		text = PlainText(m.HTML)
	}
	msg := s.mg.NewMessage(s.cfg.From, m.Subject, text)
	if m.HTML != "" {
		msg.SetHtml(m.HTML)
	}
	for _, to := range m.To {
		if err := msg.AddRecipient(to); err != nil {
			return err
		}
	}
	_, _, err := s.mg.Send(ctx, msg)
	return err
}
