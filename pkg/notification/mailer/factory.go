package mailer

import (
	"fmt"

	"go.uber.org/zap"

	"dispatch/config"
)

// FromConfig picks the provider named by MAIL_PROVIDER. Real providers are
// wrapped in a circuit breaker.
func FromConfig(cfg config.AppConfig, log *zap.Logger) (Sender, error) {
	switch cfg.MailProvider {
	case "", "none":
		return NewNoop(), nil
	case "smtp":
		if cfg.SMTPHost == "" {
			return nil, fmt.Errorf("SMTP_HOST is required for MAIL_PROVIDER=smtp")
		}
		return WithBreaker(NewSMTP(SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		}), log), nil
	case "mailgun":
		s, err := NewMailgun(MailgunConfig{Domain: cfg.MailgunDomain, Key: cfg.MailgunAPIKey, From: cfg.MailFrom})
		if err != nil {
			return nil, err
		}
		return WithBreaker(s, log), nil
	}
	return nil, fmt.Errorf("unknown MAIL_PROVIDER %q", cfg.MailProvider)
}
