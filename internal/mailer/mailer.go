// Package mailer is the outbound notifier. Rendering and delivery details
// stay behind the Mailer interface; callers hand over a template name,
// subject and recipients.
package mailer

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/damirpristav/dogs-app-backend/internal/config"
)

// Template names consumed by the mail provider.
const (
	TemplateActivateAccount = "activateAccount"
	TemplateResetPassword   = "resetPassword"
	TemplateNewAdoption     = "newAdoption"
)

// Message describes one outbound email.
type Message struct {
	Template string
	Subject  string
	To       []string
	Name     string // recipient display name
	URL      string // action link (activation/reset)
	Animal   string // animal name, for adoption notices
}

// Mailer sends template emails.
type Mailer interface {
	Send(msg Message) error
}

// SMTPMailer delivers mail through a plain SMTP relay.
type SMTPMailer struct {
	cfg config.MailConfig
}

func NewSMTP(cfg config.MailConfig) (*SMTPMailer, error) {
	if cfg.Host == "" || cfg.Port == 0 || cfg.From == "" {
		return nil, errors.New("invalid mail configuration")
	}
	return &SMTPMailer{cfg: cfg}, nil
}

func (m *SMTPMailer) Send(msg Message) error {
	if len(msg.To) == 0 {
		return errors.New("no recipients")
	}

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	body := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		m.cfg.From, strings.Join(msg.To, ", "), msg.Subject, renderText(msg),
	)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	if err := smtp.SendMail(addr, auth, m.cfg.From, msg.To, []byte(body)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func renderText(msg Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", msg.Name)
	switch msg.Template {
	case TemplateActivateAccount:
		fmt.Fprintf(&b, "Please activate your account: %s\n", msg.URL)
	case TemplateResetPassword:
		fmt.Fprintf(&b, "Reset your password (valid for 10 minutes): %s\n", msg.URL)
	case TemplateNewAdoption:
		fmt.Fprintf(&b, "A new adoption request was created for %s.\n", msg.Animal)
	default:
		fmt.Fprintf(&b, "%s\n", msg.Subject)
	}
	return b.String()
}

// Noop discards all mail. Used in development and tests.
type Noop struct{}

func (Noop) Send(Message) error { return nil }
