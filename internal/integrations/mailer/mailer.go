// Package mailer отправляет письма через SMTP (gomail)
package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Dialer отправляет подготовленные письма (реализуется *gomail.Dialer)
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Config параметры SMTP
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer отправитель писем
type Mailer struct {
	dialer Dialer
	from   string
}

// New создает отправителя с SMTP подключением
func New(cfg Config) *Mailer {
	return NewWithDialer(gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password), cfg.From)
}

// NewWithDialer создает отправителя с произвольным Dialer
func NewWithDialer(dialer Dialer, from string) *Mailer {
	return &Mailer{dialer: dialer, from: from}
}

// SendEmail отправляет текстовое письмо
func (m *Mailer) SendEmail(ctx context.Context, to, subject, body string) error {
	if to == "" {
		return ErrNoRecipient
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("%w: to=%s: %v", ErrSend, to, err)
	}

	return nil
}
