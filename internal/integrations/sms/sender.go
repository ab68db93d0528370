// Package sms отправляет SMS через Twilio
package sms

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// MessageCreator часть Twilio API, используемая отправителем
type MessageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Sender отправитель SMS
type Sender struct {
	api  MessageCreator
	from string
	log  Logger
}

// New создает отправителя с учетными данными Twilio
func New(accountSID, authToken, from string, log Logger) *Sender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return NewWithAPI(client.Api, from, log)
}

// NewWithAPI создает отправителя с произвольной реализацией API
func NewWithAPI(api MessageCreator, from string, log Logger) *Sender {
	return &Sender{api: api, from: from, log: log}
}

// SendSMS отправляет текстовое сообщение
func (s *Sender) SendSMS(ctx context.Context, to, body string) error {
	if to == "" {
		return ErrNoRecipient
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("%w: to=%s: %v", ErrSend, to, err)
	}

	if resp != nil && resp.Sid != nil {
		s.log.Info("SMS sent to %s, sid=%s", to, *resp.Sid)
	}

	return nil
}
