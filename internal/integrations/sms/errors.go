package sms

import "errors"

var (
	// ErrNoRecipient возвращается при пустом номере получателя
	ErrNoRecipient = errors.New("sms: recipient phone is empty")

	// ErrSend возвращается при ошибке Twilio API
	ErrSend = errors.New("sms: failed to send message")
)
