package mailer

import "errors"

var (
	// ErrNoRecipient возвращается при пустом адресе получателя
	ErrNoRecipient = errors.New("mailer: recipient address is empty")

	// ErrSend возвращается при ошибке доставки письма SMTP сервером
	ErrSend = errors.New("mailer: failed to send email")
)
