package notifications

import (
	"context"

	"github.com/m04kA/BikeRepair-BookingService/internal/integrations/userservice"
)

// UserServiceClient источник контактных данных клиента
type UserServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*userservice.User, error)
}

// EmailSender канал email
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// SMSSender канал SMS
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// Metrics счетчики уведомлений
type Metrics interface {
	ObserveNotification(kind, channel, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
