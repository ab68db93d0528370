package get_booking_calendar

import (
	"context"

	getBookingCalendar "github.com/m04kA/BikeRepair-BookingService/internal/usecase/get_booking_calendar"
)

type GetBookingCalendarUseCase interface {
	Execute(ctx context.Context) (*getBookingCalendar.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
