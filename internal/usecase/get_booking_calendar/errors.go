package get_booking_calendar

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_booking_calendar: internal error")
)
