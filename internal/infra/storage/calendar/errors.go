package calendar

import "errors"

var (
	// ErrHolidayNotFound возвращается, когда выходной не найден
	ErrHolidayNotFound = errors.New("calendar.repository: holiday not found")

	// ErrTimeSlotNotFound возвращается, когда временной слот не найден
	ErrTimeSlotNotFound = errors.New("calendar.repository: time slot not found")

	// ErrDuplicate возвращается при нарушении уникальности (дата выходного, интервал слота)
	ErrDuplicate = errors.New("calendar.repository: duplicate entry")

	ErrBuildQuery = errors.New("calendar.repository: failed to build query")
	ErrExecQuery  = errors.New("calendar.repository: failed to execute query")
	ErrScanRow    = errors.New("calendar.repository: failed to scan row")
)
