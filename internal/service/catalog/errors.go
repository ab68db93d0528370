package catalog

import "errors"

var (
	// ErrServiceMenuNotFound возвращается, когда пункт меню не найден
	ErrServiceMenuNotFound = errors.New("service menu not found")

	// ErrHolidayNotFound возвращается, когда выходной не найден
	ErrHolidayNotFound = errors.New("holiday not found")

	// ErrAlreadyExists возвращается при нарушении уникальности (название меню, дата выходного, интервал слота)
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
