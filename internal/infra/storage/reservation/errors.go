package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrSlotTaken возвращается, когда (date, time_slot) уже занят подтвержденным бронированием
	// (нарушение частичного уникального индекса)
	ErrSlotTaken = errors.New("reservation.repository: slot already taken")

	// ErrStatusChanged возвращается, когда бронирование уже не в ожидаемом статусе
	ErrStatusChanged = errors.New("reservation.repository: reservation status has changed")

	// ErrServiceMenuNotFound возвращается при ссылке на несуществующее меню
	ErrServiceMenuNotFound = errors.New("reservation.repository: service menu not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
