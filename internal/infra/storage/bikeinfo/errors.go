package bikeinfo

import "errors"

var (
	// ErrBikeInfoNotFound возвращается, когда у бронирования нет информации о велосипеде
	ErrBikeInfoNotFound = errors.New("bikeinfo.repository: bike info not found")

	// ErrAlreadyExists возвращается при повторном создании BikeInfo для того же бронирования
	ErrAlreadyExists = errors.New("bikeinfo.repository: bike info already exists for reservation")

	ErrBuildQuery = errors.New("bikeinfo.repository: failed to build query")
	ErrExecQuery  = errors.New("bikeinfo.repository: failed to execute query")
	ErrScanRow    = errors.New("bikeinfo.repository: failed to scan row")
)
