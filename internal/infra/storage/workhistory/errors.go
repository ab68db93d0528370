package workhistory

import "errors"

var (
	// ErrWorkHistoryNotFound возвращается, когда история работ не найдена
	ErrWorkHistoryNotFound = errors.New("workhistory.repository: work history not found")

	ErrBuildQuery = errors.New("workhistory.repository: failed to build query")
	ErrExecQuery  = errors.New("workhistory.repository: failed to execute query")
	ErrScanRow    = errors.New("workhistory.repository: failed to scan row")
)
