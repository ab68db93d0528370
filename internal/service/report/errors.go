package report

import "errors"

var (
	// ErrInternal возвращается, когда не удалось получить данные
	ErrInternal = errors.New("report: internal error")

	// ErrRender возвращается при ошибке формирования файла
	ErrRender = errors.New("report: failed to render spreadsheet")
)
