package servicemenu

import "errors"

var (
	// ErrServiceMenuNotFound возвращается, когда меню не найдено
	ErrServiceMenuNotFound = errors.New("servicemenu.repository: service menu not found")

	// ErrDuplicateName возвращается при нарушении уникальности названия
	ErrDuplicateName = errors.New("servicemenu.repository: service menu name already exists")

	ErrBuildQuery = errors.New("servicemenu.repository: failed to build query")
	ErrExecQuery  = errors.New("servicemenu.repository: failed to execute query")
	ErrScanRow    = errors.New("servicemenu.repository: failed to scan row")
)
