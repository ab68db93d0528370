package filestorage

import "errors"

var (
	// ErrUnsupportedType возвращается для файлов, не являющихся изображениями
	ErrUnsupportedType = errors.New("filestorage: unsupported file type")

	// ErrInvalidPath возвращается для путей вне каталога хранилища
	ErrInvalidPath = errors.New("filestorage: invalid path")

	// ErrWrite возвращается при ошибке записи файла
	ErrWrite = errors.New("filestorage: failed to write file")
)
