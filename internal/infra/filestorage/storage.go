// Package filestorage хранит загруженные фотографии в локальном каталоге.
// В БД сохраняется относительный путь, который отдается клиентам с публичным префиксом.
package filestorage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Допустимые расширения фотографий
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".heic": true,
}

// Storage локальное хранилище файлов
type Storage struct {
	root         string
	publicPrefix string
	now          func() time.Time
}

// New создает хранилище в каталоге root (создается при необходимости)
func New(root, publicPrefix string) (*Storage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create root %s: %v", ErrWrite, root, err)
	}
	return &Storage{
		root:         root,
		publicPrefix: publicPrefix,
		now:          time.Now,
	}, nil
}

// Save сохраняет файл в подкаталог category/YYYY/MM и возвращает относительный путь
func (s *Storage) Save(ctx context.Context, category, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, filename)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	now := s.now()
	rel := path.Join(category, now.Format("2006"), now.Format("01"), uuid.NewString()+ext)
	abs := filepath.Join(s.root, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("%w: mkdir: %v", ErrWrite, err)
	}

	f, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("%w: create: %v", ErrWrite, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(abs)
		return "", fmt.Errorf("%w: copy: %v", ErrWrite, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(abs)
		return "", fmt.Errorf("%w: close: %v", ErrWrite, err)
	}

	return rel, nil
}

// Delete удаляет файл; отсутствие файла ошибкой не считается
func (s *Storage) Delete(_ context.Context, rel string) error {
	abs, err := s.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: remove: %v", ErrWrite, err)
	}
	return nil
}

// URL публичный адрес файла
func (s *Storage) URL(rel string) string {
	if rel == "" {
		return ""
	}
	return strings.TrimSuffix(s.publicPrefix, "/") + "/" + strings.TrimPrefix(rel, "/")
}

// Root каталог хранилища
func (s *Storage) Root() string {
	return s.root
}

func (s *Storage) resolve(rel string) (string, error) {
	clean := path.Clean("/" + rel)
	if clean == "/" {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, rel)
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}
