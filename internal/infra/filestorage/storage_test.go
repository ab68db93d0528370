package filestorage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_SaveAndDelete(t *testing.T) {
	root := t.TempDir()
	s, err := New(root, "/media/")
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC) }

	rel, err := s.Save(context.Background(), "bike_images", "Front.JPG", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rel, "bike_images/2026/10/"))
	assert.True(t, strings.HasSuffix(rel, ".jpg"))
	assert.Equal(t, "/media/"+rel, s.URL(rel))

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	require.NoError(t, s.Delete(context.Background(), rel))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	assert.True(t, os.IsNotExist(err))

	// Повторное удаление не ошибка
	assert.NoError(t, s.Delete(context.Background(), rel))
}

func TestStorage_RejectsNonImages(t *testing.T) {
	s, err := New(t.TempDir(), "/media/")
	require.NoError(t, err)

	_, err = s.Save(context.Background(), "bike_images", "invoice.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestStorage_DeleteStaysInsideRoot(t *testing.T) {
	root := t.TempDir()
	outside := filepath.Join(filepath.Dir(root), "outside.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0o600))
	t.Cleanup(func() { _ = os.Remove(outside) })

	s, err := New(root, "/media/")
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), "../outside.txt"))
	_, err = os.Stat(outside)
	assert.NoError(t, err)

	assert.ErrorIs(t, s.Delete(context.Background(), ""), ErrInvalidPath)
}

func TestStorage_URLEmpty(t *testing.T) {
	s, err := New(t.TempDir(), "/media")
	require.NoError(t, err)
	assert.Equal(t, "", s.URL(""))
	assert.Equal(t, "/media/a/b.png", s.URL("a/b.png"))
}
