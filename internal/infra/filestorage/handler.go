package filestorage

import (
	"io/fs"
	"net/http"
	"strings"
)

// Handler раздает сохраненные файлы. Каталоги не отдаются (404),
// поэтому список загруженных фотографий получить нельзя.
func (s *Storage) Handler() http.Handler {
	files := http.FileServer(filesOnly{http.Dir(s.root)})
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

// filesOnly файловая система без каталогов
type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, fs.ErrNotExist
	}

	return file, nil
}
