package handlers

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
)

// NoCache запрещает кэширование ответа браузером
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
}

// PageHandler отдает статические страницы из каталога public_dir
type PageHandler struct {
	base
	dir string
}

// NewPageHandler создает handler статических страниц
func NewPageHandler(logger *slog.Logger, dir string) *PageHandler {
	return &PageHandler{
		base: base{logger: logger},
		dir:  dir,
	}
}

// Page returns a handler serving the named file without caching.
// http.ServeFile не используется: он перенаправляет /index.html на /
func (h *PageHandler) Page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(h.dir, name)

		f, err := os.Open(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				h.logger.WarnContext(r.Context(), "page not found", slog.String("path", path))
				http.NotFound(w, r)
				return
			}
			h.logger.ErrorContext(r.Context(), "failed to open page", slog.String("path", path), slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		defer func() {
			if err := f.Close(); err != nil {
				h.logger.Warn("failed to close page", slog.String("path", path), slog.Any("error", err))
			}
		}()

		info, err := f.Stat()
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}

		NoCache(w)
		http.ServeContent(w, r, name, info.ModTime(), f)
	}
}

// RedirectToLogin отвечает некэшируемым редиректом на страницу входа
func RedirectToLogin(w http.ResponseWriter, r *http.Request) {
	NoCache(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}
