// Package web serves the browser client page.
package web

import (
	"embed"
	"io/fs"
	"net/http"
	"os"
)

//go:embed static
var embedded embed.FS

// FS returns the client files: dir when set, otherwise the embedded copy.
func FS(dir string) (fs.FS, error) {
	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			return nil, &fs.PathError{Op: "open", Path: dir, Err: fs.ErrInvalid}
		}
		return os.DirFS(dir), nil
	}
	return fs.Sub(embedded, "static")
}

// Handler serves the client files, with index.html at "/".
func Handler(dir string) (http.Handler, error) {
	files, err := FS(dir)
	if err != nil {
		return nil, err
	}
	return http.FileServerFS(files), nil
}
