package chiext

import (
	"io/fs"
	"net/http"
	"strings"
)

type StaticFSConfig struct {
	FileSystem fs.FS
	Root       string
}

// StaticEmbedFS serves the files at the top of the filesystem and index.html
// on "/". Other requests go to the next handler.
func StaticEmbedFS(config StaticFSConfig) (func(next http.Handler) http.Handler, error) {
	fsys := config.FileSystem
	if config.Root != "" {
		sub, err := fs.Sub(fsys, config.Root)
		if err != nil {
			return nil, err
		}
		fsys = sub
	}

	files, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}

	routes := make([]string, 0, len(files))
	for _, f := range files {
		routes = append(routes, "/"+f.Name())
	}

	fsHandler := http.FileServer(http.FS(fsys))
	indexHandler := func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, fsys, "index.html")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/" {
				indexHandler(w, r)
				return
			}
			for _, route := range routes {
				if strings.HasPrefix(r.URL.Path, route) {
					fsHandler.ServeHTTP(w, r)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}
