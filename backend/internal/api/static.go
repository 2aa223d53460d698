package api

import (
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

const indexFile = "index.html"

// publicFS serves files under root the way a plain static host would:
// dot-prefixed segments do not exist and directories without an index
// page are not browsable.
type publicFS struct {
	fs http.FileSystem
}

func newPublicFS(root string) http.FileSystem {
	return publicFS{fs: gin.Dir(root, false)}
}

func (p publicFS) Open(name string) (http.File, error) {
	if hasDotSegment(name) {
		return nil, fs.ErrNotExist
	}

	f, err := p.fs.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		index, err := p.fs.Open(path.Join(name, indexFile))
		if err != nil {
			f.Close()
			return nil, fs.ErrNotExist
		}
		index.Close()
	}
	return f, nil
}

func hasDotSegment(name string) bool {
	for _, seg := range strings.Split(name, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}
