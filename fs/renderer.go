// Package fs provides file-system implementations of parsel collaborators:
// local documents, line history files and temporary view files.
package fs

import (
	"context"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/parsel"
)

// Ensure Renderer implements parsel.Renderer at compile time.
var _ parsel.Renderer = (*Renderer)(nil)

// Renderer loads documents from local files. Targets may be plain paths or
// file:// URLs.
type Renderer struct{}

// NewRenderer creates a new file Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// IsLocal reports whether target refers to a local file rather than a remote URL.
func IsLocal(target string) bool {
	if strings.HasPrefix(target, "file://") {
		return true
	}
	if u, err := url.Parse(target); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return false
	}
	_, err := os.Stat(target)
	return err == nil
}

// Open is a no-op.
func (r *Renderer) Open(_ context.Context) error {
	return nil
}

// Goto reads the file at target.
// Returns ENOTFOUND if the file does not exist.
func (r *Renderer) Goto(_ context.Context, target string) (*parsel.Response, error) {
	path, err := localPath(target)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, parsel.Errorf(parsel.ENOTFOUND, "file %s does not exist", path)
	}
	if err != nil {
		return nil, err
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return &parsel.Response{
		StatusCode:  http.StatusOK,
		URL:         (&url.URL{Scheme: "file", Path: path}).String(),
		ContentType: contentType,
		Content:     string(data),
	}, nil
}

// Close is a no-op.
func (r *Renderer) Close() error {
	return nil
}

func localPath(target string) (string, error) {
	if strings.HasPrefix(target, "file://") {
		u, err := url.Parse(target)
		if err != nil {
			return "", parsel.Errorf(parsel.EINVALID, "invalid file URL %q: %v", target, err)
		}
		target = u.Path
	}
	path, err := filepath.Abs(target)
	if err != nil {
		return "", parsel.Errorf(parsel.EINVALID, "invalid path %q: %v", target, err)
	}
	return path, nil
}
