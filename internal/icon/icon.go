// Package icon turns user supplied image files into data URIs for task cards.
package icon

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxBytes caps the size of an image file that will be read
const DefaultMaxBytes = 5 * 1024 * 1024

var (
	// ErrNotImage is returned when the file is not an image
	ErrNotImage = errors.New("only image files allowed")
	// ErrTooLarge is returned when the file exceeds the size limit
	ErrTooLarge = errors.New("image file too large")
)

// Result is the outcome of an asynchronous load
type Result struct {
	Path    string
	DataURI string
	Err     error
}

// Loader reads image files with a size limit
type Loader struct {
	MaxBytes int64
}

// NewLoader creates a loader; maxBytes <= 0 selects DefaultMaxBytes
func NewLoader(maxBytes int64) *Loader {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Loader{MaxBytes: maxBytes}
}

// FromBytes encodes data as a base64 data URI.
// declaredType is trusted when it carries a MIME type, otherwise the
// content is sniffed. Anything that is not image/* is rejected.
func FromBytes(data []byte, declaredType string) (string, error) {
	mediaType := ""
	if declaredType != "" {
		if mt, _, err := mime.ParseMediaType(declaredType); err == nil {
			mediaType = mt
		}
	}
	if mediaType == "" || mediaType == "application/octet-stream" {
		mediaType, _, _ = mime.ParseMediaType(http.DetectContentType(data))
	}
	if !strings.HasPrefix(mediaType, "image/") {
		return "", fmt.Errorf("%w: got %s", ErrNotImage, mediaType)
	}
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Load reads the file at path and returns it as a data URI
func (l *Loader) Load(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat image: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrNotImage, path)
	}
	if info.Size() > l.MaxBytes {
		return "", fmt.Errorf("%w: %d bytes (limit %d)", ErrTooLarge, info.Size(), l.MaxBytes)
	}

	data, err := io.ReadAll(io.LimitReader(f, l.MaxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	return FromBytes(data, mime.TypeByExtension(strings.ToLower(filepath.Ext(path))))
}

// LoadAsync runs Load in the background. The returned channel delivers
// exactly one Result and is then closed; callers await it before saving.
func (l *Loader) LoadAsync(ctx context.Context, path string) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		uri, err := l.Load(ctx, path)
		out <- Result{Path: path, DataURI: uri, Err: err}
	}()
	return out
}

// ExpandHome resolves a leading ~ in a path typed by the user
func ExpandHome(path string) string {
	path = strings.TrimSpace(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
