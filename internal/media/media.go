// Package media defines the captured media blob type shared by the capture
// and analysis layers.
package media

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wlds/wlds-go/internal/errors"
)

// Blob is an opaque binary media handle. A blob is owned by the session
// slot holding it and is replaced, never merged, by each new capture or
// file load.
type Blob struct {
	Data       []byte
	MimeType   string
	Filename   string
	CapturedAt time.Time
}

// Size returns the blob payload size in bytes.
func (b *Blob) Size() int {
	if b == nil {
		return 0
	}
	return len(b.Data)
}

// FromFile loads a media blob from a file on disk. The MIME type is derived
// from the file extension.
func FromFile(path string) (*Blob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(err).
			Component("media").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	if len(data) == 0 {
		return nil, errors.Newf("file %s is empty", path).
			Component("media").
			Category(errors.CategoryValidation).
			Context("path", path).
			Build()
	}
	return &Blob{
		Data:       data,
		MimeType:   mimeTypeByExtension(path),
		Filename:   filepath.Base(path),
		CapturedAt: time.Now(),
	}, nil
}

// mimeTypeByExtension maps the media file extensions the device deals with
// to MIME types. Unknown extensions fall back to octet-stream.
func mimeTypeByExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return "audio/wav"
	case ".mp3":
		return "audio/mpeg"
	case ".flac":
		return "audio/flac"
	case ".webm":
		return "audio/webm"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}
