// Package capture owns microphone and camera acquisition, the fixed-length
// recording lifecycle and the captured-blob session slots.
package capture

import (
	"context"

	"github.com/wlds/wlds-go/internal/media"
)

// AudioSource is a microphone device delivering raw PCM. Open acquires the
// device; implementations wrap refused access in errors.ErrPermissionDenied.
type AudioSource interface {
	// Open acquires the device and starts delivering PCM chunks.
	Open(ctx context.Context) error
	// Chunks returns the channel PCM data arrives on while the source is
	// open. S16LE, mono, conf.SampleRate.
	Chunks() <-chan []byte
	// Close releases the underlying device tracks. Safe to call twice.
	Close() error
}

// CameraSource is the optical sensor. Open starts a live session;
// implementations wrap refused access in errors.ErrPermissionDenied.
type CameraSource interface {
	// Open starts a live camera session.
	Open(ctx context.Context) error
	// Snapshot freezes the current frame into a JPEG blob.
	Snapshot(ctx context.Context) (*media.Blob, error)
	// Close releases the session. Safe to call when not open.
	Close() error
}
