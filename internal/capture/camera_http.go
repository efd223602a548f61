package capture

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/wlds/wlds-go/internal/errors"
	"github.com/wlds/wlds-go/internal/httpclient"
	"github.com/wlds/wlds-go/internal/media"
)

// SnapshotCamera is a CameraSource backed by the snapshot endpoint of the
// device camera daemon. The daemon owns the sensor; opening a session here
// probes the endpoint and holds it until Close.
type SnapshotCamera struct {
	snapshotURL string
	http        *httpclient.Client

	mu   sync.Mutex
	open bool
}

// NewSnapshotCamera creates a camera source for the given snapshot URL.
func NewSnapshotCamera(snapshotURL string, client *httpclient.Client) *SnapshotCamera {
	if client == nil {
		client = httpclient.New(nil)
	}
	return &SnapshotCamera{snapshotURL: snapshotURL, http: client}
}

// Open probes the snapshot endpoint. 401/403 means the camera daemon
// refused access and maps onto the permission-denied taxonomy.
func (c *SnapshotCamera) Open(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.open {
		return nil
	}

	resp, err := c.http.Get(ctx, c.snapshotURL)
	if err != nil {
		return errors.Newf("camera daemon unreachable: %w", err).
			Component("capture").
			Category(errors.CategoryImage).
			Context("url", c.snapshotURL).
			Build()
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return errors.Newf("camera access refused (status %d): %w", resp.StatusCode, errors.ErrPermissionDenied).
			Component("capture").
			Category(errors.CategoryPermission).
			Context("url", c.snapshotURL).
			Context("status_code", resp.StatusCode).
			Build()
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return errors.Newf("camera probe returned status %d", resp.StatusCode).
			Component("capture").
			Category(errors.CategoryImage).
			Context("url", c.snapshotURL).
			Context("status_code", resp.StatusCode).
			Build()
	}

	c.open = true
	return nil
}

// Snapshot fetches the current JPEG frame.
func (c *SnapshotCamera) Snapshot(ctx context.Context) (*media.Blob, error) {
	c.mu.Lock()
	open := c.open
	c.mu.Unlock()
	if !open {
		return nil, errors.Newf("snapshot without open session: %w", errors.ErrNoActiveCamera).
			Component("capture").
			Category(errors.CategoryState).
			Build()
	}

	resp, err := c.http.Get(ctx, c.snapshotURL)
	if err != nil {
		return nil, errors.Newf("snapshot fetch failed: %w", err).
			Component("capture").
			Category(errors.CategoryImage).
			Context("url", c.snapshotURL).
			Build()
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Newf("snapshot returned status %d", resp.StatusCode).
			Component("capture").
			Category(errors.CategoryImage).
			Context("url", c.snapshotURL).
			Context("status_code", resp.StatusCode).
			Build()
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.New(err).
			Component("capture").
			Category(errors.CategoryImage).
			Context("url", c.snapshotURL).
			Build()
	}

	return &media.Blob{
		Data:       data,
		MimeType:   "image/jpeg",
		Filename:   "snapshot.jpg",
		CapturedAt: time.Now(),
	}, nil
}

// Close releases the session.
func (c *SnapshotCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = false
	return nil
}
