package capture

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wlds/wlds-go/internal/errors"
	"github.com/wlds/wlds-go/internal/httpclient"
)

const snapshotURL = "http://127.0.0.1:8554/snapshot"

func newMockedCamera(t *testing.T) *SnapshotCamera {
	t.Helper()
	client := httpclient.New(nil)
	httpmock.ActivateNonDefault(client.HTTPClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	return NewSnapshotCamera(snapshotURL, client)
}

func TestSnapshotCameraOpenAndFetch(t *testing.T) {
	cam := newMockedCamera(t)
	httpmock.RegisterResponder(http.MethodGet, snapshotURL,
		httpmock.NewBytesResponder(http.StatusOK, []byte("jpegbytes")))

	require.NoError(t, cam.Open(context.Background()))

	blob, err := cam.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("jpegbytes"), blob.Data)
	assert.Equal(t, "image/jpeg", blob.MimeType)
	assert.Equal(t, "snapshot.jpg", blob.Filename)
	assert.False(t, blob.CapturedAt.IsZero())
}

func TestSnapshotCameraOpenRefused(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"unauthorized", http.StatusUnauthorized},
		{"forbidden", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := newMockedCamera(t)
			httpmock.RegisterResponder(http.MethodGet, snapshotURL,
				httpmock.NewStringResponder(tt.status, "denied"))

			err := cam.Open(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrPermissionDenied))
		})
	}
}

func TestSnapshotCameraOpenServerError(t *testing.T) {
	cam := newMockedCamera(t)
	httpmock.RegisterResponder(http.MethodGet, snapshotURL,
		httpmock.NewStringResponder(http.StatusInternalServerError, "boom"))

	err := cam.Open(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, errors.ErrPermissionDenied), "server failure is not a permission refusal")
}

func TestSnapshotWithoutOpenSession(t *testing.T) {
	cam := newMockedCamera(t)

	_, err := cam.Snapshot(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNoActiveCamera))
}

func TestSnapshotAfterClose(t *testing.T) {
	cam := newMockedCamera(t)
	httpmock.RegisterResponder(http.MethodGet, snapshotURL,
		httpmock.NewBytesResponder(http.StatusOK, []byte("jpegbytes")))

	require.NoError(t, cam.Open(context.Background()))
	require.NoError(t, cam.Close())

	_, err := cam.Snapshot(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNoActiveCamera))
}
