package classifierd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wlds/wlds-go/internal/classifier"
)

func TestAnalyzeEndpointPerMode(t *testing.T) {
	s := New()

	tests := []struct {
		mode    string
		species string
		conf    float64
	}{
		{"audio", "Indian Sparrow", 0.87},
		{"image", "Common Myna", 0.91},
		{"fusion", "Indian Peacock", 0.95},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/analyze/"+tt.mode, nil)
			rec := httptest.NewRecorder()
			s.Echo.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)

			var result classifier.Result
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
			assert.Equal(t, tt.species, result.Species)
			assert.Equal(t, "BIRD", result.Type)
			assert.InDelta(t, tt.conf, result.Confidence, 0.001)
			_, hasDist := result.DistanceMeters()
			assert.True(t, hasDist)
		})
	}
}

func TestAnalyzeEndpointUnknownMode(t *testing.T) {
	s := New()

	req := httptest.NewRequest(http.MethodPost, "/analyze/thermal", nil)
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalyzeEndpointIgnoresUploadedMedia(t *testing.T) {
	s := New()

	req := httptest.NewRequest(http.MethodPost, "/analyze/audio", nil)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, "media parts are accepted and ignored")
}
