package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wlds/wlds-go/internal/media"
)

func TestModeValid(t *testing.T) {
	tests := []struct {
		mode  Mode
		valid bool
	}{
		{ModeAudio, true},
		{ModeImage, true},
		{ModeFusion, true},
		{Mode(""), false},
		{Mode("video"), false},
		{Mode("AUDIO"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.mode.Valid())
		})
	}
}

func TestNewInitialState(t *testing.T) {
	s := New()

	assert.Equal(t, ModeAudio, s.Mode())
	assert.Nil(t, s.ScanAudio())
	assert.Nil(t, s.ScanImage())
	assert.False(t, s.IsRecording())
	assert.False(t, s.IsScanning())
	assert.Equal(t, 0, s.ScanCount())
}

func TestScanAudioFilePrecedence(t *testing.T) {
	s := New()
	recorded := &media.Blob{Data: []byte("recorded"), Filename: "recording.wav"}
	file := &media.Blob{Data: []byte("file"), Filename: "upload.wav"}

	s.SetRecordedAudio(recorded)
	assert.Same(t, recorded, s.ScanAudio(), "recorded blob should be used when no file is loaded")

	s.SetAudioFile(file)
	assert.Same(t, file, s.ScanAudio(), "file blob should take precedence over the recorded one")

	s.SetAudioFile(nil)
	assert.Same(t, recorded, s.ScanAudio(), "clearing the file slot should fall back to the recorded blob")
}

func TestScanImageFilePrecedence(t *testing.T) {
	s := New()
	captured := &media.Blob{Data: []byte("captured"), Filename: "snapshot.jpg"}
	file := &media.Blob{Data: []byte("file"), Filename: "upload.jpg"}

	s.SetCapturedImage(captured)
	assert.Same(t, captured, s.ScanImage())

	s.SetImageFile(file)
	assert.Same(t, file, s.ScanImage(), "file blob should take precedence over the captured photo")
}

func TestTryStartRecordingGuard(t *testing.T) {
	s := New()

	require.True(t, s.TryStartRecording())
	assert.False(t, s.TryStartRecording(), "second start while recording must be refused")
	assert.True(t, s.IsRecording())

	s.StopRecording()
	assert.False(t, s.IsRecording())
	assert.True(t, s.TryStartRecording(), "recording should be startable again after stop")
}

func TestTryStartScanSingleWinner(t *testing.T) {
	s := New()

	n, ok := s.TryStartScan()
	require.True(t, ok)
	assert.Equal(t, 1, n)

	_, ok = s.TryStartScan()
	assert.False(t, ok, "concurrent scan must be refused")
	assert.Equal(t, 1, s.ScanCount(), "refused scan must not increment the counter")

	s.EndScan()
	n, ok = s.TryStartScan()
	require.True(t, ok)
	assert.Equal(t, 2, n)
}

func TestTryStartScanConcurrent(t *testing.T) {
	s := New()

	const goroutines = 32
	var wg sync.WaitGroup
	winners := make(chan int, goroutines)

	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if n, ok := s.TryStartScan(); ok {
				winners <- n
			}
		}()
	}
	wg.Wait()
	close(winners)

	var won []int
	for n := range winners {
		won = append(won, n)
	}
	require.Len(t, won, 1, "exactly one goroutine may win the scan slot")
	assert.Equal(t, 1, won[0])
	assert.Equal(t, 1, s.ScanCount())
}

func TestUptimeMonotonic(t *testing.T) {
	s := New()
	first := s.Uptime()
	second := s.Uptime()
	assert.GreaterOrEqual(t, second, first)
}
