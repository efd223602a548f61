// Package session holds the in-memory application state shared by the
// panel controllers for the lifetime of the process.
package session

import (
	"sync"
	"time"

	"github.com/wlds/wlds-go/internal/media"
)

// Mode is the active sensing modality set. It governs which captured media
// are sent to the classifier and how results are weighted across the
// display bars.
type Mode string

const (
	ModeAudio  Mode = "audio"
	ModeImage  Mode = "image"
	ModeFusion Mode = "fusion"
)

// Valid reports whether m is one of the three operating modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeAudio, ModeImage, ModeFusion:
		return true
	}
	return false
}

// Session is the single state object holding the current mode, capture
// buffers, device-session flags and scan counters. Each field is mutated
// only by its owning controller; the analysis controller reads them when
// building a scan payload.
type Session struct {
	mu sync.RWMutex

	mode Mode

	// Capture slots. File-provided media and device-captured media are
	// kept as distinct optional slots; file input takes precedence at
	// request-build time.
	recordedAudio *media.Blob
	audioFile     *media.Blob
	capturedImage *media.Blob
	imageFile     *media.Blob

	isRecording bool
	isScanning  bool
	scanCount   int

	startTime time.Time
}

// New creates a session in the initial state: audio mode, empty capture
// slots, counters zeroed.
func New() *Session {
	return &Session{
		mode:      ModeAudio,
		startTime: time.Now(),
	}
}

// Mode returns the current operating mode.
func (s *Session) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetMode sets the operating mode. Only the mode controller calls this.
func (s *Session) SetMode(m Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
}

// RecordedAudio returns the device-recorded audio blob, if any.
func (s *Session) RecordedAudio() *media.Blob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recordedAudio
}

// SetRecordedAudio replaces the recorded audio slot.
func (s *Session) SetRecordedAudio(b *media.Blob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordedAudio = b
}

// AudioFile returns the file-provided audio blob, if any.
func (s *Session) AudioFile() *media.Blob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.audioFile
}

// SetAudioFile replaces the file-provided audio slot.
func (s *Session) SetAudioFile(b *media.Blob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audioFile = b
}

// CapturedImage returns the camera-captured image blob, if any.
func (s *Session) CapturedImage() *media.Blob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.capturedImage
}

// SetCapturedImage replaces the captured image slot.
func (s *Session) SetCapturedImage(b *media.Blob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.capturedImage = b
}

// ImageFile returns the file-provided image blob, if any.
func (s *Session) ImageFile() *media.Blob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.imageFile
}

// SetImageFile replaces the file-provided image slot.
func (s *Session) SetImageFile(b *media.Blob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.imageFile = b
}

// ScanAudio returns the audio blob a scan payload should carry: the file
// slot when present, else the recorded blob, else nil.
func (s *Session) ScanAudio() *media.Blob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.audioFile != nil {
		return s.audioFile
	}
	return s.recordedAudio
}

// ScanImage returns the image blob a scan payload should carry: the file
// slot when present, else the captured photo, else nil.
func (s *Session) ScanImage() *media.Blob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.imageFile != nil {
		return s.imageFile
	}
	return s.capturedImage
}

// IsRecording reports whether a recording is in progress.
func (s *Session) IsRecording() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRecording
}

// TryStartRecording atomically sets the recording flag. It returns false
// when a recording is already in progress, guarding re-entrancy of the
// recording flow.
func (s *Session) TryStartRecording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRecording {
		return false
	}
	s.isRecording = true
	return true
}

// StopRecording clears the recording flag.
func (s *Session) StopRecording() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isRecording = false
}

// IsScanning reports whether a scan is in progress.
func (s *Session) IsScanning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isScanning
}

// TryStartScan atomically sets the scanning flag and increments the scan
// counter. It returns 0, false when a scan is already in progress,
// enforcing at most one concurrent scan.
func (s *Session) TryStartScan() (scanNumber int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isScanning {
		return 0, false
	}
	s.isScanning = true
	s.scanCount++
	return s.scanCount, true
}

// EndScan clears the scanning flag.
func (s *Session) EndScan() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isScanning = false
}

// ScanCount returns the number of scans initiated so far.
func (s *Session) ScanCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scanCount
}

// Uptime returns the elapsed time since the session was created.
func (s *Session) Uptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Since(s.startTime)
}
