package capture

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/wlds/wlds-go/internal/conf"
	"github.com/wlds/wlds-go/internal/errors"
	"github.com/wlds/wlds-go/internal/logfeed"
	"github.com/wlds/wlds-go/internal/logging"
	"github.com/wlds/wlds-go/internal/media"
	"github.com/wlds/wlds-go/internal/session"
	"github.com/wlds/wlds-go/internal/visualizer"
)

// Package-level logger specific to the capture service
var (
	serviceLogger *slog.Logger
	closeLogger   func() error
)

func init() {
	var err error
	logFilePath := filepath.Join("logs", "capture.log")

	serviceLogger, closeLogger, err = logging.NewFileLogger(logFilePath, "capture", slog.LevelDebug)
	if err != nil {
		log.Printf("Failed to initialize capture file logger at %s: %v. Service logging disabled.", logFilePath, err)
		serviceLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))
		closeLogger = func() error { return nil }
	}
}

// Viewport is the display state of the image section.
type Viewport string

const (
	ViewportIdle  Viewport = "idle"  // placeholder, no camera, no photo
	ViewportLive  Viewport = "live"  // live camera preview
	ViewportPhoto Viewport = "photo" // frozen frame or loaded image file
)

// Progress is the state of the recording countdown.
type Progress struct {
	Active    bool          `json:"active"`
	Pct       float64       `json:"pct"`
	Remaining time.Duration `json:"remaining"`
}

// filePulseLength is how long the waveform stays active to acknowledge an
// audio file load.
const filePulseLength = 2 * time.Second

// Controller owns device acquisition, the fixed-duration recording
// lifecycle and the captured-blob session slots.
type Controller struct {
	sess  *session.Session
	feed  *logfeed.Feed
	flags *visualizer.Flags

	// newAudioSource opens a fresh microphone handle per recording, the
	// device is released again when the recording deadline fires.
	newAudioSource func() AudioSource
	camera         CameraSource

	recordLength     time.Duration
	progressInterval time.Duration
	pulseLength      time.Duration

	mu         sync.Mutex
	viewport   Viewport
	progress   Progress
	cameraOpen bool
}

// NewController creates a capture controller. audioSource is invoked once
// per recording; camera is the single camera session handle.
func NewController(sess *session.Session, feed *logfeed.Feed, flags *visualizer.Flags, audioSource func() AudioSource, camera CameraSource) *Controller {
	return &Controller{
		sess:             sess,
		feed:             feed,
		flags:            flags,
		newAudioSource:   audioSource,
		camera:           camera,
		recordLength:     conf.RecordingLength,
		progressInterval: conf.RecordingProgressInterval,
		pulseLength:      filePulseLength,
		viewport:         ViewportIdle,
	}
}

// Viewport returns the current image-section display state.
func (c *Controller) Viewport() Viewport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewport
}

// RecordingProgress returns the state of the recording countdown.
func (c *Controller) RecordingProgress() Progress {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progress
}

// CameraOpen reports whether a live camera session exists.
func (c *Controller) CameraOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cameraOpen
}

// StartRecording acquires the microphone and starts buffering a
// fixed-length acoustic sample. There is no manual stop: the countdown
// timer is the sole authority for terminating the recording. The returned
// channel closes once the recording has been finalized.
//
// A second call while a recording is in progress is a no-op. Refused
// microphone access aborts with ErrPermissionDenied and no state change.
func (c *Controller) StartRecording(ctx context.Context) (<-chan struct{}, error) {
	if !c.sess.TryStartRecording() {
		done := make(chan struct{})
		close(done)
		return done, nil
	}

	source := c.newAudioSource()
	if err := source.Open(ctx); err != nil {
		c.sess.StopRecording()
		if errors.Is(err, errors.ErrPermissionDenied) {
			c.feed.Error("MICROPHONE ACCESS DENIED")
		} else {
			c.feed.Error("MICROPHONE UNAVAILABLE")
		}
		serviceLogger.Error("Recording aborted, microphone open failed", "error", err)
		return nil, err
	}

	c.flags.SetWave(true)
	c.setProgress(Progress{Active: true, Remaining: c.recordLength})
	c.feed.Warn("RECORDING ACOUSTIC SAMPLE...")
	serviceLogger.Info("Recording started", "length", c.recordLength)

	done := make(chan struct{})
	go c.recordLoop(source, done)
	return done, nil
}

// recordLoop buffers PCM until the fixed deadline, then finalizes the
// recording exactly once.
func (c *Controller) recordLoop(source AudioSource, done chan struct{}) {
	defer close(done)

	var pcm []byte
	deadline := time.NewTimer(c.recordLength)
	defer deadline.Stop()
	progress := time.NewTicker(c.progressInterval)
	defer progress.Stop()

	started := time.Now()
	for {
		select {
		case chunk := <-source.Chunks():
			pcm = append(pcm, chunk...)
		case <-progress.C:
			elapsed := time.Since(started)
			remaining := c.recordLength - elapsed
			if remaining < 0 {
				remaining = 0
			}
			pct := float64(elapsed) / float64(c.recordLength) * 100
			if pct > 100 {
				pct = 100
			}
			c.setProgress(Progress{Active: true, Pct: pct, Remaining: remaining})
		case <-deadline.C:
			// Drain whatever the device delivered before the deadline.
			for {
				select {
				case chunk := <-source.Chunks():
					pcm = append(pcm, chunk...)
					continue
				default:
				}
				break
			}
			c.onRecordingStop(source, pcm)
			return
		}
	}
}

// onRecordingStop finalizes the in-progress buffer into the recorded-audio
// slot, releases the device and resets the recording state. It is reached
// only through the deadline timer and therefore runs exactly once per
// recording.
func (c *Controller) onRecordingStop(source AudioSource, pcm []byte) {
	if err := source.Close(); err != nil {
		serviceLogger.Warn("Failed to release microphone", "error", err)
	}

	wavData, err := encodePCMtoWAV(pcm)
	if err != nil {
		serviceLogger.Error("Failed to finalize recording", "error", err, "pcm_bytes", len(pcm))
		c.feed.Error("RECORDING FAILED")
	} else {
		c.sess.SetRecordedAudio(&media.Blob{
			Data:       wavData,
			MimeType:   "audio/wav",
			Filename:   "recording.wav",
			CapturedAt: time.Now(),
		})
		c.feed.Success("AUDIO SAMPLE CAPTURED — 5s BUFFER")
		serviceLogger.Info("Recording finalized", "wav_bytes", len(wavData))
	}

	c.sess.StopRecording()
	c.flags.SetWave(false)
	// The countdown ends full; the next recording resets it.
	c.setProgress(Progress{Pct: 100})
}

// LoadAudioFile fills the file-provided audio slot from a file on disk.
func (c *Controller) LoadAudioFile(path string) error {
	blob, err := media.FromFile(path)
	if err != nil {
		c.feed.Error("AUDIO FILE LOAD FAILED")
		return err
	}
	c.LoadAudio(blob)
	return nil
}

// LoadAudio fills the file-provided audio slot. The waveform pulses active
// for a fixed duration as a display-only acknowledgement.
func (c *Controller) LoadAudio(blob *media.Blob) {
	c.sess.SetAudioFile(blob)

	c.flags.SetWave(true)
	time.AfterFunc(c.pulseLength, func() { c.flags.SetWave(false) })

	c.feed.Success(fmt.Sprintf("AUDIO FILE LOADED: %s", blob.Filename))
	serviceLogger.Info("Audio file loaded", "filename", blob.Filename, "bytes", blob.Size())
}

// OpenCamera starts a live camera session. Opening an already-open camera
// is a no-op. Refused access aborts with ErrPermissionDenied.
func (c *Controller) OpenCamera(ctx context.Context) error {
	c.mu.Lock()
	if c.cameraOpen {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	if err := c.camera.Open(ctx); err != nil {
		if errors.Is(err, errors.ErrPermissionDenied) {
			c.feed.Error("CAMERA ACCESS DENIED")
		} else {
			c.feed.Error("CAMERA UNAVAILABLE")
		}
		serviceLogger.Error("Camera open failed", "error", err)
		return err
	}

	c.mu.Lock()
	c.cameraOpen = true
	c.viewport = ViewportLive
	c.mu.Unlock()

	c.feed.Success("OPTICAL SENSOR ONLINE")
	serviceLogger.Info("Camera session opened")
	return nil
}

// CapturePhoto freezes the current video frame into the captured-image
// slot and releases the camera session afterward. Without an open session
// it fails with ErrNoActiveCamera and changes no state.
func (c *Controller) CapturePhoto(ctx context.Context) error {
	c.mu.Lock()
	open := c.cameraOpen
	c.mu.Unlock()
	if !open {
		c.feed.Warn("OPEN CAMERA FIRST")
		return errors.Newf("photo capture without camera: %w", errors.ErrNoActiveCamera).
			Component("capture").
			Category(errors.CategoryState).
			Build()
	}

	blob, err := c.camera.Snapshot(ctx)
	if err != nil {
		c.feed.Error("PHOTO CAPTURE FAILED")
		serviceLogger.Error("Snapshot failed", "error", err)
		return err
	}
	c.sess.SetCapturedImage(blob)

	// Capture-then-release: the session is not kept open after a photo.
	c.releaseCamera(ViewportPhoto)

	c.feed.Success("PHOTO CAPTURED — OPTICAL BUFFER SAVED")
	serviceLogger.Info("Photo captured", "bytes", blob.Size())
	return nil
}

// LoadImageFile fills the file-provided image slot from a file on disk.
func (c *Controller) LoadImageFile(path string) error {
	blob, err := media.FromFile(path)
	if err != nil {
		c.feed.Error("IMAGE FILE LOAD FAILED")
		return err
	}
	c.LoadImage(blob)
	return nil
}

// LoadImage fills the file-provided image slot and releases any open
// camera session, since file input and live camera are mutually exclusive
// image sources.
func (c *Controller) LoadImage(blob *media.Blob) {
	c.sess.SetImageFile(blob)

	c.mu.Lock()
	wasOpen := c.cameraOpen
	c.mu.Unlock()
	if wasOpen {
		c.releaseCamera(ViewportPhoto)
	} else {
		c.setViewport(ViewportPhoto)
	}

	c.feed.Success(fmt.Sprintf("IMAGE FILE LOADED: %s", blob.Filename))
	serviceLogger.Info("Image file loaded", "filename", blob.Filename, "bytes", blob.Size())
}

// CloseCamera releases the camera session. Safe to call when no camera is
// open. If no photo has been captured yet the viewport returns to the idle
// placeholder.
func (c *Controller) CloseCamera() {
	c.mu.Lock()
	open := c.cameraOpen
	c.mu.Unlock()
	if !open {
		return
	}

	next := ViewportIdle
	if c.sess.CapturedImage() != nil || c.sess.ImageFile() != nil {
		next = ViewportPhoto
	}
	c.releaseCamera(next)
	c.feed.Info("OPTICAL SENSOR OFFLINE")
	serviceLogger.Info("Camera session closed")
}

// releaseCamera closes the device session and moves the viewport.
func (c *Controller) releaseCamera(next Viewport) {
	if err := c.camera.Close(); err != nil {
		serviceLogger.Warn("Failed to release camera", "error", err)
	}
	c.mu.Lock()
	c.cameraOpen = false
	c.viewport = next
	c.mu.Unlock()
}

func (c *Controller) setViewport(v Viewport) {
	c.mu.Lock()
	c.viewport = v
	c.mu.Unlock()
}

func (c *Controller) setProgress(p Progress) {
	c.mu.Lock()
	c.progress = p
	c.mu.Unlock()
}

// Close releases device resources and the capture service log file.
func (c *Controller) Close() {
	c.CloseCamera()
	if closeLogger != nil {
		if err := closeLogger(); err != nil {
			log.Printf("Failed to close capture log file: %v", err)
		}
		closeLogger = nil
	}
}
