package capture

import (
	"context"
	"runtime"
	"sync"

	"github.com/gen2brain/malgo"
	"github.com/wlds/wlds-go/internal/conf"
	"github.com/wlds/wlds-go/internal/errors"
)

// MalgoSource captures microphone PCM through the malgo miniaudio bindings.
type MalgoSource struct {
	deviceName string

	mu     sync.Mutex
	ctx    *malgo.AllocatedContext
	device *malgo.Device
	chunks chan []byte
	open   bool
}

// NewMalgoSource creates a microphone source for the named capture device.
// An empty name selects the system default.
func NewMalgoSource(deviceName string) *MalgoSource {
	return &MalgoSource{deviceName: deviceName}
}

// Open initializes the malgo context and starts the capture device.
// A device init failure is reported as a permission error since on the
// field units refused device access is the common cause.
func (s *MalgoSource) Open(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return nil
	}

	// Pick the native backend per OS, auto-select elsewhere
	var backends []malgo.Backend
	switch runtime.GOOS {
	case "linux":
		backends = []malgo.Backend{malgo.BackendAlsa}
	case "windows":
		backends = []malgo.Backend{malgo.BackendWasapi}
	case "darwin":
		backends = []malgo.Backend{malgo.BackendCoreaudio}
	}

	malgoCtx, err := malgo.InitContext(backends, malgo.ContextConfig{}, nil)
	if err != nil {
		return errors.Newf("audio context init failed: %w", err).
			Component("capture").
			Category(errors.CategoryAudio).
			Build()
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = malgo.FormatS16
	deviceConfig.Capture.Channels = conf.NumChannels
	deviceConfig.SampleRate = conf.SampleRate
	deviceConfig.Alsa.NoMMap = 1

	chunks := make(chan []byte, 64)
	onReceiveFrames := func(pOutputSamples, pInputSamples []byte, framecount uint32) {
		buf := make([]byte, len(pInputSamples))
		copy(buf, pInputSamples)
		select {
		case chunks <- buf:
		default:
			// Consumer is behind, drop the chunk rather than block the
			// device callback.
		}
	}

	device, err := malgo.InitDevice(malgoCtx.Context, deviceConfig, malgo.DeviceCallbacks{
		Data: onReceiveFrames,
	})
	if err != nil {
		_ = malgoCtx.Uninit()
		return errors.Newf("microphone access refused: %w (%w)", err, errors.ErrPermissionDenied).
			Component("capture").
			Category(errors.CategoryPermission).
			Context("device", s.deviceName).
			Build()
	}

	if err := device.Start(); err != nil {
		device.Uninit()
		_ = malgoCtx.Uninit()
		return errors.Newf("microphone start failed: %w (%w)", err, errors.ErrPermissionDenied).
			Component("capture").
			Category(errors.CategoryPermission).
			Context("device", s.deviceName).
			Build()
	}

	s.ctx = malgoCtx
	s.device = device
	s.chunks = chunks
	s.open = true
	return nil
}

// Chunks returns the PCM delivery channel.
func (s *MalgoSource) Chunks() <-chan []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chunks
}

// Close stops the device and releases the malgo context.
func (s *MalgoSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil
	}
	s.open = false

	if s.device != nil {
		s.device.Uninit()
		s.device = nil
	}
	if s.ctx != nil {
		if err := s.ctx.Uninit(); err != nil {
			s.ctx = nil
			return errors.New(err).
				Component("capture").
				Category(errors.CategoryAudio).
				Context("operation", "context_uninit").
				Build()
		}
		s.ctx = nil
	}
	return nil
}
