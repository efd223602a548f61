// conf/consts.go hard coded constants
package conf

import "time"

const (
	SampleRate  = 48000 // Sample rate of captured audio
	BitDepth    = 16    // Bit depth of captured audio
	NumChannels = 1     // Number of channels of captured audio

	// RecordingLength is the fixed duration of an acoustic sample. The
	// recording timer is the sole authority for terminating a recording.
	RecordingLength = 5 * time.Second

	// RecordingProgressInterval is the resolution of the recording
	// progress countdown.
	RecordingProgressInterval = 100 * time.Millisecond
)
