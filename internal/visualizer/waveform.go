// Package visualizer models the panel's continuous display animations.
// Both models are tick-driven: the host advances them once per display
// frame and reads their state for drawing. They observe externally-owned
// activity flags and never write application state.
package visualizer

import (
	"math/rand"
	"sync"
)

// WaveformPoints is the width of the rolling amplitude window.
const WaveformPoints = 60

// Waveform is the scrolling amplitude trace next to the audio section.
// Amplitudes are normalized to [0,1].
type Waveform struct {
	mu     sync.RWMutex
	points []float64
	rand   *rand.Rand
}

// NewWaveform creates a waveform with a flat trace.
func NewWaveform(src rand.Source) *Waveform {
	return &Waveform{
		points: make([]float64, WaveformPoints),
		rand:   rand.New(src),
	}
}

// Tick shifts the window left and appends a new amplitude: a strong random
// excursion while active, faint noise otherwise.
func (w *Waveform) Tick(active bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var amp float64
	if active {
		amp = w.rand.Float64()*0.7 + 0.1
	} else {
		amp = w.rand.Float64() * 0.02
	}

	copy(w.points, w.points[1:])
	w.points[len(w.points)-1] = amp
}

// Points returns a snapshot of the amplitude window, oldest first.
func (w *Waveform) Points() []float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]float64, len(w.points))
	copy(out, w.points)
	return out
}
