package visualizer

import (
	"context"
	"sync/atomic"
	"time"
)

// Flags are the externally-owned activity flags the animation loops read
// each tick. The capture controller owns the waveform flag, the analysis
// controller flips both for the duration of a scan.
type Flags struct {
	wave atomic.Bool
	scan atomic.Bool
}

// SetWave sets the waveform activity flag.
func (f *Flags) SetWave(active bool) { f.wave.Store(active) }

// Wave reports the waveform activity flag.
func (f *Flags) Wave() bool { return f.wave.Load() }

// SetScan sets the radar scanning flag.
func (f *Flags) SetScan(active bool) { f.scan.Store(active) }

// Scan reports the radar scanning flag.
func (f *Flags) Scan() bool { return f.scan.Load() }

// Run advances both animation models at the given frame interval until the
// context is cancelled. The loops run regardless of other activity; they
// only read the flags.
func Run(ctx context.Context, interval time.Duration, flags *Flags, wave *Waveform, radar *Radar) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			wave.Tick(flags.Wave())
			radar.Tick(flags.Scan())
		}
	}
}
