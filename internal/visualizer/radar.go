package visualizer

import (
	"math"
	"math/rand"
	"sync"
)

const (
	// Sweep advance per tick in degrees.
	radarIdleStep = 1.5
	radarScanStep = 3.0

	// Blip lifetime in ticks.
	blipLife = 120
)

// Blip is a detection dot on the radar, in polar coordinates normalized to
// the radar radius. Life counts down each tick until the blip fades out.
type Blip struct {
	Angle    float64 `json:"angle"`
	Distance float64 `json:"distance"`
	Size     float64 `json:"size"`
	Life     float64 `json:"life"`
	MaxLife  float64 `json:"maxLife"`
}

// Radar is the sweeping scope display. The sweep advances faster while a
// scan is running, and blips fade more slowly so fresh detections stay
// visible through the scan.
type Radar struct {
	mu    sync.RWMutex
	angle float64
	blips []Blip
	rand  *rand.Rand
}

// NewRadar creates a radar with the sweep at zero and no blips.
func NewRadar(src rand.Source) *Radar {
	return &Radar{rand: rand.New(src)}
}

// Tick advances the sweep and ages the blips.
func (r *Radar) Tick(scanning bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	step := radarIdleStep
	decay := 1.0
	if scanning {
		step = radarScanStep
		decay = 0.5
	}
	r.angle = math.Mod(r.angle+step, 360)

	alive := r.blips[:0]
	for _, b := range r.blips {
		b.Life -= decay
		if b.Life > 0 {
			alive = append(alive, b)
		}
	}
	r.blips = alive
}

// SpawnBlip adds a detection dot at a random position on the scope.
func (r *Radar) SpawnBlip() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.blips = append(r.blips, Blip{
		Angle:    r.rand.Float64() * 2 * math.Pi,
		Distance: r.rand.Float64()*0.8 + 0.1,
		Size:     r.rand.Float64()*3 + 2,
		Life:     blipLife,
		MaxLife:  blipLife,
	})
}

// Angle returns the current sweep angle in degrees.
func (r *Radar) Angle() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.angle
}

// Blips returns a snapshot of the live blips.
func (r *Radar) Blips() []Blip {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Blip, len(r.blips))
	copy(out, r.blips)
	return out
}
