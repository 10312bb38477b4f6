package atelier

import (
	"math/rand/v2"
	"time"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Grain supplies the values used to texture pencil strokes. Sample returns a
// value in [0, 1) for the given channel at a point and time.
type Grain interface {
	Sample(ch int, x, y float64, now time.Duration) float64
}

// RandomGrain draws every sample independently, so strokes shimmer each frame.
type RandomGrain struct {
	rng *rand.Rand
}

// NewRandomGrain returns a RandomGrain with a deterministic seed.
func NewRandomGrain(seed uint64) *RandomGrain {
	return &RandomGrain{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Sample ignores its arguments and returns the next random value.
func (g *RandomGrain) Sample(int, float64, float64, time.Duration) float64 {
	return g.rng.Float64()
}

// NoiseGrain samples 3D simplex noise over (x, y, time). Neighbouring points
// get similar values, which reads as paper tooth rather than shimmer.
type NoiseGrain struct {
	noise opensimplex.Noise
	// Scale converts screen pixels to noise space.
	Scale float64
	// Speed converts seconds to noise space along the time axis.
	Speed float64
}

// NewNoiseGrain returns a NoiseGrain with sensible scale and drift.
func NewNoiseGrain(seed int64) *NoiseGrain {
	return &NoiseGrain{
		noise: opensimplex.NewNormalized(seed),
		Scale: 0.35,
		Speed: 6,
	}
}

// Sample returns normalized noise. Each channel reads a separate slice of the
// noise field.
func (g *NoiseGrain) Sample(ch int, x, y float64, now time.Duration) float64 {
	v := g.noise.Eval3(x*g.Scale+float64(ch)*101.3, y*g.Scale, now.Seconds()*g.Speed)
	if v >= 1 {
		v = 0.999999
	} else if v < 0 {
		v = 0
	}
	return v
}
