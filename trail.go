package atelier

import "time"

// Point is a single recorded pointer sample. Position and birth time never
// change after recording; only the derived age does.
type Point struct {
	X, Y float64
	Born time.Duration
}

// Age returns how long ago the point was recorded.
func (p Point) Age(now time.Duration) time.Duration {
	return now - p.Born
}

// Segment is one drawable stroke between two adjacent trail points.
type Segment struct {
	X0, Y0, X1, Y1 float64
	Width          float64
	Alpha          float64
}

// Trail is the chronological list of live points, oldest first.
type Trail struct {
	points  []Point
	maxLife time.Duration
}

// NewTrail creates an empty trail whose points expire after maxLife.
func NewTrail(maxLife time.Duration) *Trail {
	return &Trail{
		points:  make([]Point, 0, 256),
		maxLife: maxLife,
	}
}

// MaxLife returns the point lifetime.
func (t *Trail) MaxLife() time.Duration {
	return t.maxLife
}

// Record appends a point born at now.
func (t *Trail) Record(x, y float64, now time.Duration) {
	t.points = append(t.points, Point{X: x, Y: y, Born: now})
}

// Evict drops points from the front while the oldest one is older than
// MaxLife, and returns how many were removed.
func (t *Trail) Evict(now time.Duration) int {
	k := 0
	for k < len(t.points) && t.points[k].Age(now) > t.maxLife {
		k++
	}
	if k == 0 {
		return 0
	}
	n := copy(t.points, t.points[k:])
	t.points = t.points[:n]
	return k
}

// Len returns the number of live points.
func (t *Trail) Len() int {
	return len(t.points)
}

// Points returns the live points, oldest first. The slice is owned by the
// trail and is only valid until the next Record or Evict.
func (t *Trail) Points() []Point {
	return t.points
}

// Reset discards every point.
func (t *Trail) Reset() {
	t.points = t.points[:0]
}

// FadeAlpha returns the opacity of a segment of the given age. It stays at
// base until the last fadeWindow of maxLife, then falls linearly to exactly
// zero at maxLife.
func FadeAlpha(age, maxLife, fadeWindow time.Duration, base float64) float64 {
	if age >= maxLife {
		return 0
	}
	if fadeWindow <= 0 || age <= maxLife-fadeWindow {
		return base
	}
	a := base * float64(maxLife-age) / float64(fadeWindow)
	if a < 0 {
		return 0
	}
	return a
}

// Grain channels, one per perturbed quantity of a segment.
const (
	grainJitterX0 = iota
	grainJitterY0
	grainJitterX1
	grainJitterY1
	grainAlpha
	grainWidth
)

// AppendSegments appends the visible segments for the current frame to dst.
// The age of a segment is the age of its newer point. Segments whose alpha is
// not above cfg.MinAlpha are skipped. When grain is nil no texture is applied.
func (t *Trail) AppendSegments(dst []Segment, now time.Duration, cfg *PencilConfig, grain Grain) []Segment {
	for i := 1; i < len(t.points); i++ {
		p1 := &t.points[i-1]
		p2 := &t.points[i]

		alpha := FadeAlpha(p2.Age(now), t.maxLife, cfg.FadeWindow, cfg.Opacity)
		if alpha <= cfg.MinAlpha {
			continue
		}

		seg := Segment{
			X0: p1.X, Y0: p1.Y,
			X1: p2.X, Y1: p2.Y,
			Width: cfg.LineWidth,
			Alpha: alpha,
		}
		if grain != nil {
			if cfg.Jitter > 0 {
				seg.X0 += (grain.Sample(grainJitterX0, p1.X, p1.Y, now) - 0.5) * cfg.Jitter
				seg.Y0 += (grain.Sample(grainJitterY0, p1.X, p1.Y, now) - 0.5) * cfg.Jitter
				seg.X1 += (grain.Sample(grainJitterX1, p2.X, p2.Y, now) - 0.5) * cfg.Jitter
				seg.Y1 += (grain.Sample(grainJitterY1, p2.X, p2.Y, now) - 0.5) * cfg.Jitter
			}
			if cfg.Grain != (Range{}) {
				g := cfg.Grain.At(grain.Sample(grainAlpha, p2.X, p2.Y, now))
				seg.Alpha = clamp01(alpha * g)
			}
			if cfg.Pressure > 0 {
				seg.Width += grain.Sample(grainWidth, p2.X, p2.Y, now) * cfg.Pressure
			}
		}
		dst = append(dst, seg)
	}
	return dst
}
