package atelier

import "math"

// RepelConfig controls the collage repulsion effect.
type RepelConfig struct {
	// Radius is the interaction radius in pixels.
	Radius float64
	// Strength is the displacement at the center of the radius, in pixels.
	Strength float64
	// Ease is the per-frame interpolation factor toward the target.
	Ease float64
	// RestThreshold clears the displacement once both axes are within it.
	RestThreshold float64
}

// DefaultRepelConfig returns the collage settings.
func DefaultRepelConfig() RepelConfig {
	return RepelConfig{
		Radius:        300,
		Strength:      80,
		Ease:          0.1,
		RestThreshold: 0.1,
	}
}

// RepelTarget returns the displacement that pushes an element centered at
// (cx, cy) away from the pointer at (px, py). The magnitude falls linearly
// from Strength at the center to zero at Radius. A pointer exactly on the
// center pushes straight up.
func RepelTarget(cx, cy, px, py float64, cfg RepelConfig) (tx, ty float64) {
	dx := cx - px
	dy := cy - py
	dist := math.Hypot(dx, dy)
	if dist >= cfg.Radius {
		return 0, 0
	}
	force := (cfg.Radius - dist) / cfg.Radius * cfg.Strength
	if dist == 0 {
		return 0, -force
	}
	return dx / dist * force, dy / dist * force
}

// BoundsFunc reports the current on-screen rectangle of an anchor.
type BoundsFunc func() Rect

type repelItem struct {
	bounds BoundsFunc
	x, y   float64
	tx, ty float64
}

// Repulsion eases a set of elements away from the pointer.
type Repulsion struct {
	cfg   RepelConfig
	items []repelItem

	pointerX, pointerY float64
}

// NewRepulsion creates the effect for the given anchors. With no anchors the
// effect never starts.
func NewRepulsion(cfg RepelConfig, anchors ...BoundsFunc) *Repulsion {
	r := &Repulsion{cfg: cfg}
	for _, b := range anchors {
		if b != nil {
			r.items = append(r.items, repelItem{bounds: b})
		}
	}
	return r
}

// Started reports whether there is anything to animate.
func (r *Repulsion) Started() bool {
	return len(r.items) > 0
}

// Len returns the number of tracked anchors.
func (r *Repulsion) Len() int {
	return len(r.items)
}

// Config returns a pointer to the config for live tuning.
func (r *Repulsion) Config() *RepelConfig {
	return &r.cfg
}

// SetPointer records the latest pointer position in screen coordinates.
func (r *Repulsion) SetPointer(x, y float64) {
	r.pointerX, r.pointerY = x, y
}

// Update recomputes every target from the anchor's current center and moves
// the displacement one easing step toward it.
func (r *Repulsion) Update() {
	for i := range r.items {
		it := &r.items[i]
		c := it.bounds().Center()
		it.tx, it.ty = RepelTarget(c.X, c.Y, r.pointerX, r.pointerY, r.cfg)
		it.x += (it.tx - it.x) * r.cfg.Ease
		it.y += (it.ty - it.y) * r.cfg.Ease
	}
}

// Offset returns the displacement of item i rounded to hundredths of a pixel.
// When both axes are within RestThreshold it returns (0, 0, false) so the
// element can drop its transform entirely.
func (r *Repulsion) Offset(i int) (x, y float64, active bool) {
	it := &r.items[i]
	x = roundTo(it.x, 2)
	y = roundTo(it.y, 2)
	if math.Abs(x) <= r.cfg.RestThreshold && math.Abs(y) <= r.cfg.RestThreshold {
		return 0, 0, false
	}
	return x, y, true
}
