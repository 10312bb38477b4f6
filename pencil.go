package atelier

import "time"

// PencilConfig controls the look and the input policy of the pencil effect.
type PencilConfig struct {
	// Color is the stroke color.
	Color Color
	// Opacity is the alpha of a stroke before it starts fading.
	Opacity float64
	// MaxLife is how long a recorded point stays on the trail.
	MaxLife time.Duration
	// FadeWindow is the final part of MaxLife over which strokes fade to zero.
	FadeWindow time.Duration
	// LineWidth is the base stroke width in pixels.
	LineWidth float64
	// MinAlpha is the visibility threshold; fainter segments are not drawn.
	MinAlpha float64

	// Jitter is the peak-to-peak random offset applied to segment endpoints.
	Jitter float64
	// Grain is the range of the random alpha multiplier. Zero disables it.
	Grain Range
	// Pressure is the maximum random extra line width.
	Pressure float64

	// SmudgeAlpha is the opacity, relative to the stroke, of a wider faint
	// stroke drawn underneath. Zero disables the smudge.
	SmudgeAlpha float64
	// SmudgeWidth is the extra width of the smudge stroke.
	SmudgeWidth float64
	// SmudgeBlur blurs the smudge by this many pixels on surfaces that
	// support it. Zero draws it sharp.
	SmudgeBlur int

	// ScrollCooldown suppresses drawing for this long after a scroll event.
	ScrollCooldown time.Duration
	// NarrowWidth disables the effect on viewports this wide or narrower.
	NarrowWidth int
}

// ClassicPencilConfig is the clean variant: strokes last 2.5 seconds and are
// drawn without texture.
func ClassicPencilConfig() PencilConfig {
	return PencilConfig{
		Color:          ColorGraphite,
		Opacity:        0.85,
		MaxLife:        2500 * time.Millisecond,
		FadeWindow:     800 * time.Millisecond,
		LineWidth:      2,
		MinAlpha:       0.05,
		ScrollCooldown: 100 * time.Millisecond,
		NarrowWidth:    768,
	}
}

// SketchPencilConfig is the hand-drawn variant: shorter 1.65 second strokes
// with jitter, grain, pressure and a light smudge.
func SketchPencilConfig() PencilConfig {
	cfg := ClassicPencilConfig()
	cfg.MaxLife = 1650 * time.Millisecond
	cfg.Jitter = 0.5
	cfg.Grain = Range{Min: 0.8, Max: 1.2}
	cfg.Pressure = 0.5
	cfg.SmudgeAlpha = 0.2
	cfg.SmudgeWidth = 1
	cfg.SmudgeBlur = 1
	return cfg
}

// DefaultPencilConfig returns the sketch variant.
func DefaultPencilConfig() PencilConfig {
	return SketchPencilConfig()
}

// textured reports whether the config asks for any per-segment texture.
func (c *PencilConfig) textured() bool {
	return c.Jitter > 0 || c.Grain != (Range{}) || c.Pressure > 0
}

// Environment describes the device the page is shown on.
type Environment struct {
	Width, Height int
	// Touch is true on touch-capable devices.
	Touch bool
}

// PencilEffect draws a fading hand-drawn line that follows the pointer.
type PencilEffect struct {
	cfg     PencilConfig
	surface Surface
	grain   Grain
	trail   *Trail
	started bool

	lastScroll time.Duration
	scrolled   bool

	segs   []Segment
	smudge []Segment
}

// NewPencilEffect creates the effect. It never starts when surface is nil, on
// touch devices, or on narrow viewports; an unstarted effect ignores every
// call. A nil grain falls back to a RandomGrain when the config is textured.
func NewPencilEffect(surface Surface, env Environment, cfg PencilConfig, grain Grain) *PencilEffect {
	e := &PencilEffect{
		cfg:     cfg,
		surface: surface,
		grain:   grain,
		trail:   NewTrail(cfg.MaxLife),
	}
	if surface == nil || env.Touch || env.Width <= cfg.NarrowWidth {
		return e
	}
	if e.grain == nil && cfg.textured() {
		e.grain = NewRandomGrain(uint64(time.Now().UnixNano()))
	}
	e.started = true
	e.surface.Resize(env.Width, env.Height)
	return e
}

// Started reports whether the effect is running.
func (e *PencilEffect) Started() bool {
	return e.started
}

// Config returns a pointer to the config for live tuning. MaxLife is fixed
// at construction.
func (e *PencilEffect) Config() *PencilConfig {
	return &e.cfg
}

// Trail returns the live point trail.
func (e *PencilEffect) Trail() *Trail {
	return e.trail
}

// Segments returns the segments drawn by the last Tick.
func (e *PencilEffect) Segments() []Segment {
	return e.segs
}

// NotifyScroll marks the page as scrolling at time now.
func (e *PencilEffect) NotifyScroll(now time.Duration) {
	e.lastScroll = now
	e.scrolled = true
}

// Scrolling reports whether now falls inside the post-scroll cooldown.
func (e *PencilEffect) Scrolling(now time.Duration) bool {
	return e.scrolled && now-e.lastScroll < e.cfg.ScrollCooldown
}

// RecordPoint adds a pointer sample unless the effect is stopped, the page is
// scrolling, or the pointer is over an interactive element. It reports
// whether the point was recorded.
func (e *PencilEffect) RecordPoint(x, y float64, target *Element, now time.Duration) bool {
	if !e.started || e.Scrolling(now) || target.IsInteractive() {
		return false
	}
	e.trail.Record(x, y, now)
	return true
}

// Resize updates the surface dimensions. Recorded points keep their old
// screen coordinates.
func (e *PencilEffect) Resize(w, h int) {
	if !e.started {
		return
	}
	e.surface.Resize(w, h)
}

// Tick evicts expired points, clears the surface and redraws the trail.
func (e *PencilEffect) Tick(now time.Duration) {
	if !e.started {
		return
	}
	e.trail.Evict(now)
	e.surface.Clear()

	e.segs = e.trail.AppendSegments(e.segs[:0], now, &e.cfg, e.grain)
	if len(e.segs) == 0 {
		return
	}

	if e.cfg.SmudgeAlpha > 0 {
		e.smudge = e.smudge[:0]
		for _, s := range e.segs {
			s.Width += e.cfg.SmudgeWidth
			s.Alpha *= e.cfg.SmudgeAlpha
			e.smudge = append(e.smudge, s)
		}
		if bs, ok := e.surface.(BlurSurface); ok && e.cfg.SmudgeBlur > 0 {
			bs.DrawBlurred(e.smudge, e.cfg.Color, e.cfg.SmudgeBlur)
		} else {
			e.surface.DrawSegments(e.smudge, e.cfg.Color)
		}
	}
	e.surface.DrawSegments(e.segs, e.cfg.Color)
}

// Stop halts the effect permanently, for example when touch input appears.
func (e *PencilEffect) Stop() {
	if !e.started {
		return
	}
	e.started = false
	e.trail.Reset()
	e.surface.Clear()
}
