package atelier

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ScrollConfig controls smooth scrolling.
type ScrollConfig struct {
	// Duration is how long a wheel-initiated glide takes, in seconds.
	Duration float32
	// Easing shapes the glide.
	Easing ease.TweenFunc
	// WheelStep is the distance of one wheel notch in pixels.
	WheelStep float64
	// WheelMultiplier scales wheel input.
	WheelMultiplier float64
	// TouchMultiplier scales touch drags.
	TouchMultiplier float64
	// SmoothTouch glides touch drags like wheel input instead of following
	// the finger.
	SmoothTouch bool
}

// DefaultScrollConfig returns a 1.2 second exponential glide.
func DefaultScrollConfig() ScrollConfig {
	return ScrollConfig{
		Duration:        1.2,
		Easing:          ExpoScrollEase,
		WheelStep:       100,
		WheelMultiplier: 1,
		TouchMultiplier: 2,
	}
}

// ScrollEvent is delivered to listeners whenever the scroll offset changes.
type ScrollEvent struct {
	Scroll float64
	// Velocity is the change since the previous frame, in pixels.
	Velocity float64
	// Direction is 1 scrolling down, -1 scrolling up.
	Direction int
}

// SmoothScroll intercepts raw scroll input and eases the page offset toward
// the requested position.
type SmoothScroll struct {
	cfg    ScrollConfig
	scroll float64
	target float64
	limit  float64

	tween     *gween.Tween
	listeners []func(ScrollEvent)
}

// NewSmoothScroll creates a scroller over a page that can scroll limit pixels.
func NewSmoothScroll(cfg ScrollConfig, limit float64) *SmoothScroll {
	return &SmoothScroll{cfg: cfg, limit: math.Max(0, limit)}
}

// Scroll returns the current offset.
func (s *SmoothScroll) Scroll() float64 {
	return s.scroll
}

// Target returns the offset the scroller is gliding toward.
func (s *SmoothScroll) Target() float64 {
	return s.target
}

// Limit returns the maximum offset.
func (s *SmoothScroll) Limit() float64 {
	return s.limit
}

// SetLimit changes the maximum offset, for example after a resize, and
// clamps the current position.
func (s *SmoothScroll) SetLimit(limit float64) {
	s.limit = math.Max(0, limit)
	if s.target > s.limit {
		s.ScrollTo(s.limit, s.tween == nil)
	}
}

// IsScrolling reports whether a glide is in progress.
func (s *SmoothScroll) IsScrolling() bool {
	return s.tween != nil
}

// OnScroll registers a listener for scroll changes.
func (s *SmoothScroll) OnScroll(fn func(ScrollEvent)) {
	s.listeners = append(s.listeners, fn)
}

// Wheel handles a wheel movement of notches (positive scrolls down).
func (s *SmoothScroll) Wheel(notches float64) {
	if notches == 0 {
		return
	}
	s.ScrollTo(s.target+notches*s.cfg.WheelStep*s.cfg.WheelMultiplier, false)
}

// Touch handles a finger drag of dy pixels (positive scrolls down).
func (s *SmoothScroll) Touch(dy float64) {
	if dy == 0 {
		return
	}
	s.ScrollTo(s.target+dy*s.cfg.TouchMultiplier, !s.cfg.SmoothTouch)
}

// ScrollTo moves to y, clamped to the page. Immediate jumps emit a scroll
// event right away; otherwise a glide starts from the current offset.
func (s *SmoothScroll) ScrollTo(y float64, immediate bool) {
	s.target = math.Max(0, math.Min(y, s.limit))
	if immediate {
		s.tween = nil
		s.set(s.target)
		return
	}
	if s.target == s.scroll {
		s.tween = nil
		return
	}
	s.tween = gween.New(float32(s.scroll), float32(s.target), s.cfg.Duration, s.cfg.Easing)
}

// Update advances the glide by dt seconds.
func (s *SmoothScroll) Update(dt float32) {
	if s.tween == nil {
		return
	}
	val, done := s.tween.Update(dt)
	if done {
		s.tween = nil
		val = float32(s.target)
	}
	s.set(float64(val))
}

func (s *SmoothScroll) set(y float64) {
	delta := y - s.scroll
	if delta == 0 {
		return
	}
	s.scroll = y
	ev := ScrollEvent{Scroll: y, Velocity: delta, Direction: 1}
	if delta < 0 {
		ev.Direction = -1
	}
	for _, fn := range s.listeners {
		fn(ev)
	}
}
