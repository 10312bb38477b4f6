package atelier

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tanema/gween/ease"
)

// Animation is anything a scroll trigger can control.
type Animation interface {
	Play()
	Pause()
	Resume()
	Reverse()
	Restart()
	Reset()
	Complete()
}

// TweenVars are the timing options of a tween. Zero fields fall back to the
// timeline defaults.
type TweenVars struct {
	// Duration in seconds.
	Duration float32
	// Delay before the first target starts, in seconds.
	Delay float32
	// Stagger is the extra delay between consecutive targets.
	Stagger float32
	// Ease shapes the motion.
	Ease ease.TweenFunc
}

const defaultTweenDuration = 0.5

// Position places a tween on a timeline: either an absolute time, or an offset
// from the current end of the timeline.
type Position struct {
	Offset   float32
	Relative bool
}

// AtEnd appends a tween after everything already on the timeline.
func AtEnd() Position { return Position{Relative: true} }

// At places a tween at an absolute time in seconds.
func At(t float32) Position { return Position{Offset: t} }

// ParsePosition parses a GSAP position parameter: "" (end of timeline), "-=x"
// or "+=x" (relative to the end), or a plain number of seconds.
func ParsePosition(s string) (Position, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return AtEnd(), nil
	}
	sign := float32(1)
	rel := false
	switch {
	case strings.HasPrefix(s, "-="):
		sign, rel, s = -1, true, s[2:]
	case strings.HasPrefix(s, "+="):
		rel, s = true, s[2:]
	}
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return Position{}, fmt.Errorf("parse position %q: %w", s, err)
	}
	return Position{Offset: sign * float32(v), Relative: rel}, nil
}

type timelineEntry struct {
	start     float32
	group     *TweenGroup
	immediate bool
	touched   bool
}

// Timeline sequences pose tweens. Playback time can run forwards or backwards
// and every entry is evaluated from the timeline time, so reversing retraces
// the exact path.
type Timeline struct {
	defaults TweenVars
	entries  []timelineEntry
	duration float32
	time     float32
	dir      float32
	playing  bool
}

// NewTimeline creates a playing timeline with the given defaults.
func NewTimeline(defaults TweenVars) *Timeline {
	return &Timeline{defaults: defaults, dir: 1, playing: true}
}

// NewPausedTimeline creates a timeline that waits for Play.
func NewPausedTimeline(defaults TweenVars) *Timeline {
	tl := NewTimeline(defaults)
	tl.playing = false
	return tl
}

func (tl *Timeline) resolve(v TweenVars) TweenVars {
	if v.Duration == 0 {
		v.Duration = tl.defaults.Duration
	}
	if v.Duration == 0 {
		v.Duration = defaultTweenDuration
	}
	if v.Ease == nil {
		v.Ease = tl.defaults.Ease
	}
	if v.Ease == nil {
		v.Ease = ease.OutQuad
	}
	if v.Delay == 0 {
		v.Delay = tl.defaults.Delay
	}
	if v.Stagger == 0 {
		v.Stagger = tl.defaults.Stagger
	}
	return v
}

func (tl *Timeline) startOf(pos Position) float32 {
	if pos.Relative {
		return max(0, tl.duration+pos.Offset)
	}
	return max(0, pos.Offset)
}

// FromTo adds a tween that moves each target from one pose to another. The
// from pose is applied immediately.
func (tl *Timeline) FromTo(targets []*Element, from, to Pose, vars TweenVars, pos Position) *Timeline {
	tl.add(targets, func(*Element) Pose { return from }, to, vars, pos, true)
	return tl
}

// To adds a tween from each target's pose at the time of the call.
func (tl *Timeline) To(targets []*Element, to Pose, vars TweenVars, pos Position) *Timeline {
	tl.add(targets, func(el *Element) Pose { return el.Pose }, to, vars, pos, false)
	return tl
}

func (tl *Timeline) add(targets []*Element, from func(*Element) Pose, to Pose, vars TweenVars, pos Position, immediate bool) {
	v := tl.resolve(vars)
	base := tl.startOf(pos) + v.Delay
	end := tl.duration
	for i, el := range targets {
		if el == nil {
			continue
		}
		e := timelineEntry{
			start:     base + float32(i)*v.Stagger,
			group:     TweenPose(el, from(el), to, v.Duration, v.Ease),
			immediate: immediate,
		}
		if immediate {
			e.group.Seek(0)
		}
		tl.entries = append(tl.entries, e)
		end = max(end, e.start+v.Duration)
	}
	tl.duration = end
}

// Duration returns the total length in seconds.
func (tl *Timeline) Duration() float32 {
	return tl.duration
}

// Time returns the playhead position in seconds.
func (tl *Timeline) Time() float32 {
	return tl.time
}

// Progress returns the playhead as a fraction of the duration.
func (tl *Timeline) Progress() float64 {
	if tl.duration == 0 {
		return 1
	}
	return float64(tl.time / tl.duration)
}

// Playing reports whether the playhead is moving.
func (tl *Timeline) Playing() bool {
	return tl.playing
}

// Reversed reports whether the playhead runs backwards.
func (tl *Timeline) Reversed() bool {
	return tl.dir < 0
}

// Update advances the playhead by dt seconds in the current direction and
// renders every entry. Playback stops at either end.
func (tl *Timeline) Update(dt float32) {
	if !tl.playing {
		return
	}
	tl.time += tl.dir * dt
	if tl.time >= tl.duration {
		tl.time = tl.duration
		tl.playing = false
	} else if tl.time <= 0 {
		tl.time = 0
		tl.playing = false
	}
	tl.render()
}

func (tl *Timeline) render() {
	for i := range tl.entries {
		e := &tl.entries[i]
		local := tl.time - e.start
		if local < 0 {
			if e.immediate || e.touched {
				e.group.Seek(0)
			}
			continue
		}
		e.touched = true
		e.group.Seek(local)
	}
}

// Play runs forwards from the current time.
func (tl *Timeline) Play() {
	tl.dir = 1
	tl.playing = tl.time < tl.duration
}

// Reverse runs backwards from the current time.
func (tl *Timeline) Reverse() {
	tl.dir = -1
	tl.playing = tl.time > 0
}

// Pause freezes the playhead.
func (tl *Timeline) Pause() {
	tl.playing = false
}

// Resume continues in the current direction.
func (tl *Timeline) Resume() {
	if tl.dir > 0 {
		tl.playing = tl.time < tl.duration
	} else {
		tl.playing = tl.time > 0
	}
}

// Restart jumps to the start and plays forwards.
func (tl *Timeline) Restart() {
	tl.time = 0
	tl.render()
	tl.Play()
}

// Reset jumps to the start and pauses.
func (tl *Timeline) Reset() {
	tl.time = 0
	tl.dir = 1
	tl.playing = false
	tl.render()
}

// Complete jumps to the end and pauses.
func (tl *Timeline) Complete() {
	tl.time = tl.duration
	tl.playing = false
	tl.render()
}

// Seek moves the playhead to t seconds without changing play state.
func (tl *Timeline) Seek(t float32) {
	tl.time = float32(math.Max(0, math.Min(float64(t), float64(tl.duration))))
	tl.render()
}
