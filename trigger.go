package atelier

import (
	"fmt"
	"strconv"
	"strings"
)

// ToggleAction is what a scroll trigger does to its animation on a boundary
// crossing.
type ToggleAction uint8

const (
	ActionNone ToggleAction = iota
	ActionPlay
	ActionPause
	ActionResume
	ActionReverse
	ActionRestart
	ActionReset
	ActionComplete
)

var toggleActionNames = map[string]ToggleAction{
	"none":     ActionNone,
	"play":     ActionPlay,
	"pause":    ActionPause,
	"resume":   ActionResume,
	"reverse":  ActionReverse,
	"restart":  ActionRestart,
	"reset":    ActionReset,
	"complete": ActionComplete,
}

func (a ToggleAction) apply(anim Animation) {
	switch a {
	case ActionPlay:
		anim.Play()
	case ActionPause:
		anim.Pause()
	case ActionResume:
		anim.Resume()
	case ActionReverse:
		anim.Reverse()
	case ActionRestart:
		anim.Restart()
	case ActionReset:
		anim.Reset()
	case ActionComplete:
		anim.Complete()
	}
}

// ToggleActions lists the actions for the four boundary crossings.
type ToggleActions struct {
	OnEnter     ToggleAction // start crossed scrolling down
	OnLeave     ToggleAction // end crossed scrolling down
	OnEnterBack ToggleAction // end crossed scrolling up
	OnLeaveBack ToggleAction // start crossed scrolling up
}

// DefaultToggleActions plays once on enter and ignores everything else.
func DefaultToggleActions() ToggleActions {
	return ToggleActions{OnEnter: ActionPlay}
}

// ParseToggleActions parses four space-separated action names, for example
// "play none none reverse".
func ParseToggleActions(s string) (ToggleActions, error) {
	words := strings.Fields(s)
	if len(words) != 4 {
		return ToggleActions{}, fmt.Errorf("parse toggle actions %q: want 4 actions, got %d", s, len(words))
	}
	var acts [4]ToggleAction
	for i, w := range words {
		a, ok := toggleActionNames[strings.ToLower(w)]
		if !ok {
			return ToggleActions{}, fmt.Errorf("parse toggle actions %q: unknown action %q", s, w)
		}
		acts[i] = a
	}
	return ToggleActions{acts[0], acts[1], acts[2], acts[3]}, nil
}

// TriggerPoint pairs a spot on the trigger element with a spot on the
// viewport. The trigger fires when the two line up. Each spot is a fraction of
// the height plus a pixel offset.
type TriggerPoint struct {
	ElementFrac, ElementPx   float64
	ViewportFrac, ViewportPx float64
}

// ParseTriggerPoint parses "<element> <viewport>" where each side is top,
// center, bottom, a percentage, or a pixel value, for example "top 80%".
func ParseTriggerPoint(s string) (TriggerPoint, error) {
	words := strings.Fields(s)
	if len(words) != 2 {
		return TriggerPoint{}, fmt.Errorf("parse trigger point %q: want 2 values, got %d", s, len(words))
	}
	ef, ep, err := parseEdge(words[0])
	if err != nil {
		return TriggerPoint{}, fmt.Errorf("parse trigger point %q: %w", s, err)
	}
	vf, vp, err := parseEdge(words[1])
	if err != nil {
		return TriggerPoint{}, fmt.Errorf("parse trigger point %q: %w", s, err)
	}
	return TriggerPoint{ElementFrac: ef, ElementPx: ep, ViewportFrac: vf, ViewportPx: vp}, nil
}

func parseEdge(w string) (frac, px float64, err error) {
	switch strings.ToLower(w) {
	case "top":
		return 0, 0, nil
	case "center":
		return 0.5, 0, nil
	case "bottom":
		return 1, 0, nil
	}
	switch {
	case strings.HasSuffix(w, "%"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(w, "%"), 64)
		if err != nil {
			return 0, 0, fmt.Errorf("bad percentage %q", w)
		}
		return v / 100, 0, nil
	case strings.HasSuffix(w, "px"):
		w = strings.TrimSuffix(w, "px")
	}
	v, err := strconv.ParseFloat(w, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad edge %q", w)
	}
	return 0, v, nil
}

// scrollFor returns the scroll offset at which the point lines up.
func (p TriggerPoint) scrollFor(r Rect, viewportH float64) float64 {
	elem := r.Y + r.Height*p.ElementFrac + p.ElementPx
	view := viewportH*p.ViewportFrac + p.ViewportPx
	return elem - view
}

type triggerState uint8

const (
	triggerBefore triggerState = iota
	triggerActive
	triggerAfter
)

// ScrollTrigger controls an animation from the scroll position of the page
// relative to a trigger element.
type ScrollTrigger struct {
	trigger   *Element
	anim      Animation
	start     TriggerPoint
	end       TriggerPoint
	actions   ToggleActions
	state     triggerState
	evaluated bool
}

// DefaultTriggerStart is "top bottom": the element's top meets the viewport
// bottom.
var DefaultTriggerStart = TriggerPoint{ElementFrac: 0, ViewportFrac: 1}

// DefaultTriggerEnd is "bottom top": the element's bottom meets the viewport
// top.
var DefaultTriggerEnd = TriggerPoint{ElementFrac: 1, ViewportFrac: 0}

// NewScrollTrigger binds anim to the trigger element and pauses it until the
// first crossing.
func NewScrollTrigger(trigger *Element, anim Animation, start, end TriggerPoint, actions ToggleActions) *ScrollTrigger {
	anim.Pause()
	return &ScrollTrigger{
		trigger: trigger,
		anim:    anim,
		start:   start,
		end:     end,
		actions: actions,
	}
}

// Active reports whether the scroll position is between start and end.
func (t *ScrollTrigger) Active() bool {
	return t.state == triggerActive
}

// Update evaluates the trigger at the given scroll offset and applies the
// toggle actions for every boundary crossed since the last call.
func (t *ScrollTrigger) Update(scroll, viewportH float64) {
	if t.trigger == nil {
		return
	}
	startAt := t.start.scrollFor(t.trigger.Rect, viewportH)
	endAt := t.end.scrollFor(t.trigger.Rect, viewportH)

	next := triggerBefore
	switch {
	case scroll >= endAt && endAt > startAt:
		next = triggerAfter
	case scroll >= startAt:
		next = triggerActive
	}

	prev := t.state
	if !t.evaluated {
		prev = triggerBefore
		t.evaluated = true
	}
	if next == prev {
		return
	}
	t.state = next

	switch {
	case prev == triggerBefore:
		t.actions.OnEnter.apply(t.anim)
		if next == triggerAfter {
			t.actions.OnLeave.apply(t.anim)
		}
	case prev == triggerAfter:
		t.actions.OnEnterBack.apply(t.anim)
		if next == triggerBefore {
			t.actions.OnLeaveBack.apply(t.anim)
		}
	case next == triggerAfter:
		t.actions.OnLeave.apply(t.anim)
	default:
		t.actions.OnLeaveBack.apply(t.anim)
	}
}
