package atelier

import (
	"strings"
	"testing"
)

// recordingAnim logs every control call.
type recordingAnim struct {
	calls []string
}

func (a *recordingAnim) Play()     { a.calls = append(a.calls, "play") }
func (a *recordingAnim) Pause()    { a.calls = append(a.calls, "pause") }
func (a *recordingAnim) Resume()   { a.calls = append(a.calls, "resume") }
func (a *recordingAnim) Reverse()  { a.calls = append(a.calls, "reverse") }
func (a *recordingAnim) Restart()  { a.calls = append(a.calls, "restart") }
func (a *recordingAnim) Reset()    { a.calls = append(a.calls, "reset") }
func (a *recordingAnim) Complete() { a.calls = append(a.calls, "complete") }

func (a *recordingAnim) take() string {
	s := strings.Join(a.calls, ",")
	a.calls = a.calls[:0]
	return s
}

func TestParseTriggerPoint(t *testing.T) {
	tests := []struct {
		in   string
		want TriggerPoint
	}{
		{"top 80%", TriggerPoint{ElementFrac: 0, ViewportFrac: 0.8}},
		{"top bottom", DefaultTriggerStart},
		{"bottom top", DefaultTriggerEnd},
		{"center 100px", TriggerPoint{ElementFrac: 0.5, ViewportPx: 100}},
		{"-20 50%", TriggerPoint{ElementPx: -20, ViewportFrac: 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTriggerPoint(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("ParseTriggerPoint(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
	for _, bad := range []string{"top", "top 80% extra", "middle 80%", "top x%"} {
		if _, err := ParseTriggerPoint(bad); err == nil {
			t.Errorf("ParseTriggerPoint(%q) succeeded", bad)
		}
	}
}

func TestParseToggleActions(t *testing.T) {
	got, err := ParseToggleActions("play none none reverse")
	if err != nil {
		t.Fatal(err)
	}
	want := ToggleActions{OnEnter: ActionPlay, OnLeaveBack: ActionReverse}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if _, err := ParseToggleActions("play none"); err == nil {
		t.Error("short action list parsed")
	}
	if _, err := ParseToggleActions("play none none jump"); err == nil {
		t.Error("unknown action parsed")
	}
}

func TestTriggerScrollFor(t *testing.T) {
	r := Rect{Y: 1000, Height: 400}
	// Element top meets 80% of an 800px viewport.
	if got := (TriggerPoint{ViewportFrac: 0.8}).scrollFor(r, 800); got != 360 {
		t.Errorf("start = %v, want 360", got)
	}
	if got := DefaultTriggerEnd.scrollFor(r, 800); got != 1400 {
		t.Errorf("end = %v, want 1400", got)
	}
}

func TestScrollTriggerCrossings(t *testing.T) {
	el := &Element{Rect: Rect{Y: 1000, Height: 400}}
	anim := &recordingAnim{}
	actions := ToggleActions{OnEnter: ActionPlay, OnLeave: ActionPause, OnEnterBack: ActionResume, OnLeaveBack: ActionReverse}
	tr := NewScrollTrigger(el, anim, TriggerPoint{ViewportFrac: 0.8}, DefaultTriggerEnd, actions)
	if got := anim.take(); got != "pause" {
		t.Fatalf("construction calls = %q, want pause", got)
	}

	steps := []struct {
		scroll float64
		want   string
		active bool
	}{
		{0, "", false},
		{359, "", false},
		{360, "play", true},
		{800, "", true},
		{1400, "pause", false},
		{1399, "resume", true},
		{100, "reverse", false},
		{2000, "play,pause", false},
		{0, "resume,reverse", false},
	}
	for _, st := range steps {
		tr.Update(st.scroll, 800)
		if got := anim.take(); got != st.want {
			t.Errorf("scroll %v: calls = %q, want %q", st.scroll, got, st.want)
		}
		if tr.Active() != st.active {
			t.Errorf("scroll %v: Active = %v, want %v", st.scroll, tr.Active(), st.active)
		}
	}
}

func TestScrollTriggerFirstEvaluationInView(t *testing.T) {
	el := &Element{Rect: Rect{Y: 100, Height: 300}}
	anim := &recordingAnim{}
	tr := NewScrollTrigger(el, anim, TriggerPoint{ViewportFrac: 0.8}, DefaultTriggerEnd, DefaultToggleActions())
	anim.take()
	tr.Update(0, 800)
	if got := anim.take(); got != "play" {
		t.Errorf("element already in view: calls = %q, want play", got)
	}
}

func TestScrollTriggerPlaysTimeline(t *testing.T) {
	el := &Element{Rect: Rect{Y: 2000, Height: 200}}
	target := elements(1)
	tl := NewPausedTimeline(TweenVars{})
	tl.FromTo(target, Pose{Y: 50, Alpha: 0}, Pose{Alpha: 1}, TweenVars{Duration: 1}, AtEnd())
	reverse, _ := ParseToggleActions("play none none reverse")
	tr := NewScrollTrigger(el, tl, TriggerPoint{ViewportFrac: 0.75}, DefaultTriggerEnd, reverse)

	tr.Update(0, 800)
	stepTimeline(tl, 1)
	if target[0].Pose.Alpha != 0 {
		t.Fatal("animation ran before its trigger")
	}
	tr.Update(1500, 800)
	stepTimeline(tl, 1)
	if target[0].Pose.Alpha != 1 {
		t.Errorf("alpha = %v after entering, want 1", target[0].Pose.Alpha)
	}
	tr.Update(0, 800)
	stepTimeline(tl, 1)
	if target[0].Pose.Alpha != 0 {
		t.Errorf("alpha = %v after leaving back, want 0", target[0].Pose.Alpha)
	}
}

func TestScrollTriggerNilElement(t *testing.T) {
	anim := &recordingAnim{}
	tr := NewScrollTrigger(nil, anim, DefaultTriggerStart, DefaultTriggerEnd, DefaultToggleActions())
	anim.take()
	tr.Update(0, 800)
	if got := anim.take(); got != "" {
		t.Errorf("nil trigger fired %q", got)
	}
}
