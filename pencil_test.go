package atelier

import (
	"testing"
	"time"
)

// fakeSurface records what the pencil asks of its drawing surface.
type fakeSurface struct {
	w, h    int
	clears  int
	draws   [][]Segment
	colors  []Color
	resizes int
}

func (s *fakeSurface) Size() (int, int) { return s.w, s.h }
func (s *fakeSurface) Resize(w, h int)  { s.w, s.h = w, h; s.resizes++ }
func (s *fakeSurface) Clear()           { s.clears++; s.draws = s.draws[:0] }

func (s *fakeSurface) DrawSegments(segs []Segment, c Color) {
	s.draws = append(s.draws, append([]Segment(nil), segs...))
	s.colors = append(s.colors, c)
}

var desktop = Environment{Width: 1280, Height: 800}

func TestPencilDoesNotStart(t *testing.T) {
	tests := []struct {
		name    string
		surface Surface
		env     Environment
	}{
		{"no surface", nil, desktop},
		{"touch", &fakeSurface{}, Environment{Width: 1280, Height: 800, Touch: true}},
		{"narrow", &fakeSurface{}, Environment{Width: 768, Height: 1024}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPencilEffect(tt.surface, tt.env, ClassicPencilConfig(), nil)
			if p.Started() {
				t.Fatal("effect started")
			}
			if p.RecordPoint(10, 10, nil, 0) {
				t.Error("stopped effect recorded a point")
			}
			p.Tick(0)
			p.Resize(10, 10)
			p.Stop()
		})
	}
}

func TestPencilStartsAndSizesSurface(t *testing.T) {
	s := &fakeSurface{}
	p := NewPencilEffect(s, Environment{Width: 769, Height: 600}, ClassicPencilConfig(), nil)
	if !p.Started() {
		t.Fatal("effect did not start at 769px")
	}
	if s.w != 769 || s.h != 600 {
		t.Errorf("surface = %dx%d, want 769x600", s.w, s.h)
	}
	p.RecordPoint(700, 500, nil, 0)
	p.RecordPoint(740, 520, nil, 16*time.Millisecond)
	before := append([]Point(nil), p.Trail().Points()...)

	p.Resize(1024, 700)
	if s.w != 1024 || s.h != 700 {
		t.Errorf("surface after resize = %dx%d", s.w, s.h)
	}
	after := p.Trail().Points()
	if len(after) != len(before) {
		t.Fatalf("points after resize = %d, want %d", len(after), len(before))
	}
	for i := range before {
		if after[i] != before[i] {
			t.Errorf("point %d moved on resize: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestPencilTexturedGetsGrain(t *testing.T) {
	p := NewPencilEffect(&fakeSurface{}, desktop, SketchPencilConfig(), nil)
	if p.grain == nil {
		t.Error("sketch preset started without a grain source")
	}
	p = NewPencilEffect(&fakeSurface{}, desktop, ClassicPencilConfig(), nil)
	if p.grain != nil {
		t.Error("classic preset picked up a grain source")
	}
}

func TestPencilSkipsInteractiveTargets(t *testing.T) {
	p := NewPencilEffect(&fakeSurface{}, desktop, ClassicPencilConfig(), nil)
	button := &Element{Kind: KindButton}
	label := &Element{Kind: KindBlock, Parent: &Element{Kind: KindLink}}
	marked := &Element{Kind: KindBlock, Classes: []string{"interactive"}}
	plain := &Element{Kind: KindBlock}

	for _, el := range []*Element{button, label, marked} {
		if p.RecordPoint(1, 1, el, 0) {
			t.Errorf("recorded over %+v", el)
		}
	}
	if !p.RecordPoint(1, 1, plain, 0) || !p.RecordPoint(2, 2, nil, 0) {
		t.Error("did not record over a plain element")
	}
	if p.Trail().Len() != 2 {
		t.Errorf("trail length = %d, want 2", p.Trail().Len())
	}
}

func TestPencilScrollCooldown(t *testing.T) {
	p := NewPencilEffect(&fakeSurface{}, desktop, ClassicPencilConfig(), nil)
	p.NotifyScroll(ms64(1000))
	if p.RecordPoint(1, 1, nil, ms64(1050)) {
		t.Error("recorded during the scroll cooldown")
	}
	if !p.Scrolling(ms64(1099)) {
		t.Error("cooldown ended early")
	}
	if !p.RecordPoint(1, 1, nil, ms64(1100)) {
		t.Error("did not record after the cooldown")
	}
}

func TestPencilTick(t *testing.T) {
	s := &fakeSurface{}
	cfg := ClassicPencilConfig()
	p := NewPencilEffect(s, desktop, cfg, nil)
	p.RecordPoint(0, 0, nil, 0)
	p.RecordPoint(10, 0, nil, ms64(10))
	p.RecordPoint(20, 0, nil, ms64(20))

	p.Tick(ms64(20))
	if s.clears != 1 {
		t.Errorf("clears = %d, want 1", s.clears)
	}
	if len(s.draws) != 1 || len(s.draws[0]) != 2 {
		t.Fatalf("draws = %v, want one batch of 2 segments", s.draws)
	}
	if s.colors[0] != ColorGraphite {
		t.Errorf("color = %v, want graphite", s.colors[0])
	}

	p.Tick(ms64(2600))
	if p.Trail().Len() != 0 {
		t.Errorf("trail length at 2600ms = %d, want 0", p.Trail().Len())
	}
	if len(s.draws) != 0 {
		t.Errorf("expired trail still drawn: %v", s.draws)
	}
}

func TestPencilSmudgeDrawnUnderneath(t *testing.T) {
	s := &fakeSurface{}
	cfg := SketchPencilConfig()
	p := NewPencilEffect(s, desktop, cfg, constGrain(0.5))
	p.RecordPoint(0, 0, nil, 0)
	p.RecordPoint(10, 0, nil, 0)
	p.Tick(0)

	if len(s.draws) != 2 {
		t.Fatalf("draw batches = %d, want smudge then stroke", len(s.draws))
	}
	smudge, stroke := s.draws[0][0], s.draws[1][0]
	assertNear(t, "smudge width", smudge.Width, stroke.Width+cfg.SmudgeWidth)
	assertNear(t, "smudge alpha", smudge.Alpha, stroke.Alpha*cfg.SmudgeAlpha)
}

// blurringSurface also records blurred draws.
type blurringSurface struct {
	fakeSurface
	blurred [][]Segment
	radii   []int
}

func (s *blurringSurface) DrawBlurred(segs []Segment, c Color, radius int) {
	s.blurred = append(s.blurred, append([]Segment(nil), segs...))
	s.radii = append(s.radii, radius)
}

func TestPencilSmudgeBlurred(t *testing.T) {
	tests := []struct {
		name        string
		blur        int
		wantBlurred int
		wantSharp   int
	}{
		{"blur on", 1, 1, 1},
		{"blur off", 0, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &blurringSurface{}
			cfg := SketchPencilConfig()
			cfg.SmudgeBlur = tt.blur
			p := NewPencilEffect(s, desktop, cfg, constGrain(0.5))
			p.RecordPoint(0, 0, nil, 0)
			p.RecordPoint(10, 0, nil, 0)
			p.Tick(0)

			if len(s.blurred) != tt.wantBlurred || len(s.draws) != tt.wantSharp {
				t.Fatalf("blurred = %d sharp = %d, want %d and %d",
					len(s.blurred), len(s.draws), tt.wantBlurred, tt.wantSharp)
			}
			if tt.wantBlurred > 0 {
				if s.radii[0] != tt.blur {
					t.Errorf("radius = %d, want %d", s.radii[0], tt.blur)
				}
				assertNear(t, "smudge alpha", s.blurred[0][0].Alpha, s.draws[0][0].Alpha*cfg.SmudgeAlpha)
			}
		})
	}
}

func TestPencilStop(t *testing.T) {
	s := &fakeSurface{}
	p := NewPencilEffect(s, desktop, ClassicPencilConfig(), nil)
	p.RecordPoint(0, 0, nil, 0)
	p.Stop()
	if p.Started() || p.Trail().Len() != 0 || s.clears != 1 {
		t.Errorf("Stop left started=%v len=%d clears=%d", p.Started(), p.Trail().Len(), s.clears)
	}
}

func TestPencilPresets(t *testing.T) {
	if got := ClassicPencilConfig().MaxLife; got != 2500*time.Millisecond {
		t.Errorf("classic MaxLife = %v", got)
	}
	if got := SketchPencilConfig().MaxLife; got != 1650*time.Millisecond {
		t.Errorf("sketch MaxLife = %v", got)
	}
	if DefaultPencilConfig() != SketchPencilConfig() {
		t.Error("default is not the sketch preset")
	}
}
