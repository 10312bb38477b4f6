package atelier

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero max life", func(c *Config) { c.Pencil.MaxLife = 0 }},
		{"negative fade", func(c *Config) { c.Pencil.FadeWindow = -1 }},
		{"fade longer than life", func(c *Config) { c.Pencil.FadeWindow = c.Pencil.MaxLife + time.Millisecond }},
		{"opacity above one", func(c *Config) { c.Pencil.Opacity = 1.5 }},
		{"zero width", func(c *Config) { c.Pencil.LineWidth = 0 }},
		{"inverted grain", func(c *Config) { c.Pencil.Grain = Range{Min: 2, Max: 1} }},
		{"negative smudge blur", func(c *Config) { c.Pencil.SmudgeBlur = -1 }},
		{"zero radius", func(c *Config) { c.Repel.Radius = 0 }},
		{"ease above one", func(c *Config) { c.Repel.Ease = 1.5 }},
		{"zero scroll duration", func(c *Config) { c.Scroll.Duration = 0 }},
		{"missing easing", func(c *Config) { c.Scroll.Easing = nil }},
		{"negative reset delay", func(c *Config) { c.Book.ResetDelay = -time.Second }},
		{"sound without rate", func(c *Config) { c.SoundEnabled = true; c.Sound.SampleRate = 0 }},
		{"unknown grain", func(c *Config) { c.Grain = "perlin" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestApplyRejectsLongFadeWindow(t *testing.T) {
	var s Settings
	if err := json.Unmarshal([]byte(`{"pencil": {"maxLifeMs": 1000, "fadeWindowMs": 1500}}`), &s); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	if err := cfg.Apply(&s); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Apply = %v, want ErrInvalidConfig", err)
	}

	// A window equal to the life fades from the first frame, which is allowed.
	cfg = DefaultConfig()
	s.Pencil.FadeWindowMs = s.Pencil.MaxLifeMs
	if err := cfg.Apply(&s); err != nil {
		t.Errorf("Apply with an equal window = %v", err)
	}
}

func TestApplySettings(t *testing.T) {
	var s Settings
	err := json.Unmarshal([]byte(`{
		"pencil": {"variant": "classic", "color": "#102030", "maxLifeMs": 3000, "lineWidth": 3, "grain": "noise", "seed": 9},
		"repel": {"radius": 200},
		"scroll": {"durationMs": 800, "easing": "power2.out", "smoothTouch": true},
		"book": {"resetDelayMs": 500},
		"sound": true,
		"background": "#ffffff",
		"debug": true
	}`), &s)
	if err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := cfg.Apply(&s); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if cfg.Pencil.Jitter != 0 || cfg.Pencil.SmudgeAlpha != 0 {
		t.Error("classic variant kept the sketch texture")
	}
	if cfg.Pencil.MaxLife != 3*time.Second || cfg.Pencil.LineWidth != 3 {
		t.Errorf("pencil = %+v", cfg.Pencil)
	}
	if cfg.Pencil.Color.Hex() != "#102030" {
		t.Errorf("color = %s", cfg.Pencil.Color.Hex())
	}
	if cfg.Pencil.FadeWindow != 800*time.Millisecond {
		t.Errorf("unset fade window changed to %v", cfg.Pencil.FadeWindow)
	}
	if cfg.Grain != GrainNoise || cfg.Seed != 9 {
		t.Errorf("grain = %q seed = %d", cfg.Grain, cfg.Seed)
	}
	if cfg.Repel.Radius != 200 || cfg.Repel.Strength != 80 {
		t.Errorf("repel = %+v", cfg.Repel)
	}
	if !approxEqual(float64(cfg.Scroll.Duration), 0.8, 1e-6) || !cfg.Scroll.SmoothTouch {
		t.Errorf("scroll = %+v", cfg.Scroll)
	}
	if cfg.Book.ResetDelay != 500*time.Millisecond {
		t.Errorf("reset delay = %v", cfg.Book.ResetDelay)
	}
	if !cfg.SoundEnabled || !cfg.Debug || cfg.Background != ColorWhite {
		t.Errorf("sound = %v debug = %v background = %+v", cfg.SoundEnabled, cfg.Debug, cfg.Background)
	}
}

func TestApplyNil(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Apply(nil); err != nil {
		t.Fatal(err)
	}
	if cfg.Pencil != SketchPencilConfig() {
		t.Error("nil settings changed the config")
	}
}

func TestApplyRejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"variant", `{"pencil": {"variant": "crayon"}}`},
		{"color", `{"pencil": {"color": "graphite"}}`},
		{"easing", `{"scroll": {"easing": "wobble"}}`},
		{"background", `{"background": "#12"}`},
		{"invalid result", `{"repel": {"ease": 0}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Settings
			if err := json.Unmarshal([]byte(tt.in), &s); err != nil {
				t.Fatal(err)
			}
			cfg := DefaultConfig()
			if err := cfg.Apply(&s); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Apply = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
