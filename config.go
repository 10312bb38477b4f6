package atelier

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// GrainKind selects the pencil texture source.
type GrainKind string

const (
	GrainRandom GrainKind = "random" // independent samples per frame
	GrainNoise  GrainKind = "noise"  // coherent simplex noise
)

// Config gathers the settings of every effect on a page.
type Config struct {
	Pencil PencilConfig
	Repel  RepelConfig
	Scroll ScrollConfig
	Book   BookConfig
	Sound  SoundConfig

	// Grain selects the pencil texture source.
	Grain GrainKind
	// Seed seeds the grain source. Zero picks a time-based seed.
	Seed int64
	// SoundEnabled turns on the page-flip sound.
	SoundEnabled bool
	// Background is the page color.
	Background Color
	// Font draws element text. NewPage loads DefaultFont when it is nil.
	Font *TTFFont
	// TextColor is the color of element text.
	TextColor Color
	// Debug prints per-frame stats to stderr and draws an overlay.
	Debug bool
	// ScreenshotDir is where TestRunner screenshots are written.
	ScreenshotDir string
}

// DefaultConfig returns the studio page settings.
func DefaultConfig() Config {
	return Config{
		Pencil:        DefaultPencilConfig(),
		Repel:         DefaultRepelConfig(),
		Scroll:        DefaultScrollConfig(),
		Book:          DefaultBookConfig(),
		Sound:         DefaultSoundConfig(),
		Grain:         GrainRandom,
		Background:    Color{R: 0.96, G: 0.95, B: 0.92, A: 1},
		TextColor:     ColorGraphite,
		ScreenshotDir: "screenshots",
	}
}

// Validate checks the values that would make an effect misbehave.
func (c *Config) Validate() error {
	switch {
	case c.Pencil.MaxLife <= 0:
		return fmt.Errorf("%w: pencil max life must be positive", ErrInvalidConfig)
	case c.Pencil.FadeWindow < 0:
		return fmt.Errorf("%w: pencil fade window must not be negative", ErrInvalidConfig)
	case c.Pencil.FadeWindow > c.Pencil.MaxLife:
		return fmt.Errorf("%w: pencil fade window %v exceeds max life %v", ErrInvalidConfig, c.Pencil.FadeWindow, c.Pencil.MaxLife)
	case c.Pencil.Opacity < 0 || c.Pencil.Opacity > 1:
		return fmt.Errorf("%w: pencil opacity %v outside [0, 1]", ErrInvalidConfig, c.Pencil.Opacity)
	case c.Pencil.LineWidth <= 0:
		return fmt.Errorf("%w: pencil line width must be positive", ErrInvalidConfig)
	case c.Pencil.SmudgeBlur < 0:
		return fmt.Errorf("%w: pencil smudge blur must not be negative", ErrInvalidConfig)
	case c.Pencil.Grain.Min > c.Pencil.Grain.Max:
		return fmt.Errorf("%w: pencil grain min exceeds max", ErrInvalidConfig)
	case c.Repel.Radius <= 0:
		return fmt.Errorf("%w: repel radius must be positive", ErrInvalidConfig)
	case c.Repel.Ease <= 0 || c.Repel.Ease > 1:
		return fmt.Errorf("%w: repel ease %v outside (0, 1]", ErrInvalidConfig, c.Repel.Ease)
	case c.Scroll.Duration <= 0:
		return fmt.Errorf("%w: scroll duration must be positive", ErrInvalidConfig)
	case c.Scroll.Easing == nil:
		return fmt.Errorf("%w: scroll easing is required", ErrInvalidConfig)
	case c.Book.ResetDelay < 0:
		return fmt.Errorf("%w: book reset delay must not be negative", ErrInvalidConfig)
	case c.SoundEnabled && c.Sound.SampleRate <= 0:
		return fmt.Errorf("%w: sound sample rate must be positive", ErrInvalidConfig)
	case c.Grain != GrainRandom && c.Grain != GrainNoise:
		return fmt.Errorf("%w: unknown grain %q", ErrInvalidConfig, c.Grain)
	}
	return nil
}

// Settings is the optional "settings" block of a layout file. Every field
// overrides the matching default when present. Durations are milliseconds.
type Settings struct {
	Pencil *PencilSettings `json:"pencil,omitempty"`
	Repel  *RepelSettings  `json:"repel,omitempty"`
	Scroll *ScrollSettings `json:"scroll,omitempty"`
	Book   *BookSettings   `json:"book,omitempty"`

	Sound      *bool  `json:"sound,omitempty"`
	Background string `json:"background,omitempty"`
	Debug      *bool  `json:"debug,omitempty"`
}

// PencilSettings overrides PencilConfig.
type PencilSettings struct {
	// Variant picks the base preset: "sketch" or "classic".
	Variant      string   `json:"variant,omitempty"`
	Color        string   `json:"color,omitempty"`
	Opacity      *float64 `json:"opacity,omitempty"`
	MaxLifeMs    *int     `json:"maxLifeMs,omitempty"`
	FadeWindowMs *int     `json:"fadeWindowMs,omitempty"`
	LineWidth    *float64 `json:"lineWidth,omitempty"`
	Jitter       *float64 `json:"jitter,omitempty"`
	Pressure     *float64 `json:"pressure,omitempty"`
	SmudgeBlur   *int     `json:"smudgeBlur,omitempty"`
	Grain        string   `json:"grain,omitempty"`
	Seed         *int64   `json:"seed,omitempty"`
}

// RepelSettings overrides RepelConfig.
type RepelSettings struct {
	Radius   *float64 `json:"radius,omitempty"`
	Strength *float64 `json:"strength,omitempty"`
	Ease     *float64 `json:"ease,omitempty"`
}

// ScrollSettings overrides ScrollConfig.
type ScrollSettings struct {
	DurationMs      *int     `json:"durationMs,omitempty"`
	Easing          string   `json:"easing,omitempty"`
	WheelMultiplier *float64 `json:"wheelMultiplier,omitempty"`
	TouchMultiplier *float64 `json:"touchMultiplier,omitempty"`
	SmoothTouch     *bool    `json:"smoothTouch,omitempty"`
}

// BookSettings overrides BookConfig.
type BookSettings struct {
	ResetDelayMs *int `json:"resetDelayMs,omitempty"`
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

// Apply overlays the settings onto c and validates the result.
func (c *Config) Apply(s *Settings) error {
	if s == nil {
		return c.Validate()
	}
	if p := s.Pencil; p != nil {
		switch p.Variant {
		case "":
		case "sketch":
			c.Pencil = SketchPencilConfig()
		case "classic":
			c.Pencil = ClassicPencilConfig()
		default:
			return fmt.Errorf("%w: unknown pencil variant %q", ErrInvalidConfig, p.Variant)
		}
		if p.Color != "" {
			col, err := ParseHexColor(p.Color)
			if err != nil {
				return fmt.Errorf("%w: pencil color: %w", ErrInvalidConfig, err)
			}
			c.Pencil.Color = col
		}
		setIf(&c.Pencil.Opacity, p.Opacity)
		setIf(&c.Pencil.LineWidth, p.LineWidth)
		setIf(&c.Pencil.Jitter, p.Jitter)
		setIf(&c.Pencil.Pressure, p.Pressure)
		setIf(&c.Pencil.SmudgeBlur, p.SmudgeBlur)
		setIf(&c.Seed, p.Seed)
		if p.MaxLifeMs != nil {
			c.Pencil.MaxLife = ms(*p.MaxLifeMs)
		}
		if p.FadeWindowMs != nil {
			c.Pencil.FadeWindow = ms(*p.FadeWindowMs)
		}
		if p.Grain != "" {
			c.Grain = GrainKind(p.Grain)
		}
	}
	if r := s.Repel; r != nil {
		setIf(&c.Repel.Radius, r.Radius)
		setIf(&c.Repel.Strength, r.Strength)
		setIf(&c.Repel.Ease, r.Ease)
	}
	if sc := s.Scroll; sc != nil {
		if sc.DurationMs != nil {
			c.Scroll.Duration = float32(ms(*sc.DurationMs).Seconds())
		}
		if sc.Easing != "" {
			fn, ok := EaseByName(sc.Easing)
			if !ok {
				return fmt.Errorf("%w: unknown scroll easing %q", ErrInvalidConfig, sc.Easing)
			}
			c.Scroll.Easing = fn
		}
		setIf(&c.Scroll.WheelMultiplier, sc.WheelMultiplier)
		setIf(&c.Scroll.TouchMultiplier, sc.TouchMultiplier)
		setIf(&c.Scroll.SmoothTouch, sc.SmoothTouch)
	}
	if b := s.Book; b != nil && b.ResetDelayMs != nil {
		c.Book.ResetDelay = ms(*b.ResetDelayMs)
	}
	setIf(&c.SoundEnabled, s.Sound)
	setIf(&c.Debug, s.Debug)
	if s.Background != "" {
		col, err := ParseHexColor(s.Background)
		if err != nil {
			return fmt.Errorf("%w: background: %w", ErrInvalidConfig, err)
		}
		c.Background = col
	}
	return c.Validate()
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
