package atelier

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFontSize is the size of the built-in page font in pixels.
const DefaultFontSize = 16

// TTFFont wraps Ebitengine's text/v2 for TrueType page copy.
type TTFFont struct {
	face *text.GoTextFace
	lh   float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &TTFFont{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

// DefaultFont returns Go Regular at DefaultFontSize.
func DefaultFont() (*TTFFont, error) {
	return LoadTTFFont(goregular.TTF, DefaultFontSize)
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying GoTextFace for direct text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}

// wrapText breaks s into lines no wider than width. Explicit newlines are
// kept, and a word wider than width gets a line of its own. A width of zero
// or less disables wrapping.
func wrapText(s string, width float64, measure func(string) float64) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if width > 0 && measure(line+" "+w) > width {
				lines = append(lines, line)
				line = w
				continue
			}
			line += " " + w
		}
		lines = append(lines, line)
	}
	return lines
}

// textBlock caches the wrapped lines of one element's copy.
type textBlock struct {
	content string
	wrap    float64
	joined  string
}

// textCache lays out element text with a font, re-wrapping only when the
// content or the available width changes.
type textCache struct {
	font   *TTFFont
	blocks map[*Element]*textBlock
}

func newTextCache(font *TTFFont) *textCache {
	return &textCache{font: font, blocks: make(map[*Element]*textBlock)}
}

// layout returns el's text wrapped to wrap pixels, joined with newlines.
func (c *textCache) layout(el *Element, wrap float64) string {
	tb := c.blocks[el]
	if tb != nil && tb.content == el.Text && tb.wrap == wrap {
		return tb.joined
	}
	if tb == nil {
		tb = &textBlock{}
		c.blocks[el] = tb
	}
	measure := func(s string) float64 {
		w, _ := c.font.MeasureString(s)
		return w
	}
	tb.content, tb.wrap = el.Text, wrap
	tb.joined = strings.Join(wrapText(el.Text, wrap, measure), "\n")
	return tb.joined
}

// draw renders el's text inside r, inset by textInset, tinted with col.
func (c *textCache) draw(dst *ebiten.Image, el *Element, r Rect, col Color) {
	if c == nil || c.font == nil || el.Text == "" || col.A <= 0 {
		return
	}
	s := c.layout(el, r.Width-2*textInset)
	op := &text.DrawOptions{}
	op.GeoM.Translate(r.X+textInset, r.Y+textInset)
	op.ColorScale.ScaleWithColor(col.toRGBA())
	op.LineSpacing = c.font.lh
	text.Draw(dst, s, c.font.face, op)
}
