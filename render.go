package atelier

import (
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// flippedLeafFade is how far a turned leaf is mixed toward the page
	// background.
	flippedLeafFade = 0.65
	textInset       = 6
	backdropA  = 0.5
	leafShadow = 0.08
)

// placeFunc maps a layout rectangle to the screen.
type placeFunc func(Rect) Rect

// fillRect draws a solid rectangle by scaling the shared white pixel.
func fillRect(dst *ebiten.Image, r Rect, c Color) {
	if c.A <= 0 || r.Width <= 0 || r.Height <= 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale.ScaleWithColor(c.toRGBA())
	dst.DrawImage(ensureWhite(), &op)
}

// drawElements renders the document in paint order. The open book is skipped
// here and drawn on top by drawExpandedBook.
func (p *Page) drawElements(screen *ebiten.Image) {
	scroll := p.scroll.Scroll()
	place := func(r Rect) Rect { return r.Translate(0, -scroll) }
	for _, el := range p.doc.Roots() {
		p.drawTree(screen, el, place, 0, 0, 1)
	}
}

func (p *Page) drawTree(dst *ebiten.Image, el *Element, place placeFunc, dx, dy, alpha float64) {
	if el.Kind == KindCanvas {
		return
	}
	if p.book.Expanded() && el == p.book.Root() {
		return
	}
	alpha *= el.Pose.Alpha
	if alpha <= 0 {
		return
	}
	dx += el.ChildX
	dy += el.Pose.Y + el.ChildY
	r := place(el.Rect).Translate(dx, dy)
	fill, ink := el.Color, p.cfg.TextColor
	if el.Flipped {
		r = r.Translate(-r.Width, 0)
		fill = turnedLeaf(fill, p.cfg.Background)
		ink = turnedLeaf(ink, p.cfg.Background)
	}

	if r.Intersects(Rect{Width: float64(p.env.Width), Height: float64(p.env.Height)}) {
		fillRect(dst, r, fill.WithAlpha(fill.A*alpha))
		p.text.draw(dst, el, r, ink.WithAlpha(ink.A*alpha))
	}
	for _, c := range el.Children {
		p.drawTree(dst, c, place, dx, dy, alpha)
	}
}

// drawExpandedBook dims the page and draws the book scaled into the middle of
// the viewport.
func (p *Page) drawExpandedBook(screen *ebiten.Image) {
	fillRect(screen, Rect{Width: float64(p.env.Width), Height: float64(p.env.Height)}, Color{A: backdropA})

	root := p.book.Root()
	dst := p.expandedBookRect()
	if dst.Width <= 0 {
		return
	}
	s := dst.Width / root.Rect.Width
	place := func(r Rect) Rect {
		return Rect{
			X:      dst.X + (r.X-root.Rect.X)*s,
			Y:      dst.Y + (r.Y-root.Rect.Y)*s,
			Width:  r.Width * s,
			Height: r.Height * s,
		}
	}
	fillRect(screen, dst.Translate(8, 8), Color{A: leafShadow})
	fillRect(screen, dst, paperColor(root.Color))
	for _, c := range root.Children {
		p.drawTree(screen, c, place, 0, 0, 1)
	}
}

// turnedLeaf mixes a turned leaf's color toward the page background.
func turnedLeaf(c, background Color) Color {
	return c.Mix(background, flippedLeafFade).WithAlpha(c.A)
}

// paperColor is the face of the open book; a book without its own color is
// plain white paper.
func paperColor(c Color) Color {
	if c.A <= 0 {
		return ColorWhite
	}
	return c
}
