package atelier

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Surface is a drawing target for pencil strokes.
type Surface interface {
	Size() (w, h int)
	Resize(w, h int)
	Clear()
	DrawSegments(segs []Segment, c Color)
}

// BlurSurface is a Surface that can also draw strokes through a blur.
type BlurSurface interface {
	Surface
	DrawBlurred(segs []Segment, c Color, radius int)
}

// capSteps is the number of triangles in each semicircular line cap.
const capSteps = 6

// vertsPerSegment is the vertex count emitted by appendStrokeMesh: a quad
// plus two cap fans of capSteps+2 vertices each.
const vertsPerSegment = 4 + 2*(capSteps+2)

// maxBatchVerts keeps indices within uint16 range.
const maxBatchVerts = math.MaxUint16 - vertsPerSegment

var (
	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image
)

// ensureWhite returns the shared solid source image for stroke triangles.
// A 3x3 image sampled at its center pixel avoids edge bleeding.
func ensureWhite() *ebiten.Image {
	if whiteSubImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// Canvas is an offscreen ebiten image that pencil strokes are drawn into.
type Canvas struct {
	img  *ebiten.Image
	w, h int

	// scratch holds strokes on their way through blur.
	scratch *ebiten.Image
	blur    *BlurFilter

	verts []ebiten.Vertex
	inds  []uint16
}

// NewCanvas creates a canvas with the given pixel dimensions.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Image returns the backing image, for compositing onto the screen.
func (c *Canvas) Image() *ebiten.Image {
	return c.img
}

// Size returns the canvas dimensions in pixels.
func (c *Canvas) Size() (int, int) {
	return c.w, c.h
}

// Resize reallocates the backing image when the dimensions change. The old
// contents are discarded.
func (c *Canvas) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if c.img != nil && w == c.w && h == c.h {
		return
	}
	if c.img != nil {
		c.img.Deallocate()
	}
	if c.scratch != nil {
		c.scratch.Deallocate()
		c.scratch = nil
	}
	c.img = ebiten.NewImage(w, h)
	c.w, c.h = w, h
}

// Clear erases the canvas to transparent.
func (c *Canvas) Clear() {
	c.img.Clear()
}

// DrawSegments renders each segment as a round-capped stroke in color col,
// using the segment's own width and alpha.
func (c *Canvas) DrawSegments(segs []Segment, col Color) {
	c.drawInto(c.img, segs, col)
}

// DrawBlurred renders the segments into a scratch image and draws a blurred
// copy of it onto the canvas.
func (c *Canvas) DrawBlurred(segs []Segment, col Color, radius int) {
	if len(segs) == 0 {
		return
	}
	if c.scratch == nil {
		c.scratch = ebiten.NewImage(c.w, c.h)
	} else {
		c.scratch.Clear()
	}
	if c.blur == nil {
		c.blur = NewBlurFilter(radius)
	}
	c.blur.Radius = radius
	c.drawInto(c.scratch, segs, col)
	c.blur.Apply(c.scratch, c.img)
}

func (c *Canvas) drawInto(dst *ebiten.Image, segs []Segment, col Color) {
	src := ensureWhite()
	c.verts = c.verts[:0]
	c.inds = c.inds[:0]
	var op ebiten.DrawTrianglesOptions
	op.AntiAlias = true

	for i := range segs {
		if len(c.verts) > maxBatchVerts {
			dst.DrawTriangles(c.verts, c.inds, src, &op)
			c.verts = c.verts[:0]
			c.inds = c.inds[:0]
		}
		c.verts, c.inds = appendStrokeMesh(c.verts, c.inds, &segs[i], col)
	}
	if len(c.inds) > 0 {
		dst.DrawTriangles(c.verts, c.inds, src, &op)
	}
}

// appendStrokeMesh appends the triangles of one round-capped stroke. The body
// is a quad along the segment; each end gets a semicircle fan facing outward.
func appendStrokeMesh(vs []ebiten.Vertex, is []uint16, seg *Segment, col Color) ([]ebiten.Vertex, []uint16) {
	halfW := seg.Width / 2
	a := Vec2{seg.X0, seg.Y0}
	b := Vec2{seg.X1, seg.Y1}
	nx, ny := perpendicular(a, b)
	// Direction along the segment is the normal rotated back by 90 degrees.
	dx, dy := ny, -nx

	r, g, bl, al := float32(col.R), float32(col.G), float32(col.B), float32(col.A*seg.Alpha)
	vert := func(x, y float64) ebiten.Vertex {
		return ebiten.Vertex{
			DstX: float32(x), DstY: float32(y),
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: g, ColorB: bl, ColorA: al,
		}
	}

	base := uint16(len(vs))
	vs = append(vs,
		vert(a.X+nx*halfW, a.Y+ny*halfW),
		vert(a.X-nx*halfW, a.Y-ny*halfW),
		vert(b.X+nx*halfW, b.Y+ny*halfW),
		vert(b.X-nx*halfW, b.Y-ny*halfW),
	)
	is = append(is, base, base+1, base+2, base+1, base+3, base+2)

	// Cap at a faces -d, cap at b faces +d.
	vs, is = appendCapFan(vs, is, a, nx, ny, -dx, -dy, halfW, vert)
	vs, is = appendCapFan(vs, is, b, -nx, -ny, dx, dy, halfW, vert)
	return vs, is
}

// appendCapFan sweeps a half circle from the normal (nx, ny) through the
// outward direction (ox, oy) to the opposite normal.
func appendCapFan(vs []ebiten.Vertex, is []uint16, c Vec2, nx, ny, ox, oy, radius float64, vert func(x, y float64) ebiten.Vertex) ([]ebiten.Vertex, []uint16) {
	center := uint16(len(vs))
	vs = append(vs, vert(c.X, c.Y))
	for i := 0; i <= capSteps; i++ {
		theta := math.Pi * float64(i) / capSteps
		cos, sin := math.Cos(theta), math.Sin(theta)
		x := c.X + (nx*cos+ox*sin)*radius
		y := c.Y + (ny*cos+oy*sin)*radius
		vs = append(vs, vert(x, y))
		if i > 0 {
			v := center + uint16(i)
			is = append(is, center, v, v+1)
		}
	}
	return vs, is
}

// perpendicular returns the unit left-perpendicular of the segment from a to b.
// Degenerate segments get an upward normal so caps still form a dot.
func perpendicular(a, b Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return 0, -1
	}
	return -dy / ln, dx / ln
}
