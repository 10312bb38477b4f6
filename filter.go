package atelier

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// BlurFilter applies a Kawase style blur by halving the image a few times
// and scaling it back up with linear filtering. The result is drawn over dst.
type BlurFilter struct {
	Radius int
	temps  []*ebiten.Image
	op     ebiten.DrawImageOptions
}

// NewBlurFilter creates a blur filter with the given radius in pixels.
func NewBlurFilter(radius int) *BlurFilter {
	return &BlurFilter{Radius: max(radius, 0)}
}

// blurPasses is the number of halvings for a radius: log2(radius) rounded
// up, at least one. A radius of zero or less needs no blur.
func blurPasses(radius int) int {
	if radius <= 0 {
		return 0
	}
	return max(int(math.Ceil(math.Log2(float64(radius)))), 1)
}

// Apply draws a blurred copy of src over dst.
func (f *BlurFilter) Apply(src, dst *ebiten.Image) {
	passes := blurPasses(f.Radius)
	op := &f.op
	if passes == 0 {
		op.GeoM.Reset()
		op.Filter = ebiten.FilterNearest
		dst.DrawImage(src, op)
		return
	}

	// Free the chain left over from a larger radius.
	for i := passes; i < len(f.temps); i++ {
		if f.temps[i] != nil {
			f.temps[i].Deallocate()
		}
	}
	for len(f.temps) < passes {
		f.temps = append(f.temps, nil)
	}
	f.temps = f.temps[:passes]

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	cur := src
	for i := range f.temps {
		w, h = max(w/2, 1), max(h/2, 1)
		if t := f.temps[i]; t == nil || t.Bounds().Dx() != w || t.Bounds().Dy() != h {
			if t != nil {
				t.Deallocate()
			}
			f.temps[i] = ebiten.NewImage(w, h)
		} else {
			t.Clear()
		}
		f.scaleInto(cur, f.temps[i])
		cur = f.temps[i]
	}
	for i := passes - 2; i >= 0; i-- {
		f.temps[i].Clear()
		f.scaleInto(cur, f.temps[i])
		cur = f.temps[i]
	}
	f.scaleInto(cur, dst)
}

// scaleInto stretches src over the whole of dst with linear filtering.
func (f *BlurFilter) scaleInto(src, dst *ebiten.Image) {
	sb, db := src.Bounds(), dst.Bounds()
	f.op.GeoM.Reset()
	f.op.GeoM.Scale(float64(db.Dx())/float64(sb.Dx()), float64(db.Dy())/float64(sb.Dy()))
	f.op.Filter = ebiten.FilterLinear
	dst.DrawImage(src, &f.op)
}
