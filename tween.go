package atelier

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously. Create one via
// TweenPose or TweenFields and position it with Seek; a Timeline seeks its
// groups from its own clock.
type TweenGroup struct {
	tweens   [4]*gween.Tween
	count    int
	fields   [4]*float64
	duration float32
	Done     bool
}

// TweenFields creates a group that moves each field from its from value to its
// to value. fields, from and to must have the same length, at most 4.
func TweenFields(fields []*float64, from, to []float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: min(len(fields), 4), duration: duration}
	for i := 0; i < g.count; i++ {
		g.tweens[i] = gween.New(float32(from[i]), float32(to[i]), duration, fn)
		g.fields[i] = fields[i]
	}
	return g
}

// TweenPose creates a group that animates an element's pose from one pose to
// another.
func TweenPose(el *Element, from, to Pose, duration float32, fn ease.TweenFunc) *TweenGroup {
	return TweenFields(
		[]*float64{&el.Pose.Y, &el.Pose.Alpha},
		[]float64{from.Y, from.Alpha},
		[]float64{to.Y, to.Alpha},
		duration, fn,
	)
}

// Duration returns the tween length in seconds.
func (g *TweenGroup) Duration() float32 {
	return g.duration
}

// Seek positions every tween at t seconds from its start, clamped to the
// duration, and writes the values. Seeking backwards clears Done.
func (g *TweenGroup) Seek(t float32) {
	t = float32(math.Max(0, math.Min(float64(t), float64(g.duration))))
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Set(t)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}
