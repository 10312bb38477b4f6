package atelier

import (
	"math"
	"strings"

	"github.com/tanema/gween/ease"
)

// easeNames maps GSAP ease names onto gween curves. GSAP's powerN is the
// polynomial of degree N+1.
var easeNames = map[string]ease.TweenFunc{
	"none":          ease.Linear,
	"linear":        ease.Linear,
	"power1.in":     ease.InQuad,
	"power1.out":    ease.OutQuad,
	"power1.inout":  ease.InOutQuad,
	"power2.in":     ease.InCubic,
	"power2.out":    ease.OutCubic,
	"power2.inout":  ease.InOutCubic,
	"power3.in":     ease.InQuart,
	"power3.out":    ease.OutQuart,
	"power3.inout":  ease.InOutQuart,
	"power4.in":     ease.InQuint,
	"power4.out":    ease.OutQuint,
	"power4.inout":  ease.InOutQuint,
	"sine.in":       ease.InSine,
	"sine.out":      ease.OutSine,
	"sine.inout":    ease.InOutSine,
	"expo.in":       ease.InExpo,
	"expo.out":      ease.OutExpo,
	"expo.inout":    ease.InOutExpo,
	"circ.in":       ease.InCirc,
	"circ.out":      ease.OutCirc,
	"circ.inout":    ease.InOutCirc,
	"back.in":       ease.InBack,
	"back.out":      ease.OutBack,
	"back.inout":    ease.InOutBack,
	"elastic.in":    ease.InElastic,
	"elastic.out":   ease.OutElastic,
	"elastic.inout": ease.InOutElastic,
	"bounce.in":     ease.InBounce,
	"bounce.out":    ease.OutBounce,
	"bounce.inout":  ease.InOutBounce,
}

// EaseByName returns the gween curve for a GSAP ease name such as
// "power3.out". A bare family name ("power2") means its ".out" form, as in
// GSAP. Names are case-insensitive.
func EaseByName(name string) (ease.TweenFunc, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if fn, ok := easeNames[name]; ok {
		return fn, true
	}
	fn, ok := easeNames[name+".out"]
	return fn, ok
}

// ExpoScrollEase is the smooth-scroll curve min(1, 1.001 - 2^(-10t)).
func ExpoScrollEase(t, b, c, d float32) float32 {
	if d <= 0 {
		return b + c
	}
	p := float64(t / d)
	v := math.Min(1, 1.001-math.Pow(2, -10*p))
	return b + c*float32(v)
}
