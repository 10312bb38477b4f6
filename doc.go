// Package atelier brings hand-drawn interaction effects to a 2D page rendered
// with [Ebitengine].
//
// A page is a [Document] loaded from a JSON layout: a tree of rectangles with
// kinds, classes and colors, much like the box tree of a web page. A [Page]
// runs every effect over that document and implements [ebiten.Game]:
//
//   - [PencilEffect] draws a fading graphite line behind the pointer.
//   - [Repulsion] pushes collage images away from the pointer.
//   - [BookWidget] opens a book, flips its leaves with a sound, and closes it.
//   - [Timeline] and [ScrollTrigger] reveal sections as they scroll into view.
//   - [SmoothScroll] eases wheel input into a glide.
//
// # Quick start
//
//	doc, err := atelier.LoadLayout(layoutJSON)
//	if err != nil {
//		log.Fatal(err)
//	}
//	page, err := atelier.NewPage(doc, atelier.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := atelier.Run(page, atelier.RunConfig{Title: "Studio"}); err != nil {
//		log.Fatal(err)
//	}
//
// # Time
//
// Effects never read the wall clock. Each Update advances the page clock by
// one tick (1/TPS) and every effect receives that time explicitly, so
// scripted runs and tests are deterministic.
//
// # Pencil
//
// The pencil records one point per pointer move unless the page scrolled in
// the last 100ms, the pointer is over an interactive element, or the device
// is touch-capable or narrower than 769 pixels. Points expire after
// [PencilConfig.MaxLife]; the segment ending at a point fades out over the
// last [PencilConfig.FadeWindow] of that life. The sketch preset adds jitter,
// grain, pressure and a faint smudge stroke; the classic preset draws clean
// lines.
//
// # Layout files
//
// Elements name their kind ("block", "button", "a", "input", "img",
// "canvas", ...), classes and a rectangle in page coordinates. An optional
// "settings" block overrides [Config] defaults:
//
//	{
//	  "viewport": {"width": 1280, "height": 800},
//	  "settings": {"pencil": {"variant": "classic"}, "sound": true},
//	  "elements": [{"id": "pencil-canvas", "kind": "canvas", "rect": [0, 0, 1280, 800]}]
//	}
//
// # Testing
//
// [Page.InjectMove], [Page.InjectClick], [Page.InjectWheel] and
// [Page.InjectTrace] queue synthetic input consumed one event per frame.
// [LoadTestScript] builds a [TestRunner] from a JSON script that mixes input
// with [Page.Screenshot] captures.
//
// [Ebitengine]: https://ebitengine.org
package atelier
