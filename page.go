package atelier

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// Class and id conventions of the page markup.
const (
	canvasID = "pencil-canvas"
	bookID   = "interactive-book"
)

// Page owns a layout document and every effect running on it. It implements
// ebiten.Game. All effect state is mutated from Update on the game goroutine.
type Page struct {
	doc *Document
	cfg Config
	env Environment
	now time.Duration

	scroll  *SmoothScroll
	canvas  *Canvas
	surface Surface
	grain   Grain
	pencil  *PencilEffect
	text    *textCache
	repel   *Repulsion
	// repelChildren[i] is displaced by repel item i.
	repelChildren []*Element
	book          *BookWidget
	sounds        *SoundBank

	timelines []*Timeline
	triggers  []*ScrollTrigger

	input            inputReader
	injectQueue      []syntheticEvent
	injectX, injectY float64
	pointerX         float64
	pointerY         float64
	touchSeen        bool

	testRunner      *TestRunner
	screenshotQueue []string

	stats     frameStats
	statFrame int
	showFPS   bool
}

// NewPage validates cfg, applies the document's settings block, and starts
// every effect whose markup is present.
func NewPage(doc *Document, cfg Config) (*Page, error) {
	if err := cfg.Apply(doc.Settings); err != nil {
		return nil, err
	}
	if cfg.Font == nil {
		font, err := DefaultFont()
		if err != nil {
			return nil, err
		}
		cfg.Font = font
	}
	env := Environment{Width: doc.ViewportW, Height: doc.ViewportH}

	var surface Surface
	var canvas *Canvas
	if doc.ByID(canvasID) != nil {
		canvas = NewCanvas(env.Width, env.Height)
		surface = canvas
	}
	p, err := newPage(doc, cfg, env, surface, newGrain(cfg))
	if err != nil {
		return nil, err
	}
	p.canvas = canvas
	if cfg.SoundEnabled {
		p.sounds = NewSoundBank(cfg.Sound)
	}
	return p, nil
}

func newGrain(cfg Config) Grain {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if cfg.Grain == GrainNoise {
		return NewNoiseGrain(seed)
	}
	return NewRandomGrain(uint64(seed))
}

// newPage wires the effects onto an existing surface. The pencil only uses
// the surface when the document has a canvas element.
func newPage(doc *Document, cfg Config, env Environment, surface Surface, grain Grain) (*Page, error) {
	p := &Page{doc: doc, cfg: cfg, env: env}

	p.scroll = NewSmoothScroll(cfg.Scroll, doc.Height-float64(env.Height))
	p.scroll.OnScroll(func(ScrollEvent) {
		p.pencil.NotifyScroll(p.now)
	})

	if doc.ByID(canvasID) == nil {
		surface = nil
	}
	p.surface, p.grain = surface, grain
	p.text = newTextCache(cfg.Font)
	p.pencil = NewPencilEffect(surface, env, cfg.Pencil, grain)

	if err := p.setupAnimations(); err != nil {
		return nil, fmt.Errorf("set up animations: %w", err)
	}
	p.setupRepulsion()
	p.setupBook()
	p.updateTriggers()
	return p, nil
}

// Document returns the page layout.
func (p *Page) Document() *Document { return p.doc }

// Pencil returns the pencil effect.
func (p *Page) Pencil() *PencilEffect { return p.pencil }

// Scroller returns the smooth scroller.
func (p *Page) Scroller() *SmoothScroll { return p.scroll }

// Book returns the book widget.
func (p *Page) Book() *BookWidget { return p.book }

// Now returns the page clock: the sum of all frame steps so far.
func (p *Page) Now() time.Duration { return p.now }

// SetPencilConfig rebuilds the pencil effect from pc, so presets that differ
// in MaxLife take full effect. The current trail is discarded. Once touch
// input has been seen the rebuilt effect stays stopped.
func (p *Page) SetPencilConfig(pc PencilConfig) error {
	cfg := p.cfg
	cfg.Pencil = pc
	if err := cfg.Validate(); err != nil {
		return err
	}
	p.cfg = cfg
	p.pencil.Stop()
	env := p.env
	env.Touch = env.Touch || p.touchSeen
	p.pencil = NewPencilEffect(p.surface, env, pc, p.grain)
	return nil
}

// initialPoses are the hidden states the hero elements start in before the
// intro timeline reveals them.
func (p *Page) initialPoses() {
	for _, el := range p.doc.QueryAll("reveal-text") {
		el.Pose = Pose{Y: el.Rect.Height, Alpha: 0}
	}
	for _, class := range []string{"hero-subtitle", "scroll-indicator"} {
		for _, el := range p.doc.QueryAll(class) {
			el.Pose = Pose{Y: 20, Alpha: 0}
		}
	}
}

// reveal is a scroll reveal written in the markup's animation vocabulary.
type reveal struct {
	start   string // trigger point, element edge then viewport edge
	actions string // onEnter onLeave onEnterBack onLeaveBack
	ease    string
}

var (
	heroEase          = "power3.out"
	heroSubtitleAt    = "-=1"
	heroIndicatorAt   = "-=0.5"
	titleReveal       = reveal{start: "top 80%", actions: "play none none reverse", ease: "power1.out"}
	collageReveal     = reveal{start: "top 75%", actions: "play none none reverse", ease: "power3.out"}
	cardReveal        = reveal{start: "top 75%", actions: "play none none none", ease: "power2.out"}
	testimonialReveal = reveal{start: "top 80%", actions: "play none none none", ease: "power2.out"}
)

func easeNamed(name string) (ease.TweenFunc, error) {
	fn, ok := EaseByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown ease %q", name)
	}
	return fn, nil
}

func (p *Page) setupAnimations() error {
	p.initialPoses()
	shown := Pose{Y: 0, Alpha: 1}

	heroFn, err := easeNamed(heroEase)
	if err != nil {
		return err
	}
	subAt, err := ParsePosition(heroSubtitleAt)
	if err != nil {
		return err
	}
	indicatorAt, err := ParsePosition(heroIndicatorAt)
	if err != nil {
		return err
	}
	hero := NewTimeline(TweenVars{Ease: heroFn})
	hero.To(p.doc.QueryAll("reveal-text"), shown, TweenVars{Duration: 1.5, Stagger: 0.2, Delay: 0.2}, AtEnd()).
		To(p.doc.QueryAll("hero-subtitle"), shown, TweenVars{Duration: 1}, subAt).
		To(p.doc.QueryAll("scroll-indicator"), shown, TweenVars{Duration: 1}, indicatorAt)
	p.timelines = append(p.timelines, hero)

	for _, section := range p.doc.QueryAll("section") {
		if titles := p.doc.Within(section, "section-title"); len(titles) > 0 {
			err := p.addReveal(section, titleReveal, func(tl *Timeline, fn ease.TweenFunc) {
				tl.FromTo(titles[:1], Pose{Y: 50, Alpha: 0}, shown, TweenVars{Duration: 1, Ease: fn}, AtEnd())
			})
			if err != nil {
				return err
			}
		}
		for i, item := range p.doc.Within(section, "collage-item") {
			err := p.addReveal(section, collageReveal, func(tl *Timeline, fn ease.TweenFunc) {
				tl.FromTo([]*Element{item}, Pose{Y: 50 * item.Speed, Alpha: 0}, shown,
					TweenVars{Duration: 1.2, Delay: float32(i) * 0.2, Ease: fn}, AtEnd())
			})
			if err != nil {
				return err
			}
		}
	}

	if cards := p.doc.QueryAll("card"); len(cards) > 0 {
		err := p.addReveal(p.doc.Query("gallery-grid"), cardReveal, func(tl *Timeline, fn ease.TweenFunc) {
			tl.FromTo(cards, Pose{Y: 50, Alpha: 0}, shown, TweenVars{Duration: 1, Stagger: 0.1, Ease: fn}, AtEnd())
		})
		if err != nil {
			return err
		}
	}

	if cards := p.doc.QueryAll("testimonial-card"); len(cards) > 0 {
		err := p.addReveal(p.doc.Query("testimonial-grid"), testimonialReveal, func(tl *Timeline, fn ease.TweenFunc) {
			tl.FromTo(cards, Pose{Y: 30, Alpha: 0}, shown, TweenVars{Duration: 1, Stagger: 0.2, Ease: fn}, AtEnd())
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// addReveal builds a paused timeline with fill and binds it to a scroll
// trigger on the given element. Without a trigger element the timeline still
// applies its from-poses but never plays.
func (p *Page) addReveal(trigger *Element, r reveal, fill func(*Timeline, ease.TweenFunc)) error {
	fn, err := easeNamed(r.ease)
	if err != nil {
		return err
	}
	start, err := ParseTriggerPoint(r.start)
	if err != nil {
		return err
	}
	actions, err := ParseToggleActions(r.actions)
	if err != nil {
		return err
	}
	tl := NewPausedTimeline(TweenVars{})
	fill(tl, fn)
	p.timelines = append(p.timelines, tl)
	if trigger != nil {
		p.triggers = append(p.triggers, NewScrollTrigger(trigger, tl, start, DefaultTriggerEnd, actions))
	}
	return nil
}

func (p *Page) updateTriggers() {
	for _, t := range p.triggers {
		t.Update(p.scroll.Scroll(), float64(p.env.Height))
	}
}

func (p *Page) setupRepulsion() {
	var anchors []BoundsFunc
	for _, collage := range p.doc.QueryAll("studio-collage") {
		for _, item := range p.doc.Within(collage, "collage-item") {
			child := p.visualChild(item)
			if child == nil {
				continue
			}
			anchors = append(anchors, func() Rect { return p.screenRect(item) })
			p.repelChildren = append(p.repelChildren, child)
		}
	}
	p.repel = NewRepulsion(p.cfg.Repel, anchors...)
}

// visualChild returns the placeholder or image inside a collage item.
func (p *Page) visualChild(item *Element) *Element {
	if ph := p.doc.Within(item, "placeholder-image"); len(ph) > 0 {
		return ph[0]
	}
	for _, el := range p.doc.All() {
		if el != item && el.Kind == KindImage && item.Contains(el) {
			return el
		}
	}
	return nil
}

func (p *Page) setupBook() {
	root := p.doc.ByID(bookID)
	var leaves []*Element
	if root != nil {
		for _, el := range p.doc.All() {
			if el != root && root.Contains(el) && (el.HasClass("book-cover") || el.HasClass("book-page")) {
				leaves = append(leaves, el)
			}
		}
	}
	p.book = NewBookWidget(root, leaves, p.cfg.Book)
	p.book.OnFlip = func(int) { p.sounds.PlayPageFlip() }
}

// screenRect returns the on-screen rectangle of el, including its own and
// its ancestors' animated offsets.
func (p *Page) screenRect(el *Element) Rect {
	dy := -p.scroll.Scroll()
	for n := el; n != nil; n = n.Parent {
		dy += n.Pose.Y
	}
	return el.Rect.Translate(0, dy)
}

// Update reads one frame of input and advances every effect.
func (p *Page) Update() error {
	if p.testRunner != nil {
		p.testRunner.step(p)
	}
	in, ok := p.nextInjected()
	if !ok {
		in = p.input.read()
	}
	p.step(in, time.Second/time.Duration(ebiten.TPS()))
	return nil
}

// step advances the page by dt with the given input.
func (p *Page) step(in InputFrame, dt time.Duration) {
	p.now += dt
	secs := float32(dt.Seconds())

	if in.Touching && !p.touchSeen {
		p.touchSeen = true
		p.pencil.Stop()
	}

	p.scroll.Wheel(in.Wheel)
	p.scroll.Touch(in.TouchDY)
	p.scroll.Update(secs)
	p.updateTriggers()

	if in.Moved {
		p.pointerX, p.pointerY = in.CursorX, in.CursorY
		target := p.doc.HitTest(in.CursorX, in.CursorY+p.scroll.Scroll())
		p.pencil.RecordPoint(in.CursorX, in.CursorY, target, p.now)
	}
	if in.Clicked {
		p.handleClick(in.CursorX, in.CursorY)
	}
	if in.Escape {
		p.book.HandleEscape(p.now)
	}

	for _, tl := range p.timelines {
		tl.Update(secs)
	}
	p.updateRepulsion()
	p.book.Update(p.now)
}

func (p *Page) handleClick(x, y float64) {
	root := p.book.Root()
	if root == nil {
		return
	}
	if p.book.Expanded() {
		if p.expandedBookRect().Contains(x, y) {
			p.book.HandleClick(p.now)
		} else {
			p.book.HandleOutside(p.now)
		}
		return
	}
	if root.Contains(p.doc.HitTest(x, y+p.scroll.Scroll())) {
		p.book.HandleClick(p.now)
	}
}

// expandedBookRect is where the open book is drawn: centered and scaled to
// fit 70% of the viewport.
func (p *Page) expandedBookRect() Rect {
	r := p.book.Root().Rect
	if r.Width <= 0 || r.Height <= 0 {
		return Rect{}
	}
	vw, vh := float64(p.env.Width), float64(p.env.Height)
	s := min(vw*0.7/r.Width, vh*0.7/r.Height)
	w, h := r.Width*s, r.Height*s
	return Rect{X: (vw - w) / 2, Y: (vh - h) / 2, Width: w, Height: h}
}

func (p *Page) updateRepulsion() {
	if !p.repel.Started() {
		return
	}
	p.repel.SetPointer(p.pointerX, p.pointerY)
	p.repel.Update()
	for i, child := range p.repelChildren {
		child.ChildX, child.ChildY, _ = p.repel.Offset(i)
	}
}

// Draw renders the page, then the pencil trail on top.
func (p *Page) Draw(screen *ebiten.Image) {
	screen.Fill(p.cfg.Background.toRGBA())
	p.drawElements(screen)
	if p.book.Expanded() {
		p.drawExpandedBook(screen)
	}

	t0 := time.Now()
	p.pencil.Tick(p.now)
	p.stats.tickTime = time.Since(t0)
	if p.canvas != nil && p.pencil.Started() {
		screen.DrawImage(p.canvas.Image(), nil)
	}

	p.collectStats()
	if p.cfg.Debug {
		p.debugLog()
	}
	if p.cfg.Debug || p.showFPS {
		p.drawDebugOverlay(screen)
	}
	p.flushScreenshots(screen)
}

// Layout follows the window size so the canvas always matches the viewport.
func (p *Page) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != p.env.Width || outsideHeight != p.env.Height {
		p.resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func (p *Page) resize(w, h int) {
	p.env.Width, p.env.Height = w, h
	p.pencil.Resize(w, h)
	p.scroll.SetLimit(p.doc.Height - float64(h))
}
