package atelier

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// debugLogEvery is how many frames pass between stderr stat lines.
const debugLogEvery = 60

// frameStats holds per-frame effect metrics. Only reported when
// Config.Debug is set.
type frameStats struct {
	points    int
	segments  int
	vertices  int
	tickTime  time.Duration
	scroll    float64
	triggers  int
	repelling int
}

func (p *Page) collectStats() {
	p.stats.points = p.pencil.Trail().Len()
	p.stats.segments = len(p.pencil.Segments())
	p.stats.vertices = p.stats.segments * vertsPerSegment
	p.stats.scroll = p.scroll.Scroll()
	p.stats.triggers = 0
	for _, t := range p.triggers {
		if t.Active() {
			p.stats.triggers++
		}
	}
	p.stats.repelling = 0
	for i := range p.repelChildren {
		if _, _, active := p.repel.Offset(i); active {
			p.stats.repelling++
		}
	}
	p.statFrame++
}

// debugLog prints the frame stats to stderr once every debugLogEvery frames.
func (p *Page) debugLog() {
	if p.statFrame%debugLogEvery != 0 {
		return
	}
	s := p.stats
	_, _ = fmt.Fprintf(os.Stderr,
		"[atelier] frame %s | points: %s | segments: %s | vertices: %s | tick: %v\n",
		humanize.Comma(int64(p.statFrame)), humanize.Comma(int64(s.points)),
		humanize.Comma(int64(s.segments)), humanize.Comma(int64(s.vertices)), s.tickTime)
	_, _ = fmt.Fprintf(os.Stderr,
		"[atelier] scroll: %.1f/%.0f | active triggers: %d | repelling: %d | book: %s\n",
		s.scroll, p.scroll.Limit(), s.triggers, s.repelling, p.book.Book().State)
}

// drawDebugOverlay prints FPS, TPS and the frame stats in the top-left corner.
func (p *Page) drawDebugOverlay(screen *ebiten.Image) {
	fillRect(screen, Rect{Width: 240, Height: 64}, Color{A: 0.5})
	msg := fmt.Sprintf("FPS: %.1f  TPS: %.1f\npoints: %s  segments: %s\nscroll: %.0f  triggers: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		humanize.Comma(int64(p.stats.points)), humanize.Comma(int64(p.stats.segments)),
		p.stats.scroll, p.stats.triggers)
	ebitenutil.DebugPrint(screen, msg)
}

