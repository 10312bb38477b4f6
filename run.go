package atelier

import "github.com/hajimehoshi/ebiten/v2"

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// Resizable lets the user resize the window; the page relayouts to match.
	Resizable bool
	// ShowFPS draws the stats overlay without enabling stderr logging.
	ShowFPS bool
}

// Run opens a window and runs the page until the window is closed.
func Run(p *Page, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = p.doc.ViewportW, p.doc.ViewportH
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	p.showFPS = cfg.ShowFPS
	return ebiten.RunGame(p)
}
