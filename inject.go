package atelier

// syntheticEvent is a single injected input event in screen coordinates.
type syntheticEvent struct {
	frame InputFrame
}

// InjectMove queues a pointer move to (x, y). The event is consumed on the
// next frame's Update in place of real input.
func (p *Page) InjectMove(x, y float64) {
	p.injectQueue = append(p.injectQueue, syntheticEvent{InputFrame{
		CursorX: x, CursorY: y, Moved: true,
	}})
	p.injectX, p.injectY = x, y
}

// InjectClick queues a click at (x, y). Consumes two frames: a move, then the
// release.
func (p *Page) InjectClick(x, y float64) {
	p.InjectMove(x, y)
	p.injectQueue = append(p.injectQueue, syntheticEvent{InputFrame{
		CursorX: x, CursorY: y, Clicked: true,
	}})
}

// InjectWheel queues a wheel movement in notches; positive scrolls down.
func (p *Page) InjectWheel(notches float64) {
	p.injectQueue = append(p.injectQueue, syntheticEvent{InputFrame{
		CursorX: p.injectX, CursorY: p.injectY, Wheel: notches,
	}})
}

// InjectEscape queues an Escape key press.
func (p *Page) InjectEscape() {
	p.injectQueue = append(p.injectQueue, syntheticEvent{InputFrame{
		CursorX: p.injectX, CursorY: p.injectY, Escape: true,
	}})
}

// InjectTrace queues a pointer sweep from (fromX, fromY) to (toX, toY) with no
// button held, one move per frame over the given number of frames. The
// minimum is 2 frames (start and end).
func (p *Page) InjectTrace(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		p.InjectMove(lerp(fromX, toX, t), lerp(fromY, toY, t))
	}
}

// nextInjected pops one queued event. Returns false when the queue is empty.
func (p *Page) nextInjected() (InputFrame, bool) {
	if len(p.injectQueue) == 0 {
		return InputFrame{}, false
	}
	evt := p.injectQueue[0]
	copy(p.injectQueue, p.injectQueue[1:])
	p.injectQueue = p.injectQueue[:len(p.injectQueue)-1]
	return evt.frame, true
}
