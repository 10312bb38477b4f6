package atelier

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputFrame is the input observed during one frame, in screen coordinates.
type InputFrame struct {
	CursorX, CursorY float64
	// Moved is set when the mouse pointer changed position.
	Moved bool
	// Clicked is set when the primary button or a touch was released.
	Clicked bool
	// Wheel is the vertical wheel movement in notches; positive scrolls down.
	Wheel float64
	// Touching is set while any finger is down.
	Touching bool
	// TouchDY is the finger drag since the last frame; positive scrolls down.
	TouchDY float64
	// Escape is set when the Escape key went down.
	Escape bool
}

// inputReader turns ebiten's polled state into InputFrames.
type inputReader struct {
	lastX, lastY int
	seen         bool
	touchIDs     []ebiten.TouchID
	released     []ebiten.TouchID
}

// read polls ebiten for the current frame.
func (r *inputReader) read() InputFrame {
	var f InputFrame

	mx, my := ebiten.CursorPosition()
	f.CursorX, f.CursorY = float64(mx), float64(my)
	if !r.seen || mx != r.lastX || my != r.lastY {
		f.Moved = r.seen
		r.lastX, r.lastY = mx, my
		r.seen = true
	}

	_, wy := ebiten.Wheel()
	f.Wheel = -wy

	f.Clicked = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	f.Escape = inpututil.IsKeyJustPressed(ebiten.KeyEscape)

	r.touchIDs = ebiten.AppendTouchIDs(r.touchIDs[:0])
	if len(r.touchIDs) > 0 {
		f.Touching = true
		id := r.touchIDs[0]
		x, y := ebiten.TouchPosition(id)
		px, py := inpututil.TouchPositionInPreviousTick(id)
		if !inpututil.IsTouchJustReleased(id) && (px != 0 || py != 0) {
			f.TouchDY = float64(py - y)
		}
		f.CursorX, f.CursorY = float64(x), float64(y)
	}

	r.released = inpututil.AppendJustReleasedTouchIDs(r.released[:0])
	if len(r.released) > 0 {
		f.Clicked = true
		x, y := inpututil.TouchPositionInPreviousTick(r.released[0])
		f.CursorX, f.CursorY = float64(x), float64(y)
	}
	return f
}
