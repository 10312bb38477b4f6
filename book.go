package atelier

import "time"

// BookState is the open/closed state of the interactive book.
type BookState uint8

const (
	BookClosed   BookState = iota // resting on the page
	BookExpanded                  // enlarged over a backdrop
)

func (s BookState) String() string {
	if s == BookExpanded {
		return "expanded"
	}
	return "closed"
}

// Book is the logical state of the interactive book. Page counts the leaves
// already turned; leaf 0 is the cover. Transitions are pure.
type Book struct {
	State BookState
	Page  int
	Pages int
}

// NewBook returns a closed book with the given number of leaves.
func NewBook(pages int) Book {
	return Book{Pages: max(pages, 0)}
}

// Click opens a closed book, turns the next leaf of an open one, and closes
// the book when every leaf has been turned.
func (b Book) Click() Book {
	switch {
	case b.State == BookClosed:
		b.State = BookExpanded
	case b.Page < b.Pages:
		b.Page++
	default:
		b.State = BookClosed
		b.Page = 0
	}
	return b
}

// Dismiss closes an open book. A closed book is returned unchanged.
func (b Book) Dismiss() Book {
	if b.State == BookExpanded {
		b.State = BookClosed
		b.Page = 0
	}
	return b
}

// Flipped reports whether leaf i has been turned.
func (b Book) Flipped(i int) bool {
	return i >= 0 && i < b.Page
}

// BookConfig controls the book widget.
type BookConfig struct {
	// ResetDelay keeps turned leaves visible while the close transition runs.
	ResetDelay time.Duration
}

// DefaultBookConfig returns the widget defaults.
func DefaultBookConfig() BookConfig {
	return BookConfig{ResetDelay: 300 * time.Millisecond}
}

// BookWidget drives a Book from pointer and key input and keeps the visual
// leaf markers, which lag the logical state while the book closes.
type BookWidget struct {
	cfg    BookConfig
	book   Book
	root   *Element
	leaves []*Element

	shown      int
	clearAt    time.Duration
	clearArmed bool

	// OnFlip is called with the index of each leaf as it turns.
	OnFlip func(leaf int)
}

// NewBookWidget binds a widget to the book element and its leaves (cover
// first). A nil root yields a widget that ignores input.
func NewBookWidget(root *Element, leaves []*Element, cfg BookConfig) *BookWidget {
	return &BookWidget{
		cfg:    cfg,
		book:   NewBook(len(leaves)),
		root:   root,
		leaves: leaves,
	}
}

// Book returns the logical state.
func (w *BookWidget) Book() Book {
	return w.book
}

// Root returns the bound book element.
func (w *BookWidget) Root() *Element {
	return w.root
}

// Expanded reports whether the book is open; the backdrop shows while it is.
func (w *BookWidget) Expanded() bool {
	return w.book.State == BookExpanded
}

// LeafFlipped reports whether leaf i is visually turned.
func (w *BookWidget) LeafFlipped(i int) bool {
	return i >= 0 && i < w.shown
}

// HandleClick processes a click on the book.
func (w *BookWidget) HandleClick(now time.Duration) {
	if w.root == nil {
		return
	}
	prev := w.book
	w.book = w.book.Click()
	switch {
	case prev.State == BookClosed:
		// Reopening before a pending clear fires: clear now.
		if w.clearArmed {
			w.applyClear()
		}
	case w.book.State == BookClosed:
		w.armClear(now)
	default:
		w.shown = w.book.Page
		w.syncLeaves()
		if w.OnFlip != nil {
			w.OnFlip(prev.Page)
		}
	}
}

// HandleEscape closes the book when it is open.
func (w *BookWidget) HandleEscape(now time.Duration) {
	w.dismiss(now)
}

// HandleOutside processes a click on the backdrop.
func (w *BookWidget) HandleOutside(now time.Duration) {
	w.dismiss(now)
}

func (w *BookWidget) dismiss(now time.Duration) {
	if w.root == nil || w.book.State != BookExpanded {
		return
	}
	w.book = w.book.Dismiss()
	w.armClear(now)
}

// Update applies a pending leaf reset once its delay has elapsed.
func (w *BookWidget) Update(now time.Duration) {
	if w.clearArmed && now >= w.clearAt {
		w.applyClear()
	}
}

func (w *BookWidget) armClear(now time.Duration) {
	w.clearAt = now + w.cfg.ResetDelay
	w.clearArmed = true
}

func (w *BookWidget) applyClear() {
	w.clearArmed = false
	w.shown = 0
	w.syncLeaves()
}

func (w *BookWidget) syncLeaves() {
	for i, leaf := range w.leaves {
		leaf.Flipped = i < w.shown
	}
}
