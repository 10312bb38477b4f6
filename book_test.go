package atelier

import (
	"testing"
	"time"
)

func TestBookClickSequence(t *testing.T) {
	b := NewBook(3)
	b = b.Click()
	if b.State != BookExpanded || b.Page != 0 {
		t.Fatalf("after open: %+v", b)
	}
	for want := 1; want <= 3; want++ {
		b = b.Click()
		if b.Page != want || b.State != BookExpanded {
			t.Fatalf("click %d: %+v", want, b)
		}
	}
	b = b.Click()
	if b.State != BookClosed || b.Page != 0 {
		t.Errorf("click past the last leaf: %+v, want closed at 0", b)
	}
}

func TestBookDismiss(t *testing.T) {
	b := NewBook(4).Click().Click().Click()
	b = b.Dismiss()
	if b.State != BookClosed || b.Page != 0 {
		t.Errorf("Dismiss = %+v", b)
	}
	if got := NewBook(2).Dismiss(); got != NewBook(2) {
		t.Errorf("Dismiss on a closed book changed it: %+v", got)
	}
}

func TestBookFlipped(t *testing.T) {
	b := Book{State: BookExpanded, Page: 2, Pages: 4}
	for i, want := range []bool{true, true, false, false} {
		if got := b.Flipped(i); got != want {
			t.Errorf("Flipped(%d) = %v, want %v", i, got, want)
		}
	}
	if b.Flipped(-1) {
		t.Error("Flipped(-1) = true")
	}
}

func TestBookStateString(t *testing.T) {
	if BookClosed.String() != "closed" || BookExpanded.String() != "expanded" {
		t.Error("unexpected state names")
	}
}

func newTestBook(n int) (*BookWidget, []*Element) {
	root := &Element{ID: "interactive-book"}
	leaves := make([]*Element, n)
	for i := range leaves {
		leaves[i] = &Element{Parent: root}
	}
	root.Children = leaves
	return NewBookWidget(root, leaves, DefaultBookConfig()), leaves
}

func TestBookWidgetFlipsLeaves(t *testing.T) {
	w, leaves := newTestBook(3)
	var flips []int
	w.OnFlip = func(i int) { flips = append(flips, i) }

	w.HandleClick(0) // open
	w.HandleClick(0)
	w.HandleClick(0)
	if !leaves[0].Flipped || !leaves[1].Flipped || leaves[2].Flipped {
		t.Errorf("flipped = %v %v %v", leaves[0].Flipped, leaves[1].Flipped, leaves[2].Flipped)
	}
	if len(flips) != 2 || flips[0] != 0 || flips[1] != 1 {
		t.Errorf("OnFlip calls = %v, want [0 1]", flips)
	}
}

func TestBookWidgetDelayedClear(t *testing.T) {
	w, leaves := newTestBook(2)
	for i := 0; i < 3; i++ {
		w.HandleClick(0)
	}
	w.HandleClick(ms64(1000)) // past the last leaf: close
	if w.Expanded() {
		t.Fatal("book still open")
	}
	if !leaves[1].Flipped {
		t.Fatal("leaves cleared before the delay")
	}
	w.Update(ms64(1299))
	if !w.LeafFlipped(0) {
		t.Error("cleared early")
	}
	w.Update(ms64(1300))
	if leaves[0].Flipped || leaves[1].Flipped || w.LeafFlipped(0) {
		t.Error("leaves not cleared after the delay")
	}
}

func TestBookWidgetEscapeAndOutside(t *testing.T) {
	for name, dismiss := range map[string]func(*BookWidget, time.Duration){
		"escape":  (*BookWidget).HandleEscape,
		"outside": (*BookWidget).HandleOutside,
	} {
		t.Run(name, func(t *testing.T) {
			w, leaves := newTestBook(2)
			w.HandleClick(0)
			w.HandleClick(0)
			dismiss(w, ms64(500))
			if w.Expanded() || w.Book().Page != 0 {
				t.Fatalf("state = %+v", w.Book())
			}
			w.Update(ms64(800))
			if leaves[0].Flipped {
				t.Error("leaf not cleared")
			}
		})
	}
}

func TestBookWidgetEscapeWhenClosed(t *testing.T) {
	w, _ := newTestBook(2)
	w.HandleEscape(0)
	if w.clearArmed {
		t.Error("escape on a closed book armed a clear")
	}
}

func TestBookWidgetReopenDuringClear(t *testing.T) {
	w, leaves := newTestBook(2)
	w.HandleClick(0)
	w.HandleClick(0)
	w.HandleEscape(ms64(100))
	w.HandleClick(ms64(200)) // reopen inside the delay
	if !w.Expanded() {
		t.Fatal("did not reopen")
	}
	if leaves[0].Flipped {
		t.Error("stale flipped leaf visible on reopen")
	}
	w.HandleClick(ms64(250))
	w.Update(ms64(400))
	if !leaves[0].Flipped {
		t.Error("old clear fired after reopening")
	}
}

func TestBookWidgetNilRoot(t *testing.T) {
	w := NewBookWidget(nil, nil, DefaultBookConfig())
	w.HandleClick(0)
	w.HandleEscape(0)
	w.Update(time.Second)
	if w.Expanded() {
		t.Error("widget without a root opened")
	}
}
