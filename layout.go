package atelier

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// ErrNoElements is returned when a layout document has nothing to show.
var ErrNoElements = errors.New("layout has no elements")

// ElementKind mirrors the HTML element types the effects care about.
type ElementKind uint8

const (
	KindBlock    ElementKind = iota // generic container (div, section, p)
	KindButton                      // button
	KindLink                        // anchor
	KindInput                       // input
	KindTextArea                    // textarea
	KindSelect                      // select
	KindImage                       // img or placeholder image
	KindCanvas                      // canvas
)

var kindNames = map[string]ElementKind{
	"":         KindBlock,
	"block":    KindBlock,
	"div":      KindBlock,
	"section":  KindBlock,
	"button":   KindButton,
	"link":     KindLink,
	"a":        KindLink,
	"input":    KindInput,
	"textarea": KindTextArea,
	"select":   KindSelect,
	"image":    KindImage,
	"img":      KindImage,
	"canvas":   KindCanvas,
}

// Pose is the animated visual state of an element: a vertical offset from
// its layout position and an opacity.
type Pose struct {
	Y     float64
	Alpha float64
}

// Element is one node of the page layout. Rect is in document coordinates,
// before any animation offset.
type Element struct {
	ID      string
	Kind    ElementKind
	Classes []string
	Rect    Rect
	// Color is the placeholder fill (data-color). Zero alpha means none.
	Color Color
	// Speed is the parallax factor (data-speed) used by collage reveals.
	Speed float64
	Text  string

	Parent   *Element
	Children []*Element

	// Pose is written by reveal animations.
	Pose Pose
	// ChildX and ChildY displace the element's visual child; written by the
	// repulsion effect.
	ChildX, ChildY float64
	// Flipped marks a book leaf as turned.
	Flipped bool
}

// HasClass reports whether the element carries the class name.
func (e *Element) HasClass(name string) bool {
	return e != nil && slices.Contains(e.Classes, name)
}

// Closest returns the nearest element, starting with e itself, for which
// match returns true.
func (e *Element) Closest(match func(*Element) bool) *Element {
	for n := e; n != nil; n = n.Parent {
		if match(n) {
			return n
		}
	}
	return nil
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	return other.Closest(func(n *Element) bool { return n == e }) != nil
}

// IsInteractive reports whether pointer activity over the element belongs to
// a control rather than the page: form fields and the element itself being a
// button or link, any button or link ancestor, or an "interactive" class on
// the element or an ancestor. A nil element is not interactive.
func (e *Element) IsInteractive() bool {
	if e == nil {
		return false
	}
	switch e.Kind {
	case KindButton, KindLink, KindInput, KindTextArea, KindSelect:
		return true
	}
	return e.Closest(func(n *Element) bool {
		return n.Kind == KindButton || n.Kind == KindLink || n.HasClass("interactive")
	}) != nil
}

// Document is a parsed page layout.
type Document struct {
	// Width and Height are the scrollable document dimensions.
	Width, Height float64
	// Viewport is the preferred window size.
	ViewportW, ViewportH int
	// Settings carries the optional config overrides from the layout file.
	Settings *Settings

	roots []*Element
	all   []*Element
	byID  map[string]*Element
}

type layoutFile struct {
	Width    float64         `json:"width"`
	Height   float64         `json:"height"`
	Viewport *layoutViewport `json:"viewport,omitempty"`
	Settings *Settings       `json:"settings,omitempty"`
	Elements []layoutElement `json:"elements"`
}

type layoutViewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type layoutElement struct {
	ID       string          `json:"id,omitempty"`
	Kind     string          `json:"kind,omitempty"`
	Class    string          `json:"class,omitempty"`
	Rect     [4]float64      `json:"rect"`
	Color    string          `json:"color,omitempty"`
	Speed    float64         `json:"speed,omitempty"`
	Text     string          `json:"text,omitempty"`
	Children []layoutElement `json:"children,omitempty"`
}

// LoadLayout parses a JSON layout document. Child rects are absolute document
// coordinates. Elements without an id are given a random one.
func LoadLayout(data []byte) (*Document, error) {
	var f layoutFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	if len(f.Elements) == 0 {
		return nil, fmt.Errorf("parse layout: %w", ErrNoElements)
	}

	d := &Document{
		Width:     f.Width,
		Height:    f.Height,
		ViewportW: 1280,
		ViewportH: 800,
		Settings:  f.Settings,
		byID:      make(map[string]*Element),
	}
	if f.Viewport != nil && f.Viewport.Width > 0 && f.Viewport.Height > 0 {
		d.ViewportW, d.ViewportH = f.Viewport.Width, f.Viewport.Height
	}

	for i := range f.Elements {
		el, err := d.build(&f.Elements[i], nil)
		if err != nil {
			return nil, fmt.Errorf("parse layout: %w", err)
		}
		d.roots = append(d.roots, el)
	}

	// Fit the document to its content when no explicit size is given.
	for _, el := range d.all {
		d.Width = max(d.Width, el.Rect.X+el.Rect.Width)
		d.Height = max(d.Height, el.Rect.Bottom())
	}
	return d, nil
}

func (d *Document) build(le *layoutElement, parent *Element) (*Element, error) {
	kind, ok := kindNames[strings.ToLower(le.Kind)]
	if !ok {
		return nil, fmt.Errorf("element %q: unknown kind %q", le.ID, le.Kind)
	}
	el := &Element{
		ID:      le.ID,
		Kind:    kind,
		Classes: strings.Fields(le.Class),
		Rect:    Rect{le.Rect[0], le.Rect[1], le.Rect[2], le.Rect[3]},
		Speed:   le.Speed,
		Text:    le.Text,
		Parent:  parent,
		Pose:    Pose{Alpha: 1},
	}
	if el.Speed == 0 {
		el.Speed = 1
	}
	if le.Color != "" {
		c, err := ParseHexColor(le.Color)
		if err != nil {
			return nil, fmt.Errorf("element %q: %w", le.ID, err)
		}
		el.Color = c
	}
	if el.ID == "" {
		el.ID = uuid.NewString()
	} else if _, dup := d.byID[el.ID]; dup {
		return nil, fmt.Errorf("duplicate element id %q", el.ID)
	}
	d.byID[el.ID] = el
	d.all = append(d.all, el)

	for i := range le.Children {
		child, err := d.build(&le.Children[i], el)
		if err != nil {
			return nil, err
		}
		el.Children = append(el.Children, child)
	}
	return el, nil
}

// Roots returns the top-level elements in document order.
func (d *Document) Roots() []*Element {
	return d.roots
}

// All returns every element in document (depth-first) order.
func (d *Document) All() []*Element {
	return d.all
}

// ByID returns the element with the given id, or nil.
func (d *Document) ByID(id string) *Element {
	return d.byID[id]
}

// QueryAll returns every element with the class, in document order.
func (d *Document) QueryAll(class string) []*Element {
	var out []*Element
	for _, el := range d.all {
		if el.HasClass(class) {
			out = append(out, el)
		}
	}
	return out
}

// Query returns the first element with the class, or nil.
func (d *Document) Query(class string) *Element {
	for _, el := range d.all {
		if el.HasClass(class) {
			return el
		}
	}
	return nil
}

// Within returns the descendants of root that carry the class.
func (d *Document) Within(root *Element, class string) []*Element {
	var out []*Element
	var walk func(*Element)
	walk = func(n *Element) {
		for _, c := range n.Children {
			if c.HasClass(class) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return out
}

// HitTest returns the deepest element whose drawn rect contains the
// document point (x, y). The drawn rect is the layout rect moved by the
// element's and its ancestors' pose and repulsion offsets, the same way the
// page paints it. Later siblings win over earlier ones, matching paint order.
// Canvases never take pointer input. Returns nil if nothing is hit.
func (d *Document) HitTest(x, y float64) *Element {
	var hit *Element
	var walk func(list []*Element, dx, dy float64)
	walk = func(list []*Element, dx, dy float64) {
		for i := len(list) - 1; i >= 0; i-- {
			n := list[i]
			if n.Kind == KindCanvas {
				continue
			}
			ndx, ndy := dx+n.ChildX, dy+n.Pose.Y+n.ChildY
			if !n.Rect.Translate(ndx, ndy).Contains(x, y) {
				continue
			}
			hit = n
			walk(n.Children, ndx, ndy)
			return
		}
	}
	walk(d.roots, 0, 0)
	return hit
}
