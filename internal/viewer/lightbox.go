package viewer

import (
	"errors"
	"fmt"
	"math"
)

const (
	MinScale  = 0.5
	MaxScale  = 3.0
	ScaleStep = 0.5
)

var ErrIndexOutOfRange = errors.New("image index out of range")

// Point is a 2D offset in CSS pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

type LightboxState struct {
	Open       bool    `json:"open"`
	ImageIndex int     `json:"image_index"`
	Length     int     `json:"length"`
	Scale      float64 `json:"scale"`
	Pan        Point   `json:"pan"`
	Dragging   bool    `json:"dragging"`
}

// Lightbox is the full-screen viewer: open/close, navigation, zoom and
// drag-to-pan. It is not safe for concurrent use; Gallery serializes access.
type Lightbox struct {
	n        int
	open     bool
	index    int
	scale    float64
	pan      Point
	dragging bool
	anchor   Point

	viewport Point
}

func NewLightbox(n int) *Lightbox {
	if n < 0 {
		n = 0
	}
	return &Lightbox{n: n, scale: 1}
}

func (l *Lightbox) State() LightboxState {
	return LightboxState{
		Open:       l.open,
		ImageIndex: l.index,
		Length:     l.n,
		Scale:      l.scale,
		Pan:        l.pan,
		Dragging:   l.dragging,
	}
}

func (l *Lightbox) IsOpen() bool { return l.open }

// SetViewport enables pan clamping for a viewport of w×h pixels. A zero
// viewport leaves pan unconstrained.
func (l *Lightbox) SetViewport(w, h float64) {
	l.viewport = Point{X: math.Max(w, 0), Y: math.Max(h, 0)}
	l.pan = l.clampPan(l.pan)
}

// SetLength rebinds the image sequence. An open lightbox is closed when the
// sequence becomes empty and clamped onto the last image when it shrinks
// below the current index.
func (l *Lightbox) SetLength(n int) {
	if n < 0 {
		n = 0
	}
	l.n = n
	if n == 0 {
		l.open = false
		l.index = 0
		l.resetView()
		return
	}
	if l.index >= n {
		l.index = n - 1
		l.resetView()
	}
}

func (l *Lightbox) Open(index int) error {
	if index < 0 || index >= l.n {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, index, l.n)
	}
	l.open = true
	l.index = index
	l.resetView()
	return nil
}

func (l *Lightbox) Close() {
	l.open = false
	l.dragging = false
}

func (l *Lightbox) Next() { l.step(1) }

func (l *Lightbox) Prev() { l.step(-1) }

func (l *Lightbox) step(delta int) {
	if !l.open || l.n == 0 {
		return
	}
	l.index = (l.index + delta + l.n) % l.n
	l.resetView()
}

func (l *Lightbox) ZoomIn() {
	if !l.open {
		return
	}
	l.scale = math.Min(l.scale+ScaleStep, MaxScale)
	l.pan = l.clampPan(l.pan)
}

func (l *Lightbox) ZoomOut() {
	if !l.open {
		return
	}
	l.scale = math.Max(l.scale-ScaleStep, MinScale)
	if l.scale <= 1 {
		l.pan = Point{}
		l.dragging = false
		return
	}
	l.pan = l.clampPan(l.pan)
}

func (l *Lightbox) ResetZoom() {
	if !l.open {
		return
	}
	l.resetView()
}

// DragStart begins a pan gesture at pointer position p. It has no effect
// unless the image is zoomed in.
func (l *Lightbox) DragStart(p Point) {
	if !l.open || l.scale <= 1 {
		return
	}
	l.dragging = true
	l.anchor = p.Sub(l.pan)
}

func (l *Lightbox) DragMove(p Point) {
	if !l.dragging || l.scale <= 1 {
		return
	}
	l.pan = l.clampPan(p.Sub(l.anchor))
}

// DragEnd finishes the gesture; the pan offset stays where it is.
func (l *Lightbox) DragEnd() {
	l.dragging = false
}

// HandleKey applies the binding for key. It reports false, and does
// nothing, while the lightbox is closed or the key is unbound.
func (l *Lightbox) HandleKey(key Key) bool {
	if !l.open {
		return false
	}
	action, ok := lightboxBindings[key]
	if !ok {
		return false
	}
	action(l)
	return true
}

func (l *Lightbox) resetView() {
	l.scale = 1
	l.pan = Point{}
	l.dragging = false
}

// clampPan keeps the zoomed image covering the viewport centre: the image
// half-extent is scale*viewport/2, so the offset may not exceed it.
func (l *Lightbox) clampPan(p Point) Point {
	if l.viewport.X > 0 {
		limit := l.scale * l.viewport.X / 2
		p.X = math.Max(-limit, math.Min(limit, p.X))
	}
	if l.viewport.Y > 0 {
		limit := l.scale * l.viewport.Y / 2
		p.Y = math.Max(-limit, math.Min(limit, p.Y))
	}
	return p
}
