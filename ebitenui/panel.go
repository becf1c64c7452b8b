package ebitenui

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/dials"
)

type panelHandler struct {
	id uint32
	fn func(dials.PointerEvent)
}

// Panel is a named region of a Board that a control mounts into. It
// implements dials.Container.
type Panel struct {
	Name string
	// X and Y place the panel's local origin on the board.
	X, Y float64
	// Shape is the hit area in local coordinates.
	Shape HitShape
	// Label is printed under the panel.
	Label string

	board    *Board
	handlers []panelHandler
	nextID   uint32
	shapes   []*Shape
}

// Subscribe registers fn for pointer events that start inside the panel.
func (p *Panel) Subscribe(fn func(dials.PointerEvent)) func() {
	if fn == nil {
		return func() {}
	}
	p.nextID++
	id := p.nextID
	p.handlers = append(slices.Clip(p.handlers), panelHandler{id: id, fn: fn})
	return func() {
		i := slices.IndexFunc(p.handlers, func(h panelHandler) bool { return h.id == id })
		if i >= 0 {
			p.handlers = slices.Delete(slices.Clone(p.handlers), i, i+1)
		}
	}
}

// Capture routes every event of pointerID to fn until released or until
// the pointer is lifted.
func (p *Panel) Capture(pointerID int, fn func(dials.PointerEvent)) func() {
	if p.board == nil {
		return func() {}
	}
	return p.board.capture(pointerID, fn)
}

// Add appends shapes to the panel's draw list. Later shapes draw on top.
func (p *Panel) Add(shapes ...*Shape) {
	p.shapes = append(p.shapes, shapes...)
}

// Remove drops shapes from the draw list.
func (p *Panel) Remove(shapes ...*Shape) {
	p.shapes = slices.DeleteFunc(p.shapes, func(s *Shape) bool {
		return slices.Contains(shapes, s)
	})
}

// Shapes returns the draw list.
func (p *Panel) Shapes() []*Shape { return p.shapes }

// Contains reports whether the board point (x, y) hits the panel.
func (p *Panel) Contains(x, y float64) bool {
	if p.Shape == nil {
		return false
	}
	return p.Shape.Contains(x-p.X, y-p.Y)
}

// dispatch delivers e to every subscriber registered when the pass began.
func (p *Panel) dispatch(e dials.PointerEvent) {
	for _, h := range p.handlers {
		h.fn(e)
	}
}

func (p *Panel) draw(dst *ebiten.Image) {
	for _, s := range p.shapes {
		s.draw(dst, p.X, p.Y)
	}
	if p.Label != "" && p.Shape != nil {
		b := bounds(p.Shape)
		ebitenutil.DebugPrintAt(dst, p.Label, int(p.X+b.X), int(p.Y+b.Y+b.Height)+4)
	}
}
