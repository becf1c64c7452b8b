package termui

import (
	"slices"

	"github.com/phanxgames/dials"
)

type cellHandler struct {
	id uint32
	fn func(dials.PointerEvent)
}

// Cell is one control slot of the terminal layout. It implements
// dials.Container.
type Cell struct {
	Name string
	// Caption is printed under the control, usually its value.
	Caption string

	index    int
	model    *Model
	handlers []cellHandler
	nextID   uint32
	view     cellView
}

// cellView draws a cell's control. nil draws only the caption.
type cellView interface {
	lines() []string
}

// Subscribe registers fn for pointer events that start on the cell.
func (c *Cell) Subscribe(fn func(dials.PointerEvent)) func() {
	if fn == nil {
		return func() {}
	}
	c.nextID++
	id := c.nextID
	c.handlers = append(slices.Clip(c.handlers), cellHandler{id: id, fn: fn})
	return func() {
		i := slices.IndexFunc(c.handlers, func(h cellHandler) bool { return h.id == id })
		if i >= 0 {
			c.handlers = slices.Delete(slices.Clone(c.handlers), i, i+1)
		}
	}
}

// Capture routes every event of the mouse to fn until released or until
// the button is let go. The terminal has a single pointer.
func (c *Cell) Capture(_ int, fn func(dials.PointerEvent)) func() {
	if c.model == nil {
		return func() {}
	}
	return c.model.capture(fn)
}

func (c *Cell) dispatch(e dials.PointerEvent) {
	for _, h := range c.handlers {
		h.fn(e)
	}
}

// contains reports whether the terminal cell (x, y) falls in this slot.
func (c *Cell) contains(x, y int) bool {
	left := c.index * CellWidth
	return x >= left && x < left+CellWidth && y >= 0 && y < CellHeight
}
