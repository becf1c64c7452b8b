package ebitenui

import "math"

// HitShape decides whether a point in panel-local coordinates hits a panel.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// bounds returns the smallest rectangle covering the shape, used for labels.
func bounds(s HitShape) HitRect {
	switch h := s.(type) {
	case HitRect:
		return h
	case HitCircle:
		return HitRect{X: h.CenterX - h.Radius, Y: h.CenterY - h.Radius, Width: 2 * h.Radius, Height: 2 * h.Radius}
	default:
		return HitRect{}
	}
}

// center returns the middle of the shape's bounds.
func center(s HitShape) (float64, float64) {
	b := bounds(s)
	return b.X + b.Width/2, b.Y + b.Height/2
}

// radius returns the largest circle radius that fits the shape's bounds.
func radius(s HitShape) float64 {
	b := bounds(s)
	return math.Min(b.Width, b.Height) / 2
}
