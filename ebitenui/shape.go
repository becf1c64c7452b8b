package ebitenui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when vertices are built.
type Color struct {
	R, G, B, A float64
}

// WithAlpha returns c with its alpha scaled by a.
func (c Color) WithAlpha(a float64) Color {
	c.A *= a
	return c
}

func (c Color) toRGBA() color.RGBA {
	clamp := func(v float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return color.RGBA{R: clamp(c.R * c.A), G: clamp(c.G * c.A), B: clamp(c.B * c.A), A: clamp(c.A)}
}

// Point is a 2D position in panel-local coordinates.
type Point struct {
	X, Y float64
}

// Shape is a filled convex polygon owned by a Panel. Points are local to the
// panel. Rotation turns the shape clockwise, in degrees, around the pivot;
// the offset is applied after rotation.
type Shape struct {
	Points []Point
	Color  Color

	Rotation       float64
	PivotX, PivotY float64
	OffsetX        float64
	OffsetY        float64

	Hidden bool

	// Reused between frames.
	verts []ebiten.Vertex
	inds  []uint16
	pts   []Point
}

// NewPolygon creates a shape from convex polygon points.
func NewPolygon(points []Point, c Color) *Shape {
	return &Shape{Points: points, Color: c}
}

// NewCircle creates a regular polygon approximating a circle. The pivot is
// the circle's center.
func NewCircle(cx, cy, r float64, segments int, c Color) *Shape {
	return &Shape{Points: CirclePoints(cx, cy, r, segments), Color: c, PivotX: cx, PivotY: cy}
}

// NewRect creates an axis-aligned rectangle.
func NewRect(x, y, w, h float64, c Color) *Shape {
	return &Shape{Points: RectPoints(x, y, w, h), Color: c, PivotX: x + w/2, PivotY: y + h/2}
}

// CirclePoints returns segments points evenly spaced on a circle, starting
// at twelve o'clock. segments below 3 is raised to 3.
func CirclePoints(cx, cy, r float64, segments int) []Point {
	if segments < 3 {
		segments = 3
	}
	pts := make([]Point, segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = Point{X: cx + r*math.Sin(a), Y: cy - r*math.Cos(a)}
	}
	return pts
}

// RectPoints returns the corners of a rectangle in clockwise order.
func RectPoints(x, y, w, h float64) []Point {
	return []Point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
}

// Transformed returns the shape's points after rotation and offset.
func (s *Shape) Transformed() []Point {
	s.pts = transformPoints(s.pts[:0], s.Points, s.Rotation, s.PivotX, s.PivotY, s.OffsetX, s.OffsetY)
	return s.pts
}

// transformPoints rotates src clockwise by deg around (px, py), then
// translates by (ox, oy), appending to dst.
func transformPoints(dst, src []Point, deg, px, py, ox, oy float64) []Point {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	for _, p := range src {
		dx, dy := p.X-px, p.Y-py
		dst = append(dst, Point{
			X: px + dx*cos - dy*sin + ox,
			Y: py + dx*sin + dy*cos + oy,
		})
	}
	return dst
}

// draw submits the shape to dst with the panel origin at (originX, originY).
func (s *Shape) draw(dst *ebiten.Image, originX, originY float64) {
	if s.Hidden || len(s.Points) < 3 || s.Color.A <= 0 {
		return
	}
	s.verts, s.inds = buildPolygonFan(s.verts[:0], s.inds[:0], s.Transformed(), originX, originY, s.Color)
	dst.DrawTriangles(s.verts, s.inds, ensureWhitePixel(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// buildPolygonFan appends vertices and indices for a fan-triangulated
// polygon. N vertices, 3*(N-2) indices. Vertex colors are premultiplied.
func buildPolygonFan(verts []ebiten.Vertex, inds []uint16, points []Point, ox, oy float64, c Color) ([]ebiten.Vertex, []uint16) {
	n := len(points)
	if n < 3 {
		return verts, inds
	}
	r, g, b, a := float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A)
	for _, p := range points {
		verts = append(verts, ebiten.Vertex{
			DstX: float32(p.X + ox), DstY: float32(p.Y + oy),
			// Center of the white pixel.
			SrcX: 0.5, SrcY: 0.5,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		})
	}
	for i := 0; i < n-2; i++ {
		inds = append(inds, 0, uint16(i+1), uint16(i+2))
	}
	return verts, inds
}

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}
