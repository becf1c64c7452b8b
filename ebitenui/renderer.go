package ebitenui

import (
	"math"

	"github.com/phanxgames/dials"
)

const circleSegments = 48

// Style holds the colors a Renderer draws with.
type Style struct {
	Body    Color
	Pointer Color
	Glow    Color
	Tick    Color
	LEDOn   Color
	LEDOff  Color
	Track   Color
	Thumb   Color
}

// DefaultStyle is a dark mixing-desk palette.
var DefaultStyle = Style{
	Body:    Color{R: 0.22, G: 0.22, B: 0.25, A: 1},
	Pointer: Color{R: 0.95, G: 0.95, B: 0.95, A: 1},
	Glow:    Color{R: 0.2, G: 0.75, B: 1, A: 0.6},
	Tick:    Color{R: 0.6, G: 0.6, B: 0.65, A: 1},
	LEDOn:   Color{R: 1, G: 0.25, B: 0.2, A: 1},
	LEDOff:  Color{R: 0.3, G: 0.1, B: 0.1, A: 1},
	Track:   Color{R: 0.1, G: 0.1, B: 0.12, A: 1},
	Thumb:   Color{R: 0.85, G: 0.85, B: 0.88, A: 1},
}

// Renderer draws knobs and sliders as polygon shapes inside a Panel. It
// implements dials.KnobRenderer and dials.SliderRenderer. Containers that
// are not Panels get no visuals.
type Renderer struct {
	Style Style
}

// NewRenderer returns a renderer using DefaultStyle.
func NewRenderer() *Renderer {
	return &Renderer{Style: DefaultStyle}
}

// RenderKnob builds a glow ring, tick marks, the knob body, its pointer and,
// for toggleable knobs, a power LED.
func (r *Renderer) RenderKnob(c dials.Container, v dials.KnobVisual) dials.KnobParts {
	p, ok := c.(*Panel)
	if !ok || p.Shape == nil {
		return dials.KnobParts{}
	}
	cx, cy := center(p.Shape)
	rad := radius(p.Shape) * 0.75

	vis := &visual{panel: p}
	glow := &glowHandle{shape: NewCircle(cx, cy, rad*1.18, circleSegments, r.Style.Glow), base: r.Style.Glow}
	vis.add(glow.shape)

	if _, bounded := v.Mode.(dials.Bounded); bounded {
		for _, a := range dials.LayoutAngles(v.Ticks, v.StartAngle, v.EndAngle) {
			t := NewRect(cx-1, cy-rad*1.32, 2, rad*0.1, r.Style.Tick)
			t.PivotX, t.PivotY = cx, cy
			t.Rotation = a
			vis.add(t)
		}
	}

	vis.add(NewCircle(cx, cy, rad, circleSegments, r.Style.Body))

	w := math.Max(2, rad*0.1)
	ptr := NewRect(cx-w/2, cy-rad*0.92, w, rad*0.55, r.Style.Pointer)
	ptr.PivotX, ptr.PivotY = cx, cy
	dial := &dialHandle{shape: ptr}
	dial.SetRotation(v.Angle)
	vis.add(ptr)

	glow.SetLevel(v.Level)
	parts := dials.KnobParts{Root: vis, Dial: dial, Glow: glow}

	if v.Toggleable {
		led := &lampHandle{
			shape: NewCircle(cx+rad, cy-rad, math.Max(3, rad*0.12), 16, r.Style.LEDOff),
			on:    r.Style.LEDOn,
			off:   r.Style.LEDOff,
		}
		led.SetLit(v.Powered)
		vis.add(led.shape)
		parts.LED = led
	}

	p.Label = v.Label
	p.Add(vis.shapes...)
	return parts
}

// RenderSlider builds a vertical track, the thumb and a toggle lamp above
// the track.
func (r *Renderer) RenderSlider(c dials.Container, v dials.SliderVisual) dials.SliderParts {
	p, ok := c.(*Panel)
	if !ok || p.Shape == nil {
		return dials.SliderParts{}
	}
	b := bounds(p.Shape)
	cx := b.X + b.Width/2
	top := b.Y + (b.Height-v.TrackLength)/2
	thumbW := math.Min(b.Width*0.8, 36)
	const thumbH = 10

	vis := &visual{panel: p}
	vis.add(NewRect(cx-2, top, 4, v.TrackLength, r.Style.Track))

	thumb := &thumbHandle{shape: NewRect(cx-thumbW/2, top-thumbH/2, thumbW, thumbH, r.Style.Thumb)}
	thumb.SetOffset(v.Position)
	vis.add(thumb.shape)

	lamp := &lampHandle{
		shape: NewCircle(cx, top-thumbH-6, 4, 16, r.Style.LEDOff),
		on:    r.Style.LEDOn,
		off:   r.Style.LEDOff,
	}
	lamp.SetLit(v.Toggle)
	vis.add(lamp.shape)

	p.Label = v.Label
	p.Add(vis.shapes...)
	return dials.SliderParts{Root: vis, Thumb: thumb, Lamp: lamp}
}

// visual is the set of shapes a control added to its panel.
type visual struct {
	panel  *Panel
	shapes []*Shape
}

func (v *visual) add(s *Shape) { v.shapes = append(v.shapes, s) }

// Release removes the shapes and the label from the panel.
func (v *visual) Release() {
	if v.panel == nil {
		return
	}
	v.panel.Remove(v.shapes...)
	v.panel.Label = ""
	v.panel = nil
}

type dialHandle struct{ shape *Shape }

// SetRotation wraps unbounded angles into one turn.
func (d *dialHandle) SetRotation(deg float64) {
	d.shape.Rotation = math.Mod(deg, 360)
}

type glowHandle struct {
	shape *Shape
	base  Color
}

func (g *glowHandle) SetLevel(level float64) {
	g.shape.Color = g.base.WithAlpha(math.Max(0, math.Min(1, level)))
}

type lampHandle struct {
	shape   *Shape
	on, off Color
}

func (l *lampHandle) SetLit(on bool) {
	if on {
		l.shape.Color = l.on
	} else {
		l.shape.Color = l.off
	}
}

type thumbHandle struct{ shape *Shape }

func (t *thumbHandle) SetOffset(px float64) { t.shape.OffsetY = px }
