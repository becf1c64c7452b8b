package termui

import (
	"math"
	"strings"

	"github.com/phanxgames/dials"
)

// arrows point the knob direction in 45 degree sectors, clockwise from
// twelve o'clock.
var arrows = []string{"↑", "↗", "→", "↘", "↓", "↙", "←", "↖"}

const meterWidth = 8

// Renderer draws controls into Cells. It implements dials.KnobRenderer and
// dials.SliderRenderer. Other containers get no visuals.
type Renderer struct{}

// RenderKnob attaches a knob view to the cell.
func (Renderer) RenderKnob(c dials.Container, v dials.KnobVisual) dials.KnobParts {
	cell, ok := c.(*Cell)
	if !ok {
		return dials.KnobParts{}
	}
	kv := &knobView{cell: cell, label: v.Label, toggleable: v.Toggleable, angle: v.Angle, level: v.Level, lit: v.Powered}
	cell.view = kv
	parts := dials.KnobParts{Root: kv, Dial: kv, Glow: kv}
	if v.Toggleable {
		parts.LED = kv
	}
	return parts
}

// RenderSlider attaches a slider view to the cell. The thumb offset is in
// rows, so TrackLength should be TrackRows.
func (Renderer) RenderSlider(c dials.Container, v dials.SliderVisual) dials.SliderParts {
	cell, ok := c.(*Cell)
	if !ok {
		return dials.SliderParts{}
	}
	sv := &sliderView{cell: cell, label: v.Label, length: v.TrackLength, offset: v.Position, lit: v.Toggle}
	cell.view = sv
	return dials.SliderParts{Root: sv, Thumb: sv, Lamp: sv}
}

type knobView struct {
	cell       *Cell
	label      string
	toggleable bool
	angle      float64
	level      float64
	lit        bool
}

func (k *knobView) SetRotation(deg float64) { k.angle = deg }
func (k *knobView) SetLevel(level float64)  { k.level = level }
func (k *knobView) SetLit(on bool)          { k.lit = on }

func (k *knobView) Release() {
	if k.cell.view == k {
		k.cell.view = nil
	}
}

func (k *knobView) lines() []string {
	led := " "
	if k.toggleable {
		led = mutedStyle.Render("○")
		if k.lit {
			led = ledOnStyle.Render("●")
		}
	}
	return []string{
		titleStyle.Render(k.label),
		led,
		"╭───╮",
		"│ " + arrow(k.angle) + " │",
		"╰───╯",
		glowStyle.Render(meter(k.level, meterWidth)),
	}
}

type sliderView struct {
	cell   *Cell
	label  string
	length float64
	offset float64
	lit    bool
}

func (s *sliderView) SetOffset(px float64) { s.offset = px }
func (s *sliderView) SetLit(on bool)       { s.lit = on }

func (s *sliderView) Release() {
	if s.cell.view == s {
		s.cell.view = nil
	}
}

func (s *sliderView) lines() []string {
	lamp := mutedStyle.Render("○")
	if s.lit {
		lamp = ledOnStyle.Render("●")
	}
	out := []string{titleStyle.Render(s.label), lamp}
	row := thumbRow(s.offset, s.length, TrackRows)
	for i := 0; i < TrackRows; i++ {
		if i == row {
			out = append(out, thumbStyle.Render("━█━"))
		} else {
			out = append(out, mutedStyle.Render(" │ "))
		}
	}
	return out
}

// arrow picks the glyph for a dial angle in degrees.
func arrow(deg float64) string {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return arrows[int(math.Round(d/45))%len(arrows)]
}

// meter renders level in [0, 1] as a bar of width cells.
func meter(level float64, width int) string {
	n := int(math.Round(math.Max(0, math.Min(1, level)) * float64(width)))
	return strings.Repeat("▰", n) + strings.Repeat("▱", width-n)
}

// thumbRow maps a track offset onto one of rows rows, top first.
func thumbRow(offset, length float64, rows int) int {
	if length <= 0 || rows < 2 {
		return 0
	}
	r := int(math.Round(offset / length * float64(rows-1)))
	return max(0, min(rows-1, r))
}
