package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/phanxgames/dials"
	"github.com/phanxgames/dials/ebitenui"
	"github.com/phanxgames/dials/termui"
)

// defaultPanel is used when no --panel file is given.
const defaultPanel = `
knobs:
  - name: gain
    label: Gain
    min: 0
    max: 10
    step: 0.1
    ticks: 11
  - name: drive
    label: Drive
    mode: min_only
    min: 0
    step: 0.5
    toggleable: true
    powered: true
  - name: pan
    label: Pan
    mode: infinite
    step: 1
sliders:
  - name: master
    label: Master
    max: 1
    step: 0.01
    value: 0.8
`

func loadPanel(path string) (*dials.PanelConfig, error) {
	if path == "" {
		return dials.LoadPanel(strings.NewReader(defaultPanel))
	}
	return dials.LoadPanelFile(path)
}

// Window layout in pixels.
const (
	knobSize    = 110
	sliderWidth = 60
	gutter      = 20
	trackLength = 150
)

// buildBoard lays the panel's controls out left to right, knobs first, and
// mounts them on a new board.
func buildBoard(p *dials.PanelConfig) (*ebitenui.Board, *dials.Controls, error) {
	b := ebitenui.NewBoard()
	b.ClearColor = ebitenui.Color{R: 0.1, G: 0.1, B: 0.12, A: 1}

	x := float64(gutter)
	for _, k := range p.Knobs {
		shape := ebitenui.HitCircle{CenterX: knobSize / 2, CenterY: knobSize / 2, Radius: knobSize / 2}
		if _, err := b.AddPanel(k.Name, x, gutter, shape); err != nil {
			return nil, nil, err
		}
		x += knobSize + gutter
	}
	for i := range p.Sliders {
		if p.Sliders[i].TrackLength == 0 {
			p.Sliders[i].TrackLength = trackLength
		}
		shape := ebitenui.HitRect{Width: sliderWidth, Height: p.Sliders[i].TrackLength + 40}
		if _, err := b.AddPanel(p.Sliders[i].Name, x, gutter, shape); err != nil {
			return nil, nil, err
		}
		x += sliderWidth + gutter
	}

	r := ebitenui.NewRenderer()
	ctl, err := p.Build(b, r, r)
	if err != nil {
		return nil, nil, fmt.Errorf("build panel: %w", err)
	}
	return b, ctl, nil
}

// buildTerm mounts the panel on a terminal model. Row-sized sensitivity is
// laid under the panel's own, and sliders travel TrackRows rows.
func buildTerm(p *dials.PanelConfig) (*termui.Model, *dials.Controls, error) {
	m := termui.New()
	for _, name := range p.Names() {
		if _, err := m.AddCell(name); err != nil {
			return nil, nil, err
		}
	}
	p.Sensitivity = p.Sensitivity.Over(termui.Sensitivity)
	for i := range p.Sliders {
		p.Sliders[i].TrackLength = termui.TrackRows
	}

	r := termui.Renderer{}
	ctl, err := p.Build(m, r, r)
	if err != nil {
		return nil, nil, fmt.Errorf("build panel: %w", err)
	}
	for name, k := range ctl.Knobs {
		m.SetCaption(name, formatValue(k.Value(), k.Step()))
	}
	for name, s := range ctl.Sliders {
		m.SetCaption(name, formatValue(s.Value(), s.Step()))
	}
	return m, ctl, nil
}

// watch logs every change and toggle at debug level and reports new values
// to caption, which may be nil.
func watch(ctl *dials.Controls, log *slog.Logger, caption func(name, text string)) {
	for name, k := range ctl.Knobs {
		step := k.Step()
		k.OnChange(func(e dials.KnobChange) {
			log.Debug("knob changed", "name", name, "from", e.Previous, "to", e.Value, "angle", e.Angle)
			if caption != nil {
				caption(name, formatValue(e.Value, step))
			}
		})
		k.OnToggle(func(e dials.KnobToggle) {
			log.Debug("knob power", "name", name, "powered", e.Powered, "value", e.Value)
		})
	}
	for name, s := range ctl.Sliders {
		step := s.Step()
		s.OnChange(func(e dials.SliderChange) {
			log.Debug("slider changed", "name", name, "from", e.Previous, "to", e.Value)
			if caption != nil {
				caption(name, formatValue(e.Value, step))
			}
		})
		s.OnToggle(func(e dials.SliderToggle) {
			log.Debug("slider toggle", "name", name, "on", e.On)
		})
	}
}

// formatValue prints v with as many decimals as step has.
func formatValue(v, step float64) string {
	decimals := 0
	if _, frac, ok := strings.Cut(strconv.FormatFloat(step, 'f', -1, 64), "."); ok {
		decimals = len(frac)
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
