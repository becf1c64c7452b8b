package dials

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Mode names accepted in panel files.
const (
	ModeNameBounded  = "bounded"
	ModeNameMinOnly  = "min_only"
	ModeNameInfinite = "infinite"
)

// PanelConfig describes a set of controls and the sensitivity defaults they
// share. It is usually loaded from YAML:
//
//	sensitivity:
//	  pixels_per_full_range: 300
//	knobs:
//	  - name: gain
//	    mode: bounded
//	    min: 0
//	    max: 10
//	    step: 0.1
//	sliders:
//	  - name: master
//	    max: 1
//	    step: 0.01
type PanelConfig struct {
	Sensitivity Sensitivity    `yaml:"sensitivity"`
	Knobs       []KnobConfig   `yaml:"knobs"`
	Sliders     []SliderConfig `yaml:"sliders"`
}

// KnobConfig is the file form of KnobOptions.
type KnobConfig struct {
	Name        string      `yaml:"name"`
	Label       string      `yaml:"label"`
	Mode        string      `yaml:"mode"`
	Min         *float64    `yaml:"min"`
	Max         *float64    `yaml:"max"`
	Value       float64     `yaml:"value"`
	Step        float64     `yaml:"step"`
	StartAngle  float64     `yaml:"start_angle"`
	EndAngle    float64     `yaml:"end_angle"`
	Toggleable  bool        `yaml:"toggleable"`
	Powered     bool        `yaml:"powered"`
	Ticks       int         `yaml:"ticks"`
	Sensitivity Sensitivity `yaml:"sensitivity"`
}

// SliderConfig is the file form of SliderOptions.
type SliderConfig struct {
	Name        string      `yaml:"name"`
	Label       string      `yaml:"label"`
	Min         float64     `yaml:"min"`
	Max         float64     `yaml:"max"`
	Value       float64     `yaml:"value"`
	Step        float64     `yaml:"step"`
	TrackLength float64     `yaml:"track_length"`
	Toggle      bool        `yaml:"toggle"`
	Sensitivity Sensitivity `yaml:"sensitivity"`
}

// LoadPanel decodes and validates a panel description.
func LoadPanel(r io.Reader) (*PanelConfig, error) {
	var cfg PanelConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse panel: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("parse panel: %w", err)
	}
	return &cfg, nil
}

// LoadPanelFile reads a panel description from path.
func LoadPanelFile(path string) (*PanelConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open panel: %w", err)
	}
	defer f.Close()
	return LoadPanel(f)
}

// Validate checks names are present and unique and mode names are known.
func (p *PanelConfig) Validate() error {
	seen := make(map[string]bool, len(p.Knobs)+len(p.Sliders))
	check := func(kind, name string) error {
		if name == "" {
			return fmt.Errorf("%s without a name", kind)
		}
		if seen[name] {
			return fmt.Errorf("duplicate control name %q", name)
		}
		seen[name] = true
		return nil
	}
	for _, k := range p.Knobs {
		if err := check("knob", k.Name); err != nil {
			return err
		}
		if _, err := k.mode(); err != nil {
			return fmt.Errorf("knob %q: %w", k.Name, err)
		}
	}
	for _, s := range p.Sliders {
		if err := check("slider", s.Name); err != nil {
			return err
		}
	}
	return nil
}

// Names returns every control name in file order, knobs first.
func (p *PanelConfig) Names() []string {
	names := make([]string, 0, len(p.Knobs)+len(p.Sliders))
	for _, k := range p.Knobs {
		names = append(names, k.Name)
	}
	for _, s := range p.Sliders {
		names = append(names, s.Name)
	}
	return names
}

// mode builds the Mode. A bounded knob with a missing bound gets the default
// for that bound rather than an error.
func (k KnobConfig) mode() (Mode, error) {
	switch k.Mode {
	case "", ModeNameBounded:
		b := Bounded{Min: defaultMin, Max: defaultMax}
		if k.Min != nil {
			b.Min = *k.Min
		}
		if k.Max != nil {
			b.Max = *k.Max
		} else if b.Min >= b.Max {
			b.Max = b.Min + (defaultMax - defaultMin)
		}
		return b, nil
	case ModeNameMinOnly:
		m := MinOnly{Min: defaultMin}
		if k.Min != nil {
			m.Min = *k.Min
		}
		return m, nil
	case ModeNameInfinite:
		return Infinite{}, nil
	default:
		return nil, fmt.Errorf("unknown mode %q", k.Mode)
	}
}

// Options converts the entry to KnobOptions. defaults is copied into the
// options so the knob snapshots it.
func (k KnobConfig) Options(defaults Sensitivity, r KnobRenderer) (KnobOptions, error) {
	mode, err := k.mode()
	if err != nil {
		return KnobOptions{}, fmt.Errorf("knob %q: %w", k.Name, err)
	}
	label := k.Label
	if label == "" {
		label = k.Name
	}
	return KnobOptions{
		Mode:        mode,
		Value:       k.Value,
		Step:        k.Step,
		StartAngle:  k.StartAngle,
		EndAngle:    k.EndAngle,
		Sensitivity: k.Sensitivity,
		Defaults:    &defaults,
		Toggleable:  k.Toggleable,
		Powered:     k.Powered,
		Label:       label,
		Ticks:       k.Ticks,
		Renderer:    r,
	}, nil
}

// Options converts the entry to SliderOptions.
func (s SliderConfig) Options(defaults Sensitivity, r SliderRenderer) SliderOptions {
	label := s.Label
	if label == "" {
		label = s.Name
	}
	return SliderOptions{
		Min:         s.Min,
		Max:         s.Max,
		Value:       s.Value,
		Step:        s.Step,
		TrackLength: s.TrackLength,
		Sensitivity: s.Sensitivity,
		Defaults:    &defaults,
		Toggle:      s.Toggle,
		Label:       label,
		Renderer:    r,
	}
}

// Controls holds the controls built from a panel.
type Controls struct {
	Knobs   map[string]*Knob
	Sliders map[string]*Slider
}

// Build constructs every control of the panel on host. The panel's
// sensitivity is laid over the process-wide defaults once, before any
// control is built. On error the controls built so far are destroyed.
func (p *PanelConfig) Build(host Host, kr KnobRenderer, sr SliderRenderer) (*Controls, error) {
	defaults := p.Sensitivity.Over(DefaultSensitivity())
	out := &Controls{
		Knobs:   make(map[string]*Knob, len(p.Knobs)),
		Sliders: make(map[string]*Slider, len(p.Sliders)),
	}
	for _, kc := range p.Knobs {
		opts, err := kc.Options(defaults, kr)
		if err != nil {
			out.Destroy()
			return nil, err
		}
		k, err := NewKnob(host, kc.Name, opts)
		if err != nil {
			out.Destroy()
			return nil, err
		}
		out.Knobs[kc.Name] = k
	}
	for _, sc := range p.Sliders {
		s, err := NewSlider(host, sc.Name, sc.Options(defaults, sr))
		if err != nil {
			out.Destroy()
			return nil, err
		}
		out.Sliders[sc.Name] = s
	}
	return out, nil
}

// Destroy destroys every control.
func (c *Controls) Destroy() {
	for _, k := range c.Knobs {
		k.Destroy()
	}
	for _, s := range c.Sliders {
		s.Destroy()
	}
}
