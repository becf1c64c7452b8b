package dials

import "fmt"

const defaultTrackLength = 150.0

// SliderOptions configures a Slider. The zero value is a 0-100 fader with a
// step of 1 on a 150 pixel track.
type SliderOptions struct {
	// Min and Max bound the value. Max <= Min falls back to a span of 100.
	Min, Max float64
	Value    float64
	Step     float64

	// TrackLength is the travel of the thumb in pixels. A drag over the
	// full track covers the full range.
	TrackLength float64

	// Sensitivity supplies the modifier multipliers; PixelsPerFullRange is
	// not used since the track length sets the scale.
	Sensitivity Sensitivity
	Defaults    *Sensitivity

	// Toggle is the initial state of the independent toggle flag.
	Toggle bool
	Label  string

	// Renderer draws the slider. nil runs the slider headless.
	Renderer SliderRenderer
}

// SliderChange is delivered to OnChange subscribers.
type SliderChange struct {
	Previous float64
	Value    float64
	Position float64
}

// SliderToggle is delivered to OnToggle subscribers.
type SliderToggle struct {
	On    bool
	Value float64
}

// Slider is a vertical fader. It only supports a bounded range.
type Slider struct {
	name      string
	container Container
	value     valueModel
	track     Track
	sens      Sensitivity
	toggle    bool

	drag  dragController
	parts SliderParts

	detach    func()
	changes   *notifier[SliderChange]
	toggles   *notifier[SliderToggle]
	destroyed bool
}

// NewSlider mounts a slider on the container host resolves for target.
func NewSlider(host Host, target string, opts SliderOptions) (*Slider, error) {
	c, err := resolve(host, target)
	if err != nil {
		return nil, fmt.Errorf("new slider %q: %w", target, err)
	}
	log := packageLogger().With("control", "slider", "target", target)

	lo, hi := opts.Min, opts.Max
	if lo == 0 && hi == 0 {
		hi = defaultMax
	}
	m, fixed := normalizeBounded(Bounded{Min: lo, Max: hi})
	if fixed {
		log.Warn("invalid slider range, using default", "min", opts.Min, "max", opts.Max, "using", fmt.Sprintf("%#v", m))
	}
	rng := m.(Bounded)
	step, fixed := normalizeStep(opts.Step)
	if fixed {
		log.Warn("invalid slider step, using default", "step", opts.Step, "using", step)
	}
	length := opts.TrackLength
	if !usable(length) {
		length = defaultTrackLength
	}
	initial := opts.Value
	if !isFinite(initial) {
		log.Warn("non-finite initial value, using range floor", "value", initial)
		initial = rng.Min
	}

	s := &Slider{
		name:      target,
		container: c,
		value:     newValueModel(rng, step, initial),
		track:     Track{Range: rng, Length: length},
		sens:      snapshot(opts.Sensitivity, opts.Defaults),
		toggle:    opts.Toggle,
		changes:   newNotifier[SliderChange](EventChange),
		toggles:   newNotifier[SliderToggle](EventToggle),
	}
	s.drag = dragController{container: c, onMove: s.dragMove}

	if opts.Renderer != nil {
		s.parts = opts.Renderer.RenderSlider(c, SliderVisual{
			Range:       rng,
			TrackLength: length,
			Position:    s.Position(),
			Toggle:      s.toggle,
			Label:       opts.Label,
		})
		if s.parts.Thumb == nil {
			log.Debug("renderer returned no thumb handle")
		}
	}
	s.detach = c.Subscribe(s.drag.handle)
	s.redraw()
	return s, nil
}

// Value returns the quantized value.
func (s *Slider) Value() float64 { return s.value.external }

// RawValue returns the unquantized accumulator that drives the thumb.
func (s *Slider) RawValue() float64 { return s.value.raw }

// Range returns the slider bounds.
func (s *Slider) Range() Bounded { return s.track.Range }

// Step returns the quantization step.
func (s *Slider) Step() float64 { return s.value.step }

// Track returns the track geometry.
func (s *Slider) Track() Track { return s.track }

// Position returns the thumb offset from the top of the track in pixels.
func (s *Slider) Position() float64 { return s.track.Position(s.value.raw) }

// Dragging reports whether a gesture is in progress.
func (s *Slider) Dragging() bool { return s.drag.dragging() }

// SetValue sets the value programmatically. Non-finite input is rejected
// with ErrNonFinite and leaves the slider untouched.
func (s *Slider) SetValue(v float64) error {
	if s.destroyed {
		return ErrDestroyed
	}
	if !isFinite(v) {
		packageLogger().Warn("rejected slider value", "target", s.name, "value", v)
		return fmt.Errorf("slider %q: set %v: %w", s.name, v, ErrNonFinite)
	}
	s.apply(s.value.set(v))
	return nil
}

// ToggleState returns the toggle flag.
func (s *Slider) ToggleState() bool { return s.toggle }

// SetToggle sets the toggle flag, notifying only on change. The flag is
// independent of the value and of any drag in progress.
func (s *Slider) SetToggle(on bool) error {
	if s.destroyed {
		return ErrDestroyed
	}
	if s.toggle == on {
		return nil
	}
	s.toggle = on
	if s.parts.Lamp != nil {
		s.parts.Lamp.SetLit(on)
	}
	s.toggles.emit(SliderToggle{On: on, Value: s.value.external})
	return nil
}

// OnChange subscribes fn to value changes. Every call registers a separate
// subscription, so passing the same func twice delivers each event twice.
func (s *Slider) OnChange(fn func(SliderChange)) Subscription {
	if s.destroyed {
		return Subscription{}
	}
	return s.changes.add(fn)
}

// OnToggle subscribes fn to toggle flag changes. Like OnChange, every call
// adds its own subscription.
func (s *Slider) OnToggle(fn func(SliderToggle)) Subscription {
	if s.destroyed {
		return Subscription{}
	}
	return s.toggles.add(fn)
}

// Off removes a subscription made on this slider.
func (s *Slider) Off(sub Subscription) {
	if sub.owner != remover(s.changes) && sub.owner != remover(s.toggles) {
		return
	}
	sub.Remove()
}

// Element returns the container the slider is mounted in.
func (s *Slider) Element() Container { return s.container }

// Destroy detaches input, drops any capture held by a drag in progress,
// clears subscribers and releases the visuals. Calling it again is a no-op.
func (s *Slider) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	s.drag.end()
	if s.detach != nil {
		s.detach()
		s.detach = nil
	}
	s.changes.clear()
	s.toggles.clear()
	if s.parts.Root != nil {
		s.parts.Root.Release()
	}
	s.parts = SliderParts{}
}

func (s *Slider) dragMove(deltaY float64, mods KeyModifiers) {
	if s.destroyed {
		return
	}
	delta := deltaY / s.track.Length * s.sens.Multiplier(mods) * s.track.Range.ValueRange()
	s.apply(s.value.nudge(delta))
}

func (s *Slider) apply(previous float64) {
	s.redraw()
	if s.value.external == previous {
		return
	}
	s.changes.emit(SliderChange{
		Previous: previous,
		Value:    s.value.external,
		Position: s.Position(),
	})
}

func (s *Slider) redraw() {
	if s.parts.Thumb != nil {
		s.parts.Thumb.SetOffset(s.Position())
	}
	if s.parts.Lamp != nil {
		s.parts.Lamp.SetLit(s.toggle)
	}
}
