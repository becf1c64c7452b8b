package dials

import (
	"fmt"
	"math"
)

// KnobOptions configures a Knob. The zero value is a 0-100 knob with a
// step of 1 sweeping from -135 to 135 degrees.
type KnobOptions struct {
	// Mode selects Bounded, MinOnly or Infinite. nil means Bounded{0, 100}.
	Mode Mode
	// Value is the initial value.
	Value float64
	// Step is the quantization step of the reported value. Zero means 1.
	Step float64

	// StartAngle and EndAngle bound the dial sweep in Bounded mode, in
	// degrees clockwise from twelve o'clock. Both zero means -135/135.
	StartAngle float64
	EndAngle   float64

	// Sensitivity overrides the defaults field by field.
	Sensitivity Sensitivity
	// Defaults replaces the process-wide sensitivity defaults for this
	// knob. It is copied at construction.
	Defaults *Sensitivity

	// Toggleable enables the power switch: a click flips power, and drags
	// are ignored while powered off.
	Toggleable bool
	// Powered is the initial power state of a toggleable knob. Knobs that
	// are not toggleable are always constructed powered.
	Powered bool

	Label string
	Ticks int

	// Renderer draws the knob. nil runs the knob headless.
	Renderer KnobRenderer
}

// KnobChange is delivered to OnChange subscribers.
type KnobChange struct {
	Previous float64
	Value    float64
	Angle    float64
	Powered  bool
}

// KnobToggle is delivered to OnToggle subscribers.
type KnobToggle struct {
	Powered bool
	Value   float64
}

// Knob is a rotary control driven by vertical drags.
type Knob struct {
	name       string
	container  Container
	value      valueModel
	sens       Sensitivity
	startAngle float64
	endAngle   float64

	gate  toggleGate
	drag  dragController
	parts KnobParts

	detach    func()
	changes   *notifier[KnobChange]
	toggles   *notifier[KnobToggle]
	destroyed bool
}

// NewKnob mounts a knob on the container host resolves for target.
func NewKnob(host Host, target string, opts KnobOptions) (*Knob, error) {
	c, err := resolve(host, target)
	if err != nil {
		return nil, fmt.Errorf("new knob %q: %w", target, err)
	}
	log := packageLogger().With("control", "knob", "target", target)

	mode, fixed := normalizeMode(opts.Mode)
	if fixed {
		log.Warn("invalid knob mode, using default", "mode", fmt.Sprintf("%#v", opts.Mode), "using", fmt.Sprintf("%#v", mode))
	}
	step, fixed := normalizeStep(opts.Step)
	if fixed {
		log.Warn("invalid knob step, using default", "step", opts.Step, "using", step)
	}
	initial := opts.Value
	if !isFinite(initial) {
		log.Warn("non-finite initial value, using 0", "value", initial)
		initial = 0
	}
	start, end := opts.StartAngle, opts.EndAngle
	if start == 0 && end == 0 {
		start, end = defaultStartAngle, defaultEndAngle
	}

	k := &Knob{
		name:       target,
		container:  c,
		value:      newValueModel(mode, step, initial),
		sens:       snapshot(opts.Sensitivity, opts.Defaults),
		startAngle: start,
		endAngle:   end,
		gate:       toggleGate{toggleable: opts.Toggleable, powered: opts.Powered || !opts.Toggleable},
		changes:    newNotifier[KnobChange](EventChange),
		toggles:    newNotifier[KnobToggle](EventToggle),
	}
	k.drag = dragController{
		container: c,
		onMove:    k.dragMove,
		onClick:   k.click,
	}

	if opts.Renderer != nil {
		k.parts = opts.Renderer.RenderKnob(c, KnobVisual{
			Mode:       mode,
			StartAngle: start,
			EndAngle:   end,
			Angle:      k.Angle(),
			Level:      k.level(),
			Toggleable: opts.Toggleable,
			Powered:    k.gate.powered,
			Label:      opts.Label,
			Ticks:      opts.Ticks,
		})
		if k.parts.Dial == nil {
			log.Debug("renderer returned no dial handle")
		}
	}
	k.detach = c.Subscribe(k.drag.handle)
	k.redraw()
	return k, nil
}

// Value returns the quantized value.
func (k *Knob) Value() float64 { return k.value.external }

// RawValue returns the unquantized accumulator that drives the dial.
func (k *Knob) RawValue() float64 { return k.value.raw }

// Mode returns the knob's range mode.
func (k *Knob) Mode() Mode { return k.value.mode }

// Step returns the quantization step.
func (k *Knob) Step() float64 { return k.value.step }

// Sensitivity returns the sensitivity resolved at construction.
func (k *Knob) Sensitivity() Sensitivity { return k.sens }

// Angle returns the dial rotation in degrees for the raw value.
func (k *Knob) Angle() float64 {
	return k.value.mode.Angle(k.value.raw, k.startAngle, k.endAngle)
}

// Dragging reports whether a gesture is in progress.
func (k *Knob) Dragging() bool { return k.drag.dragging() }

// SetValue sets the value programmatically. Non-finite input is rejected
// with ErrNonFinite and leaves the knob untouched.
func (k *Knob) SetValue(v float64) error {
	if k.destroyed {
		return ErrDestroyed
	}
	if !isFinite(v) {
		packageLogger().Warn("rejected knob value", "target", k.name, "value", v)
		return fmt.Errorf("knob %q: set %v: %w", k.name, v, ErrNonFinite)
	}
	k.apply(k.value.set(v))
	return nil
}

// Powered reports the power state.
func (k *Knob) Powered() bool { return k.gate.powered }

// Toggleable reports whether the knob has a power switch.
func (k *Knob) Toggleable() bool { return k.gate.toggleable }

// SetPowered sets the power state, notifying only on change.
func (k *Knob) SetPowered(on bool) error {
	if k.destroyed {
		return ErrDestroyed
	}
	if k.gate.set(on) {
		k.powerChanged()
	}
	return nil
}

// Toggle flips the power state.
func (k *Knob) Toggle() error {
	if k.destroyed {
		return ErrDestroyed
	}
	k.gate.flip()
	k.powerChanged()
	return nil
}

// OnChange subscribes fn to value changes. Every call registers a separate
// subscription, so passing the same func twice delivers each event twice.
func (k *Knob) OnChange(fn func(KnobChange)) Subscription {
	if k.destroyed {
		return Subscription{}
	}
	return k.changes.add(fn)
}

// OnToggle subscribes fn to power changes. Like OnChange, every call adds
// its own subscription.
func (k *Knob) OnToggle(fn func(KnobToggle)) Subscription {
	if k.destroyed {
		return Subscription{}
	}
	return k.toggles.add(fn)
}

// Off removes a subscription made on this knob.
func (k *Knob) Off(sub Subscription) {
	if sub.owner != remover(k.changes) && sub.owner != remover(k.toggles) {
		return
	}
	sub.Remove()
}

// Element returns the container the knob is mounted in.
func (k *Knob) Element() Container { return k.container }

// Destroy detaches input, drops any capture held by a drag in progress,
// clears subscribers and releases the visuals. Calling it again is a no-op.
func (k *Knob) Destroy() {
	if k.destroyed {
		return
	}
	k.destroyed = true
	k.drag.end()
	if k.detach != nil {
		k.detach()
		k.detach = nil
	}
	k.changes.clear()
	k.toggles.clear()
	if k.parts.Root != nil {
		k.parts.Root.Release()
	}
	k.parts = KnobParts{}
}

func (k *Knob) dragMove(deltaY float64, mods KeyModifiers) {
	if k.destroyed || !k.gate.open() {
		return
	}
	delta := deltaY / k.sens.PixelsPerFullRange * k.sens.Multiplier(mods) * k.value.mode.ValueRange()
	k.apply(k.value.nudge(delta))
}

func (k *Knob) click() {
	if k.destroyed || !k.gate.toggleable {
		return
	}
	k.gate.flip()
	k.powerChanged()
}

// apply redraws and notifies after the value model changed.
func (k *Knob) apply(previous float64) {
	k.redraw()
	if k.value.external == previous {
		return
	}
	k.changes.emit(KnobChange{
		Previous: previous,
		Value:    k.value.external,
		Angle:    k.Angle(),
		Powered:  k.gate.powered,
	})
}

func (k *Knob) powerChanged() {
	k.redraw()
	k.toggles.emit(KnobToggle{Powered: k.gate.powered, Value: k.value.external})
}

func (k *Knob) redraw() {
	if k.parts.Dial != nil {
		k.parts.Dial.SetRotation(k.Angle())
	}
	if k.parts.Glow != nil {
		k.parts.Glow.SetLevel(k.level())
	}
	if k.parts.LED != nil {
		k.parts.LED.SetLit(k.gate.powered)
	}
}

// level is the glow intensity: the normalized position for Bounded knobs,
// full for unbounded ones, zero while powered off.
func (k *Knob) level() float64 {
	if !k.gate.powered {
		return 0
	}
	if b, ok := k.value.mode.(Bounded); ok {
		return math.Max(0, math.Min(1, b.Fraction(k.value.raw)))
	}
	return 1
}

func resolve(host Host, target string) (Container, error) {
	if host == nil {
		return nil, ErrNoHost
	}
	c, ok := host.Resolve(target)
	if !ok || c == nil {
		return nil, ErrTargetNotFound
	}
	return c, nil
}
