package dials

import "sync/atomic"

// Sensitivity controls how far a drag moves a control. A zero field means
// "not set" and is filled from the defaults when resolved.
type Sensitivity struct {
	// PixelsPerFullRange is the vertical drag distance that traverses the
	// whole value range of a knob.
	PixelsPerFullRange float64 `yaml:"pixels_per_full_range"`
	// FastMultiplier scales drag deltas while Shift is held.
	FastMultiplier float64 `yaml:"fast_multiplier"`
	// PreciseMultiplier scales drag deltas while Ctrl or Meta is held.
	PreciseMultiplier float64 `yaml:"precise_multiplier"`
}

// BuiltinSensitivity is the process-wide default before any call to
// SetDefaultSensitivity.
var BuiltinSensitivity = Sensitivity{
	PixelsPerFullRange: 200,
	FastMultiplier:     4,
	PreciseMultiplier:  0.1,
}

var defaultSensitivity atomic.Pointer[Sensitivity]

func init() {
	s := BuiltinSensitivity
	defaultSensitivity.Store(&s)
}

// DefaultSensitivity returns a copy of the current process-wide defaults.
func DefaultSensitivity() Sensitivity {
	return *defaultSensitivity.Load()
}

// SetDefaultSensitivity merges the set fields of partial into the
// process-wide defaults. Only controls constructed afterwards see the change.
func SetDefaultSensitivity(partial Sensitivity) {
	for {
		cur := defaultSensitivity.Load()
		next := partial.Over(*cur)
		if defaultSensitivity.CompareAndSwap(cur, &next) {
			return
		}
	}
}

// ResetDefaultSensitivity restores BuiltinSensitivity.
func ResetDefaultSensitivity() {
	s := BuiltinSensitivity
	defaultSensitivity.Store(&s)
}

// Over returns base with every usable field of s laid on top of it.
func (s Sensitivity) Over(base Sensitivity) Sensitivity {
	if usable(s.PixelsPerFullRange) {
		base.PixelsPerFullRange = s.PixelsPerFullRange
	}
	if usable(s.FastMultiplier) {
		base.FastMultiplier = s.FastMultiplier
	}
	if usable(s.PreciseMultiplier) {
		base.PreciseMultiplier = s.PreciseMultiplier
	}
	return base
}

// ResolveSensitivity merges a per-control override with defaults, field by
// field. Fields still unset afterwards fall back to BuiltinSensitivity so
// the result never divides by zero.
func ResolveSensitivity(override, defaults Sensitivity) Sensitivity {
	return override.Over(defaults.Over(BuiltinSensitivity))
}

// Multiplier returns the drag scale for the held modifiers. Fast and
// precise compose when both are held.
func (s Sensitivity) Multiplier(mods KeyModifiers) float64 {
	m := 1.0
	if mods.Fast() {
		m *= s.FastMultiplier
	}
	if mods.Precise() {
		m *= s.PreciseMultiplier
	}
	return m
}

// snapshot resolves a control's sensitivity at construction time. A nil
// defaults pointer means the process-wide defaults.
func snapshot(override Sensitivity, defaults *Sensitivity) Sensitivity {
	base := DefaultSensitivity()
	if defaults != nil {
		base = *defaults
	}
	return ResolveSensitivity(override, base)
}

func usable(v float64) bool {
	return v > 0 && isFinite(v)
}
