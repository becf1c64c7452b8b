package dials

// valueModel holds the raw accumulator and the quantized external value.
// Both are only written through set, which clamps and quantizes.
type valueModel struct {
	mode     Mode
	step     float64
	raw      float64
	external float64
}

func newValueModel(mode Mode, step, initial float64) valueModel {
	v := valueModel{mode: mode, step: step}
	v.set(initial)
	return v
}

// set clamps raw into the mode and derives the external value. It returns
// the external value held before the call.
func (v *valueModel) set(raw float64) (previous float64) {
	previous = v.external
	v.raw = v.mode.Clamp(raw)
	v.external = quantizeIn(v.mode, v.raw, v.step)
	return previous
}

// nudge adds delta to the raw value.
func (v *valueModel) nudge(delta float64) (previous float64) {
	return v.set(v.raw + delta)
}

// normalizeStep replaces an unset or unusable step with the default one.
// It reports whether the step was invalid; zero means unset.
func normalizeStep(step float64) (float64, bool) {
	if step > 0 && isFinite(step) {
		return step, false
	}
	return defaultStep, step != 0
}
