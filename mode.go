package dials

import "math"

// Unbounded modes have no span to map onto the dial, so they use a fixed
// scale: ReferenceRange units cover TotalRotation degrees.
const (
	ReferenceRange = 10.0
	TotalRotation  = 270.0

	// DegreesPerUnit is the fixed rotation rate of MinOnly and Infinite knobs.
	DegreesPerUnit = TotalRotation / ReferenceRange
)

const (
	defaultMin        = 0.0
	defaultMax        = 100.0
	defaultStep       = 1.0
	defaultStartAngle = -TotalRotation / 2
	defaultEndAngle   = TotalRotation / 2
)

// Mode is the range semantics of a control. It is one of Bounded, MinOnly
// or Infinite and never changes for a control's lifetime.
type Mode interface {
	// Clamp folds a raw candidate into the mode's legal range.
	Clamp(raw float64) float64
	// ValueRange is the value span a full drag traversal covers.
	ValueRange() float64
	// Angle maps a raw value to dial rotation in degrees. start and end
	// are only consulted by Bounded.
	Angle(raw, start, end float64) float64

	isMode()
}

// Bounded confines the value to [Min, Max].
type Bounded struct {
	Min, Max float64
}

// MinOnly has a floor but no ceiling.
type MinOnly struct {
	Min float64
}

// Infinite is unconstrained in both directions.
type Infinite struct{}

func (Bounded) isMode()  {}
func (MinOnly) isMode()  {}
func (Infinite) isMode() {}

// Clamp returns raw limited to [Min, Max].
func (b Bounded) Clamp(raw float64) float64 {
	return math.Min(math.Max(raw, b.Min), b.Max)
}

// ValueRange returns Max-Min.
func (b Bounded) ValueRange() float64 { return b.Max - b.Min }

// Angle interpolates linearly between start and end. The endpoints are
// returned exactly so the dial never overshoots its arc.
func (b Bounded) Angle(raw, start, end float64) float64 {
	if raw <= b.Min {
		return start
	}
	if raw >= b.Max {
		return end
	}
	return start + (raw-b.Min)/(b.Max-b.Min)*(end-start)
}

// Fraction returns the normalized position of raw within the range.
func (b Bounded) Fraction(raw float64) float64 {
	if b.Max <= b.Min {
		return 0
	}
	return (b.Clamp(raw) - b.Min) / (b.Max - b.Min)
}

// Clamp returns raw raised to at least Min.
func (m MinOnly) Clamp(raw float64) float64 { return math.Max(raw, m.Min) }

// ValueRange returns ReferenceRange.
func (MinOnly) ValueRange() float64 { return ReferenceRange }

// Angle rotates DegreesPerUnit for every unit above Min.
func (m MinOnly) Angle(raw, _, _ float64) float64 { return (raw - m.Min) * DegreesPerUnit }

// Clamp returns raw unchanged.
func (Infinite) Clamp(raw float64) float64 { return raw }

// ValueRange returns ReferenceRange.
func (Infinite) ValueRange() float64 { return ReferenceRange }

// Angle rotates DegreesPerUnit per unit. The result is not wrapped; a
// renderer may reduce it modulo 360.
func (Infinite) Angle(raw, _, _ float64) float64 { return raw * DegreesPerUnit }

// Quantize rounds raw to the nearest multiple of step. step must be positive.
func Quantize(raw, step float64) float64 {
	return math.Round(raw/step) * step
}

// quantizeIn quantizes raw and keeps the result inside the mode's range.
// Rounding to the nearest step can leave a Bounded range whose limits are not
// multiples of step, so the result is pulled back to the nearest in-range
// multiple. When no multiple fits the result is clamped.
func quantizeIn(m Mode, raw, step float64) float64 {
	q := Quantize(raw, step)
	switch mode := m.(type) {
	case Bounded:
		if q > mode.Max {
			q = math.Floor(mode.Max/step) * step
		}
		if q < mode.Min {
			q = math.Ceil(mode.Min/step) * step
		}
		return mode.Clamp(q)
	case MinOnly:
		if q < mode.Min {
			q = math.Ceil(mode.Min/step) * step
		}
		return q
	case Infinite:
		return q
	default:
		return q
	}
}

// normalizeMode fills in a usable mode for a missing or degenerate one.
// It reports whether an invalid mode was replaced; nil is the documented
// default and is not reported.
func normalizeMode(m Mode) (Mode, bool) {
	switch mode := m.(type) {
	case nil:
		return Bounded{Min: defaultMin, Max: defaultMax}, false
	case Bounded:
		return normalizeBounded(mode)
	case *Bounded:
		if mode == nil {
			return Bounded{Min: defaultMin, Max: defaultMax}, true
		}
		return normalizeBounded(*mode)
	case MinOnly:
		if !isFinite(mode.Min) {
			return MinOnly{Min: defaultMin}, true
		}
		return mode, false
	case *MinOnly:
		if mode == nil || !isFinite(mode.Min) {
			return MinOnly{Min: defaultMin}, true
		}
		return *mode, false
	case Infinite, *Infinite:
		return Infinite{}, false
	default:
		return Bounded{Min: defaultMin, Max: defaultMax}, true
	}
}

func normalizeBounded(b Bounded) (Mode, bool) {
	fixed := false
	if !isFinite(b.Min) {
		b.Min, fixed = defaultMin, true
	}
	if !isFinite(b.Max) {
		b.Max, fixed = b.Min+(defaultMax-defaultMin), true
	}
	if b.Max < b.Min {
		b.Min, b.Max, fixed = b.Max, b.Min, true
	}
	if b.Max == b.Min {
		b.Max, fixed = b.Min+(defaultMax-defaultMin), true
	}
	return b, fixed
}

// Track maps a Bounded value onto a vertical slider track of Length pixels.
// Offsets are measured from the top, so Max sits at 0 and Min at Length.
type Track struct {
	Range  Bounded
	Length float64
}

// Position returns the thumb offset from the top of the track.
func (t Track) Position(raw float64) float64 {
	return (1 - t.Range.Fraction(raw)) * t.Length
}

// LayoutAngles spreads count marks evenly over [start, end]. A single mark
// sits in the middle of the arc; count < 1 yields nil.
func LayoutAngles(count int, start, end float64) []float64 {
	if count < 1 {
		return nil
	}
	if count == 1 {
		return []float64{(start + end) / 2}
	}
	out := make([]float64, count)
	span := end - start
	for i := range out {
		out[i] = start + span*float64(i)/float64(count-1)
	}
	out[count-1] = end
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
