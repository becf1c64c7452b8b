package dials

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"
)

func newTestKnob(t *testing.T, opts KnobOptions) (*Knob, *fakeContainer) {
	t.Helper()
	h := newHost("k")
	k, err := NewKnob(h, "k", opts)
	if err != nil {
		t.Fatalf("NewKnob: %v", err)
	}
	return k, h["k"]
}

func TestKnob_EndToEndDrag(t *testing.T) {
	k, c := newTestKnob(t, KnobOptions{
		Mode:        Bounded{Min: 0, Max: 10},
		Step:        0.1,
		Sensitivity: Sensitivity{PixelsPerFullRange: 400},
	})

	var events []KnobChange
	k.OnChange(func(e KnobChange) { events = append(events, e) })

	c.drag(300, 100, 0)

	if !approx(k.Value(), 5) {
		t.Errorf("Value = %v, want 5", k.Value())
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 change event, got %d", len(events))
	}
	if events[0].Previous != 0 || !approx(events[0].Value, 5) {
		t.Errorf("event = %+v, want previous 0 value 5", events[0])
	}
	if events[0].Angle != 0 {
		t.Errorf("event angle = %v, want 0 (middle of the sweep)", events[0].Angle)
	}
}

func TestKnob_SetValueClamps(t *testing.T) {
	k, _ := newTestKnob(t, KnobOptions{Mode: Bounded{0, 10}, Step: 1})

	if err := k.SetValue(15); err != nil {
		t.Fatal(err)
	}
	if k.Value() != 10 {
		t.Errorf("SetValue(15) -> %v, want 10", k.Value())
	}
	if err := k.SetValue(-5); err != nil {
		t.Fatal(err)
	}
	if k.Value() != 0 {
		t.Errorf("SetValue(-5) -> %v, want 0", k.Value())
	}
}

func TestKnob_SetValueQuantizes(t *testing.T) {
	k, _ := newTestKnob(t, KnobOptions{Mode: Bounded{0, 10}, Step: 0.5})

	_ = k.SetValue(5.24)
	if k.Value() != 5.0 {
		t.Errorf("SetValue(5.24) -> %v, want 5.0", k.Value())
	}
	_ = k.SetValue(5.26)
	if k.Value() != 5.5 {
		t.Errorf("SetValue(5.26) -> %v, want 5.5", k.Value())
	}
}

func TestKnob_SetValueIdempotent(t *testing.T) {
	k, _ := newTestKnob(t, KnobOptions{Mode: Bounded{0, 10}, Step: 0.1, Value: 3.3})
	fired := 0
	k.OnChange(func(KnobChange) { fired++ })

	_ = k.SetValue(k.Value())
	_ = k.SetValue(k.Value())
	if fired != 0 {
		t.Errorf("SetValue(Value()) fired %d change events", fired)
	}
}

func TestKnob_SetValueRejectsNonFinite(t *testing.T) {
	k, _ := newTestKnob(t, KnobOptions{Mode: Bounded{0, 10}, Value: 4})
	fired := 0
	k.OnChange(func(KnobChange) { fired++ })

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := k.SetValue(v)
		if !errors.Is(err, ErrNonFinite) {
			t.Errorf("SetValue(%v) err = %v, want ErrNonFinite", v, err)
		}
	}
	if k.Value() != 4 || fired != 0 {
		t.Errorf("rejected input changed state: value=%v fired=%d", k.Value(), fired)
	}
}

func TestKnob_SubStepMotionMovesDial(t *testing.T) {
	r := newFakeRenderer()
	k, c := newTestKnob(t, KnobOptions{
		Mode:        Bounded{0, 10},
		Step:        1,
		Sensitivity: Sensitivity{PixelsPerFullRange: 100},
		Renderer:    r,
	})
	fired := 0
	k.OnChange(func(KnobChange) { fired++ })

	c.down(100)
	c.move(98, 0) // +0.2 raw, below half a step
	if k.Value() != 0 || fired != 0 {
		t.Errorf("sub-step drag changed reported value: %v", k.Value())
	}
	if !approx(k.RawValue(), 0.2) {
		t.Errorf("RawValue = %v, want 0.2", k.RawValue())
	}
	if r.dial.angle == -135 {
		t.Error("dial did not move for sub-step motion")
	}
	c.move(94, 0) // raw 0.6 -> rounds to 1
	if k.Value() != 1 || fired != 1 {
		t.Errorf("Value = %v fired = %d, want 1 and 1", k.Value(), fired)
	}
	c.up(94)
}

func TestKnob_ModifierScaling(t *testing.T) {
	sens := Sensitivity{PixelsPerFullRange: 100, FastMultiplier: 4, PreciseMultiplier: 0.25}
	opts := KnobOptions{Mode: Bounded{0, 100}, Step: 0.01, Sensitivity: sens}

	plain, pc := newTestKnob(t, opts)
	pc.drag(100, 90, 0)
	fast, fc := newTestKnob(t, opts)
	fc.drag(100, 90, ModShift)
	precise, xc := newTestKnob(t, opts)
	xc.drag(100, 90, ModCtrl)
	both, bc := newTestKnob(t, opts)
	bc.drag(100, 90, ModShift|ModCtrl)

	if !approx(plain.Value(), 10) {
		t.Fatalf("plain drag = %v, want 10", plain.Value())
	}
	if !approx(fast.Value(), 4*plain.Value()) {
		t.Errorf("fast drag = %v, want %v", fast.Value(), 4*plain.Value())
	}
	if !approx(precise.Value(), 0.25*plain.Value()) {
		t.Errorf("precise drag = %v, want %v", precise.Value(), 0.25*plain.Value())
	}
	if !approx(both.Value(), plain.Value()) {
		t.Errorf("fast+precise drag = %v, want %v", both.Value(), plain.Value())
	}
}

func TestKnob_DragDownClampsAtMin(t *testing.T) {
	k, c := newTestKnob(t, KnobOptions{Mode: Bounded{0, 10}, Value: 2, Sensitivity: Sensitivity{PixelsPerFullRange: 100}})
	c.down(0)
	c.move(500, 0)
	if k.Value() != 0 {
		t.Errorf("Value = %v, want 0", k.Value())
	}
	// Raw is clamped too, so reversing moves off the floor at once.
	c.move(490, 0)
	if k.Value() != 1 {
		t.Errorf("Value after reversing = %v, want 1", k.Value())
	}
	c.up(490)
}

func TestKnob_MinOnlyAndInfinite(t *testing.T) {
	sens := Sensitivity{PixelsPerFullRange: 100}

	m, mc := newTestKnob(t, KnobOptions{Mode: MinOnly{Min: 1}, Value: 1, Sensitivity: sens})
	mc.drag(0, 1000, 0) // -100 units
	if m.Value() != 1 {
		t.Errorf("MinOnly floor: %v, want 1", m.Value())
	}
	mc.drag(1000, 0, 0) // +100 units, no ceiling
	if m.Value() != 101 {
		t.Errorf("MinOnly climb: %v, want 101", m.Value())
	}
	if m.Angle() != 100*DegreesPerUnit {
		t.Errorf("MinOnly angle = %v, want %v", m.Angle(), 100*DegreesPerUnit)
	}

	i, ic := newTestKnob(t, KnobOptions{Mode: Infinite{}, Sensitivity: sens})
	ic.drag(0, 200, 0) // -20 units
	if i.Value() != -20 {
		t.Errorf("Infinite: %v, want -20", i.Value())
	}
	if i.Angle() != -20*DegreesPerUnit {
		t.Errorf("Infinite angle = %v, want %v", i.Angle(), -20*DegreesPerUnit)
	}
}

func TestKnob_ToggleGating(t *testing.T) {
	k, c := newTestKnob(t, KnobOptions{
		Mode:        Bounded{0, 10},
		Toggleable:  true,
		Powered:     false,
		Sensitivity: Sensitivity{PixelsPerFullRange: 100},
	})

	c.drag(100, 50, 0)
	c.drag(100, 0, ModShift)
	if k.Value() != 0 {
		t.Fatalf("powered-off drag moved value to %v", k.Value())
	}
	if k.Powered() {
		t.Fatal("drag toggled power")
	}

	if err := k.SetPowered(true); err != nil {
		t.Fatal(err)
	}
	c.drag(100, 50, 0)
	if k.Value() != 5 {
		t.Errorf("powered drag = %v, want 5", k.Value())
	}
}

func TestKnob_PowerOnMidGesture(t *testing.T) {
	k, c := newTestKnob(t, KnobOptions{
		Mode:        Bounded{0, 10},
		Toggleable:  true,
		Sensitivity: Sensitivity{PixelsPerFullRange: 100},
	})

	c.down(100)
	c.move(80, 0)
	_ = k.SetPowered(true)
	c.move(60, 0)
	c.up(60)
	if k.Value() != 2 {
		t.Errorf("Value = %v, want 2 (only the powered sample counts)", k.Value())
	}
}

func TestKnob_ClickToggles(t *testing.T) {
	r := newFakeRenderer()
	k, c := newTestKnob(t, KnobOptions{Toggleable: true, Powered: true, Renderer: r})
	var toggles []KnobToggle
	k.OnToggle(func(e KnobToggle) { toggles = append(toggles, e) })

	c.click(50)
	if k.Powered() {
		t.Error("click should power off")
	}
	if r.led.lit {
		t.Error("LED still lit after power off")
	}
	if r.glow.level != 0 {
		t.Errorf("glow = %v while off, want 0", r.glow.level)
	}
	c.click(50)
	if !k.Powered() || !r.led.lit {
		t.Error("second click should power on")
	}
	if len(toggles) != 2 || toggles[0].Powered || !toggles[1].Powered {
		t.Errorf("toggle events = %+v", toggles)
	}
}

func TestKnob_ClickIgnoredWhenNotToggleable(t *testing.T) {
	k, c := newTestKnob(t, KnobOptions{})
	fired := 0
	k.OnToggle(func(KnobToggle) { fired++ })

	c.click(10)
	if !k.Powered() || fired != 0 {
		t.Errorf("non-toggleable knob toggled: powered=%v fired=%d", k.Powered(), fired)
	}
}

func TestKnob_SetPoweredOnlyOnChange(t *testing.T) {
	k, _ := newTestKnob(t, KnobOptions{Toggleable: true, Powered: true, Value: 7})
	var toggles []KnobToggle
	k.OnToggle(func(e KnobToggle) { toggles = append(toggles, e) })

	_ = k.SetPowered(true)
	if len(toggles) != 0 {
		t.Fatalf("SetPowered(same) fired %d events", len(toggles))
	}
	_ = k.SetPowered(false)
	if len(toggles) != 1 || toggles[0].Powered || toggles[0].Value != 7 {
		t.Errorf("toggle events = %+v, want one {false 7}", toggles)
	}
	_ = k.Toggle()
	if !k.Powered() || len(toggles) != 2 {
		t.Errorf("Toggle: powered=%v events=%d", k.Powered(), len(toggles))
	}
}

func TestKnob_RendererHandles(t *testing.T) {
	r := newFakeRenderer()
	k, _ := newTestKnob(t, KnobOptions{Mode: Bounded{0, 10}, Value: 5, Ticks: 11, Label: "gain", Renderer: r})

	if r.knob.Label != "gain" || r.knob.Ticks != 11 || r.knob.StartAngle != -135 || r.knob.EndAngle != 135 {
		t.Errorf("visual snapshot = %+v", r.knob)
	}
	if r.dial.angle != 0 {
		t.Errorf("dial angle = %v, want 0", r.dial.angle)
	}
	if r.glow.level != 0.5 {
		t.Errorf("glow level = %v, want 0.5", r.glow.level)
	}
	_ = k.SetValue(10)
	if r.dial.angle != 135 || r.glow.level != 1 {
		t.Errorf("after SetValue(10): angle=%v glow=%v", r.dial.angle, r.glow.level)
	}
}

func TestKnob_MissingDialDegrades(t *testing.T) {
	r := newFakeRenderer()
	r.omitDial = true
	k, c := newTestKnob(t, KnobOptions{Mode: Bounded{0, 10}, Sensitivity: Sensitivity{PixelsPerFullRange: 100}, Renderer: r})
	fired := 0
	k.OnChange(func(KnobChange) { fired++ })

	c.drag(100, 70, 0)
	if k.Value() != 3 || fired != 1 {
		t.Errorf("value tracking broken without dial: value=%v fired=%d", k.Value(), fired)
	}
	if r.dial.calls != 0 {
		t.Error("omitted dial was updated")
	}
}

func TestKnob_Off(t *testing.T) {
	k, _ := newTestKnob(t, KnobOptions{Mode: Bounded{0, 10}})
	other, _ := newTestKnob(t, KnobOptions{Mode: Bounded{0, 10}})
	count := 0
	sub := k.OnChange(func(KnobChange) { count++ })

	// A subscription from another knob is not ours to remove.
	other.Off(sub)
	_ = k.SetValue(1)
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
	k.Off(sub)
	_ = k.SetValue(2)
	if count != 1 {
		t.Errorf("callback fired after Off")
	}
}

func TestKnob_DestroyMidDrag(t *testing.T) {
	r := newFakeRenderer()
	k, c := newTestKnob(t, KnobOptions{Mode: Bounded{0, 10}, Sensitivity: Sensitivity{PixelsPerFullRange: 100}, Renderer: r})
	fired := 0
	k.OnChange(func(KnobChange) { fired++ })

	c.down(100)
	c.move(90, 0)
	k.Destroy()

	if c.releases != 1 || len(c.captured) != 0 {
		t.Errorf("capture not released on destroy: releases=%d", c.releases)
	}
	if len(c.subs) != 0 {
		t.Errorf("%d subscriptions left after destroy", len(c.subs))
	}
	if r.root.released != 1 {
		t.Errorf("root released %d times, want 1", r.root.released)
	}

	c.move(0, 0)
	c.up(0)
	if k.Value() != 1 || fired != 1 {
		t.Errorf("destroyed knob changed: value=%v fired=%d", k.Value(), fired)
	}
	if err := k.SetValue(5); !errors.Is(err, ErrDestroyed) {
		t.Errorf("SetValue after destroy err = %v, want ErrDestroyed", err)
	}
	k.Destroy()
	if r.root.released != 1 {
		t.Error("second Destroy released again")
	}
}

func TestNewKnob_TargetNotFound(t *testing.T) {
	_, err := NewKnob(newHost("a"), "missing", KnobOptions{})
	if !errors.Is(err, ErrTargetNotFound) {
		t.Errorf("err = %v, want ErrTargetNotFound", err)
	}
	_, err = NewKnob(nil, "a", KnobOptions{})
	if !errors.Is(err, ErrNoHost) {
		t.Errorf("err = %v, want ErrNoHost", err)
	}
}

func TestNewKnob_Defaults(t *testing.T) {
	k, _ := newTestKnob(t, KnobOptions{Mode: Bounded{Min: 5, Max: 5}, Step: -1, Value: math.NaN()})
	if k.Mode() != (Bounded{5, 105}) {
		t.Errorf("Mode = %#v, want Bounded{5, 105}", k.Mode())
	}
	if k.Step() != 1 {
		t.Errorf("Step = %v, want 1", k.Step())
	}
	if k.Value() != 5 {
		t.Errorf("Value = %v, want 5", k.Value())
	}
}

// Random drags and sets must never break the range or step invariants.
func TestKnob_InvariantsUnderRandomInput(t *testing.T) {
	modes := []Mode{Bounded{-3, 7}, MinOnly{2}, Infinite{}}
	rng := rand.New(rand.NewSource(42))

	for _, mode := range modes {
		k, c := newTestKnob(t, KnobOptions{Mode: mode, Step: 0.25, Sensitivity: Sensitivity{PixelsPerFullRange: 150}})
		y := 0.0
		for i := 0; i < 500; i++ {
			switch rng.Intn(4) {
			case 0:
				_ = k.SetValue(rng.Float64()*40 - 20)
			case 1:
				c.down(y)
			case 2:
				y += rng.Float64()*60 - 30
				c.move(y, KeyModifiers(rng.Intn(16)))
			case 3:
				c.up(y)
			}
			v := k.Value()
			if steps := v / 0.25; !approx(steps, math.Round(steps)) {
				t.Fatalf("%T: value %v is not a multiple of the step", mode, v)
			}
			if got := mode.Clamp(v); got != v {
				t.Fatalf("%T: value %v out of range", mode, v)
			}
			if got := mode.Clamp(k.RawValue()); got != k.RawValue() {
				t.Fatalf("%T: raw %v out of range", mode, k.RawValue())
			}
		}
	}
}

func TestKnob_DefaultsDoNotWarn(t *testing.T) {
	buf := captureLog(t)
	newTestKnob(t, KnobOptions{})
	newTestKnob(t, KnobOptions{Mode: Infinite{}})
	if strings.Contains(buf.String(), "level=WARN") {
		t.Errorf("unset options logged a warning: %s", buf)
	}

	k, _ := newTestKnob(t, KnobOptions{Mode: Bounded{Min: 10, Max: 0}, Step: math.NaN()})
	if got := strings.Count(buf.String(), "level=WARN"); got != 2 {
		t.Errorf("invalid mode and step: %d warnings, want 2\n%s", got, buf)
	}
	if k.Mode() != (Bounded{Min: 0, Max: 10}) || k.Step() != 1 {
		t.Errorf("mode, step = %#v, %v", k.Mode(), k.Step())
	}
}

func TestKnob_SameFuncTwice(t *testing.T) {
	k, _ := newTestKnob(t, KnobOptions{Mode: Bounded{Min: 0, Max: 10}})
	calls := 0
	fn := func(KnobChange) { calls++ }
	first := k.OnChange(fn)
	k.OnChange(fn)

	if err := k.SetValue(3); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2 (one per subscription)", calls)
	}
	k.Off(first)
	if err := k.SetValue(4); err != nil {
		t.Fatal(err)
	}
	if calls != 3 {
		t.Errorf("calls = %d after Off, want 3", calls)
	}
}
