// Package dials implements rotary knobs and vertical faders driven by
// pointer drags.
//
// A control turns vertical pointer movement into a numeric value under one
// of three range modes, quantizes it to a step, and reports changes to
// subscribers. Drawing and input delivery belong to a frontend: see
// [github.com/phanxgames/dials/ebitenui] for an Ebitengine window and
// [github.com/phanxgames/dials/termui] for a terminal.
//
// # Quick start
//
//	knob, err := dials.NewKnob(host, "gain", dials.KnobOptions{
//		Mode: dials.Bounded{Min: 0, Max: 10},
//		Step: 0.1,
//		Renderer: renderer,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	knob.OnChange(func(e dials.KnobChange) {
//		fmt.Println(e.Previous, "->", e.Value)
//	})
//
// # Range modes
//
// [Bounded] confines the value to [Min, Max] and sweeps the dial from
// StartAngle to EndAngle. [MinOnly] has a floor but no ceiling and
// [Infinite] has neither; both rotate a fixed [DegreesPerUnit] and scale
// drags as if the range were [ReferenceRange] units wide.
//
// # Raw and reported values
//
// Every control keeps a raw value that accumulates each fraction of a pixel
// of movement, and a reported value rounded to the step. The dial and thumb
// follow the raw value so sub-step motion is visible; subscribers and
// Value only ever see the rounded one.
//
// # Sensitivity
//
// A drag of [Sensitivity.PixelsPerFullRange] pixels sweeps a knob's whole
// range; a slider uses its track length instead. Shift multiplies the
// movement by FastMultiplier and Ctrl (or Meta) by PreciseMultiplier.
// Process-wide defaults are changed with [SetDefaultSensitivity]; a control
// copies them when it is built, so later changes only affect new controls.
//
// # Threading
//
// Controls are not safe for concurrent use. Frontends deliver input and
// call setters from a single goroutine.
package dials
