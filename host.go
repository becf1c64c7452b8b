package dials

// Host resolves mount targets to containers. A frontend (window, terminal,
// test harness) implements it.
type Host interface {
	Resolve(target string) (Container, bool)
}

// Container is the mount point a control lives in. It delivers input and
// is handed to the renderer.
type Container interface {
	// Subscribe registers fn for pointer events that start over the
	// container's bounds. The returned func detaches it.
	Subscribe(fn func(PointerEvent)) (unsubscribe func())
	// Capture routes every event of pointerID to fn, wherever the pointer
	// is, until release is called or the pointer is lifted. Platform
	// gestures such as scrolling are suppressed while captured.
	Capture(pointerID int, fn func(PointerEvent)) (release func())
}

// Releaser tears down a rendered visual tree.
type Releaser interface {
	Release()
}

// Rotator is a visual element that turns with the knob value.
type Rotator interface {
	SetRotation(degrees float64)
}

// Translator is a visual element that slides along a track.
type Translator interface {
	SetOffset(pixels float64)
}

// Glower shows an intensity in [0, 1].
type Glower interface {
	SetLevel(level float64)
}

// Lamp is an on/off indicator.
type Lamp interface {
	SetLit(on bool)
}

// KnobVisual is the configuration snapshot a knob renderer draws from.
type KnobVisual struct {
	Mode       Mode
	StartAngle float64
	EndAngle   float64
	Angle      float64
	Level      float64
	Toggleable bool
	Powered    bool
	Label      string
	Ticks      int
}

// KnobParts are the handles a knob mutates after rendering. Any of them
// may be nil; the knob skips updates for missing parts.
type KnobParts struct {
	Root Releaser
	Dial Rotator
	Glow Glower
	LED  Lamp
}

// KnobRenderer builds the visuals for a knob inside c.
type KnobRenderer interface {
	RenderKnob(c Container, v KnobVisual) KnobParts
}

// SliderVisual is the configuration snapshot a slider renderer draws from.
type SliderVisual struct {
	Range       Bounded
	TrackLength float64
	Position    float64
	Toggle      bool
	Label       string
}

// SliderParts are the handles a slider mutates after rendering.
type SliderParts struct {
	Root  Releaser
	Thumb Translator
	Lamp  Lamp
}

// SliderRenderer builds the visuals for a slider inside c.
type SliderRenderer interface {
	RenderSlider(c Container, v SliderVisual) SliderParts
}
