package dials

import (
	"bytes"
	"log/slog"
	"math"
	"testing"
)

const epsilon = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) <= epsilon*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// captureLog routes the package logger into a buffer for the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })
	return &buf
}

// --- Fake host ---

type fakeContainer struct {
	subs     map[int]func(PointerEvent)
	nextSub  int
	captured map[int]func(PointerEvent)
	captures int
	releases int
}

func newFakeContainer() *fakeContainer {
	return &fakeContainer{
		subs:     make(map[int]func(PointerEvent)),
		captured: make(map[int]func(PointerEvent)),
	}
}

func (c *fakeContainer) Subscribe(fn func(PointerEvent)) func() {
	c.nextSub++
	id := c.nextSub
	c.subs[id] = fn
	return func() { delete(c.subs, id) }
}

func (c *fakeContainer) Capture(pointerID int, fn func(PointerEvent)) func() {
	c.captures++
	c.captured[pointerID] = fn
	return func() {
		c.releases++
		delete(c.captured, pointerID)
	}
}

// send routes e the way a real host would: to the capture holder if there
// is one, otherwise to every subscriber.
func (c *fakeContainer) send(e PointerEvent) {
	if fn, ok := c.captured[e.PointerID]; ok {
		fn(e)
		return
	}
	for _, fn := range c.subs {
		fn(e)
	}
}

func (c *fakeContainer) down(y float64) {
	c.send(PointerEvent{Kind: PointerDown, Y: y})
}

func (c *fakeContainer) move(y float64, mods KeyModifiers) {
	c.send(PointerEvent{Kind: PointerMove, Y: y, Modifiers: mods})
}

func (c *fakeContainer) up(y float64) {
	c.send(PointerEvent{Kind: PointerUp, Y: y})
}

// drag presses at fromY, moves to toY in one sample and releases.
func (c *fakeContainer) drag(fromY, toY float64, mods KeyModifiers) {
	c.down(fromY)
	c.move(toY, mods)
	c.up(toY)
}

func (c *fakeContainer) click(y float64) {
	c.down(y)
	c.up(y)
}

type fakeHost map[string]*fakeContainer

func (h fakeHost) Resolve(target string) (Container, bool) {
	c, ok := h[target]
	if !ok {
		return nil, false
	}
	return c, true
}

func newHost(names ...string) fakeHost {
	h := fakeHost{}
	for _, n := range names {
		h[n] = newFakeContainer()
	}
	return h
}

// --- Fake renderer ---

type fakeRoot struct{ released int }

func (r *fakeRoot) Release() { r.released++ }

type fakeDial struct {
	angle float64
	calls int
}

func (d *fakeDial) SetRotation(deg float64) { d.angle = deg; d.calls++ }

type fakeGlow struct{ level float64 }

func (g *fakeGlow) SetLevel(l float64) { g.level = l }

type fakeLamp struct{ lit bool }

func (l *fakeLamp) SetLit(on bool) { l.lit = on }

type fakeThumb struct{ offset float64 }

func (t *fakeThumb) SetOffset(px float64) { t.offset = px }

type fakeRenderer struct {
	root   *fakeRoot
	dial   *fakeDial
	glow   *fakeGlow
	led    *fakeLamp
	thumb  *fakeThumb
	lamp   *fakeLamp
	knob   KnobVisual
	slider SliderVisual

	omitDial bool
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{
		root:  &fakeRoot{},
		dial:  &fakeDial{},
		glow:  &fakeGlow{},
		led:   &fakeLamp{},
		thumb: &fakeThumb{},
		lamp:  &fakeLamp{},
	}
}

func (r *fakeRenderer) RenderKnob(_ Container, v KnobVisual) KnobParts {
	r.knob = v
	p := KnobParts{Root: r.root, Glow: r.glow, LED: r.led}
	if !r.omitDial {
		p.Dial = r.dial
	}
	return p
}

func (r *fakeRenderer) RenderSlider(_ Container, v SliderVisual) SliderParts {
	r.slider = v
	return SliderParts{Root: r.root, Thumb: r.thumb, Lamp: r.lamp}
}
