package dials

import "testing"

type dragRecorder struct {
	deltas []float64
	mods   []KeyModifiers
	clicks int
}

func newTestDrag(c *fakeContainer) (*dragController, *dragRecorder) {
	rec := &dragRecorder{}
	d := &dragController{
		container: c,
		onMove: func(dy float64, mods KeyModifiers) {
			rec.deltas = append(rec.deltas, dy)
			rec.mods = append(rec.mods, mods)
		},
		onClick: func() { rec.clicks++ },
	}
	c.Subscribe(d.handle)
	return d, rec
}

func TestDrag_DownAcquiresCapture(t *testing.T) {
	c := newFakeContainer()
	d, _ := newTestDrag(c)

	c.down(100)
	if !d.dragging() {
		t.Fatal("expected Dragging after pointer down")
	}
	if c.captures != 1 || c.captured[0] == nil {
		t.Errorf("expected capture on pointer 0, captures = %d", c.captures)
	}
}

func TestDrag_MoveUpIsPositive(t *testing.T) {
	c := newFakeContainer()
	_, rec := newTestDrag(c)

	c.down(100)
	c.move(80, 0)
	c.move(90, 0)
	if len(rec.deltas) != 2 || rec.deltas[0] != 20 || rec.deltas[1] != -10 {
		t.Errorf("deltas = %v, want [20 -10]", rec.deltas)
	}
}

func TestDrag_StationaryMoveIgnored(t *testing.T) {
	c := newFakeContainer()
	_, rec := newTestDrag(c)

	c.down(100)
	c.move(100, 0)
	c.up(100)
	if len(rec.deltas) != 0 {
		t.Errorf("stationary move produced deltas %v", rec.deltas)
	}
	if rec.clicks != 1 {
		t.Errorf("clicks = %d, want 1", rec.clicks)
	}
}

func TestDrag_UpReleasesCapture(t *testing.T) {
	c := newFakeContainer()
	d, rec := newTestDrag(c)

	c.drag(100, 50, 0)
	if d.dragging() {
		t.Error("expected Idle after pointer up")
	}
	if c.releases != 1 || len(c.captured) != 0 {
		t.Errorf("capture not released: releases = %d", c.releases)
	}
	if rec.clicks != 0 {
		t.Error("drag with movement must not click")
	}

	// Moves after release reach nobody.
	c.move(0, 0)
	if len(rec.deltas) != 1 {
		t.Errorf("move while Idle produced a delta: %v", rec.deltas)
	}
}

func TestDrag_CancelActsLikeUpWithoutClick(t *testing.T) {
	c := newFakeContainer()
	d, rec := newTestDrag(c)

	c.down(100)
	c.send(PointerEvent{Kind: PointerCancel, Y: 100})
	if d.dragging() {
		t.Error("expected Idle after cancel")
	}
	if c.releases != 1 {
		t.Errorf("releases = %d, want 1", c.releases)
	}
	if rec.clicks != 0 {
		t.Error("cancel must not click")
	}
}

func TestDrag_OtherPointerIgnored(t *testing.T) {
	c := newFakeContainer()
	d, rec := newTestDrag(c)

	c.send(PointerEvent{Kind: PointerDown, PointerID: 2, Source: SourceTouch, Y: 100})
	// A second finger landing on the widget goes to subscribers, not the
	// capture, and must not disturb the gesture.
	for _, fn := range c.subs {
		fn(PointerEvent{Kind: PointerMove, PointerID: 3, Source: SourceTouch, Y: 0})
		fn(PointerEvent{Kind: PointerUp, PointerID: 3, Source: SourceTouch, Y: 0})
	}
	if !d.dragging() || len(rec.deltas) != 0 {
		t.Errorf("foreign pointer affected gesture: dragging=%v deltas=%v", d.dragging(), rec.deltas)
	}
	c.send(PointerEvent{Kind: PointerMove, PointerID: 2, Source: SourceTouch, Y: 60})
	if len(rec.deltas) != 1 || rec.deltas[0] != 40 {
		t.Errorf("deltas = %v, want [40]", rec.deltas)
	}
}

func TestDrag_TouchHasNoModifiers(t *testing.T) {
	c := newFakeContainer()
	_, rec := newTestDrag(c)

	c.send(PointerEvent{Kind: PointerDown, Source: SourceTouch, Y: 100})
	c.send(PointerEvent{Kind: PointerMove, Source: SourceTouch, Y: 90, Modifiers: ModShift | ModCtrl})
	if len(rec.mods) != 1 || rec.mods[0] != 0 {
		t.Errorf("touch mods = %v, want [0]", rec.mods)
	}
}

func TestDrag_MouseKeepsModifiers(t *testing.T) {
	c := newFakeContainer()
	_, rec := newTestDrag(c)

	c.down(100)
	c.move(90, ModShift)
	if len(rec.mods) != 1 || rec.mods[0] != ModShift {
		t.Errorf("mouse mods = %v, want [ModShift]", rec.mods)
	}
}

func TestCaptureLease_Idempotent(t *testing.T) {
	c := newFakeContainer()
	var l captureLease
	l.acquire(c, 0, func(PointerEvent) {})
	if !l.held() {
		t.Fatal("lease not held after acquire")
	}
	l.drop()
	l.drop()
	if c.releases != 1 {
		t.Errorf("releases = %d, want 1", c.releases)
	}

	l.acquire(nil, 0, nil)
	if l.held() {
		t.Error("lease held without a container")
	}
}
