package ebitenui

import "github.com/phanxgames/dials"

// syntheticPointerEvent is a single injected mouse event. Injected events
// are processed exactly like real mouse input on pointer 0.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
	cancel  bool
	mods    dials.KeyModifiers
}

// InjectPress queues a left button press at (x, y). The event is consumed
// on the next Update.
func (b *Board) InjectPress(x, y float64) {
	b.injectQueue = append(b.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectMove queues a move to (x, y) with the button held and the given
// modifiers. Use it between InjectPress and InjectRelease.
func (b *Board) InjectMove(x, y float64, mods dials.KeyModifiers) {
	b.injectQueue = append(b.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true, mods: mods})
}

// InjectRelease queues a button release at (x, y).
func (b *Board) InjectRelease(x, y float64) {
	b.injectQueue = append(b.injectQueue, syntheticPointerEvent{x: x, y: y})
}

// InjectCancel queues a cancellation of every gesture in progress, as when
// the window loses focus.
func (b *Board) InjectCancel() {
	b.injectQueue = append(b.injectQueue, syntheticPointerEvent{cancel: true})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (b *Board) InjectClick(x, y float64) {
	b.InjectPress(x, y)
	b.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), frames-2 moves
// linearly interpolated up to (toX, toY), and a release there. The last
// move lands on the target so the release carries no motion of its own.
// The sequence consumes frames frames; the minimum is 3.
func (b *Board) InjectDrag(fromX, fromY, toX, toY float64, frames int, mods dials.KeyModifiers) {
	if frames < 3 {
		frames = 3
	}
	b.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		b.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t, mods)
	}
	b.InjectRelease(toX, toY)
}

// Pending returns the number of injected events not yet processed.
func (b *Board) Pending() int { return len(b.injectQueue) }

// processInjectedInput pops one event from the inject queue and feeds it
// through processPointer. Held modifiers are merged with the event's own.
func (b *Board) processInjectedInput(mods dials.KeyModifiers) bool {
	if len(b.injectQueue) == 0 {
		return false
	}
	evt := b.injectQueue[0]
	copy(b.injectQueue, b.injectQueue[1:])
	b.injectQueue = b.injectQueue[:len(b.injectQueue)-1]

	if evt.cancel {
		b.CancelAll()
		return true
	}
	b.processPointer(0, evt.x, evt.y, evt.pressed, dials.SourceMouse, evt.mods|mods)
	return true
}
