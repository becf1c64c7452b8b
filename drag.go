package dials

// dragState is the gesture state of a control.
type dragState uint8

const (
	stateIdle dragState = iota
	stateDragging
)

// captureLease holds a pointer capture acquired from a Container. Release
// is idempotent so every exit path can call it.
type captureLease struct {
	release func()
}

func (l *captureLease) acquire(c Container, pointerID int, fn func(PointerEvent)) {
	l.drop()
	if c == nil {
		return
	}
	l.release = c.Capture(pointerID, fn)
}

func (l *captureLease) drop() {
	if l.release == nil {
		return
	}
	release := l.release
	l.release = nil
	release()
}

func (l *captureLease) held() bool { return l.release != nil }

// dragController turns pointer events into vertical drag deltas.
//
// A gesture belongs to the pointer that started it; events from other
// pointers are ignored until it ends. A gesture that ends with a release
// and never produced a movement sample is a click.
type dragController struct {
	state     dragState
	container Container
	capture   captureLease

	pointerID int
	source    PointerSource
	startY    float64
	lastY     float64
	moved     bool

	// onMove receives deltaY (positive when the pointer moves up) and the
	// effective modifiers. Touch gestures never report modifiers.
	onMove  func(deltaY float64, mods KeyModifiers)
	onClick func()
}

func (d *dragController) dragging() bool { return d.state == stateDragging }

// handle runs the state machine for one event.
func (d *dragController) handle(e PointerEvent) {
	switch d.state {
	case stateIdle:
		if e.Kind == PointerDown {
			d.begin(e)
		}
	case stateDragging:
		if e.PointerID != d.pointerID {
			return
		}
		switch e.Kind {
		case PointerMove:
			d.move(e)
		case PointerUp:
			click := !d.moved
			d.end()
			if click && d.onClick != nil {
				d.onClick()
			}
		case PointerCancel:
			d.end()
		case PointerDown:
			// A repeated press on the same pointer restarts nothing; the
			// host missed a release, so treat it as the gesture continuing.
		}
	}
}

func (d *dragController) begin(e PointerEvent) {
	d.state = stateDragging
	d.pointerID = e.PointerID
	d.source = e.Source
	d.startY = e.Y
	d.lastY = e.Y
	d.moved = false
	d.capture.acquire(d.container, e.PointerID, d.handle)
}

func (d *dragController) move(e PointerEvent) {
	if e.Y == d.lastY {
		return
	}
	deltaY := d.lastY - e.Y
	d.lastY = e.Y
	d.moved = true

	mods := e.Modifiers
	if d.source == SourceTouch || e.Source == SourceTouch {
		mods = 0
	}
	if d.onMove != nil {
		d.onMove(deltaY, mods)
	}
}

// end returns to Idle and releases capture. The value is left wherever the
// gesture brought it.
func (d *dragController) end() {
	d.state = stateIdle
	d.moved = false
	d.capture.drop()
}
