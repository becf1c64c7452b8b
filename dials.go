package dials

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key (fast drag)
	ModCtrl                           // Control key (precise drag)
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command key (precise drag)
)

// Fast reports whether the fast-drag modifier is held.
func (m KeyModifiers) Fast() bool { return m&ModShift != 0 }

// Precise reports whether the precise-drag modifier is held.
// Meta counts as precise so Command behaves like Control on macOS.
func (m KeyModifiers) Precise() bool { return m&(ModCtrl|ModMeta) != 0 }

// PointerKind identifies a kind of pointer event delivered by a Host.
type PointerKind uint8

const (
	PointerDown   PointerKind = iota // primary button pressed or touch started
	PointerMove                      // pointer moved while held
	PointerUp                        // primary button released or touch ended
	PointerCancel                    // gesture aborted by the platform
)

// String returns a lowercase name for the kind.
func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// PointerSource distinguishes mouse input from touch input.
type PointerSource uint8

const (
	SourceMouse PointerSource = iota
	SourceTouch
)

// PointerEvent is a single input sample. Only Y drives the value; X is
// carried for hosts that hit-test.
type PointerEvent struct {
	Kind      PointerKind
	Source    PointerSource
	PointerID int
	X, Y      float64
	Modifiers KeyModifiers
}

// EventType identifies which notifier a Subscription belongs to.
type EventType uint8

const (
	EventChange EventType = iota // external value changed
	EventToggle                  // power (knob) or toggle flag (slider) changed
)
