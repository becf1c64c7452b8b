package ebitenui

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/dials"
)

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// ErrDuplicatePanel is returned by AddPanel when the name is taken.
var ErrDuplicatePanel = errors.New("ebitenui: duplicate panel name")

// --- Per-pointer state ---

type pointerState struct {
	down   bool
	lastX  float64
	lastY  float64
	panel  *Panel // panel under the pointer at press time
	source dials.PointerSource
}

// captureEntry is the holder of a pointer capture. gen tells a stale
// release func apart from the current holder's.
type captureEntry struct {
	fn  func(dials.PointerEvent)
	gen uint64
}

// Board is an Ebitengine host for dials controls. It owns named panels,
// polls mouse and touch input each frame and routes it as
// dials.PointerEvents.
type Board struct {
	// ClearColor fills the screen before panels draw. Zero alpha skips it.
	ClearColor Color
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
	// Logger receives screenshot and script diagnostics. nil uses slog.Default.
	Logger *slog.Logger

	panels []*Panel
	byName map[string]*Panel

	pointers   [maxPointers]pointerState
	captured   [maxPointers]captureEntry
	captureGen uint64

	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID

	injectQueue     []syntheticPointerEvent
	script          *ScriptRunner
	screenshotQueue []string
	shots           int
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{
		ScreenshotDir: "screenshots",
		byName:        make(map[string]*Panel),
	}
}

func (b *Board) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.Default()
}

// AddPanel adds a panel at (x, y) with the given hit shape. Panels added
// later sit on top for hit testing and drawing.
func (b *Board) AddPanel(name string, x, y float64, shape HitShape) (*Panel, error) {
	if _, ok := b.byName[name]; ok {
		return nil, fmt.Errorf("add panel %q: %w", name, ErrDuplicatePanel)
	}
	p := &Panel{Name: name, X: x, Y: y, Shape: shape, board: b}
	b.panels = append(b.panels, p)
	b.byName[name] = p
	return p, nil
}

// RemovePanel removes a panel. Pointers pressed on it are cancelled.
func (b *Board) RemovePanel(name string) {
	p, ok := b.byName[name]
	if !ok {
		return
	}
	for id := range b.pointers {
		if b.pointers[id].down && b.pointers[id].panel == p {
			b.cancelPointer(id)
		}
	}
	delete(b.byName, name)
	for i, q := range b.panels {
		if q == p {
			b.panels = append(b.panels[:i:i], b.panels[i+1:]...)
			break
		}
	}
	p.board = nil
}

// Panel returns the named panel or nil.
func (b *Board) Panel(name string) *Panel { return b.byName[name] }

// Panels returns every panel in drawing order.
func (b *Board) Panels() []*Panel { return b.panels }

// Resolve implements dials.Host.
func (b *Board) Resolve(target string) (dials.Container, bool) {
	p, ok := b.byName[target]
	if !ok {
		return nil, false
	}
	return p, true
}

// Update advances the script, then processes one injected event or polls
// real input. Call it from ebiten.Game.Update.
func (b *Board) Update() error {
	mods := readModifiers()
	if b.tick(mods) {
		return nil
	}
	if !ebiten.IsFocused() {
		// Releases are not delivered to unfocused windows.
		b.CancelAll()
		return nil
	}
	b.processMousePointer(mods)
	b.processTouchPointers()
	return nil
}

// tick runs the script runner and consumes one injected event. It reports
// whether an injected event was consumed; real input is skipped that frame.
func (b *Board) tick(mods dials.KeyModifiers) bool {
	if b.script != nil {
		b.script.step(b)
	}
	return b.processInjectedInput(mods)
}

// Draw clears the screen, draws every panel and flushes queued screenshots.
func (b *Board) Draw(screen *ebiten.Image) {
	if b.ClearColor.A > 0 {
		screen.Fill(b.ClearColor.toRGBA())
	}
	for _, p := range b.panels {
		p.draw(screen)
	}
	b.flushScreenshots(screen)
}

// CancelAll aborts every gesture in progress.
func (b *Board) CancelAll() {
	for id := range b.pointers {
		if b.pointers[id].down {
			b.cancelPointer(id)
		}
	}
}

func (b *Board) cancelPointer(id int) {
	ps := &b.pointers[id]
	b.deliver(id, ps, dials.PointerEvent{
		Kind: dials.PointerCancel, Source: ps.source, PointerID: id, X: ps.lastX, Y: ps.lastY,
	})
	b.captured[id] = captureEntry{}
	*ps = pointerState{lastX: ps.lastX, lastY: ps.lastY}
}

// capture makes fn the holder of pointerID. The returned release only
// clears the capture if fn still holds it.
func (b *Board) capture(pointerID int, fn func(dials.PointerEvent)) func() {
	if pointerID < 0 || pointerID >= maxPointers || fn == nil {
		return func() {}
	}
	b.captureGen++
	gen := b.captureGen
	b.captured[pointerID] = captureEntry{fn: fn, gen: gen}
	return func() {
		if b.captured[pointerID].gen == gen {
			b.captured[pointerID] = captureEntry{}
		}
	}
}

// Captured reports whether pointerID is captured.
func (b *Board) Captured(pointerID int) bool {
	return pointerID >= 0 && pointerID < maxPointers && b.captured[pointerID].fn != nil
}

// hitTest finds the topmost panel at (x, y).
func (b *Board) hitTest(x, y float64) *Panel {
	for i := len(b.panels) - 1; i >= 0; i-- {
		if b.panels[i].Contains(x, y) {
			return b.panels[i]
		}
	}
	return nil
}

// --- Input processing ---

// readModifiers reads the current keyboard modifier state.
func readModifiers() dials.KeyModifiers {
	var mods dials.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= dials.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= dials.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= dials.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= dials.ModMeta
	}
	return mods
}

// processMousePointer handles mouse input (pointer 0). Only the left button
// drives controls.
func (b *Board) processMousePointer(mods dials.KeyModifiers) {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	b.processPointer(0, float64(mx), float64(my), pressed, dials.SourceMouse, mods)
}

// processTouchPointers handles touch input (pointers 1-9). Touches carry no
// modifiers.
func (b *Board) processTouchPointers() {
	touchIDs := ebiten.AppendTouchIDs(b.prevTouchIDs[:0])
	b.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := b.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		b.processPointer(slot, float64(tx), float64(ty), true, dials.SourceTouch, 0)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if b.touchUsed[i] && !activeSlots[i] {
			ps := &b.pointers[i]
			if ps.down {
				b.processPointer(i, ps.lastX, ps.lastY, false, dials.SourceTouch, 0)
			}
			b.touchUsed[i] = false
			b.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (b *Board) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if b.touchUsed[i] && b.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !b.touchUsed[i] {
			b.touchUsed[i] = true
			b.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the press/move/release state machine for one pointer
// and turns transitions into events.
func (b *Board) processPointer(pointerID int, x, y float64, pressed bool, src dials.PointerSource, mods dials.KeyModifiers) {
	ps := &b.pointers[pointerID]
	e := dials.PointerEvent{Source: src, PointerID: pointerID, X: x, Y: y, Modifiers: mods}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.source = src
		ps.lastX, ps.lastY = x, y
		ps.panel = b.hitTest(x, y)
		e.Kind = dials.PointerDown
		b.deliver(pointerID, ps, e)

	case pressed && ps.down:
		if x == ps.lastX && y == ps.lastY {
			return
		}
		ps.lastX, ps.lastY = x, y
		e.Kind = dials.PointerMove
		b.deliver(pointerID, ps, e)

	case !pressed && ps.down:
		e.Kind = dials.PointerUp
		b.deliver(pointerID, ps, e)
		// Auto-release capture.
		b.captured[pointerID] = captureEntry{}
		*ps = pointerState{lastX: x, lastY: y}

	default:
		ps.lastX, ps.lastY = x, y
	}
}

// deliver sends e to the capture holder, or to the panel the gesture
// started on.
func (b *Board) deliver(pointerID int, ps *pointerState, e dials.PointerEvent) {
	if c := b.captured[pointerID]; c.fn != nil {
		c.fn(e)
		return
	}
	if ps.panel != nil {
		ps.panel.dispatch(e)
	}
}
