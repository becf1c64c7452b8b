// Package termui hosts dials controls in a terminal through bubbletea. Each
// control lives in a fixed-size cell; mouse drags inside a cell move it.
package termui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/phanxgames/dials"
)

// Cell geometry in terminal columns and rows.
const (
	CellWidth  = 14
	CellHeight = 10
	// TrackRows is the travel of a slider thumb.
	TrackRows = 6
)

// Sensitivity suits row-sized motion: 20 rows cover a knob's full range.
// Pass it as KnobOptions.Defaults or lay it over the panel's sensitivity.
var Sensitivity = dials.Sensitivity{PixelsPerFullRange: 20}

// ErrDuplicateCell is returned by AddCell when the name is taken.
var ErrDuplicateCell = errors.New("termui: duplicate cell name")

// Model is a bubbletea model that implements dials.Host. Run it with
// tea.WithMouseCellMotion so drags are reported.
type Model struct {
	cells  []*Cell
	byName map[string]*Cell

	captured   func(dials.PointerEvent)
	captureGen uint64

	down    bool
	pressed *Cell
	lastX   int
	lastY   int

	width, height int
	quitting      bool
}

// New returns an empty model.
func New() *Model {
	return &Model{byName: make(map[string]*Cell)}
}

// AddCell appends a cell to the row.
func (m *Model) AddCell(name string) (*Cell, error) {
	if _, ok := m.byName[name]; ok {
		return nil, fmt.Errorf("add cell %q: %w", name, ErrDuplicateCell)
	}
	c := &Cell{Name: name, index: len(m.cells), model: m}
	m.cells = append(m.cells, c)
	m.byName[name] = c
	return c, nil
}

// Cell returns the named cell or nil.
func (m *Model) Cell(name string) *Cell { return m.byName[name] }

// Resolve implements dials.Host.
func (m *Model) Resolve(target string) (dials.Container, bool) {
	c, ok := m.byName[target]
	if !ok {
		return nil, false
	}
	return c, true
}

// SetCaption sets the caption of the named cell.
func (m *Model) SetCaption(name, caption string) {
	if c, ok := m.byName[name]; ok {
		c.Caption = caption
	}
}

func (m *Model) capture(fn func(dials.PointerEvent)) func() {
	if fn == nil {
		return func() {}
	}
	m.captureGen++
	gen := m.captureGen
	m.captured = fn
	return func() {
		if m.captureGen == gen {
			m.captured = nil
		}
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.cancel()
			m.quitting = true
			return m, tea.Quit
		case "esc":
			m.cancel()
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.BlurMsg:
		// Releases are not reported once focus is lost.
		m.cancel()
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

func modifiers(msg tea.MouseMsg) dials.KeyModifiers {
	var mods dials.KeyModifiers
	if msg.Shift {
		mods |= dials.ModShift
	}
	if msg.Ctrl {
		mods |= dials.ModCtrl
	}
	if msg.Alt {
		mods |= dials.ModAlt
	}
	return mods
}

// handleMouse runs the press/motion/release state machine of the single
// terminal pointer.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	e := dials.PointerEvent{
		Source:    dials.SourceMouse,
		X:         float64(msg.X),
		Y:         float64(msg.Y),
		Modifiers: modifiers(msg),
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.down {
			return
		}
		m.down = true
		m.lastX, m.lastY = msg.X, msg.Y
		m.pressed = m.hitTest(msg.X, msg.Y)
		e.Kind = dials.PointerDown
		m.deliver(e)
	case tea.MouseActionMotion:
		if !m.down || (msg.X == m.lastX && msg.Y == m.lastY) {
			return
		}
		m.lastX, m.lastY = msg.X, msg.Y
		e.Kind = dials.PointerMove
		m.deliver(e)
	case tea.MouseActionRelease:
		if !m.down {
			return
		}
		e.Kind = dials.PointerUp
		m.deliver(e)
		m.reset()
	}
}

func (m *Model) hitTest(x, y int) *Cell {
	for _, c := range m.cells {
		if c.contains(x, y) {
			return c
		}
	}
	return nil
}

func (m *Model) deliver(e dials.PointerEvent) {
	if m.captured != nil {
		m.captured(e)
		return
	}
	if m.pressed != nil {
		m.pressed.dispatch(e)
	}
}

// cancel aborts the gesture in progress, if any.
func (m *Model) cancel() {
	if !m.down {
		return
	}
	m.deliver(dials.PointerEvent{
		Kind: dials.PointerCancel, Source: dials.SourceMouse, X: float64(m.lastX), Y: float64(m.lastY),
	})
	m.reset()
}

func (m *Model) reset() {
	m.captured = nil
	m.down = false
	m.pressed = nil
}

// Dragging reports whether the mouse button is held on a cell.
func (m *Model) Dragging() bool { return m.down }

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	blocks := make([]string, 0, len(m.cells))
	for _, c := range m.cells {
		var lines []string
		if c.view != nil {
			lines = c.view.lines()
		}
		lines = append(lines, mutedStyle.Render(c.Caption))
		blocks = append(blocks, cellStyle.Render(strings.Join(lines, "\n")))
	}
	var sb strings.Builder
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, blocks...))
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("drag up/down to adjust • shift: fast • ctrl: fine • click: power • q: quit"))
	return sb.String()
}
