package ebitenui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/phanxgames/dials"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action string   `json:"action"`
	Label  string   `json:"label,omitempty"`
	X      float64  `json:"x,omitempty"`
	Y      float64  `json:"y,omitempty"`
	FromX  float64  `json:"fromX,omitempty"`
	FromY  float64  `json:"fromY,omitempty"`
	ToX    float64  `json:"toX,omitempty"`
	ToY    float64  `json:"toY,omitempty"`
	Frames int      `json:"frames,omitempty"`
	Mods   []string `json:"mods,omitempty"`

	mods dials.KeyModifiers
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

var modNames = map[string]dials.KeyModifiers{
	"shift": dials.ModShift,
	"ctrl":  dials.ModCtrl,
	"alt":   dials.ModAlt,
	"meta":  dials.ModMeta,
}

// ScriptRunner sequences injected input and screenshots across frames so a
// board can be driven deterministically. Attach it with Board.SetScript.
//
//	{"steps": [
//	  {"action": "drag", "fromX": 100, "fromY": 200, "toX": 100, "toY": 100, "frames": 6, "mods": ["shift"]},
//	  {"action": "click", "x": 100, "y": 100},
//	  {"action": "wait", "frames": 10},
//	  {"action": "screenshot", "label": "after"}
//	]}
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON input script.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	for i := range sc.Steps {
		st := &sc.Steps[i]
		switch st.Action {
		case "screenshot", "click", "drag", "wait", "press", "move", "release", "cancel":
		default:
			return nil, fmt.Errorf("parse input script: step %d: unknown action %q", i, st.Action)
		}
		for _, name := range st.Mods {
			m, ok := modNames[strings.ToLower(name)]
			if !ok {
				return nil, fmt.Errorf("parse input script: step %d: unknown modifier %q", i, name)
			}
			st.mods |= m
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// SetScript attaches a script runner. Its steps run from Update before
// input is processed each frame.
func (b *Board) SetScript(r *ScriptRunner) {
	b.script = r
}

// Done reports whether every step has run.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *ScriptRunner) step(b *Board) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(b.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		b.Screenshot(st.Label)
	case "click":
		b.InjectClick(st.X, st.Y)
	case "drag":
		b.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames, st.mods)
	case "press":
		b.InjectPress(st.X, st.Y)
	case "move":
		b.InjectMove(st.X, st.Y, st.mods)
	case "release":
		b.InjectRelease(st.X, st.Y)
	case "cancel":
		b.InjectCancel()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(b.injectQueue) == 0 {
		r.done = true
	}
}
