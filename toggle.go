package dials

// toggleGate is a knob's power switch. When the knob is toggleable and
// powered off, the gate is closed and drag updates are skipped.
type toggleGate struct {
	toggleable bool
	powered    bool
}

// open reports whether drags may change the value.
func (g *toggleGate) open() bool {
	return !g.toggleable || g.powered
}

func (g *toggleGate) flip() {
	g.powered = !g.powered
}

// set updates the power state and reports whether it changed.
func (g *toggleGate) set(on bool) bool {
	if g.powered == on {
		return false
	}
	g.powered = on
	return true
}
