package dials

import "errors"

var (
	// ErrNoHost is returned when a control is constructed without a Host.
	ErrNoHost = errors.New("dials: nil host")
	// ErrTargetNotFound is returned when the mount target does not resolve.
	ErrTargetNotFound = errors.New("dials: mount target not found")
	// ErrNonFinite is returned by SetValue for NaN or infinite input.
	ErrNonFinite = errors.New("dials: value is not finite")
	// ErrDestroyed is returned by mutators after Destroy.
	ErrDestroyed = errors.New("dials: control destroyed")
)
