// Package dispatch implements the trigger registry and dispatch engine.
package dispatch

import "errors"

// Dispatch-related error definitions.
var (
	// ErrDuplicateMoniker is returned when two triggers of the same
	// class are registered under one moniker. This is a build-time
	// configuration error, never a runtime one.
	ErrDuplicateMoniker = errors.New("duplicate trigger moniker")

	// ErrNilContext is returned when an engine is created without state.
	ErrNilContext = errors.New("dispatch context is nil")
)
