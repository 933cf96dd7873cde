// Package template holds the message template set for ticket rendering.
package template

import "errors"

// Template-related error definitions.
// These errors are returned during template validation.
var (
	// ErrNoFields is returned when the field name list is empty or
	// contains a blank name.
	ErrNoFields = errors.New("template has no field names")

	// ErrEmptyTitle is returned when a stage title is empty.
	ErrEmptyTitle = errors.New("template stage title is empty")

	// ErrEmptyLabel is returned when a button label is empty.
	ErrEmptyLabel = errors.New("template button label is empty")
)
