// Package config defines the runtime configuration for ticketbot.
package config

import "errors"

// Configuration-related error definitions.
// These errors are returned during configuration validation.
var (
	// ErrEmptyToken is returned when the bot token is empty or not provided.
	ErrEmptyToken = errors.New("bot token is empty")

	// ErrEmptyDataDir is returned when the data directory is not set.
	ErrEmptyDataDir = errors.New("data directory is empty")
)
