// Package core provides keyboard building functionality.
package core

import (
	"github.com/mymmrac/telego"
	"github.com/mymmrac/telego/telegoutil"
)

// KeyboardBuilder provides a fluent interface for building inline keyboards.
type KeyboardBuilder struct {
	rows [][]telego.InlineKeyboardButton
}

// NewKeyboard creates a new keyboard builder instance.
func NewKeyboard() *KeyboardBuilder {
	return &KeyboardBuilder{
		rows: make([][]telego.InlineKeyboardButton, 0),
	}
}

// Row adds a row of buttons to the keyboard.
func (kb *KeyboardBuilder) Row(buttons ...telego.InlineKeyboardButton) *KeyboardBuilder {
	if len(buttons) > 0 {
		kb.rows = append(kb.rows, buttons)
	}
	return kb
}

// Build constructs and returns the InlineKeyboardMarkup.
// Returns nil if no buttons were added.
func (kb *KeyboardBuilder) Build() *telego.InlineKeyboardMarkup {
	if len(kb.rows) == 0 {
		return nil
	}
	return &telego.InlineKeyboardMarkup{
		InlineKeyboard: kb.rows,
	}
}

// Button creates a callback button with the given text and callback data.
func Button(text, callback string) telego.InlineKeyboardButton {
	return telegoutil.InlineKeyboardButton(text).WithCallbackData(callback)
}
