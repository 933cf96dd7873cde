// Package dispatch provides the trigger registry: the static table
// mapping (kind, moniker) to handler for commands, free-text input, and
// button presses.
package dispatch

import (
	"context"
	"fmt"
	"strings"
)

// ButtonDelimiter separates a button payload's moniker from its
// parameter list, e.g. "done$42".
const ButtonDelimiter = "$"

// CommandHandler handles an exact-match command message.
type CommandHandler func(ctx context.Context, c *Context, req Request) (Response, error)

// TextHandler handles a free-text message accepted by its trigger's
// predicate.
type TextHandler func(ctx context.Context, c *Context, req Request) (Response, error)

// ButtonHandler handles a button press. params is the ordered parameter
// list split from the payload suffix.
type ButtonHandler func(ctx context.Context, c *Context, req Request, params []string) (Response, error)

// CommandSpec is a registered command trigger.
type CommandSpec struct {
	// Moniker is the exact command token, including the leading slash.
	Moniker     string
	Description string
	Handler     CommandHandler
}

// TextTrigger is a registered free-text trigger. Triggers are consulted
// in registration order after no command matched; the first whose Match
// predicate accepts the request handles it.
type TextTrigger struct {
	Match   func(c *Context, req Request) bool
	Handler TextHandler
}

// ButtonSpec is a registered button trigger, keyed by the payload prefix
// up to the delimiter.
type ButtonSpec struct {
	Moniker string
	Label   string
	Handler ButtonHandler
}

// Registry is the static trigger table built at startup and rebuilt when
// the template changes button labels. Lookup is O(1) exact match on the
// primary moniker.
type Registry struct {
	commands     map[string]CommandSpec
	commandOrder []string
	texts        []TextTrigger
	buttons      map[string]ButtonSpec
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]CommandSpec),
		buttons:  make(map[string]ButtonSpec),
	}
}

// AddCommand registers a command trigger.
// A duplicate moniker is a configuration error.
func (r *Registry) AddCommand(spec CommandSpec) error {
	if _, ok := r.commands[spec.Moniker]; ok {
		return fmt.Errorf("%w: command %s", ErrDuplicateMoniker, spec.Moniker)
	}
	r.commands[spec.Moniker] = spec
	r.commandOrder = append(r.commandOrder, spec.Moniker)
	return nil
}

// AddText registers a free-text trigger.
func (r *Registry) AddText(t TextTrigger) {
	r.texts = append(r.texts, t)
}

// AddButton registers a button trigger.
// A duplicate moniker is a configuration error.
func (r *Registry) AddButton(spec ButtonSpec) error {
	if _, ok := r.buttons[spec.Moniker]; ok {
		return fmt.Errorf("%w: button %s", ErrDuplicateMoniker, spec.Moniker)
	}
	r.buttons[spec.Moniker] = spec
	return nil
}

// Command looks up a command trigger by the full message text.
// Commands addressed to this bot instance ("/moniker@botname") match the
// bare moniker; commands addressed to another bot do not.
func (r *Registry) Command(text, addressSuffix string) (CommandSpec, bool) {
	if spec, ok := r.commands[text]; ok {
		return spec, true
	}
	if addressSuffix != "" && strings.HasSuffix(text, addressSuffix) {
		spec, ok := r.commands[strings.TrimSuffix(text, addressSuffix)]
		return spec, ok
	}
	return CommandSpec{}, false
}

// Button looks up a button trigger by its payload, returning the trigger
// and the payload's parameter list.
func (r *Registry) Button(payload string) (ButtonSpec, []string, bool) {
	moniker, params := SplitButton(payload)
	spec, ok := r.buttons[moniker]
	return spec, params, ok
}

// Commands returns the registered command triggers in registration
// order, for command-menu registration with the transport.
func (r *Registry) Commands() []CommandSpec {
	specs := make([]CommandSpec, 0, len(r.commandOrder))
	for _, moniker := range r.commandOrder {
		specs = append(specs, r.commands[moniker])
	}
	return specs
}

// Texts returns the registered free-text triggers in order.
func (r *Registry) Texts() []TextTrigger {
	return r.texts
}

// SplitButton splits a button payload into its moniker and ordered
// parameter list.
func SplitButton(payload string) (string, []string) {
	parts := strings.Split(payload, ButtonDelimiter)
	return parts[0], parts[1:]
}
