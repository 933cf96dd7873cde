// Package dispatch provides the dispatch engine: the request router that
// classifies one inbound event, looks it up in the trigger registry,
// executes the handler against the mutable context, and returns the
// outbound actions.
package dispatch

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/tgdesk/ticketbot/logging"
	"github.com/tgdesk/ticketbot/template"
)

// Engine routes inbound requests to trigger handlers and owns the
// mutable context. A single mutex serializes Handle and HandleFeedback,
// preserving the one-ticket-per-user and one-edit-per-message invariants
// even when the transport delivers events concurrently.
type Engine struct {
	state    *Context
	registry *Registry
	self     Identity
	adminID  int64
	log      *slog.Logger

	mu sync.Mutex
}

// NewEngine creates an engine over the given context, building the
// trigger registry from the context's active template. adminID is the
// only sender whose file uploads are honored.
func NewEngine(state *Context, adminID int64) (*Engine, error) {
	if state == nil {
		return nil, ErrNilContext
	}
	registry, err := BuildRegistry(state.Template)
	if err != nil {
		return nil, err
	}
	return &Engine{
		state:    state,
		registry: registry,
		adminID:  adminID,
		log:      logging.WithComponent("dispatch"),
	}, nil
}

// SetIdentity records the bot's own identity, enabling "@botname"
// command addressing.
func (e *Engine) SetIdentity(self Identity) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.self = self
}

// Commands returns the registered command triggers, for command-menu
// registration with the transport.
func (e *Engine) Commands() []CommandSpec {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.Commands()
}

// State returns the engine's mutable context. Intended for wiring and
// tests; the engine itself serializes all handler access to it.
func (e *Engine) State() *Context {
	return e.state
}

// Handle classifies one inbound request and executes its handler.
// Classification order is fixed:
//
//  1. Button presses are dispatched by payload prefix and never fall
//     through; an unregistered prefix is a no-op.
//  2. File uploads from the admin against the settings whitelist are
//     staged for persistence; anything else is silently dropped.
//  3. Blank text is a no-op.
//  4. Exact command match.
//  5. Free-text triggers, in registration order.
//  6. No-op.
func (e *Engine) Handle(ctx context.Context, req Request) (Response, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if req.Button != "" {
		if spec, params, ok := e.registry.Button(req.Button); ok {
			e.log.Debug("button trigger", "moniker", spec.Moniker, "user", req.User.ID)
			return spec.Handler(ctx, e.state, req, params)
		}
		e.log.Debug("unregistered button payload", "payload", req.Button)
		return Response{}, nil
	}

	if req.File != nil {
		if req.User.ID == e.adminID && savedFileAllowed(req.File.Name) {
			e.log.Info("settings file staged for saving", "name", req.File.Name)
			return Response{FilesToSave: []File{*req.File}}, nil
		}
		return Response{}, nil
	}

	if strings.TrimSpace(req.Text) == "" {
		return Response{}, nil
	}

	if spec, ok := e.registry.Command(req.Text, e.addressSuffix()); ok {
		e.log.Debug("command trigger", "moniker", spec.Moniker, "user", req.User.ID)
		return spec.Handler(ctx, e.state, req)
	}

	for _, t := range e.registry.Texts() {
		if t.Match(e.state, req) {
			return t.Handler(ctx, e.state, req)
		}
	}

	return Response{}, nil
}

// HandleFeedback processes post-send acknowledgements: saved settings
// files trigger a reload (and a registry rebuild, since button labels
// are template strings), and posted ticket messages are recorded in the
// audit log.
func (e *Engine) HandleFeedback(ctx context.Context, fb Feedback) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, name := range fb.SavedFiles {
		switch name {
		case TargetChatKey:
			e.state.LoadTargetChat()
			e.log.Info("new target chat specified", "chat_id", e.state.TargetChatID)
		case TemplateKey:
			e.state.LoadTemplate()
			registry, err := BuildRegistry(e.state.Template)
			if err != nil {
				return err
			}
			e.registry = registry
			e.log.Info("new template specified")
		}
	}

	for _, p := range fb.Posted {
		if e.state.Template.ParseStage(p.Text) == template.StageUnknown {
			continue
		}
		recordEdit(ctx, e.state, p.ChatID, p.MessageID, p.Text)
	}

	return nil
}

// addressSuffix returns the "@botname" marker matching commands
// addressed to this bot instance, or empty before identity is known.
func (e *Engine) addressSuffix() string {
	if e.self.Username == "" {
		return ""
	}
	return "@" + e.self.Username
}

// savedFileAllowed reports whether an uploaded file name is one of the
// replaceable settings files.
func savedFileAllowed(name string) bool {
	return name == TargetChatKey || name == TemplateKey
}
