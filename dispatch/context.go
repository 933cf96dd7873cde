// Package dispatch holds the process-wide mutable context handlers run
// against.
package dispatch

import (
	"strconv"
	"strings"

	"github.com/tgdesk/ticketbot/store"
	"github.com/tgdesk/ticketbot/template"
	"github.com/tgdesk/ticketbot/ticket"
)

// Storage keys for the persisted settings. These are also the exact file
// names an admin may upload to replace the settings at runtime.
const (
	// TargetChatKey holds the broadcast chat id as decimal text.
	TargetChatKey = "chat_id.txt"

	// TemplateKey holds the template set as JSON.
	TemplateKey = "template.json"
)

// Context is the process-wide mutable state handlers execute against:
// the in-progress tickets keyed by user, the active template, the target
// broadcast chat, and the persistence collaborators. It is owned by the
// engine, which serializes all access.
type Context struct {
	// EditingTickets maps a user id to their single in-progress ticket.
	EditingTickets map[int64]*ticket.Ticket

	// TargetChatID is the destination chat for posted tickets.
	// Zero means unset; ResolveTarget applies the fallback.
	TargetChatID int64

	// Template is the active template set, replaced wholesale on reload.
	Template *template.Set

	// Store persists settings and template blobs.
	Store store.Store

	// Audit records posted-ticket message text keyed by message id.
	// May be nil, in which case recording is skipped.
	Audit store.MessageLog
}

// NewContext creates a context with the default template and no tickets.
func NewContext(st store.Store, audit store.MessageLog) *Context {
	return &Context{
		EditingTickets: make(map[int64]*ticket.Ticket),
		Template:       template.Default(),
		Store:          st,
		Audit:          audit,
	}
}

// ResolveTarget returns the chat completed tickets are posted to:
// the configured target chat, or the requester's own chat when unset.
func (c *Context) ResolveTarget(requesterChat int64) int64 {
	if c.TargetChatID == 0 {
		return requesterChat
	}
	return c.TargetChatID
}

// LoadTargetChat reads the target chat id from the store.
// A missing key or unparseable value both read as unset.
func (c *Context) LoadTargetChat() {
	c.TargetChatID = 0

	data, err := c.Store.TryRead(TargetChatKey)
	if err != nil {
		return
	}
	id, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return
	}
	c.TargetChatID = id
}

// SaveTargetChat persists the current target chat id.
func (c *Context) SaveTargetChat() error {
	return c.Store.TrySave(TargetChatKey, []byte(strconv.FormatInt(c.TargetChatID, 10)))
}

// LoadTemplate reads the template set from the store, falling back to the
// built-in default when the key is missing or the blob is invalid.
func (c *Context) LoadTemplate() {
	data, err := c.Store.TryRead(TemplateKey)
	if err != nil {
		c.Template = template.Default()
		return
	}
	set, err := template.Load(data, TemplateKey)
	if err != nil {
		c.Template = template.Default()
		return
	}
	c.Template = set
}
