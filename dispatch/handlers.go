// Package dispatch defines the built-in trigger set: the commands,
// free-text fill handler, and lifecycle buttons of the ticket workflow.
package dispatch

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tgdesk/ticketbot/logging"
	"github.com/tgdesk/ticketbot/template"
	"github.com/tgdesk/ticketbot/ticket"
)

// Button monikers. Labels come from the template; monikers never change.
const (
	acceptMoniker = "accept"
	doneMoniker   = "done"
	dropMoniker   = "drop"
)

// BuildRegistry builds the trigger table for the given template set.
// It must be rebuilt whenever the template is replaced, since button
// labels are template strings.
func BuildRegistry(tpl *template.Set) (*Registry, error) {
	r := NewRegistry()

	commands := []CommandSpec{
		{Moniker: "/newrequest", Description: "Новая заявка", Handler: executeNewRequest},
		{Moniker: "/setthischat", Description: "Задать этот чат для заявок", Handler: executeSetThisChat},
	}
	for _, spec := range commands {
		if err := r.AddCommand(spec); err != nil {
			return nil, err
		}
	}

	r.AddText(TextTrigger{
		Match: func(c *Context, req Request) bool {
			if !req.Chat.IsPrivate {
				return false
			}
			_, ok := c.EditingTickets[req.User.ID]
			return ok
		},
		Handler: executeFillField,
	})

	buttons := []ButtonSpec{
		{Moniker: acceptMoniker, Label: tpl.AcceptLabel, Handler: executeAccept},
		{Moniker: doneMoniker, Label: tpl.DoneLabel, Handler: executeDone},
		{Moniker: dropMoniker, Label: tpl.DropLabel, Handler: executeDrop},
	}
	for _, spec := range buttons {
		if err := r.AddButton(spec); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// executeNewRequest starts a fresh ticket for the sender and prompts for
// the first field. An in-progress ticket for the same user is silently
// replaced. Only available in a private chat.
func executeNewRequest(_ context.Context, c *Context, req Request) (Response, error) {
	if !req.Chat.IsPrivate {
		return Response{}, nil
	}

	c.EditingTickets[req.User.ID] = ticket.New()
	return fieldPrompt(c, req.Chat.ID, 0), nil
}

// executeSetThisChat makes the current chat the broadcast target and
// persists it. The user explicitly asked for a durable effect, so a save
// failure is surfaced instead of swallowed.
func executeSetThisChat(_ context.Context, c *Context, req Request) (Response, error) {
	c.TargetChatID = req.Chat.ID

	log := logging.WithComponent("dispatch")
	log.Info("chat to post requests", "chat", req.Chat.Title, "chat_id", c.TargetChatID)

	if err := c.SaveTargetChat(); err != nil {
		log.Error("saving target chat failed", "error", err)
		return Response{}, fmt.Errorf("saving target chat: %w", err)
	}
	return Response{}, nil
}

// executeFillField consumes one free-text reply as the next field value.
// When the last field lands it acknowledges the requester, posts the
// broadcast ticket message, and discards the ticket: the posted message
// becomes the system of record.
func executeFillField(_ context.Context, c *Context, req Request) (Response, error) {
	t := c.EditingTickets[req.User.ID]
	if t == nil {
		return Response{}, nil
	}

	// A template reload mid-fill may shrink the field list; the cursor is
	// clamped so the ticket completes instead of indexing past the end.
	names := c.Template.FieldNames
	if t.EditState < len(names) {
		t.Apply(names[t.EditState], req.Text)
	}

	if !t.Complete(len(names)) {
		return fieldPrompt(c, req.Chat.ID, t.EditState), nil
	}

	delete(c.EditingTickets, req.User.ID)

	now := time.Now()
	lines := []string{template.FillTime(c.Template.Title, now)}
	lines = append(lines, t.Lines()...)
	lines = append(lines, template.Fill(c.Template.NewHistory, actorFrom(req.User), now))

	resp := Response{Posts: []Message{
		{ChatID: req.Chat.ID, Text: c.Template.CompletedMessage},
		{
			ChatID: c.ResolveTarget(req.Chat.ID),
			Text:   strings.Join(lines, "\n"),
			Buttons: [][]Button{{
				{Payload: acceptMoniker, Label: c.Template.AcceptLabel},
			}},
		},
	}}
	return resp, nil
}

// executeAccept moves a posted ticket to the accepted stage. Any holder
// of the message may press it; the done/drop buttons it installs are
// parametrized with the presser's user id.
func executeAccept(ctx context.Context, c *Context, req Request, _ []string) (Response, error) {
	now := time.Now()
	actor := actorFrom(req.User)

	text := template.ChangeTitle(req.MessageText, template.Fill(c.Template.AcceptedTitle, actor, now))
	text = template.AppendLine(text, template.Fill(c.Template.AcceptedHistory, actor, now))

	uid := strconv.FormatInt(req.User.ID, 10)
	buttons := [][]Button{{
		{Payload: doneMoniker + ButtonDelimiter + uid, Label: c.Template.DoneLabel},
		{Payload: dropMoniker + ButtonDelimiter + uid, Label: c.Template.DropLabel},
	}}

	recordEdit(ctx, c, req.Chat.ID, req.MessageID, text)
	return Response{Edits: []Edit{{
		ChatID:    req.Chat.ID,
		MessageID: req.MessageID,
		Text:      text,
		Buttons:   buttons,
	}}}, nil
}

// executeDone closes a ticket as completed.
func executeDone(ctx context.Context, c *Context, req Request, params []string) (Response, error) {
	return finishTicket(ctx, c, req, params, c.Template.DoneTitle, c.Template.DoneHistory)
}

// executeDrop closes a ticket as not completed.
func executeDrop(ctx context.Context, c *Context, req Request, params []string) (Response, error) {
	return finishTicket(ctx, c, req, params, c.Template.DropTitle, c.Template.DropHistory)
}

// finishTicket applies a terminal transition. The user id embedded in
// the button payload must match the presser; any mismatch is a silent
// no-op, indistinguishable from an unregistered trigger.
func finishTicket(ctx context.Context, c *Context, req Request, params []string, title, history string) (Response, error) {
	if len(params) < 1 {
		return Response{}, nil
	}
	uid, err := strconv.ParseInt(params[0], 10, 64)
	if err != nil || uid != req.User.ID {
		return Response{}, nil
	}

	now := time.Now()
	actor := actorFrom(req.User)

	text := template.ChangeTitle(req.MessageText, template.Fill(title, actor, now))
	text = template.AppendLine(text, template.Fill(history, actor, now))

	recordEdit(ctx, c, req.Chat.ID, req.MessageID, text)

	// Nil buttons clears the button set: the stage is terminal.
	return Response{Edits: []Edit{{
		ChatID:    req.Chat.ID,
		MessageID: req.MessageID,
		Text:      text,
	}}}, nil
}

// fieldPrompt builds the prompt naming field k of the active template.
func fieldPrompt(c *Context, chatID int64, k int) Response {
	return Response{Posts: []Message{{
		ChatID: chatID,
		Text:   c.Template.FieldNames[k] + ":",
	}}}
}

// recordEdit persists the post-transition message text in the audit log.
func recordEdit(ctx context.Context, c *Context, chatID int64, messageID int, text string) {
	if c.Audit == nil {
		return
	}
	if err := c.Audit.Record(ctx, chatID, messageID, text); err != nil {
		logging.WithComponent("dispatch").Warn("recording message text failed",
			"chat_id", chatID, "message_id", messageID, "error", err)
	}
}

// actorFrom converts a request sender into a template actor.
func actorFrom(u User) template.Actor {
	return template.Actor{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
