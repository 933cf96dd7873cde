// Package handler provides message routing and processing functionality.
// It adapts raw Telegram updates into dispatch requests, executes the
// resulting responses against the Bot API, and feeds post-send
// acknowledgements back into the engine.
package handler

import (
	"context"
	"log/slog"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"github.com/tgdesk/ticketbot/core"
	"github.com/tgdesk/ticketbot/dispatch"
	"github.com/tgdesk/ticketbot/logging"
	"github.com/tgdesk/ticketbot/store"
)

// Router bridges the transport and the dispatch engine. It converts
// updates into requests, lets the engine decide, then sends the posts,
// applies the edits, and persists the files the engine asked for.
type Router struct {
	bot    *core.Bot        // Bot instance for sending messages
	engine *dispatch.Engine // Dispatch engine making the decisions
	store  store.Store      // Settings file storage
	log    *slog.Logger
}

// NewRouter creates a new message router with the given dependencies.
func NewRouter(bot *core.Bot, engine *dispatch.Engine, st store.Store) *Router {
	return &Router{
		bot:    bot,
		engine: engine,
		store:  st,
		log:    logging.WithComponent("handler"),
	}
}

// SetupHandler configures the telegohandler with routing rules.
func (r *Router) SetupHandler(bh *th.BotHandler) {
	// Callback query handler
	bh.HandleCallbackQuery(func(ctx *th.Context, query telego.CallbackQuery) error {
		r.handleCallback(ctx, query)
		return nil
	})

	// Document message handler
	bh.HandleMessage(func(ctx *th.Context, message telego.Message) error {
		r.handleDocument(ctx, message)
		return nil
	}, func(_ context.Context, update telego.Update) bool {
		return update.Message != nil && update.Message.Document != nil
	})

	// Text message handler. Commands and free text share one path: the
	// engine owns the classification order.
	bh.HandleMessage(func(ctx *th.Context, message telego.Message) error {
		r.handleMessage(ctx, message)
		return nil
	}, func(_ context.Context, update telego.Update) bool {
		return update.Message != nil && len(update.Message.Text) > 0
	})
}

// handleMessage processes incoming text messages, commands included.
func (r *Router) handleMessage(ctx context.Context, msg telego.Message) {
	if msg.From == nil {
		return
	}

	req := dispatch.Request{
		Chat:      chatFrom(msg.Chat),
		User:      userFrom(*msg.From),
		MessageID: msg.MessageID,
		Text:      msg.Text,
	}
	r.process(ctx, req)
}

// handleDocument processes document uploads. The content is downloaded
// up front so the engine never touches the transport.
func (r *Router) handleDocument(ctx context.Context, msg telego.Message) {
	if msg.From == nil || msg.Document == nil {
		return
	}

	content, err := r.bot.DownloadDocument(ctx, msg.Document.FileID)
	if err != nil {
		r.log.Error("downloading document failed",
			"name", msg.Document.FileName, "error", err)
		return
	}

	req := dispatch.Request{
		Chat:      chatFrom(msg.Chat),
		User:      userFrom(*msg.From),
		MessageID: msg.MessageID,
		File: &dispatch.File{
			Name:    msg.Document.FileName,
			Content: content,
		},
	}
	r.process(ctx, req)
}

// handleCallback processes callback queries from inline keyboards.
// The query is always answered, matched or not, to stop the client's
// loading indicator.
func (r *Router) handleCallback(ctx context.Context, query telego.CallbackQuery) {
	defer func() {
		_ = r.bot.AnswerCallback(ctx, query.ID, "")
	}()

	msg, ok := query.Message.(*telego.Message)
	if !ok || msg == nil {
		r.log.Debug("callback on inaccessible message", "data", query.Data)
		return
	}

	req := dispatch.Request{
		Chat:        chatFrom(msg.Chat),
		User:        userFrom(query.From),
		MessageID:   msg.MessageID,
		Button:      query.Data,
		MessageText: msg.Text,
	}
	r.process(ctx, req)
}

// process runs one request through the engine and executes its response.
func (r *Router) process(ctx context.Context, req dispatch.Request) {
	resp, err := r.engine.Handle(ctx, req)
	if err != nil {
		r.log.Error("handling request failed", "user", req.User.ID, "error", err)
		return
	}
	if resp.Empty() {
		return
	}
	r.execute(ctx, resp)
}

// execute sends the response's posts, applies its edits, and saves its
// files, then reports the outcomes back to the engine.
func (r *Router) execute(ctx context.Context, resp dispatch.Response) {
	var fb dispatch.Feedback

	for _, post := range resp.Posts {
		sent, err := r.bot.SendMessageWithKeyboard(ctx, post.ChatID, post.Text, keyboard(post.Buttons))
		if err != nil {
			r.log.Error("sending message failed", "chat_id", post.ChatID, "error", err)
			continue
		}
		if sent != nil {
			fb.Posted = append(fb.Posted, dispatch.PostedMessage{
				ChatID:    post.ChatID,
				MessageID: sent.MessageID,
				Text:      post.Text,
			})
		}
	}

	for _, edit := range resp.Edits {
		_, err := r.bot.EditMessageWithKeyboard(ctx, edit.ChatID, edit.MessageID, edit.Text, keyboard(edit.Buttons))
		if err != nil {
			r.log.Error("editing message failed",
				"chat_id", edit.ChatID, "message_id", edit.MessageID, "error", err)
		}
	}

	for _, file := range resp.FilesToSave {
		if err := r.store.TrySave(file.Name, file.Content); err != nil {
			r.log.Error("saving file failed", "name", file.Name, "error", err)
			continue
		}
		fb.SavedFiles = append(fb.SavedFiles, file.Name)
	}

	if len(fb.Posted) == 0 && len(fb.SavedFiles) == 0 {
		return
	}
	if err := r.engine.HandleFeedback(ctx, fb); err != nil {
		r.log.Error("handling feedback failed", "error", err)
	}
}

// keyboard converts dispatch button rows into an inline keyboard markup.
// Returns nil for an empty set, which clears buttons on edit.
func keyboard(rows [][]dispatch.Button) *telego.InlineKeyboardMarkup {
	kb := core.NewKeyboard()
	for _, row := range rows {
		buttons := make([]telego.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, core.Button(b.Label, b.Payload))
		}
		kb.Row(buttons...)
	}
	return kb.Build()
}

// chatFrom converts a telego chat into a dispatch chat.
func chatFrom(chat telego.Chat) dispatch.Chat {
	return dispatch.Chat{
		ID:        chat.ID,
		IsPrivate: chat.Type == telego.ChatTypePrivate,
		Title:     chat.Title,
	}
}

// userFrom converts a telego user into a dispatch user.
func userFrom(u telego.User) dispatch.User {
	return dispatch.User{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
