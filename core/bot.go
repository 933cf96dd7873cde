// Package core provides core functionality for Telegram Bot operations.
// This package wraps the telego library to provide a simplified and
// opinionated interface for the operations the ticket workflow needs.
package core

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	"github.com/mymmrac/telego/telegoutil"
)

// Bot wraps telego.Bot to provide high-level message operations.
// All methods are safe for concurrent use.
type Bot struct {
	bot *telego.Bot // Underlying telego bot instance
}

// NewBot creates a new Bot instance with the given token.
// Returns an error if the token is invalid or bot creation fails.
func NewBot(token string) (*Bot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &Bot{
		bot: bot,
	}, nil
}

// Telego returns the underlying telego.Bot instance for direct API access.
func (b *Bot) Telego() *telego.Bot {
	return b.bot
}

// SendMessageWithKeyboard sends a text message with an optional inline
// keyboard. Link previews are disabled: ticket bodies routinely carry
// addresses and phone numbers that Telegram would otherwise expand.
func (b *Bot) SendMessageWithKeyboard(ctx context.Context, chatID int64, text string, keyboard *telego.InlineKeyboardMarkup) (*telego.Message, error) {
	if b.bot == nil {
		return nil, nil
	}

	params := &telego.SendMessageParams{
		ChatID: telegoutil.ID(chatID),
		Text:   text,
		LinkPreviewOptions: &telego.LinkPreviewOptions{
			IsDisabled: true,
		},
	}

	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	return b.bot.SendMessage(ctx, params)
}

// EditMessageWithKeyboard edits both text and keyboard of an existing
// message. A nil keyboard removes the existing button set, which is how
// terminal ticket stages drop their buttons.
func (b *Bot) EditMessageWithKeyboard(ctx context.Context, chatID int64, messageID int, text string, keyboard *telego.InlineKeyboardMarkup) (*telego.Message, error) {
	if b.bot == nil {
		return nil, nil
	}

	params := &telego.EditMessageTextParams{
		ChatID:    telegoutil.ID(chatID),
		MessageID: messageID,
		Text:      text,
		LinkPreviewOptions: &telego.LinkPreviewOptions{
			IsDisabled: true,
		},
	}

	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	return b.bot.EditMessageText(ctx, params)
}

// AnswerCallback responds to a callback query.
// Must be called for every callback query to prevent loading indicators.
func (b *Bot) AnswerCallback(ctx context.Context, callbackID string, text string) error {
	if b.bot == nil {
		return nil
	}

	return b.bot.AnswerCallbackQuery(ctx, &telego.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
	})
}

// SetMyCommands registers the bot's command list with Telegram.
// These commands appear in the command menu when users type "/".
func (b *Bot) SetMyCommands(ctx context.Context, commands []telego.BotCommand) error {
	if b.bot == nil {
		return nil
	}

	return b.bot.SetMyCommands(ctx, &telego.SetMyCommandsParams{
		Commands: commands,
	})
}

// DeleteMyCommands removes the registered command list from Telegram.
func (b *Bot) DeleteMyCommands(ctx context.Context) error {
	if b.bot == nil {
		return nil
	}

	return b.bot.DeleteMyCommands(ctx, nil)
}

// GetMe retrieves information about the bot itself.
func (b *Bot) GetMe(ctx context.Context) (*telego.User, error) {
	if b.bot == nil {
		return nil, nil
	}
	return b.bot.GetMe(ctx)
}

// DownloadDocument fetches the content of an uploaded document by its
// file ID.
func (b *Bot) DownloadDocument(ctx context.Context, fileID string) ([]byte, error) {
	if b.bot == nil {
		return nil, nil
	}

	file, err := b.bot.GetFile(ctx, &telego.GetFileParams{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve file: %w", err)
	}

	data, err := telegoutil.DownloadFile(b.bot.FileDownloadURL(file.FilePath))
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	return data, nil
}
