// Package ticketbot provides a Telegram bot that turns short private
// conversations into trackable ticket messages in a target chat.
//
// Features:
//   - Field-by-field ticket fill driven by a replaceable template
//   - Lifecycle transitions (accept, done, drop) via inline buttons
//   - Runtime settings replacement through admin file uploads
//   - Durable audit of ticket message text in an embedded database
//
// Basic usage:
//
//	cfg := config.Default()
//	cfg.Token = "your-bot-token"
//	bot, _ := ticketbot.New(cfg)
//	bot.Start(ctx)
package ticketbot

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"github.com/tgdesk/ticketbot/config"
	"github.com/tgdesk/ticketbot/core"
	"github.com/tgdesk/ticketbot/dispatch"
	"github.com/tgdesk/ticketbot/handler"
	"github.com/tgdesk/ticketbot/logging"
	"github.com/tgdesk/ticketbot/store"
)

// auditFile is the embedded database holding posted ticket text.
const auditFile = "messages.db"

// Wrapper is the main entry point of the ticketbot library.
// It orchestrates the bot, the dispatch engine, and the router.
// Use New() to create an instance and Start() to begin processing updates.
type Wrapper struct {
	cfg    *config.Config    // Bot configuration
	bot    *core.Bot         // Core bot instance for Telegram API operations
	files  *store.FileStore  // Settings file storage under the data directory
	audit  *store.SQLiteLog  // Audit log of posted ticket text
	engine *dispatch.Engine  // Dispatch engine owning the workflow state
	router *handler.Router   // Router adapting updates to engine requests

	botHandler *th.BotHandler // Telego handler for update processing
}

// New creates a new Wrapper instance with the provided configuration.
// It initializes the bot, the storage layers, and the dispatch engine,
// loading the persisted target chat and template from the data directory.
func New(cfg *config.Config) (*Wrapper, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bot, err := core.NewBot(cfg.Token)
	if err != nil {
		return nil, err
	}

	files, err := store.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open data directory: %w", err)
	}

	audit, err := store.OpenMessageLog(filepath.Join(cfg.DataDir, auditFile))
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}

	state := dispatch.NewContext(files, audit)
	state.LoadTargetChat()
	state.LoadTemplate()

	engine, err := dispatch.NewEngine(state, cfg.AdminID)
	if err != nil {
		return nil, err
	}

	return &Wrapper{
		cfg:    cfg,
		bot:    bot,
		files:  files,
		audit:  audit,
		engine: engine,
		router: handler.NewRouter(bot, engine, files),
	}, nil
}

// Start begins processing Telegram updates. It resolves the bot's own
// identity, registers the command menu (if configured), starts long
// polling, and launches the update handler.
func (w *Wrapper) Start(ctx context.Context) error {
	log := logging.WithComponent("ticketbot")

	me, err := w.bot.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve bot identity: %w", err)
	}
	if me != nil {
		w.engine.SetIdentity(dispatch.Identity{ID: me.ID, Username: me.Username})
		log.Info("bot identity resolved", "username", me.Username)
	}

	if w.cfg.ShouldRegisterCommands() {
		specs := w.engine.Commands()
		commands := make([]telego.BotCommand, len(specs))
		for i, spec := range specs {
			commands[i] = telego.BotCommand{
				Command:     strings.TrimPrefix(spec.Moniker, "/"),
				Description: spec.Description,
			}
		}
		if err := w.bot.SetMyCommands(ctx, commands); err != nil {
			log.Warn("registering commands failed", "error", err)
		}
	}

	updates, err := w.bot.Telego().UpdatesViaLongPolling(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start long polling: %w", err)
	}

	w.botHandler, err = th.NewBotHandler(w.bot.Telego(), updates)
	if err != nil {
		return fmt.Errorf("failed to create handler: %w", err)
	}

	w.router.SetupHandler(w.botHandler)

	go func() {
		if err := w.botHandler.Start(); err != nil {
			log.Error("update handler stopped", "error", err)
		}
	}()

	log.Info("bot started", "data_dir", w.cfg.DataDir)
	return nil
}

// Stop gracefully stops the Wrapper and releases all resources.
// Long polling is stopped by canceling the context passed to Start().
func (w *Wrapper) Stop() {
	if w.botHandler != nil {
		_ = w.botHandler.Stop()
	}
	if w.cfg.DeleteCommandsOnExit {
		_ = w.bot.DeleteMyCommands(context.Background())
	}
	if w.audit != nil {
		_ = w.audit.Close()
	}
}

// Bot returns the underlying core.Bot instance for direct Telegram API access.
func (w *Wrapper) Bot() *core.Bot {
	return w.bot
}

// Engine returns the dispatch engine, for inspection and tests.
func (w *Wrapper) Engine() *dispatch.Engine {
	return w.engine
}
