package telegram

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"kassa/pkg/ledger"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Command regexes accept the bare command and the group form with the bot
// mention, e.g. "/in@kassabot".
var (
	reIn   = regexp.MustCompile(`^/in(@[\w_]+)?$`)
	reOut  = regexp.MustCompile(`^/out(@[\w_]+)?$`)
	reUndo = regexp.MustCompile(`^/undo(@[\w_]+)?$`)
	reList = regexp.MustCompile(`^/list(@[\w_]+)?$`)
)

type Bot struct {
	api       *bot.Bot
	logger    Logger
	ledger    *ledger.Manager
	sessions  *SessionManager
	allowlist Allowlist
	debug     bool

	// send delivers plain text replies; defaults to the Telegram API.
	send func(ctx context.Context, chatID int64, text string)
}

// Logger is the subset of embedlog.Logger the bot needs.
type Logger interface {
	Print(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
}

type Config struct {
	Token          string
	Debug          bool
	AllowedUserIDs []int64
}

// New creates a new Telegram bot instance
func New(ctx context.Context, cfg Config, manager *ledger.Manager, log Logger) (*Bot, error) {
	if cfg.Token == "" {
		return nil, errors.New("telegram token is required")
	}

	b := &Bot{
		logger:    log,
		ledger:    manager,
		sessions:  NewSessionManager(),
		allowlist: NewAllowlist(cfg.AllowedUserIDs),
		debug:     cfg.Debug,
	}

	opts := []bot.Option{
		bot.WithDefaultHandler(b.handleDefault),
	}

	if cfg.Debug {
		opts = append(opts, bot.WithDebug())
	}

	api, err := bot.New(cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	b.api = api
	b.send = b.apiSendText

	b.registerHandlers()

	return b, nil
}

// Start registers the command menu and runs long polling until ctx is done.
func (b *Bot) Start(ctx context.Context) error {
	me, err := b.api.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("failed to get bot info: %w", err)
	}

	if err := b.registerCommands(ctx); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	b.logger.Print(ctx, "telegram bot started", "username", me.Username, "id", me.ID)
	b.api.Start(ctx)

	return nil
}

// Stop gracefully stops the bot
func (b *Bot) Stop(ctx context.Context) {
	b.logger.Print(ctx, "stopping telegram bot")
}

// registerHandlers registers all command handlers
func (b *Bot) registerHandlers() {
	b.api.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, b.handleStart)
	b.api.RegisterHandlerRegexp(bot.HandlerTypeMessageText, reIn, b.handleIn)
	b.api.RegisterHandlerRegexp(bot.HandlerTypeMessageText, reOut, b.handleOut)
	b.api.RegisterHandlerRegexp(bot.HandlerTypeMessageText, reUndo, b.handleUndo)
	b.api.RegisterHandlerRegexp(bot.HandlerTypeMessageText, reList, b.handleList)
}

// registerCommands publishes the command menu for discovery.
func (b *Bot) registerCommands(ctx context.Context) error {
	_, err := b.api.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: []models.BotCommand{
			{Command: "start", Description: "Start the bot and see options"},
			{Command: "in", Description: "Add 'in' row to a table"},
			{Command: "out", Description: "Add 'out' row to a table"},
			{Command: "undo", Description: "Delete the latest entry in the table"},
			{Command: "list", Description: "Retrieve the latest version of the table"},
		},
	})

	return err
}
