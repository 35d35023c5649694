package telegram

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kassa/pkg/ledger"
	"kassa/pkg/storage"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const deniedText = "🚫 Access denied. You are not authorized to use this bot."

// handleStart handles /start command - help and parameter formats
func (b *Bot) handleStart(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
	commandsProcessed.WithLabelValues("start").Inc()
	if update.Message == nil || update.Message.From == nil {
		return
	}

	chatID := update.Message.Chat.ID
	if !b.allowed(ctx, update.Message.From) {
		b.sendText(ctx, chatID, deniedText)
		return
	}

	helpText := fmt.Sprintf(`Hello %s! 😊
This bot updates users' tables stored in object storage.

📌 Commands:
• /start - Info.
• /in - Add an 'in' row to the user's table.
• /out - Add an 'out' row to the user's table.
• /undo - Delete the latest entry from the table.
• /list - Retrieve the latest version of the table.

After sending /in or /out, please send the parameters as:
• For /in: {description} {amount} {percent}
• For /out: {description} {amount}`, update.Message.From.FirstName)

	b.sendText(ctx, chatID, helpText)
}

// handleIn handles /in command - arms the in-row pending state for the chat
func (b *Bot) handleIn(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
	commandsProcessed.WithLabelValues("in").Inc()
	if update.Message == nil || update.Message.From == nil {
		return
	}

	chatID := update.Message.Chat.ID
	if !b.allowed(ctx, update.Message.From) {
		b.sendText(ctx, chatID, deniedText)
		return
	}

	b.sessions.Set(chatID, PendingIn)
	b.sendText(ctx, chatID, "Send the entry as: {description} {amount} {percent}")
}

// handleOut handles /out command - arms the out-row pending state for the chat
func (b *Bot) handleOut(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
	commandsProcessed.WithLabelValues("out").Inc()
	if update.Message == nil || update.Message.From == nil {
		return
	}

	chatID := update.Message.Chat.ID
	if !b.allowed(ctx, update.Message.From) {
		b.sendText(ctx, chatID, deniedText)
		return
	}

	b.sessions.Set(chatID, PendingOut)
	b.sendText(ctx, chatID, "Send the entry as: {description} {amount}")
}

// handleUndo handles /undo command - removes the last row, stateless
func (b *Bot) handleUndo(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
	commandsProcessed.WithLabelValues("undo").Inc()
	if update.Message == nil || update.Message.From == nil {
		return
	}

	chatID := update.Message.Chat.ID
	if !b.allowed(ctx, update.Message.From) {
		b.sendText(ctx, chatID, deniedText)
		return
	}

	key := ledger.KeyFor(update.Message.Chat.Title, chatID)
	title := ledger.TitleFromKey(key)

	start := time.Now()
	err := b.ledger.Undo(ctx, key)
	engineOpDuration.WithLabelValues("undo").Observe(time.Since(start).Seconds())

	if err != nil {
		b.replyOpError(ctx, chatID, title, err)
		return
	}

	entriesUndone.Inc()
	b.sendText(ctx, chatID, fmt.Sprintf("✅ Latest entry deleted from %s", title))
}

// handleList handles /list command - delivers the current blob, stateless
func (b *Bot) handleList(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
	commandsProcessed.WithLabelValues("list").Inc()
	if update.Message == nil || update.Message.From == nil {
		return
	}

	chatID := update.Message.Chat.ID
	if !b.allowed(ctx, update.Message.From) {
		b.sendText(ctx, chatID, deniedText)
		return
	}

	key := ledger.KeyFor(update.Message.Chat.Title, chatID)
	title := ledger.TitleFromKey(key)

	start := time.Now()
	data, err := b.ledger.ListLatest(ctx, key)
	engineOpDuration.WithLabelValues("list").Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			errorsTotal.WithLabelValues("not_found").Inc()
			b.sendText(ctx, chatID, fmt.Sprintf("❌ No table found for %s.", title))
			return
		}
		b.replyOpError(ctx, chatID, title, err)
		return
	}

	_, err = botAPI.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID:   chatID,
		Document: &models.InputFileUpload{Filename: key, Data: bytes.NewReader(data)},
		Caption:  fmt.Sprintf("✅ Latest version of the table %s", title),
	})
	if err != nil {
		errorsTotal.WithLabelValues("send").Inc()
		b.logger.Error(ctx, "failed to send document", "err", err, "key", key)
	}
}

// handleDefault handles free text: the parameter line for a pending /in or
// /out. Unknown commands and chats with nothing pending are ignored.
func (b *Bot) handleDefault(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	chatID := update.Message.Chat.ID
	text := update.Message.Text

	if strings.HasPrefix(text, "/") {
		return
	}

	if !b.allowlist.Contains(update.Message.From.ID) {
		// Only deny out loud when this chat is actually waiting for
		// parameters; plain chatter from outsiders is none of our business.
		if b.sessions.Peek(chatID) != PendingNone {
			accessDenied.Inc()
			b.sendText(ctx, chatID, deniedText)
		}
		return
	}

	key := ledger.KeyFor(update.Message.Chat.Title, chatID)
	title := ledger.TitleFromKey(key)

	switch b.sessions.Take(chatID) {
	case PendingIn:
		params, err := parseInParams(text)
		if err != nil {
			b.replyOpError(ctx, chatID, title, err)
			return
		}

		start := time.Now()
		row, err := b.ledger.AppendIn(ctx, key, params.Description, params.Amount, params.Percent)
		engineOpDuration.WithLabelValues("append_in").Observe(time.Since(start).Seconds())
		if err != nil {
			b.replyOpError(ctx, chatID, title, err)
			return
		}

		entriesAppended.WithLabelValues("in").Inc()
		b.logger.Print(ctx, "entry added", "key", key, "direction", "in", "balance", row.Balance)
		b.sendText(ctx, chatID, fmt.Sprintf("✅ Entry added to %s", title))

	case PendingOut:
		params, err := parseOutParams(text)
		if err != nil {
			b.replyOpError(ctx, chatID, title, err)
			return
		}

		start := time.Now()
		row, err := b.ledger.AppendOut(ctx, key, params.Description, params.Amount)
		engineOpDuration.WithLabelValues("append_out").Observe(time.Since(start).Seconds())
		if err != nil {
			b.replyOpError(ctx, chatID, title, err)
			return
		}

		entriesAppended.WithLabelValues("out").Inc()
		b.logger.Print(ctx, "entry added", "key", key, "direction", "out", "balance", row.Balance)
		b.sendText(ctx, chatID, fmt.Sprintf("✅ Entry added to %s", title))
	}
}

// allowed checks the sender against the allow-list.
func (b *Bot) allowed(ctx context.Context, from *models.User) bool {
	if b.allowlist.Contains(from.ID) {
		return true
	}

	accessDenied.Inc()
	b.logger.Print(ctx, "access denied", "telegram_user_id", from.ID, "username", from.Username)

	return false
}

// replyOpError converts an engine failure into a user-facing reply.
// Every branch leaves previously persisted data untouched.
func (b *Bot) replyOpError(ctx context.Context, chatID int64, title string, err error) {
	switch {
	case errors.Is(err, ledger.ErrValidation):
		errorsTotal.WithLabelValues("validation").Inc()
		b.sendText(ctx, chatID, "❌ "+err.Error())
	case errors.Is(err, ledger.ErrEmptyLedger):
		errorsTotal.WithLabelValues("empty_ledger").Inc()
		b.sendText(ctx, chatID, "❌ Table is empty.")
	case errors.Is(err, storage.ErrNotFound):
		errorsTotal.WithLabelValues("not_found").Inc()
		b.sendText(ctx, chatID, "❌ Table doesn't exist.")
	case errors.Is(err, ledger.ErrDecode):
		errorsTotal.WithLabelValues("decode").Inc()
		b.logger.Error(ctx, "stored table is corrupt", "table", title, "err", err)
		b.sendText(ctx, chatID, fmt.Sprintf("❌ Stored table %s is corrupt and was left untouched.", title))
	default:
		errorsTotal.WithLabelValues("storage").Inc()
		b.logger.Error(ctx, "ledger operation failed", "table", title, "err", err)
		b.sendText(ctx, chatID, "❌ Failed to update/create table. Please try again.")
	}
}

func (b *Bot) sendText(ctx context.Context, chatID int64, text string) {
	b.send(ctx, chatID, text)
}

func (b *Bot) apiSendText(ctx context.Context, chatID int64, text string) {
	_, err := b.api.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		errorsTotal.WithLabelValues("send").Inc()
		b.logger.Error(ctx, "failed to send message", "err", err)
	}
}
