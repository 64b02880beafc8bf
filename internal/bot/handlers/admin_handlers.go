package handlers

import (
	"context"
	"fmt"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewClearHandler returns a handler for the admin /clear command, wiping all
// chat records and pending actions.
func NewClearHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return Wrap(deps, "clear", clearHandler{deps}.Handle)
}

type clearHandler struct {
	deps HandlerDeps
}

func (h clearHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) error {
	msg := incomingMessage(update)
	if msg == nil {
		return nil
	}

	if err := h.deps.Store.ClearAll(ctx); err != nil {
		return err
	}

	return sendWithDeleteMarkup(ctx, b, msg, h.deps.Config.Telegram.Messages.TablesCleared)
}

// NewTotalHandler returns a handler for the admin /total command, reporting
// how many chats the bot knows about.
func NewTotalHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return Wrap(deps, "total", totalHandler{deps}.Handle)
}

type totalHandler struct {
	deps HandlerDeps
}

func (h totalHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) error {
	msg := incomingMessage(update)
	if msg == nil {
		return nil
	}

	count, err := h.deps.Store.CountChats(ctx)
	if err != nil {
		return err
	}

	return sendWithDeleteMarkup(ctx, b, msg, fmt.Sprintf("Total chats: %d", count))
}

// NewSQLHandler returns a handler for the admin /sql command, running a raw
// statement against the database and rendering the result rows.
func NewSQLHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return Wrap(deps, "sql", sqlHandler{deps}.Handle)
}

type sqlHandler struct {
	deps HandlerDeps
}

func (h sqlHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) error {
	msg := incomingMessage(update)
	if msg == nil {
		return nil
	}

	result, err := h.deps.Store.ExecRaw(ctx, commandArgument(msg.Text))
	if err != nil {
		// The statement text is operator input; surface the failure instead
		// of the generic error reply.
		return sendWithDeleteMarkup(ctx, b, msg, fmt.Sprintf("Query failed: %v", err))
	}

	return sendLongText(ctx, b, msg, result, true)
}
