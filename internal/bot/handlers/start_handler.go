package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewStartHandler returns a handler for the /start and /help commands. It
// replies with the usage text, extended with the admin command list when the
// sender is a configured admin.
func NewStartHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return Wrap(deps, "start", startHandler{deps}.Handle)
}

type startHandler struct {
	deps HandlerDeps
}

func (h startHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) error {
	msg := incomingMessage(update)
	if msg == nil {
		return nil
	}

	text := h.deps.Config.Telegram.Messages.Usage
	if msg.From != nil && h.deps.Config.Telegram.IsAdmin(msg.From.ID) {
		text += h.deps.Config.Telegram.Messages.AdminUsage
	}

	return sendWithDeleteMarkup(ctx, b, msg, text)
}
