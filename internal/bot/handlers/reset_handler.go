package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewResetHandler returns a handler for the /reset command, dropping the
// chat's record so the next interaction starts from configured defaults.
func NewResetHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return Wrap(deps, "reset", resetHandler{deps}.Handle)
}

type resetHandler struct {
	deps HandlerDeps
}

func (h resetHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) error {
	msg := incomingMessage(update)
	if msg == nil {
		return nil
	}

	if err := h.deps.Store.DeleteChat(ctx, chatKey(msg)); err != nil {
		return err
	}

	return sendWithDeleteMarkup(ctx, b, msg, h.deps.Config.Telegram.Messages.ChatReset)
}
