package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/genbot/internal/generation"
)

// NewHistoryHandler returns a handler for the /history command, dumping the
// chat's conversation transcript.
func NewHistoryHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return Wrap(deps, "history", historyHandler{deps}.Handle)
}

type historyHandler struct {
	deps HandlerDeps
}

func (h historyHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) error {
	msg := incomingMessage(update)
	if msg == nil {
		return nil
	}

	chat, err := h.deps.Store.GetOrCreateChat(ctx, chatKey(msg))
	if err != nil {
		return err
	}

	transcript := generation.FormatHistory(chat.History)
	if transcript == "" {
		return sendWithDeleteMarkup(ctx, b, msg, h.deps.Config.Telegram.Messages.HistoryEmpty)
	}

	return sendLongText(ctx, b, msg, transcript, true)
}
