package handlers

import (
	"context"
	"fmt"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewCheckHandler returns a handler for the /check command, reporting the
// chat's current settings.
func NewCheckHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return Wrap(deps, "check", checkHandler{deps}.Handle)
}

type checkHandler struct {
	deps HandlerDeps
}

func (h checkHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) error {
	msg := incomingMessage(update)
	if msg == nil {
		return nil
	}

	chat, err := h.deps.Store.GetOrCreateChat(ctx, chatKey(msg))
	if err != nil {
		return err
	}

	text := fmt.Sprintf(
		"Chat settings:\n\nProvider: %s\nVoice: %s\nIntro: %s",
		chat.Provider, chat.Voice, chat.Intro,
	)

	return sendWithDeleteMarkup(ctx, b, msg, text)
}
