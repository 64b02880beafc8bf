package handlers

import (
	"context"
	"unicode/utf8"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// minIntroLength guards against intros too short to steer generation.
const minIntroLength = 10

// NewIntroHandler returns a handler for the /intro command, setting the chat's
// intro prompt. An argument matching an awesome-prompt key expands to that
// template first.
func NewIntroHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return Wrap(deps, "intro", introHandler{deps}.Handle)
}

type introHandler struct {
	deps HandlerDeps
}

func (h introHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) error {
	msg := incomingMessage(update)
	if msg == nil {
		return nil
	}

	intro := commandArgument(msg.Text)
	if expanded, ok := h.deps.Config.Generation.AwesomePrompts[intro]; ok {
		intro = expanded
	}

	if utf8.RuneCountInString(intro) < minIntroLength {
		return sendWithDeleteMarkup(ctx, b, msg, h.deps.Config.Telegram.Messages.IntroTooShort)
	}

	key := chatKey(msg)
	if _, err := h.deps.Store.GetOrCreateChat(ctx, key); err != nil {
		return err
	}
	if err := h.deps.Store.UpdateChatIntro(ctx, key, intro); err != nil {
		return err
	}

	return sendWithDeleteMarkup(ctx, b, msg, h.deps.Config.Telegram.Messages.IntroSet)
}
