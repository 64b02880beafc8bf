package handlers

import (
	"context"
	"sort"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/genbot/internal/callback"
)

// NewAwesomeHandler returns a handler for the /awesome command. With a known
// template key it sets that template as the chat intro; otherwise it posts a
// picker keyboard of the configured awesome-prompt templates.
func NewAwesomeHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return Wrap(deps, "awesome", awesomeHandler{deps}.Handle)
}

type awesomeHandler struct {
	deps HandlerDeps
}

func (h awesomeHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) error {
	msg := incomingMessage(update)
	if msg == nil {
		return nil
	}

	if intro, ok := h.deps.Config.Generation.AwesomePrompts[commandArgument(msg.Text)]; ok {
		key := chatKey(msg)
		if _, err := h.deps.Store.GetOrCreateChat(ctx, key); err != nil {
			return err
		}
		if err := h.deps.Store.UpdateChatIntro(ctx, key, intro); err != nil {
			return err
		}
		return sendWithDeleteMarkup(ctx, b, msg, h.deps.Config.Telegram.Messages.IntroSet)
	}

	keys := make([]string, 0, len(h.deps.Config.Generation.AwesomePrompts))
	for key := range h.deps.Config.Generation.AwesomePrompts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	_, _ = b.DeleteMessage(ctx, &tgbot.DeleteMessageParams{ChatID: msg.Chat.ID, MessageID: msg.ID})

	markup := pickerMarkup(keys, 2, func(key string) string {
		return callback.SetIntro{Key: key}.Encode()
	})

	_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        h.deps.Config.Telegram.Messages.ChooseAwesome,
		ReplyMarkup: markup,
	})

	return err
}
