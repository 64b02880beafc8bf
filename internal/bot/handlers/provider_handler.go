package handlers

import (
	"context"
	"errors"
	"fmt"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/genbot/internal/callback"
	"github.com/edgard/genbot/internal/generation"
)

// NewProviderHandler returns a handler for the /provider command. With an
// argument it sets the chat's generation provider; without one it posts a
// provider picker keyboard.
func NewProviderHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return Wrap(deps, "provider", providerHandler{deps}.Handle)
}

type providerHandler struct {
	deps HandlerDeps
}

func (h providerHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) error {
	msg := incomingMessage(update)
	if msg == nil {
		return nil
	}

	provider := commandArgument(msg.Text)
	if provider == "" {
		return h.sendPicker(ctx, b, msg)
	}

	if err := h.deps.Generator.ValidateProvider(provider); err != nil {
		if errors.Is(err, generation.ErrInvalidProvider) {
			return h.sendPicker(ctx, b, msg)
		}
		return err
	}

	key := chatKey(msg)
	if _, err := h.deps.Store.GetOrCreateChat(ctx, key); err != nil {
		return err
	}
	if err := h.deps.Store.UpdateChatProvider(ctx, key, provider); err != nil {
		return err
	}

	return sendWithDeleteMarkup(ctx, b, msg, fmt.Sprintf(h.deps.Config.Telegram.Messages.ProviderSet, provider))
}

func (h providerHandler) sendPicker(ctx context.Context, b *tgbot.Bot, msg *models.Message) error {
	_, _ = b.DeleteMessage(ctx, &tgbot.DeleteMessageParams{ChatID: msg.Chat.ID, MessageID: msg.ID})

	markup := pickerMarkup(h.deps.Generator.Providers(), 2, func(key string) string {
		return callback.SetProvider{Key: key}.Encode()
	})

	_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        h.deps.Config.Telegram.Messages.ChooseProvider,
		ReplyMarkup: markup,
	})

	return err
}
