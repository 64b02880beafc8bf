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

// NewVoiceHandler returns a handler for the /voice command. With an argument
// it sets the chat's speech voice; without one it posts a voice picker
// keyboard.
func NewVoiceHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return Wrap(deps, "voice", voiceHandler{deps}.Handle)
}

type voiceHandler struct {
	deps HandlerDeps
}

func (h voiceHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) error {
	msg := incomingMessage(update)
	if msg == nil {
		return nil
	}

	voice := commandArgument(msg.Text)
	if voice == "" {
		return h.sendPicker(ctx, b, msg)
	}

	if err := h.deps.Generator.ValidateVoice(voice); err != nil {
		if errors.Is(err, generation.ErrInvalidVoice) {
			return h.sendPicker(ctx, b, msg)
		}
		return err
	}

	key := chatKey(msg)
	if _, err := h.deps.Store.GetOrCreateChat(ctx, key); err != nil {
		return err
	}
	if err := h.deps.Store.UpdateChatVoice(ctx, key, voice); err != nil {
		return err
	}

	return sendWithDeleteMarkup(ctx, b, msg, fmt.Sprintf(h.deps.Config.Telegram.Messages.VoiceSet, voice))
}

func (h voiceHandler) sendPicker(ctx context.Context, b *tgbot.Bot, msg *models.Message) error {
	// The prompting command is removed so only the picker remains.
	_, _ = b.DeleteMessage(ctx, &tgbot.DeleteMessageParams{ChatID: msg.Chat.ID, MessageID: msg.ID})

	markup := pickerMarkup(h.deps.Generator.Voices(), 3, func(key string) string {
		return callback.SetVoice{Key: key}.Encode()
	})

	_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        h.deps.Config.Telegram.Messages.ChooseVoice,
		ReplyMarkup: markup,
	})

	return err
}
