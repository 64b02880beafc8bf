package handlers

import (
	"context"

	"github.com/go-telegram/bot/models"

	"github.com/edgard/genbot/internal/callback"
)

// speechProvider is the pending-action provider value recorded for
// text-to-speech results, distinguishing them from image regeneration.
const speechProvider = "speech"

// regenerateAndDeleteMarkup builds the two-button markup attached to media
// replies. The regenerate button references the provider and prompt through
// a pending-action token so the payload stays within Telegram's 64-byte
// callback data limit.
func regenerateAndDeleteMarkup(ctx context.Context, deps HandlerDeps, msg *models.Message, provider, prompt string) (models.ReplyMarkup, error) {
	token, err := deps.Store.CreatePendingAction(ctx, provider, prompt)
	if err != nil {
		return nil, err
	}

	return models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{{
			{
				Text:         "♻️",
				CallbackData: callback.Regenerate{Token: token}.Encode(),
			},
			{
				Text:         "🗑️",
				CallbackData: callback.Delete{ChatID: msg.Chat.ID, MessageID: msg.ID}.Encode(),
			},
		}},
	}, nil
}
