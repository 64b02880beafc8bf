package handlers

import (
	"bytes"
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewImageHandler returns a handler for the /image command.
func NewImageHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return Wrap(deps, "image", imageHandler{deps}.Handle)
}

type imageHandler struct {
	deps HandlerDeps
}

func (h imageHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) error {
	msg := incomingMessage(update)
	if msg == nil {
		return nil
	}

	chat, err := h.deps.Store.GetOrCreateChat(ctx, chatKey(msg))
	if err != nil {
		return err
	}

	return generateAndSendImage(ctx, b, h.deps, msg, chat.Provider, commandArgument(msg.Text))
}

// generateAndSendImage runs the image generation flow for a prompt and sends
// the result with regenerate and delete buttons. Shared by /image and the
// regenerate callback.
func generateAndSendImage(ctx context.Context, b *tgbot.Bot, deps HandlerDeps, msg *models.Message, provider, prompt string) error {
	_, _ = b.SendChatAction(ctx, &tgbot.SendChatActionParams{
		ChatID: msg.Chat.ID,
		Action: models.ChatActionUploadPhoto,
	})

	genCtx, cancel := context.WithTimeout(ctx, deps.Config.Generation.Timeout)
	defer cancel()

	usedProvider, image, err := deps.Generator.GenerateImage(genCtx, provider, prompt)
	if err != nil {
		return err
	}

	markup, err := regenerateAndDeleteMarkup(ctx, deps, msg, usedProvider, prompt)
	if err != nil {
		return err
	}

	_, err = b.SendPhoto(ctx, &tgbot.SendPhotoParams{
		ChatID:      msg.Chat.ID,
		Photo:       &models.InputFileUpload{Filename: "image.png", Data: bytes.NewReader(image)},
		Caption:     prompt,
		ReplyMarkup: markup,
	})

	return err
}
