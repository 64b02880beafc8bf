package handlers

import (
	"bytes"
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewSpeakHandler returns a handler for the /speak command.
func NewSpeakHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return Wrap(deps, "speak", speakHandler{deps}.Handle)
}

type speakHandler struct {
	deps HandlerDeps
}

func (h speakHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) error {
	msg := incomingMessage(update)
	if msg == nil {
		return nil
	}

	chat, err := h.deps.Store.GetOrCreateChat(ctx, chatKey(msg))
	if err != nil {
		return err
	}

	return generateAndSendSpeech(ctx, b, h.deps, msg, chat.Voice, commandArgument(msg.Text))
}

// generateAndSendSpeech runs the text-to-speech flow and sends the audio with
// regenerate and delete buttons. Shared by /speak and the regenerate callback.
func generateAndSendSpeech(ctx context.Context, b *tgbot.Bot, deps HandlerDeps, msg *models.Message, voice, text string) error {
	_, _ = b.SendChatAction(ctx, &tgbot.SendChatActionParams{
		ChatID: msg.Chat.ID,
		Action: models.ChatActionUploadVoice,
	})

	genCtx, cancel := context.WithTimeout(ctx, deps.Config.Generation.Timeout)
	defer cancel()

	audio, err := deps.Generator.GenerateSpeech(genCtx, text, voice)
	if err != nil {
		return err
	}

	markup, err := regenerateAndDeleteMarkup(ctx, deps, msg, speechProvider, text)
	if err != nil {
		return err
	}

	_, err = b.SendAudio(ctx, &tgbot.SendAudioParams{
		ChatID:      msg.Chat.ID,
		Audio:       &models.InputFileUpload{Filename: "speech.mp3", Data: bytes.NewReader(audio)},
		Caption:     text,
		Performer:   voice,
		ReplyMarkup: markup,
	})

	return err
}
