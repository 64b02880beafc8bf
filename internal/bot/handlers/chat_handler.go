package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewChatHandler returns a handler for the /chat command.
func NewChatHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return Wrap(deps, "chat", chatHandler{deps}.Handle)
}

type chatHandler struct {
	deps HandlerDeps
}

func (h chatHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) error {
	msg := incomingMessage(update)
	if msg == nil {
		return nil
	}

	return generateChatReply(ctx, b, h.deps, msg, commandArgument(msg.Text))
}

// generateChatReply runs the text generation flow for a prompt: it serializes
// turns per chat, replays the stored transcript, persists the extended
// transcript, and sends the reply. Shared by /chat and free-form text.
func generateChatReply(ctx context.Context, b *tgbot.Bot, deps HandlerDeps, msg *models.Message, prompt string) error {
	key := chatKey(msg)

	// One generation at a time per chat so transcript updates never interleave.
	unlock := deps.ChatLocks.Lock(key)
	defer unlock()

	chat, err := deps.Store.GetOrCreateChat(ctx, key)
	if err != nil {
		return err
	}

	_, _ = b.SendChatAction(ctx, &tgbot.SendChatActionParams{
		ChatID: msg.Chat.ID,
		Action: models.ChatActionTyping,
	})

	genCtx, cancel := context.WithTimeout(ctx, deps.Config.Generation.Timeout)
	defer cancel()

	reply, newHistory, err := deps.Generator.GenerateText(genCtx, chat.Provider, prompt, chat.Intro, chat.History)
	if err != nil {
		return err
	}

	if err := deps.Store.UpdateChatHistory(ctx, key, newHistory); err != nil {
		// The reply is still worth delivering; the transcript just loses a turn.
		deps.Logger.WarnContext(ctx, "failed to persist chat history", "error", err, "chat_key", key)
	}

	return sendLongText(ctx, b, msg, reply, false)
}
