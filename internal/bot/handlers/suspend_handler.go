package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewSuspendHandler returns a handler for the /suspend command, deactivating
// the chat so its messages are dropped until resumed.
func NewSuspendHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return Wrap(deps, "suspend", activationHandler{deps: deps, active: false}.Handle)
}

// NewResumeHandler returns a handler for the /resume command, reactivating a
// suspended chat. It must stay reachable from suspended chats, so it is never
// gated on the chat being active.
func NewResumeHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return Wrap(deps, "resume", activationHandler{deps: deps, active: true}.Handle)
}

type activationHandler struct {
	deps   HandlerDeps
	active bool
}

func (h activationHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) error {
	msg := incomingMessage(update)
	if msg == nil {
		return nil
	}

	key := chatKey(msg)
	if _, err := h.deps.Store.GetOrCreateChat(ctx, key); err != nil {
		return err
	}
	if err := h.deps.Store.SetChatActive(ctx, key, h.active); err != nil {
		return err
	}

	text := h.deps.Config.Telegram.Messages.Suspended
	if h.active {
		text = h.deps.Config.Telegram.Messages.Resumed
	}

	return sendWithDeleteMarkup(ctx, b, msg, text)
}
