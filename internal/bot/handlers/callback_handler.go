package handlers

import (
	"context"
	"fmt"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/genbot/internal/callback"
)

// NewCallbackHandler returns the single dispatcher for all inline keyboard
// callbacks. Payloads are parsed into typed actions before any side effect
// runs; unknown or malformed payloads are answered and dropped.
func NewCallbackHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return Wrap(deps, "callback", callbackHandler{deps}.Handle)
}

type callbackHandler struct {
	deps HandlerDeps
}

func (h callbackHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) error {
	cb := update.CallbackQuery
	if cb == nil {
		return nil
	}

	// Answer first so the client spinner stops even when the action fails.
	_, _ = b.AnswerCallbackQuery(ctx, &tgbot.AnswerCallbackQueryParams{CallbackQueryID: cb.ID})

	action, err := callback.Parse(cb.Data)
	if err != nil {
		h.deps.Logger.WarnContext(ctx, "dropping unparseable callback",
			"error", err, "data", cb.Data, "user_id", cb.From.ID)
		return nil
	}

	switch a := action.(type) {
	case callback.Delete:
		return h.handleDelete(ctx, b, cb, a)
	case callback.Regenerate:
		return h.handleRegenerate(ctx, b, cb, a)
	case callback.SetVoice:
		return h.handleSetVoice(ctx, b, cb, a)
	case callback.SetProvider:
		return h.handleSetProvider(ctx, b, cb, a)
	case callback.SetIntro:
		return h.handleSetIntro(ctx, b, cb, a)
	default:
		h.deps.Logger.WarnContext(ctx, "no dispatch for callback action", "data", cb.Data)
		return nil
	}
}

// handleDelete removes the original prompting message and the bot's reply.
// Either message may already be gone, so failures are ignored.
func (h callbackHandler) handleDelete(ctx context.Context, b *tgbot.Bot, cb *models.CallbackQuery, a callback.Delete) error {
	_, _ = b.DeleteMessage(ctx, &tgbot.DeleteMessageParams{ChatID: a.ChatID, MessageID: a.MessageID})

	if msg := cb.Message.Message; msg != nil {
		_, _ = b.DeleteMessage(ctx, &tgbot.DeleteMessageParams{ChatID: msg.Chat.ID, MessageID: msg.ID})
	}

	return nil
}

func (h callbackHandler) handleRegenerate(ctx context.Context, b *tgbot.Bot, cb *models.CallbackQuery, a callback.Regenerate) error {
	msg := cb.Message.Message
	if msg == nil {
		return nil
	}

	pending, err := h.deps.Store.ResolvePendingAction(ctx, a.Token)
	if err != nil {
		return err
	}
	if pending == nil {
		return sendWithDeleteMarkup(ctx, b, msg, h.deps.Config.Telegram.Messages.PromptExpired)
	}

	if pending.Provider == speechProvider {
		chat, err := h.deps.Store.GetOrCreateChat(ctx, callbackChatKey(cb))
		if err != nil {
			return err
		}
		return generateAndSendSpeech(ctx, b, h.deps, msg, chat.Voice, pending.Prompt)
	}

	return generateAndSendImage(ctx, b, h.deps, msg, pending.Provider, pending.Prompt)
}

func (h callbackHandler) handleSetVoice(ctx context.Context, b *tgbot.Bot, cb *models.CallbackQuery, a callback.SetVoice) error {
	msg := cb.Message.Message
	if msg == nil {
		return nil
	}

	if err := h.deps.Generator.ValidateVoice(a.Key); err != nil {
		return err
	}

	key := callbackChatKey(cb)
	if _, err := h.deps.Store.GetOrCreateChat(ctx, key); err != nil {
		return err
	}
	if err := h.deps.Store.UpdateChatVoice(ctx, key, a.Key); err != nil {
		return err
	}

	_, _ = b.DeleteMessage(ctx, &tgbot.DeleteMessageParams{ChatID: msg.Chat.ID, MessageID: msg.ID})

	return sendWithDeleteMarkup(ctx, b, msg, fmt.Sprintf(h.deps.Config.Telegram.Messages.VoiceSet, a.Key))
}

func (h callbackHandler) handleSetProvider(ctx context.Context, b *tgbot.Bot, cb *models.CallbackQuery, a callback.SetProvider) error {
	msg := cb.Message.Message
	if msg == nil {
		return nil
	}

	if err := h.deps.Generator.ValidateProvider(a.Key); err != nil {
		return err
	}

	key := callbackChatKey(cb)
	if _, err := h.deps.Store.GetOrCreateChat(ctx, key); err != nil {
		return err
	}
	if err := h.deps.Store.UpdateChatProvider(ctx, key, a.Key); err != nil {
		return err
	}

	_, _ = b.DeleteMessage(ctx, &tgbot.DeleteMessageParams{ChatID: msg.Chat.ID, MessageID: msg.ID})

	return sendWithDeleteMarkup(ctx, b, msg, fmt.Sprintf(h.deps.Config.Telegram.Messages.ProviderSet, a.Key))
}

func (h callbackHandler) handleSetIntro(ctx context.Context, b *tgbot.Bot, cb *models.CallbackQuery, a callback.SetIntro) error {
	msg := cb.Message.Message
	if msg == nil {
		return nil
	}

	intro, ok := h.deps.Config.Generation.AwesomePrompts[a.Key]
	if !ok {
		return fmt.Errorf("unknown awesome prompt %q", a.Key)
	}

	key := callbackChatKey(cb)
	if _, err := h.deps.Store.GetOrCreateChat(ctx, key); err != nil {
		return err
	}
	if err := h.deps.Store.UpdateChatIntro(ctx, key, intro); err != nil {
		return err
	}

	_, _ = b.DeleteMessage(ctx, &tgbot.DeleteMessageParams{ChatID: msg.Chat.ID, MessageID: msg.ID})

	return sendWithDeleteMarkup(ctx, b, msg, h.deps.Config.Telegram.Messages.IntroSet)
}
