package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandlerFunc is the handler shape used throughout this package: handler
// bodies return an error and the containment wrapper owns the failure reply.
type HandlerFunc func(ctx context.Context, b *tgbot.Bot, update *models.Update) error

// Wrap adapts a HandlerFunc to the bot library's handler signature. It logs
// the invocation, recovers panics, and converts any returned error into a
// single generic user-facing failure reply. Nothing escapes this boundary;
// one failed handler invocation never affects other chats.
func Wrap(deps HandlerDeps, name string, h HandlerFunc) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		log := deps.Logger.With("handler", name)

		if msg := incomingMessage(update); msg != nil {
			log.InfoContext(ctx, "Serving handler", "chat_id", msg.Chat.ID, "chat_key", chatKey(msg))
		} else if update.CallbackQuery != nil {
			log.InfoContext(ctx, "Serving handler", "user_id", update.CallbackQuery.From.ID)
		}

		defer func() {
			if r := recover(); r != nil {
				log.ErrorContext(ctx, "Handler panicked", "panic", r)
				replyGenericError(ctx, b, deps, update, log)
			}
		}()

		if err := h(ctx, b, update); err != nil {
			log.ErrorContext(ctx, "Handler failed", "error", err)
			replyGenericError(ctx, b, deps, update, log)
		}
	}
}

func replyGenericError(ctx context.Context, b *tgbot.Bot, deps HandlerDeps, update *models.Update, log interface {
	ErrorContext(context.Context, string, ...any)
}) {
	msg := incomingMessage(update)
	if msg == nil && update.CallbackQuery != nil {
		msg = update.CallbackQuery.Message.Message
	}
	if msg == nil {
		return
	}
	if err := sendWithDeleteMarkup(ctx, b, msg, deps.Config.Telegram.Messages.GeneralError); err != nil {
		log.ErrorContext(ctx, "Failed to send error reply", "error", err, "chat_id", msg.Chat.ID)
	}
}

// AdminOnly creates a middleware that rejects updates from senders outside
// the configured admin ID set with a fixed restricted-action reply.
func AdminOnly(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
			log := deps.Logger.With("middleware", "admin_only")

			msg := incomingMessage(update)
			if msg == nil {
				return
			}
			if msg.From == nil || !deps.Config.Telegram.IsAdmin(msg.From.ID) {
				var userID int64
				if msg.From != nil {
					userID = msg.From.ID
				}
				log.WarnContext(ctx, "Unauthorized access attempt", "user_id", userID, "chat_id", msg.Chat.ID)

				if err := sendWithDeleteMarkup(ctx, b, msg, deps.Config.Telegram.Messages.NotAuthorized); err != nil {
					log.ErrorContext(ctx, "Failed to send unauthorized message", "error", err, "chat_id", msg.Chat.ID)
				}
				return
			}

			next(ctx, b, update)
		}
	}
}

// ActiveOnly creates a middleware that drops updates for suspended chats.
// Suspended chats get no reply at all; /resume and /start stay reachable
// because they are registered without this middleware.
func ActiveOnly(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
			log := deps.Logger.With("middleware", "active_only")

			msg := incomingMessage(update)
			if msg == nil {
				next(ctx, b, update)
				return
			}

			chat, err := deps.Store.GetOrCreateChat(ctx, chatKey(msg))
			if err != nil {
				log.ErrorContext(ctx, "Failed to load chat record", "error", err, "chat_key", chatKey(msg))
				return
			}
			if !chat.IsActive {
				log.DebugContext(ctx, "Dropping update for suspended chat", "chat_key", chat.ID)
				return
			}

			next(ctx, b, update)
		}
	}
}

// RequireArgument creates a middleware that short-circuits commands invoked
// without argument text, replying with the fixed "text required" message.
func RequireArgument(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
			log := deps.Logger.With("middleware", "require_argument")

			msg := incomingMessage(update)
			if msg == nil {
				next(ctx, b, update)
				return
			}

			if commandArgument(msg.Text) == "" {
				log.DebugContext(ctx, "Command invoked without required text", "chat_id", msg.Chat.ID)
				if err := sendWithDeleteMarkup(ctx, b, msg, deps.Config.Telegram.Messages.TextRequired); err != nil {
					log.ErrorContext(ctx, "Failed to send text-required message", "error", err, "chat_id", msg.Chat.ID)
				}
				return
			}

			next(ctx, b, update)
		}
	}
}
