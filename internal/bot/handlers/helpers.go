package handlers

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/genbot/internal/callback"
)

// maxMessageLength is Telegram's hard limit on message text.
const maxMessageLength = 4096

// incomingMessage returns the message carried by an update, whether it came
// from a direct chat, a group, or a channel post.
func incomingMessage(update *models.Update) *models.Message {
	if update.Message != nil {
		return update.Message
	}
	return update.ChannelPost
}

// chatKey derives the chat record identifier for a message: the sender's
// user ID in private chats, the chat ID in groups and channels.
func chatKey(msg *models.Message) int64 {
	if msg.Chat.Type == models.ChatTypePrivate && msg.From != nil {
		return msg.From.ID
	}
	return msg.Chat.ID
}

// callbackChatKey derives the chat record identifier for a callback query
// using the same rule as chatKey.
func callbackChatKey(cb *models.CallbackQuery) int64 {
	if msg := cb.Message.Message; msg != nil {
		if msg.Chat.Type == models.ChatTypePrivate {
			return cb.From.ID
		}
		return msg.Chat.ID
	}
	if im := cb.Message.InaccessibleMessage; im != nil && im.Chat.Type != models.ChatTypePrivate {
		return im.Chat.ID
	}
	return cb.From.ID
}

// commandArgument strips the leading /command token (and anything before the
// first space) from the message text and returns the trimmed remainder. Text
// without a command prefix is returned unchanged.
func commandArgument(text string) string {
	if !strings.HasPrefix(text, "/") {
		return strings.TrimSpace(text)
	}
	_, rest, found := strings.Cut(text, " ")
	if !found {
		return ""
	}
	return strings.TrimSpace(rest)
}

// isCommand reports whether the message text starts with a /command token.
func isCommand(text string) bool {
	return strings.HasPrefix(text, "/")
}

// splitMessage breaks text into chunks no longer than limit, preferring to
// cut at the last newline and then the last space within the window.
func splitMessage(text string, limit int) []string {
	if limit <= 0 {
		limit = maxMessageLength
	}
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var parts []string
	runes := []rune(text)
	for len(runes) > 0 {
		if len(runes) <= limit {
			parts = append(parts, string(runes))
			break
		}

		cut := limit
		window := string(runes[:limit])
		if idx := strings.LastIndexByte(window, '\n'); idx > 0 {
			cut = utf8.RuneCountInString(window[:idx+1])
		} else if idx := strings.LastIndexByte(window, ' '); idx > 0 {
			cut = utf8.RuneCountInString(window[:idx+1])
		}

		parts = append(parts, strings.TrimRight(string(runes[:cut]), " \n"))
		runes = runes[cut:]
	}
	return parts
}

// sendWithDeleteMarkup sends text to the message's chat with a delete button
// whose payload targets the prompting message.
func sendWithDeleteMarkup(ctx context.Context, b *bot.Bot, msg *models.Message, text string) error {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        text,
		ReplyMarkup: deleteMarkup(msg),
	})
	return err
}

// sendLongText sends text of any length, splitting it at Telegram's message
// size limit. Each part carries a delete button when withDelete is set.
func sendLongText(ctx context.Context, b *bot.Bot, msg *models.Message, text string, withDelete bool) error {
	for _, part := range splitMessage(text, maxMessageLength) {
		params := &bot.SendMessageParams{
			ChatID: msg.Chat.ID,
			Text:   part,
		}
		if withDelete {
			params.ReplyMarkup = deleteMarkup(msg)
		}
		if _, err := b.SendMessage(ctx, params); err != nil {
			return err
		}
	}
	return nil
}

// deleteMarkup builds the single-button markup that deletes both the
// prompting message and the bot's reply.
func deleteMarkup(msg *models.Message) models.ReplyMarkup {
	return models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{{
			{
				Text:         "🗑️",
				CallbackData: callback.Delete{ChatID: msg.Chat.ID, MessageID: msg.ID}.Encode(),
			},
		}},
	}
}

// pickerMarkup lays out one button per key, encoded with encode, in rows of
// rowWidth.
func pickerMarkup(keys []string, rowWidth int, encode func(string) string) models.ReplyMarkup {
	if rowWidth <= 0 {
		rowWidth = 2
	}
	var rows [][]models.InlineKeyboardButton
	for i, key := range keys {
		if i%rowWidth == 0 {
			rows = append(rows, nil)
		}
		rows[len(rows)-1] = append(rows[len(rows)-1], models.InlineKeyboardButton{
			Text:         key,
			CallbackData: encode(key),
		})
	}
	return models.InlineKeyboardMarkup{InlineKeyboard: rows}
}
