package handlers

import (
	"context"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
)

// inlineTrigger marks an inline query as complete and ready to answer.
const inlineTrigger = "..."

// NewDefaultHandler returns the catch-all handler for updates no registered
// command matched: free-form text goes to text generation, unknown commands
// get the usage reply, and inline queries ending in "..." are answered with a
// generated article. Free-form text honors chat suspension.
func NewDefaultHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return ActiveOnly(deps)(Wrap(deps, "default", defaultHandler{deps}.Handle))
}

type defaultHandler struct {
	deps HandlerDeps
}

func (h defaultHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) error {
	if update.InlineQuery != nil {
		return h.handleInline(ctx, b, update.InlineQuery)
	}

	msg := incomingMessage(update)
	if msg == nil || msg.Text == "" {
		return nil
	}

	if isCommand(msg.Text) {
		return sendWithDeleteMarkup(ctx, b, msg, h.deps.Config.Telegram.Messages.Usage)
	}

	return generateChatReply(ctx, b, h.deps, msg, msg.Text)
}

func (h defaultHandler) handleInline(ctx context.Context, b *tgbot.Bot, query *models.InlineQuery) error {
	prompt, ok := strings.CutSuffix(strings.TrimSpace(query.Query), inlineTrigger)
	if !ok || strings.TrimSpace(prompt) == "" {
		return nil
	}
	prompt = strings.TrimSpace(prompt)

	chat, err := h.deps.Store.GetOrCreateChat(ctx, query.From.ID)
	if err != nil {
		return err
	}

	genCtx, cancel := context.WithTimeout(ctx, h.deps.Config.Generation.Timeout)
	defer cancel()

	// Inline answers are one-shot; the chat transcript is neither replayed
	// nor extended.
	reply, _, err := h.deps.Generator.GenerateText(genCtx, chat.Provider, prompt, chat.Intro, "")
	if err != nil {
		return err
	}

	_, err = b.AnswerInlineQuery(ctx, &tgbot.AnswerInlineQueryParams{
		InlineQueryID: query.ID,
		Results: []models.InlineQueryResult{
			&models.InlineQueryResultArticle{
				ID:          uuid.NewString(),
				Title:       prompt,
				Description: reply,
				InputMessageContent: &models.InputTextMessageContent{
					MessageText: reply,
				},
			},
		},
	})

	return err
}
