package handlers

import (
	"context"
	"fmt"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewMyIDHandler returns a handler for the /myid command.
func NewMyIDHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return Wrap(deps, "myid", myIDHandler{deps}.Handle)
}

type myIDHandler struct {
	deps HandlerDeps
}

func (h myIDHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) error {
	msg := incomingMessage(update)
	if msg == nil {
		return nil
	}

	var text string
	if msg.From != nil {
		text = fmt.Sprintf("Greetings %s. Your Telegram ID is %d.", msg.From.FirstName, msg.From.ID)
	} else {
		text = fmt.Sprintf("This chat's Telegram ID is %d.", msg.Chat.ID)
	}

	return sendWithDeleteMarkup(ctx, b, msg, text)
}
