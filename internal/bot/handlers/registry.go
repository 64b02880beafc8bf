package handlers

import (
	tgbot "github.com/go-telegram/bot"
)

// RegisteredHandler bundles everything needed to register one handler with
// the bot library, plus the command description shown in the Telegram menu.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	Description string
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
	MatchType   tgbot.MatchType
}

// RegisterAllCommands builds the full command and callback handler set with
// each handler's middleware chain. /start and /resume skip the active-chat
// gate so suspended chats can always be revived, and administrative commands
// are restricted to configured admin IDs.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	activeOnly := ActiveOnly(deps)
	adminOnly := AdminOnly(deps)
	requireArgument := RequireArgument(deps)

	return map[string]RegisteredHandler{
		"start": {
			HandlerType: tgbot.HandlerTypeMessageText,
			Pattern:     "start",
			Description: "Show usage help",
			Handler:     NewStartHandler(deps),
			MatchType:   tgbot.MatchTypeCommandStartOnly,
		},
		"help": {
			HandlerType: tgbot.HandlerTypeMessageText,
			Pattern:     "help",
			Description: "Show usage help",
			Handler:     NewStartHandler(deps),
			MatchType:   tgbot.MatchTypeCommandStartOnly,
		},
		"myid": {
			HandlerType: tgbot.HandlerTypeMessageText,
			Pattern:     "myid",
			Description: "Show your Telegram ID",
			Handler:     NewMyIDHandler(deps),
			Middleware:  []tgbot.Middleware{activeOnly},
			MatchType:   tgbot.MatchTypeCommandStartOnly,
		},
		"chat": {
			HandlerType: tgbot.HandlerTypeMessageText,
			Pattern:     "chat",
			Description: "Chat with the bot",
			Handler:     NewChatHandler(deps),
			Middleware:  []tgbot.Middleware{activeOnly, requireArgument},
			MatchType:   tgbot.MatchTypeCommandStartOnly,
		},
		"image": {
			HandlerType: tgbot.HandlerTypeMessageText,
			Pattern:     "image",
			Description: "Generate an image",
			Handler:     NewImageHandler(deps),
			Middleware:  []tgbot.Middleware{activeOnly, requireArgument},
			MatchType:   tgbot.MatchTypeCommandStartOnly,
		},
		"speak": {
			HandlerType: tgbot.HandlerTypeMessageText,
			Pattern:     "speak",
			Description: "Turn text into speech",
			Handler:     NewSpeakHandler(deps),
			Middleware:  []tgbot.Middleware{activeOnly, requireArgument},
			MatchType:   tgbot.MatchTypeCommandStartOnly,
		},
		"intro": {
			HandlerType: tgbot.HandlerTypeMessageText,
			Pattern:     "intro",
			Description: "Set the chat intro prompt",
			Handler:     NewIntroHandler(deps),
			Middleware:  []tgbot.Middleware{activeOnly, requireArgument},
			MatchType:   tgbot.MatchTypeCommandStartOnly,
		},
		"voice": {
			HandlerType: tgbot.HandlerTypeMessageText,
			Pattern:     "voice",
			Description: "Pick a speech voice",
			Handler:     NewVoiceHandler(deps),
			Middleware:  []tgbot.Middleware{activeOnly},
			MatchType:   tgbot.MatchTypeCommandStartOnly,
		},
		"provider": {
			HandlerType: tgbot.HandlerTypeMessageText,
			Pattern:     "provider",
			Description: "Pick a generation provider",
			Handler:     NewProviderHandler(deps),
			Middleware:  []tgbot.Middleware{activeOnly},
			MatchType:   tgbot.MatchTypeCommandStartOnly,
		},
		"awesome": {
			HandlerType: tgbot.HandlerTypeMessageText,
			Pattern:     "awesome",
			Description: "Pick an awesome intro prompt",
			Handler:     NewAwesomeHandler(deps),
			Middleware:  []tgbot.Middleware{activeOnly},
			MatchType:   tgbot.MatchTypeCommandStartOnly,
		},
		"check": {
			HandlerType: tgbot.HandlerTypeMessageText,
			Pattern:     "check",
			Description: "Show current chat settings",
			Handler:     NewCheckHandler(deps),
			Middleware:  []tgbot.Middleware{activeOnly},
			MatchType:   tgbot.MatchTypeCommandStartOnly,
		},
		"history": {
			HandlerType: tgbot.HandlerTypeMessageText,
			Pattern:     "history",
			Description: "Show the chat transcript",
			Handler:     NewHistoryHandler(deps),
			Middleware:  []tgbot.Middleware{activeOnly},
			MatchType:   tgbot.MatchTypeCommandStartOnly,
		},
		"reset": {
			HandlerType: tgbot.HandlerTypeMessageText,
			Pattern:     "reset",
			Description: "Reset this chat to defaults",
			Handler:     NewResetHandler(deps),
			Middleware:  []tgbot.Middleware{activeOnly},
			MatchType:   tgbot.MatchTypeCommandStartOnly,
		},
		"suspend": {
			HandlerType: tgbot.HandlerTypeMessageText,
			Pattern:     "suspend",
			Handler:     NewSuspendHandler(deps),
			Middleware:  []tgbot.Middleware{adminOnly},
			MatchType:   tgbot.MatchTypeCommandStartOnly,
		},
		"resume": {
			HandlerType: tgbot.HandlerTypeMessageText,
			Pattern:     "resume",
			Handler:     NewResumeHandler(deps),
			Middleware:  []tgbot.Middleware{adminOnly},
			MatchType:   tgbot.MatchTypeCommandStartOnly,
		},
		"clear": {
			HandlerType: tgbot.HandlerTypeMessageText,
			Pattern:     "clear",
			Handler:     NewClearHandler(deps),
			Middleware:  []tgbot.Middleware{adminOnly},
			MatchType:   tgbot.MatchTypeCommandStartOnly,
		},
		"total": {
			HandlerType: tgbot.HandlerTypeMessageText,
			Pattern:     "total",
			Handler:     NewTotalHandler(deps),
			Middleware:  []tgbot.Middleware{adminOnly},
			MatchType:   tgbot.MatchTypeCommandStartOnly,
		},
		"sql": {
			HandlerType: tgbot.HandlerTypeMessageText,
			Pattern:     "sql",
			Handler:     NewSQLHandler(deps),
			Middleware:  []tgbot.Middleware{adminOnly, requireArgument},
			MatchType:   tgbot.MatchTypeCommandStartOnly,
		},
		"callback": {
			HandlerType: tgbot.HandlerTypeCallbackQueryData,
			Pattern:     "",
			Handler:     NewCallbackHandler(deps),
			MatchType:   tgbot.MatchTypePrefix,
		},
	}
}
