package config

import "time"

// Default values for optional configuration parameters.
const (
	DefaultLogLevel = "info"
	DefaultLogJSON  = true

	DefaultDBPath     = "genbot.db"
	DefaultPendingTTL = 24 * time.Hour

	DefaultProvider          = "openai"
	DefaultVoice             = "alloy"
	DefaultIntro             = "You are a helpful assistant focused on providing clear and accurate responses."
	DefaultMaxTokens         = 600
	DefaultGenerationTimeout = 30 * time.Second
)

// DefaultMessages holds the stock reply text. Every entry can be overridden
// via config.yaml or a BOT_TELEGRAM_MESSAGES_* environment variable.
var DefaultMessages = Messages{
	Usage: "Welcome! I chat, draw and speak.\n\n" +
		"/chat <text> : chat with the AI (or just send text)\n" +
		"/image <text> : generate an image from text\n" +
		"/speak <text> : generate speech from text\n" +
		"/intro <text> : set the chat intro prompt\n" +
		"/voice [name] : pick a speech voice\n" +
		"/provider [key] : pick a generation provider\n" +
		"/awesome [key] : use a pre-authored intro\n" +
		"/history : show the conversation transcript\n" +
		"/check : show current settings\n" +
		"/reset : start a new chat thread\n" +
		"/myid : show your Telegram ID\n" +
		"/start, /help : this message",
	AdminUsage: "\n\nAdmin commands:\n" +
		"/suspend : pause the service for this chat\n" +
		"/resume : resume a paused chat\n" +
		"/clear : wipe all chats and pending actions\n" +
		"/total : count stored chats\n" +
		"/sql <stmt> : run a raw SQL statement",
	NotAuthorized:  "You are not authorized to use this command.",
	TextRequired:   "Text is required for this command.",
	GeneralError:   "An error occurred and the request could not be completed. Please try again later.",
	Suspended:      "Service suspended for this chat.",
	Resumed:        "Service resumed.",
	ChatReset:      "New chat thread started.",
	IntroSet:       "New intro set successfully.",
	IntroTooShort:  "The chat intro must be at least 10 characters long.",
	VoiceSet:       "New voice set: %s",
	ProviderSet:    "New provider set: %s",
	ChooseVoice:    "Choose a voice:",
	ChooseProvider: "Choose a provider:",
	ChooseAwesome:  "Choose an awesome prompt:",
	HistoryEmpty:   "Your chat history is empty.",
	PromptExpired:  "The cached prompt is no longer available.",
	TablesCleared:  "All chats and pending actions cleared.",
}

// DefaultAwesomePrompts are the built-in named intro templates selectable
// with /awesome. Deployments can replace the whole map in config.yaml.
var DefaultAwesomePrompts = map[string]string{
	"translator": "You are an English translator. Translate everything I say into corrected, idiomatic English and reply with the translation only.",
	"interviewer": "You are an interviewer for a software engineering position. Ask me interview questions one at a time and wait for my answers.",
	"travel-guide": "You are a travel guide. I will tell you my location and you will suggest places worth visiting nearby, including short reasons.",
	"storyteller": "You are a storyteller. Come up with engaging short stories on the themes I give you, keeping each reply under four paragraphs.",
	"socrates": "You are Socrates. Engage with my statements using the Socratic method, questioning my assumptions one step at a time.",
}

// DefaultSchedulerTasks enables the background maintenance jobs.
var DefaultSchedulerTasks = map[string]TaskConfig{
	"pending_cleanup": {Enabled: true, Schedule: "0 * * * *"},
	"sql_maintenance": {Enabled: true, Schedule: "0 4 * * *"},
}
