// Package config manages application configuration from default values,
// an optional config.yaml file, and BOT_-prefixed environment variables.
package config

import (
	"errors"
	"time"

	"github.com/go-telegram/bot/models"
)

// ErrConfiguration indicates a configuration loading or validation failure.
var ErrConfiguration = errors.New("configuration error")

// Config defines the application configuration. Values can be set via
// environment variables prefixed with BOT_ (e.g. BOT_TELEGRAM_TOKEN) or
// through config.yaml.
type Config struct {
	Log        LogConfig        `mapstructure:"log"`
	Telegram   TelegramConfig   `mapstructure:"telegram"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Generation GenerationConfig `mapstructure:"generation"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler"`
}

// LogConfig controls structured logging output.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds bot transport settings and user-facing message text.
type TelegramConfig struct {
	Token    string   `mapstructure:"token"     validate:"required"`
	AdminIDs []int64  `mapstructure:"admin_ids" validate:"required,min=1,dive,gt=0"`
	Messages Messages `mapstructure:"messages"`

	// BotInfo is populated at startup from GetMe, not from the config file.
	BotInfo *models.User `mapstructure:"-"`
}

// Messages holds all user-visible reply text so deployments can reword the bot.
type Messages struct {
	Usage          string `mapstructure:"usage"           validate:"required"`
	AdminUsage     string `mapstructure:"admin_usage"     validate:"required"`
	NotAuthorized  string `mapstructure:"not_authorized"  validate:"required"`
	TextRequired   string `mapstructure:"text_required"   validate:"required"`
	GeneralError   string `mapstructure:"general_error"   validate:"required"`
	Suspended      string `mapstructure:"suspended"       validate:"required"`
	Resumed        string `mapstructure:"resumed"         validate:"required"`
	ChatReset      string `mapstructure:"chat_reset"      validate:"required"`
	IntroSet       string `mapstructure:"intro_set"       validate:"required"`
	IntroTooShort  string `mapstructure:"intro_too_short" validate:"required"`
	VoiceSet       string `mapstructure:"voice_set"       validate:"required"`
	ProviderSet    string `mapstructure:"provider_set"    validate:"required"`
	ChooseVoice    string `mapstructure:"choose_voice"    validate:"required"`
	ChooseProvider string `mapstructure:"choose_provider" validate:"required"`
	ChooseAwesome  string `mapstructure:"choose_awesome"  validate:"required"`
	HistoryEmpty   string `mapstructure:"history_empty"   validate:"required"`
	PromptExpired  string `mapstructure:"prompt_expired"  validate:"required"`
	TablesCleared  string `mapstructure:"tables_cleared"  validate:"required"`
}

// DatabaseConfig holds SQLite connection settings and the pending-action
// retention window.
type DatabaseConfig struct {
	Path       string        `mapstructure:"path"        validate:"required"`
	PendingTTL time.Duration `mapstructure:"pending_ttl" validate:"required,min=1m"`
}

// ProviderConfig describes one generation backend reachable under a provider key.
type ProviderConfig struct {
	Type        string  `mapstructure:"type"        validate:"required,oneof=openai gemini"`
	APIKey      string  `mapstructure:"api_key"     validate:"required"`
	BaseURL     string  `mapstructure:"base_url"    validate:"omitempty,url"`
	Model       string  `mapstructure:"model"       validate:"required"`
	Temperature float32 `mapstructure:"temperature" validate:"min=0,max=2"`
}

// GenerationConfig holds the provider set, default chat settings, and the
// request budget applied to every outbound generation call.
type GenerationConfig struct {
	DefaultProvider string                    `mapstructure:"default_provider" validate:"required"`
	DefaultVoice    string                    `mapstructure:"default_voice"    validate:"required"`
	DefaultIntro    string                    `mapstructure:"default_intro"    validate:"required,min=10"`
	MaxTokens       int                       `mapstructure:"max_tokens"       validate:"min=100,max=30000"`
	Timeout         time.Duration             `mapstructure:"timeout"          validate:"required,min=1s,max=10m"`
	Providers       map[string]ProviderConfig `mapstructure:"providers"        validate:"required,min=1,dive"`
	AwesomePrompts  map[string]string         `mapstructure:"awesome_prompts"`
}

// TaskConfig enables and schedules one background task.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// SchedulerConfig maps task names to their schedules.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// IsAdmin reports whether the given Telegram user ID is one of the
// configured bot administrators.
func (c *TelegramConfig) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}
