package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load loads and validates configuration from, in order of precedence:
// 1. Default values
// 2. The config file at path (optional, missing file is not an error)
// 3. BOT_* environment variables
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("%w: failed to read config file: %v", ErrConfiguration, err)
		}
		// Missing config file is fine, defaults plus env vars apply.
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrConfiguration, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return cfg, nil
}

// Validate checks the configuration against its struct tags and the
// cross-field rules that tags cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if _, ok := c.Generation.Providers[c.Generation.DefaultProvider]; !ok {
		return fmt.Errorf("default_provider %q is not in the configured provider set", c.Generation.DefaultProvider)
	}

	// "speech" marks text-to-speech records in pending regeneration actions,
	// so a text provider must not claim the same key.
	if _, ok := c.Generation.Providers["speech"]; ok {
		return fmt.Errorf("provider key %q is reserved for speech regeneration", "speech")
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.json", DefaultLogJSON)

	v.SetDefault("database.path", DefaultDBPath)
	v.SetDefault("database.pending_ttl", DefaultPendingTTL)

	v.SetDefault("generation.default_provider", DefaultProvider)
	v.SetDefault("generation.default_voice", DefaultVoice)
	v.SetDefault("generation.default_intro", DefaultIntro)
	v.SetDefault("generation.max_tokens", DefaultMaxTokens)
	v.SetDefault("generation.timeout", DefaultGenerationTimeout)
	v.SetDefault("generation.awesome_prompts", DefaultAwesomePrompts)

	v.SetDefault("telegram.messages.usage", DefaultMessages.Usage)
	v.SetDefault("telegram.messages.admin_usage", DefaultMessages.AdminUsage)
	v.SetDefault("telegram.messages.not_authorized", DefaultMessages.NotAuthorized)
	v.SetDefault("telegram.messages.text_required", DefaultMessages.TextRequired)
	v.SetDefault("telegram.messages.general_error", DefaultMessages.GeneralError)
	v.SetDefault("telegram.messages.suspended", DefaultMessages.Suspended)
	v.SetDefault("telegram.messages.resumed", DefaultMessages.Resumed)
	v.SetDefault("telegram.messages.chat_reset", DefaultMessages.ChatReset)
	v.SetDefault("telegram.messages.intro_set", DefaultMessages.IntroSet)
	v.SetDefault("telegram.messages.intro_too_short", DefaultMessages.IntroTooShort)
	v.SetDefault("telegram.messages.voice_set", DefaultMessages.VoiceSet)
	v.SetDefault("telegram.messages.provider_set", DefaultMessages.ProviderSet)
	v.SetDefault("telegram.messages.choose_voice", DefaultMessages.ChooseVoice)
	v.SetDefault("telegram.messages.choose_provider", DefaultMessages.ChooseProvider)
	v.SetDefault("telegram.messages.choose_awesome", DefaultMessages.ChooseAwesome)
	v.SetDefault("telegram.messages.history_empty", DefaultMessages.HistoryEmpty)
	v.SetDefault("telegram.messages.prompt_expired", DefaultMessages.PromptExpired)
	v.SetDefault("telegram.messages.tables_cleared", DefaultMessages.TablesCleared)

	v.SetDefault("scheduler.tasks", DefaultSchedulerTasks)
}
