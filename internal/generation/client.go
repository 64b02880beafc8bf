// Package generation integrates the configured text, image, and speech
// backends behind one capability interface. The conversation transcript
// format is owned by this package; callers treat it as an opaque string.
package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/edgard/genbot/internal/config"
)

var (
	// ErrInvalidProvider is returned when a provider key is not in the
	// configured provider set.
	ErrInvalidProvider = errors.New("unknown provider")

	// ErrInvalidVoice is returned when a voice name is not in the supported
	// voice set.
	ErrInvalidVoice = errors.New("unknown voice")

	// ErrSpeechUnavailable is returned when no configured backend can
	// synthesize speech.
	ErrSpeechUnavailable = errors.New("no speech-capable provider configured")
)

// Client is the capability interface handlers call for all generation work.
// Every method honors the context deadline; no partial state is committed on
// timeout.
type Client interface {
	// GenerateText produces a reply to prompt given the chat's intro and
	// opaque transcript, returning the reply and the updated transcript.
	GenerateText(ctx context.Context, providerKey, prompt, intro, history string) (reply, newHistory string, err error)

	// GenerateImage renders prompt as PNG bytes using the given provider,
	// falling back to an image-capable one when the key cannot draw.
	// It returns the provider key actually used.
	GenerateImage(ctx context.Context, providerKey, prompt string) (usedProvider string, image []byte, err error)

	// GenerateSpeech synthesizes text into audio bytes with the given voice.
	GenerateSpeech(ctx context.Context, text, voice string) ([]byte, error)

	// Providers returns the configured provider keys, sorted.
	Providers() []string

	// Voices returns the supported speech voices.
	Voices() []string

	// ValidateProvider checks a provider key before it is persisted.
	ValidateProvider(key string) error

	// ValidateVoice checks a voice name before it is persisted.
	ValidateVoice(name string) error
}

// backend is one configured provider implementation.
type backend interface {
	generateText(ctx context.Context, messages []turn, maxTokens int) (string, error)
	generateImage(ctx context.Context, prompt string) ([]byte, error)
	generateSpeech(ctx context.Context, text, voice string) ([]byte, error)
	supportsImages() bool
	supportsSpeech() bool
}

type client struct {
	logger          *slog.Logger
	cfg             config.GenerationConfig
	backends        map[string]backend
	speechProvider  string
	defaultProvider string
}

// NewClient builds the provider registry from configuration. Backends are
// constructed eagerly so misconfiguration fails at startup, not mid-chat.
func NewClient(cfg config.GenerationConfig, logger *slog.Logger) (Client, error) {
	if len(cfg.Providers) == 0 {
		return nil, fmt.Errorf("at least one provider must be configured")
	}
	log := logger.With("component", "generation_client")

	backends := make(map[string]backend, len(cfg.Providers))
	for key, pc := range cfg.Providers {
		var (
			b   backend
			err error
		)
		switch pc.Type {
		case "openai":
			b = newOpenAIBackend(pc, log.With("provider", key))
		case "gemini":
			b, err = newGeminiBackend(pc, log.With("provider", key))
		default:
			err = fmt.Errorf("provider %q has unsupported type %q", key, pc.Type)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to initialize provider %q: %w", key, err)
		}
		backends[key] = b
	}

	if _, ok := backends[cfg.DefaultProvider]; !ok {
		return nil, fmt.Errorf("default provider %q is not configured", cfg.DefaultProvider)
	}

	c := &client{
		logger:          log,
		cfg:             cfg,
		backends:        backends,
		defaultProvider: cfg.DefaultProvider,
		speechProvider:  pickSpeechProvider(backends, cfg.DefaultProvider),
	}

	log.Info("Generation client initialized",
		"providers", c.Providers(),
		"default_provider", cfg.DefaultProvider,
		"speech_provider", c.speechProvider)
	return c, nil
}

// pickSpeechProvider prefers the default provider, then the first
// speech-capable key in sorted order. Empty when nothing can speak.
func pickSpeechProvider(backends map[string]backend, defaultKey string) string {
	if b, ok := backends[defaultKey]; ok && b.supportsSpeech() {
		return defaultKey
	}
	keys := make([]string, 0, len(backends))
	for k := range backends {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if backends[k].supportsSpeech() {
			return k
		}
	}
	return ""
}

func (c *client) GenerateText(ctx context.Context, providerKey, prompt, intro, history string) (string, string, error) {
	b, ok := c.backends[providerKey]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidProvider, providerKey)
	}

	turns, err := decodeHistory(history)
	if err != nil {
		// A corrupt transcript should not brick the chat; start fresh.
		c.logger.WarnContext(ctx, "Discarding undecodable history", "provider", providerKey, "error", err)
		turns = nil
	}

	messages := buildMessages(intro, turns, prompt, c.cfg.MaxTokens)

	reply, err := b.generateText(ctx, messages, c.cfg.MaxTokens)
	if err != nil {
		return "", "", fmt.Errorf("text generation via %s failed: %w", providerKey, err)
	}

	turns = append(turns, turn{Role: roleUser, Content: prompt}, turn{Role: roleAssistant, Content: reply})
	newHistory, err := encodeHistory(turns)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode history: %w", err)
	}

	return reply, newHistory, nil
}

func (c *client) GenerateImage(ctx context.Context, providerKey, prompt string) (string, []byte, error) {
	key := providerKey
	b, ok := c.backends[key]
	if !ok || !b.supportsImages() {
		key = c.defaultProvider
		b = c.backends[key]
	}
	if !b.supportsImages() {
		return "", nil, fmt.Errorf("%w: no image-capable provider", ErrInvalidProvider)
	}

	image, err := b.generateImage(ctx, prompt)
	if err != nil {
		return "", nil, fmt.Errorf("image generation via %s failed: %w", key, err)
	}
	return key, image, nil
}

func (c *client) GenerateSpeech(ctx context.Context, text, voice string) ([]byte, error) {
	if err := c.ValidateVoice(voice); err != nil {
		return nil, err
	}
	if c.speechProvider == "" {
		return nil, ErrSpeechUnavailable
	}

	audio, err := c.backends[c.speechProvider].generateSpeech(ctx, text, voice)
	if err != nil {
		return nil, fmt.Errorf("speech synthesis via %s failed: %w", c.speechProvider, err)
	}
	return audio, nil
}

func (c *client) Providers() []string {
	keys := make([]string, 0, len(c.backends))
	for k := range c.backends {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *client) Voices() []string {
	return append([]string(nil), speechVoices...)
}

func (c *client) ValidateProvider(key string) error {
	if _, ok := c.backends[key]; !ok {
		return fmt.Errorf("%w: %s", ErrInvalidProvider, key)
	}
	return nil
}

func (c *client) ValidateVoice(name string) error {
	for _, v := range speechVoices {
		if v == name {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidVoice, name)
}
