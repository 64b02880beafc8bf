package generation

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/sashabaranov/go-openai"

	"github.com/edgard/genbot/internal/config"
)

// speechVoices is the fixed voice set offered by the speech endpoint.
var speechVoices = []string{"alloy", "echo", "fable", "nova", "onyx", "shimmer"}

const (
	openAIMaxRetries = 3
	openAIRetryDelay = 2 * time.Second
)

// openAIBackend serves any OpenAI-compatible API, selected by base URL. It is
// the only backend type that can draw and speak.
type openAIBackend struct {
	client      *openai.Client
	logger      *slog.Logger
	model       string
	temperature float32
}

func newOpenAIBackend(pc config.ProviderConfig, logger *slog.Logger) *openAIBackend {
	apiCfg := openai.DefaultConfig(pc.APIKey)
	if pc.BaseURL != "" {
		apiCfg.BaseURL = pc.BaseURL
	}

	return &openAIBackend{
		client:      openai.NewClientWithConfig(apiCfg),
		logger:      logger,
		model:       pc.Model,
		temperature: pc.Temperature,
	}
}

func (b *openAIBackend) generateText(ctx context.Context, messages []turn, maxTokens int) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       b.model,
		Temperature: b.temperature,
		MaxTokens:   maxTokens,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	var resp openai.ChatCompletionResponse
	err := retry.Do(
		func() error {
			var reqErr error
			resp, reqErr = b.client.CreateChatCompletion(ctx, req)
			return reqErr
		},
		retry.Context(ctx),
		retry.Attempts(openAIMaxRetries),
		retry.Delay(openAIRetryDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			b.logger.WarnContext(ctx, "Chat completion failed, retrying", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (b *openAIBackend) generateImage(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := b.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, fmt.Errorf("image request failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("image request returned no data")
	}

	image, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image payload: %w", err)
	}
	return image, nil
}

func (b *openAIBackend) generateSpeech(ctx context.Context, text, voice string) ([]byte, error) {
	resp, err := b.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model: openai.TTSModel1,
		Input: text,
		Voice: openai.SpeechVoice(voice),
	})
	if err != nil {
		return nil, fmt.Errorf("speech request failed: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read speech payload: %w", err)
	}
	return audio, nil
}

func (b *openAIBackend) supportsImages() bool { return true }
func (b *openAIBackend) supportsSpeech() bool { return true }
