package generation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
	"google.golang.org/genai"

	"github.com/edgard/genbot/internal/config"
)

const (
	geminiMaxRetries = 3
	geminiRetryDelay = 2 * time.Second
)

// geminiBackend serves the Gemini API. Text generation only; image and
// speech requests fall through to an OpenAI-compatible backend.
type geminiBackend struct {
	client      *genai.Client
	logger      *slog.Logger
	model       string
	temperature float32
}

func newGeminiBackend(pc config.ProviderConfig, logger *slog.Logger) (*geminiBackend, error) {
	gi, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  pc.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiBackend{
		client:      gi,
		logger:      logger,
		model:       pc.Model,
		temperature: pc.Temperature,
	}, nil
}

func (b *geminiBackend) generateText(ctx context.Context, messages []turn, maxTokens int) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature: &b.temperature,
		SafetySettings: []*genai.SafetySetting{
			{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockNone},
			{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockNone},
			{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockNone},
			{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockNone},
		},
	}
	if maxTokens > 0 {
		cfg.MaxOutputTokens = int32(maxTokens)
	}

	var contents []*genai.Content
	for _, m := range messages {
		switch m.Role {
		case "system":
			cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: m.Content}}}
		case roleAssistant:
			contents = append(contents, &genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{{Text: m.Content}}})
		default:
			contents = append(contents, &genai.Content{Role: genai.RoleUser, Parts: []*genai.Part{{Text: m.Content}}})
		}
	}

	var resp *genai.GenerateContentResponse
	err := retry.Do(
		func() error {
			var reqErr error
			resp, reqErr = b.client.Models.GenerateContent(ctx, b.model, contents, cfg)
			return reqErr
		},
		retry.Context(ctx),
		retry.Attempts(geminiMaxRetries),
		retry.Delay(geminiRetryDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			b.logger.WarnContext(ctx, "Gemini request failed, retrying", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty response")
	}
	return text, nil
}

func (b *geminiBackend) generateImage(context.Context, string) ([]byte, error) {
	return nil, fmt.Errorf("gemini backend does not generate images")
}

func (b *geminiBackend) generateSpeech(context.Context, string, string) ([]byte, error) {
	return nil, fmt.Errorf("gemini backend does not synthesize speech")
}

func (b *geminiBackend) supportsImages() bool { return false }
func (b *geminiBackend) supportsSpeech() bool { return false }
