package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/edgard/genbot/internal/config"
)

const validConfig = `
telegram:
  token: "123456:test-token"
  admin_ids: [111]
generation:
  providers:
    openai:
      type: openai
      api_key: sk-test
      model: gpt-4o-mini
`

// writeConfig writes yaml content to a temp file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if cfg.Database.PendingTTL != 24*time.Hour {
		t.Errorf("Database.PendingTTL = %v, want 24h", cfg.Database.PendingTTL)
	}
	if cfg.Generation.DefaultProvider != "openai" {
		t.Errorf("Generation.DefaultProvider = %q, want openai", cfg.Generation.DefaultProvider)
	}
	if cfg.Telegram.Messages.Usage == "" {
		t.Error("default usage message is empty")
	}
	if len(cfg.Generation.AwesomePrompts) == 0 {
		t.Error("default awesome prompts are empty")
	}
	if cfg.Scheduler.Tasks["pending_cleanup"].Schedule == "" {
		t.Error("pending_cleanup task has no default schedule")
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(writeConfig(t, validConfig+`
log:
  level: debug
  json: true
database:
  pending_ttl: 2h
`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if !cfg.Log.JSON {
		t.Error("Log.JSON = false, want true")
	}
	if cfg.Database.PendingTTL != 2*time.Hour {
		t.Errorf("Database.PendingTTL = %v, want 2h", cfg.Database.PendingTTL)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("BOT_LOG_LEVEL", "warn")

	cfg, err := config.Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn from environment", cfg.Log.Level)
	}
}

func TestLoadValidation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
	}{
		{
			name: "missing token",
			content: `
telegram:
  admin_ids: [111]
generation:
  providers:
    openai:
      type: openai
      api_key: sk-test
      model: gpt-4o-mini
`,
		},
		{
			name: "missing admin ids",
			content: `
telegram:
  token: "123456:test-token"
generation:
  providers:
    openai:
      type: openai
      api_key: sk-test
      model: gpt-4o-mini
`,
		},
		{
			name: "no providers",
			content: `
telegram:
  token: "123456:test-token"
  admin_ids: [111]
`,
		},
		{
			name: "unknown provider type",
			content: `
telegram:
  token: "123456:test-token"
  admin_ids: [111]
generation:
  providers:
    openai:
      type: mystery
      api_key: sk-test
      model: gpt-4o-mini
`,
		},
		{
			name: "default provider not configured",
			content: `
telegram:
  token: "123456:test-token"
  admin_ids: [111]
generation:
  default_provider: gemini
  providers:
    openai:
      type: openai
      api_key: sk-test
      model: gpt-4o-mini
`,
		},
		{
			name: "reserved speech provider key",
			content: `
telegram:
  token: "123456:test-token"
  admin_ids: [111]
generation:
  default_provider: openai
  providers:
    openai:
      type: openai
      api_key: sk-test
      model: gpt-4o-mini
    speech:
      type: openai
      api_key: sk-test
      model: gpt-4o-mini
`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := config.Load(writeConfig(t, tc.content)); err == nil {
				t.Error("Load succeeded, want validation error")
			}
		})
	}
}

func TestIsAdmin(t *testing.T) {
	t.Parallel()

	cfg := config.TelegramConfig{AdminIDs: []int64{111, 222}}

	if !cfg.IsAdmin(111) {
		t.Error("IsAdmin(111) = false, want true")
	}
	if !cfg.IsAdmin(222) {
		t.Error("IsAdmin(222) = false, want true")
	}
	if cfg.IsAdmin(333) {
		t.Error("IsAdmin(333) = true, want false")
	}
}
