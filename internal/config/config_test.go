package config

import (
	"os"
	"testing"
)

var configEnvKeys = []string{
	"DISCORD_BOT_TOKEN", "DISCORD_CHANNEL_ID", "DISCORD_WEBHOOK_URL",
	"AI_API_BASE_URL", "AI_MODEL", "AI_API_KEY", "AI_MAX_TOKENS", "AI_TEMPERATURE",
	"CLICKUP_TOKEN", "CLICKUP_TEAM_ID", "CLICKUP_API_URL",
	"CRON_SCHEDULE", "TIMEZONE", "QUOTE_LANGUAGE", "RUN_ON_START", "DATA_DIR",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		orig, ok := os.LookupEnv(key)
		os.Unsetenv(key)
		if ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg := Load()

	if cfg.AI.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("BaseURL = %q, want %q", cfg.AI.BaseURL, "https://api.openai.com/v1")
	}
	if cfg.AI.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q, want %q", cfg.AI.Model, "gpt-4o-mini")
	}
	if cfg.AI.MaxTokens != 220 {
		t.Errorf("MaxTokens = %d, want 220", cfg.AI.MaxTokens)
	}
	if cfg.AI.Temperature != 0.8 {
		t.Errorf("Temperature = %v, want 0.8", cfg.AI.Temperature)
	}
	if cfg.Language != "EN" {
		t.Errorf("Language = %q, want EN", cfg.Language)
	}
	if cfg.Schedule.Cron != "0 9 * * *" {
		t.Errorf("Cron = %q, want %q", cfg.Schedule.Cron, "0 9 * * *")
	}
	if cfg.Schedule.Timezone != "Asia/Yangon" {
		t.Errorf("Timezone = %q, want Asia/Yangon", cfg.Schedule.Timezone)
	}
	if cfg.RunOnStart {
		t.Error("RunOnStart should default to false")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearConfigEnv(t)

	os.Setenv("AI_API_BASE_URL", "https://test.example.com/v1")
	os.Setenv("AI_MODEL", "test-model")
	os.Setenv("AI_API_KEY", "test-api-key")
	os.Setenv("QUOTE_LANGUAGE", "en_mm")
	os.Setenv("RUN_ON_START", "true")
	os.Setenv("CLICKUP_TOKEN", "pk_123")
	os.Setenv("CLICKUP_TEAM_ID", "9001")

	cfg := Load()

	if cfg.AI.BaseURL != "https://test.example.com/v1" {
		t.Errorf("BaseURL = %q, want %q", cfg.AI.BaseURL, "https://test.example.com/v1")
	}
	if cfg.AI.Model != "test-model" {
		t.Errorf("Model = %q, want %q", cfg.AI.Model, "test-model")
	}
	if cfg.AI.APIKey != "test-api-key" {
		t.Errorf("APIKey = %q, want %q", cfg.AI.APIKey, "test-api-key")
	}
	if cfg.Language != "EN_MM" {
		t.Errorf("Language = %q, want EN_MM (upper-cased)", cfg.Language)
	}
	if !cfg.RunOnStart {
		t.Error("RunOnStart should be true")
	}
	if cfg.Tracker.Token != "pk_123" || cfg.Tracker.TeamID != "9001" {
		t.Errorf("Tracker = %+v, want token pk_123 / team 9001", cfg.Tracker)
	}
}

func TestLoad_NonNumericFallsBack(t *testing.T) {
	clearConfigEnv(t)

	os.Setenv("AI_MAX_TOKENS", "lots")
	os.Setenv("AI_TEMPERATURE", "warm")
	os.Setenv("RUN_ON_START", "yes please")

	cfg := Load()

	if cfg.AI.MaxTokens != 220 {
		t.Errorf("MaxTokens = %d, want default 220", cfg.AI.MaxTokens)
	}
	if cfg.AI.Temperature != 0.8 {
		t.Errorf("Temperature = %v, want default 0.8", cfg.AI.Temperature)
	}
	if cfg.RunOnStart {
		t.Error("RunOnStart should fall back to false")
	}
}

func TestConfig_Mode(t *testing.T) {
	cfg := &Config{}
	if got := cfg.Mode(); got != ModeBot {
		t.Errorf("Mode() = %q, want %q", got, ModeBot)
	}

	cfg.Discord.WebhookURL = "https://discord.com/api/webhooks/1/abc"
	if got := cfg.Mode(); got != ModeWebhook {
		t.Errorf("Mode() = %q, want %q", got, ModeWebhook)
	}
}

func TestConfig_DBPath(t *testing.T) {
	cfg := &Config{DataDir: "/tmp/test"}
	if got := cfg.DBPath(); got != "/tmp/test/devquote.db" {
		t.Errorf("DBPath() = %q, want %q", got, "/tmp/test/devquote.db")
	}
}
