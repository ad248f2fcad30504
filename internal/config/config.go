package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Mode is the delivery mode, fixed once at startup.
type Mode string

const (
	// ModeWebhook delivers through a one-shot webhook POST.
	ModeWebhook Mode = "webhook"
	// ModeBot delivers through a persistent Discord gateway session.
	ModeBot Mode = "bot"
)

// Config holds all environment-derived settings. It is built once in main
// and passed explicitly to each component; nothing reads the environment
// after startup.
type Config struct {
	Discord  DiscordConfig
	AI       AIConfig
	Tracker  TrackerConfig
	Schedule ScheduleConfig

	// Language directs quote output: EN, MM, or EN_MM.
	Language string
	// RunOnStart triggers one extra pipeline run at startup.
	RunOnStart bool
	// DataDir holds the run-history database.
	DataDir string
}

// DiscordConfig identifies the delivery target.
type DiscordConfig struct {
	BotToken   string // DISCORD_BOT_TOKEN
	ChannelID  string // DISCORD_CHANNEL_ID
	WebhookURL string // DISCORD_WEBHOOK_URL; presence selects webhook mode
}

// AIConfig shapes the text-generation request.
type AIConfig struct {
	BaseURL     string  // AI_API_BASE_URL
	Model       string  // AI_MODEL
	APIKey      string  // AI_API_KEY
	MaxTokens   int     // AI_MAX_TOKENS
	Temperature float32 // AI_TEMPERATURE
}

// TrackerConfig enables the task-context fetch; empty credentials disable it.
type TrackerConfig struct {
	Token   string // CLICKUP_TOKEN
	TeamID  string // CLICKUP_TEAM_ID
	BaseURL string // CLICKUP_API_URL
}

// ScheduleConfig drives the recurring job.
type ScheduleConfig struct {
	Cron     string // CRON_SCHEDULE
	Timezone string // TIMEZONE
}

// Load reads configuration from the environment, applying defaults for
// unset or non-numeric values.
func Load() *Config {
	return &Config{
		Discord: DiscordConfig{
			BotToken:   getEnv("DISCORD_BOT_TOKEN", ""),
			ChannelID:  getEnv("DISCORD_CHANNEL_ID", ""),
			WebhookURL: getEnv("DISCORD_WEBHOOK_URL", ""),
		},
		AI: AIConfig{
			BaseURL:     getEnv("AI_API_BASE_URL", "https://api.openai.com/v1"),
			Model:       getEnv("AI_MODEL", "gpt-4o-mini"),
			APIKey:      getEnv("AI_API_KEY", ""),
			MaxTokens:   getEnvInt("AI_MAX_TOKENS", 220),
			Temperature: getEnvFloat("AI_TEMPERATURE", 0.8),
		},
		Tracker: TrackerConfig{
			Token:   getEnv("CLICKUP_TOKEN", ""),
			TeamID:  getEnv("CLICKUP_TEAM_ID", ""),
			BaseURL: getEnv("CLICKUP_API_URL", "https://api.clickup.com/api/v2"),
		},
		Schedule: ScheduleConfig{
			Cron:     getEnv("CRON_SCHEDULE", "0 9 * * *"),
			Timezone: getEnv("TIMEZONE", "Asia/Yangon"),
		},
		Language:   strings.ToUpper(getEnv("QUOTE_LANGUAGE", "EN")),
		RunOnStart: getEnvBool("RUN_ON_START", false),
		DataDir:    getEnv("DATA_DIR", "data"),
	}
}

// Mode returns the delivery mode: webhook when a webhook URL is configured,
// bot-client otherwise. The mode never changes during the process lifetime.
func (c *Config) Mode() Mode {
	if c.Discord.WebhookURL != "" {
		return ModeWebhook
	}
	return ModeBot
}

// DBPath returns the run-history database path.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "devquote.db")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float32) float32 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			return float32(f)
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
