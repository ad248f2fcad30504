package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/KaungMyatSoe11/dev-quote-bot/internal/bot"
	"github.com/KaungMyatSoe11/dev-quote-bot/internal/config"
	"github.com/KaungMyatSoe11/dev-quote-bot/internal/delivery"
	"github.com/KaungMyatSoe11/dev-quote-bot/internal/history"
	"github.com/KaungMyatSoe11/dev-quote-bot/internal/quote"
	"github.com/KaungMyatSoe11/dev-quote-bot/internal/tracker"
)

const readyTimeout = 30 * time.Second

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	cfg := config.Load()

	// The run log is observational; failing to open it is not fatal.
	var store *history.Store
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		slog.Warn("create data dir", "dir", cfg.DataDir, "err", err)
	} else if s, err := history.Open(cfg.DBPath()); err != nil {
		slog.Warn("open run history", "path", cfg.DBPath(), "err", err)
	} else {
		store = s
		defer store.Close()
	}

	source := tracker.New(cfg.Tracker)
	generator := quote.NewGenerator(cfg.AI, cfg.Language)

	var dispatcher delivery.Dispatcher
	var session *discordgo.Session

	switch cfg.Mode() {
	case config.ModeWebhook:
		dispatcher = delivery.NewWebhook(cfg.Discord.WebhookURL)

	case config.ModeBot:
		s, err := discordgo.New("Bot " + cfg.Discord.BotToken)
		if err != nil {
			slog.Error("create discord session", "err", err)
			os.Exit(1)
		}
		s.Identify.Intents = discordgo.IntentsGuilds

		ready := make(chan struct{})
		s.AddHandlerOnce(func(_ *discordgo.Session, _ *discordgo.Ready) {
			close(ready)
		})

		// Failure to establish the login is the one fatal error.
		if err := s.Open(); err != nil {
			slog.Error("discord login failed", "err", err)
			os.Exit(1)
		}
		session = s
		defer session.Close()

		select {
		case <-ready:
			slog.Info("discord session ready", "user", session.State.User.Username)
		case <-time.After(readyTimeout):
			slog.Error("timed out waiting for discord ready")
			os.Exit(1)
		}
		dispatcher = delivery.NewBotClient(session, cfg.Discord.ChannelID)
	}

	b := bot.New(cfg, source, generator, dispatcher, store)
	b.Connected()
	if err := b.Start(); err != nil {
		slog.Error("start schedule", "err", err)
		os.Exit(1)
	}
	defer b.Stop()

	slog.Info("dev-quote-bot started",
		"mode", cfg.Mode(),
		"cron", cfg.Schedule.Cron,
		"timezone", cfg.Schedule.Timezone,
		"language", cfg.Language,
	)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	slog.Info("shutting down")
}
