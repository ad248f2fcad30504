// Package bot wires the daily pipeline together: context fetch, quote
// generation with fallback, delivery, and the cron schedule driving it all.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/KaungMyatSoe11/dev-quote-bot/internal/config"
	"github.com/KaungMyatSoe11/dev-quote-bot/internal/delivery"
	"github.com/KaungMyatSoe11/dev-quote-bot/internal/history"
	"github.com/KaungMyatSoe11/dev-quote-bot/internal/quote"
)

// Phase tracks startup progress: Starting until the delivery path is
// established, Connected once it is, Scheduled after the cron job is
// registered.
type Phase int32

const (
	PhaseStarting Phase = iota
	PhaseConnected
	PhaseScheduled
)

func (p Phase) String() string {
	switch p {
	case PhaseStarting:
		return "starting"
	case PhaseConnected:
		return "connected"
	case PhaseScheduled:
		return "scheduled"
	default:
		return "unknown"
	}
}

// ContextSource supplies recent task lines for the prompt. Implementations
// must be best-effort: no context is expressed as an empty slice, never an
// error.
type ContextSource interface {
	RecentActivity(ctx context.Context) []string
}

// Generator produces quote text; "" means no usable result.
type Generator interface {
	Generate(ctx context.Context, contextLines []string) string
}

// Bot runs the daily quote pipeline on a schedule.
type Bot struct {
	cfg        *config.Config
	source     ContextSource
	generator  Generator
	dispatcher delivery.Dispatcher
	store      *history.Store // nil disables run recording

	cron  *cron.Cron
	phase atomic.Int32
}

// New assembles a Bot in the Starting phase.
func New(cfg *config.Config, source ContextSource, generator Generator, dispatcher delivery.Dispatcher, store *history.Store) *Bot {
	return &Bot{
		cfg:        cfg,
		source:     source,
		generator:  generator,
		dispatcher: dispatcher,
		store:      store,
	}
}

// Phase returns the current startup phase.
func (b *Bot) Phase() Phase {
	return Phase(b.phase.Load())
}

// Connected marks the delivery path as established: immediately in webhook
// mode, after the gateway Ready event in bot-client mode.
func (b *Bot) Connected() {
	b.phase.CompareAndSwap(int32(PhaseStarting), int32(PhaseConnected))
}

// Start registers the recurring job in the configured timezone and begins
// the schedule. When the immediate-run flag is set, one extra run fires in
// the background. Start fails only on configuration errors: unknown
// timezone, bad cron expression, or being called before Connected.
func (b *Bot) Start() error {
	if b.Phase() != PhaseConnected {
		return fmt.Errorf("cannot schedule while %s", b.Phase())
	}

	loc, err := time.LoadLocation(b.cfg.Schedule.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", b.cfg.Schedule.Timezone, err)
	}

	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddFunc(b.cfg.Schedule.Cron, func() {
		b.RunOnce(context.Background())
	}); err != nil {
		return fmt.Errorf("register schedule %q: %w", b.cfg.Schedule.Cron, err)
	}
	c.Start()
	b.cron = c
	b.phase.Store(int32(PhaseScheduled))

	slog.Info("schedule registered", "cron", b.cfg.Schedule.Cron, "timezone", b.cfg.Schedule.Timezone)

	if b.cfg.RunOnStart {
		go b.RunOnce(context.Background())
	}
	return nil
}

// Stop halts the schedule. In-flight runs finish on their own.
func (b *Bot) Stop() {
	if b.cron != nil {
		b.cron.Stop()
	}
}

// RunOnce executes one full pipeline pass. Every failure degrades: a failed
// generation falls back to static text, a failed delivery is logged, and a
// failed history write never affects the run. No error escapes, so a bad
// run cannot prevent the next scheduled one.
func (b *Bot) RunOnce(ctx context.Context) {
	runID := uuid.New().String()
	started := time.Now()
	slog.Info("daily quote run started", "run", runID, "mode", b.cfg.Mode())

	var lines []string
	if b.source != nil {
		lines = b.source.RecentActivity(ctx)
	}

	text := b.generator.Generate(ctx, lines)
	source := "ai"
	if text == "" {
		text = quote.Fallback(b.cfg.Language)
		source = "fallback"
		slog.Info("generation produced no result, using fallback", "run", runID)
	}

	err := b.dispatcher.Send(ctx, text)
	if err != nil {
		slog.Error("delivery failed", "run", runID, "err", err)
	} else {
		slog.Info("quote delivered", "run", runID, "source", source)
	}

	if b.store != nil {
		rec := history.Run{
			ID:        runID,
			StartedAt: started,
			Mode:      string(b.cfg.Mode()),
			Source:    source,
			Quote:     text,
			Delivered: err == nil,
		}
		if err != nil {
			rec.Error = err.Error()
		}
		if rerr := b.store.Record(rec); rerr != nil {
			slog.Warn("record run failed", "run", runID, "err", rerr)
		}
	}
}
