// Package delivery sends the final quote text to Discord, either through a
// fire-and-forget webhook POST or over a persistent bot session.
package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
)

const messageHeader = "🌞 **Daily Dev Motivation**\n"

// Format wraps quote text with the announcement header.
func Format(text string) string {
	return messageHeader + text
}

// Dispatcher performs exactly one outbound send per call.
type Dispatcher interface {
	Send(ctx context.Context, text string) error
}

// Webhook delivers via a one-shot webhook URL, no persistent connection.
type Webhook struct {
	url  string
	http *http.Client
}

// NewWebhook builds a webhook dispatcher for the given URL.
func NewWebhook(url string) *Webhook {
	return &Webhook{
		url:  url,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send POSTs {"content": header+text} to the webhook. One attempt, no retry.
func (w *Webhook) Send(ctx context.Context, text string) error {
	body, err := json.Marshal(map[string]string{"content": Format(text)})
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.http.Do(req)
	if err != nil {
		return fmt.Errorf("webhook post: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook status %d", resp.StatusCode)
	}
	return nil
}

// ChannelClient is the slice of the discordgo session the bot path uses.
type ChannelClient interface {
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// BotClient delivers through an open Discord gateway session.
type BotClient struct {
	session   ChannelClient
	channelID string
}

// NewBotClient builds a bot-mode dispatcher targeting the configured channel.
func NewBotClient(session ChannelClient, channelID string) *BotClient {
	return &BotClient{session: session, channelID: channelID}
}

// Send resolves the target channel and posts the formatted message. The
// channel must be a text channel inside a guild; anything else aborts with
// no send.
func (b *BotClient) Send(ctx context.Context, text string) error {
	ch, err := b.session.Channel(b.channelID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("resolve channel %s: %w", b.channelID, err)
	}
	if ch.Type != discordgo.ChannelTypeGuildText || ch.GuildID == "" {
		return fmt.Errorf("channel %s is not a guild text channel", b.channelID)
	}

	if _, err := b.session.ChannelMessageSend(b.channelID, Format(text), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}
