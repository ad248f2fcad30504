// Package tracker fetches recent task activity from a ClickUp-style API and
// reduces it to short context lines for the quote prompt. It is best-effort:
// missing credentials or any upstream failure yield an empty result, never
// an error.
package tracker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"github.com/KaungMyatSoe11/dev-quote-bot/internal/config"
)

const (
	// maxContextLines caps how many task lines feed the prompt.
	maxContextLines = 5
	// freshnessWindow selects tasks updated within the last day.
	freshnessWindow = 24 * time.Hour
)

// Client queries the task tracker.
type Client struct {
	token   string
	teamID  string
	baseURL string
	http    *http.Client

	// now is swappable in tests.
	now func() time.Time
}

// New builds a Client from tracker config. Empty credentials leave the
// client disabled.
func New(cfg config.TrackerConfig) *Client {
	return &Client{
		token:   cfg.Token,
		teamID:  cfg.TeamID,
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		now:     time.Now,
	}
}

// RecentActivity returns up to five context lines for tasks updated in the
// last 24 hours, newest first as the upstream orders them. Closed tasks are
// included. On missing credentials or any upstream failure it returns nil
// after logging; the caller proceeds with no context.
func (c *Client) RecentActivity(ctx context.Context) []string {
	if c.token == "" || c.teamID == "" {
		return nil
	}

	since := c.now().Add(-freshnessWindow).UnixMilli()
	q := url.Values{}
	q.Set("date_updated_gt", strconv.FormatInt(since, 10))
	q.Set("include_closed", "true")
	q.Set("order_by", "updated")
	reqURL := fmt.Sprintf("%s/team/%s/task?%s", c.baseURL, c.teamID, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		slog.Warn("tracker request build failed", "err", err)
		return nil
	}
	req.Header.Set("Authorization", c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Warn("tracker fetch failed", "err", err)
		return nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Warn("tracker response read failed", "err", err)
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Warn("tracker returned non-success status", "status", resp.StatusCode)
		return nil
	}

	tasks := gjson.GetBytes(body, "tasks")
	if !tasks.IsArray() {
		slog.Warn("tracker response missing tasks array")
		return nil
	}

	var lines []string
	tasks.ForEach(func(_, task gjson.Result) bool {
		lines = append(lines, formatTask(task))
		return len(lines) < maxContextLines
	})
	return lines
}

// formatTask renders one task as a context line, substituting placeholders
// for absent fields.
func formatTask(task gjson.Result) string {
	name := task.Get("name").String()
	if name == "" {
		name = "Untitled"
	}
	status := task.Get("status.status").String()
	if status == "" {
		status = "unknown"
	}
	return fmt.Sprintf("Task %q — status: %s", name, status)
}
