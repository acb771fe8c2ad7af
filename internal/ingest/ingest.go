// Package ingest builds outbound event records from observed messages and
// delivers them to an HTTP ingestion sink. Delivery failures are logged and
// dropped; records are never queued or re-sent.
package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aoimori/kizunabot/internal/classify"
)

// Message is the platform-neutral view of one chat message, carrying just
// the metadata the outbound record needs.
type Message struct {
	ServerID   string
	ChannelID  string
	ThreadID   string
	MessageID  string
	AuthorID   string
	AuthorBot  bool
	CreatedAt  time.Time
	Text       string
	ReplyToID  string
	MentionIDs []string
}

// Record is the JSON document delivered to the ingestion sink for each
// message.
type Record struct {
	ServerID    *string  `json:"serverId"`
	ChannelID   string   `json:"channelId"`
	ThreadID    *string  `json:"threadId"`
	MessageID   string   `json:"messageId"`
	AuthorID    string   `json:"authorId"`
	AuthorIsBot bool     `json:"authorIsBot"`
	CreatedAt   int64    `json:"createdAt"`
	ContentText string   `json:"contentText"`
	ReplyToID   *string  `json:"replyToId"`
	Mentions    []string `json:"mentions"`
	URLs        []string `json:"urls"`
	Numbers     []string `json:"numbers"`
	Label       string   `json:"label"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// BuildRecord assembles the outbound record for one message from its
// metadata, extracted entities, and discourse label. CreatedAt is encoded as
// epoch milliseconds; absent server, thread, and reply references encode as
// null; mention, URL, and number lists are always present, never null.
func BuildRecord(msg Message, entities classify.Entities, label classify.Label) Record {
	mentions := msg.MentionIDs
	if mentions == nil {
		mentions = []string{}
	}
	return Record{
		ServerID:    optional(msg.ServerID),
		ChannelID:   msg.ChannelID,
		ThreadID:    optional(msg.ThreadID),
		MessageID:   msg.MessageID,
		AuthorID:    msg.AuthorID,
		AuthorIsBot: msg.AuthorBot,
		CreatedAt:   msg.CreatedAt.UnixMilli(),
		ContentText: msg.Text,
		ReplyToID:   optional(msg.ReplyToID),
		Mentions:    mentions,
		URLs:        entities.URLs,
		Numbers:     entities.Numbers,
		Label:       string(label),
	}
}

// Client posts records to the ingestion sink. A client with an empty URL is
// disabled and drops every record silently.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an ingestion Client. url may be empty to disable
// delivery.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "ingest_client"),
	}
}

// Enabled reports whether the client has a sink to deliver to.
func (c *Client) Enabled() bool {
	return c.url != ""
}

// Deliver posts one record to the sink. A non-2xx response or transport
// error is returned so the caller can log it; the record is not retried.
func (c *Client) Deliver(ctx context.Context, record Record) error {
	if !c.Enabled() {
		return nil
	}

	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode ingestion record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build ingestion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("ingestion delivery cancelled or timed out: %w", ctx.Err())
		}
		return fmt.Errorf("failed to deliver ingestion record: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("Failed to close ingestion response body", "error", closeErr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("ingestion sink returned status %d", resp.StatusCode)
	}
	return nil
}
