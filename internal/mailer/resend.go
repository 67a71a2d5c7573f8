// Package mailer delivers reports via the Resend email API.
package mailer

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"klbrief/internal/retry"
)

const apiURL = "https://api.resend.com/emails"

// Attachment is a file to attach to a message; Content is raw bytes and is
// base64-encoded on the wire.
type Attachment struct {
	Filename string
	Content  []byte
}

// Message is one outbound email.
type Message struct {
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Client talks to the Resend API with retries and a request timeout.
type Client struct {
	apiKey string
	from   string
	to     string
	cc     []string
	bcc    []string

	baseURL    string
	httpClient *http.Client
	retryCfg   retry.Config
}

func NewClient(apiKey, from, to, cc, bcc string, timeout time.Duration, attempts int, delay time.Duration) *Client {
	return &Client{
		apiKey:     apiKey,
		from:       from,
		to:         to,
		cc:         splitRecipients(cc),
		bcc:        splitRecipients(bcc),
		baseURL:    apiURL,
		httpClient: &http.Client{Timeout: timeout},
		retryCfg:   retry.Config{MaxAttempts: attempts, Delay: delay, Backoff: true},
	}
}

// Send delivers the message, retrying transient failures with backoff.
func (c *Client) Send(ctx context.Context, msg Message) error {
	err := retry.Do(ctx, c.retryCfg, func() error {
		return c.sendOnce(ctx, msg)
	})
	if err != nil {
		return fmt.Errorf("send %q: %w", msg.Subject, err)
	}
	slog.Info("email sent", "subject", msg.Subject, "to", c.to)
	return nil
}

func (c *Client) sendOnce(ctx context.Context, msg Message) error {
	payload := map[string]interface{}{
		"from":    c.from,
		"to":      []string{c.to},
		"subject": msg.Subject,
		"html":    msg.HTML,
	}
	if len(c.cc) > 0 {
		payload["cc"] = c.cc
	}
	if len(c.bcc) > 0 {
		payload["bcc"] = c.bcc
	}
	if len(msg.Attachments) > 0 {
		atts := make([]map[string]string, 0, len(msg.Attachments))
		for _, a := range msg.Attachments {
			atts = append(atts, map[string]string{
				"filename": a.Filename,
				"content":  base64.StdEncoding.EncodeToString(a.Content),
			})
		}
		payload["attachments"] = atts
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("resend request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Warn("close response body", "err", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("resend API status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}

func splitRecipients(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
