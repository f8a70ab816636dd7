// Package telemetry sends fire-and-forget usage events to an analytics
// endpoint. Sends never block callers and failures are logged, not surfaced.
package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mira/gradekeeper/internal/logger"
)

// Message is the wire shape of one analytics event.
type Message struct {
	Action string `json:"action"`
	Args   Args   `json:"args"`
}

type Args struct {
	URL    string `json:"url"`
	Action string `json:"action"`
}

// Messenger is the one-way messaging capability.
type Messenger interface {
	Send(ctx context.Context, msg Message) error
}

// StripQuery removes any query string and fragment from a URL before it is
// attached to an event.
func StripQuery(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		if i := strings.IndexByte(raw, '?'); i >= 0 {
			return raw[:i]
		}
		return raw
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// Client posts events as JSON to a fixed endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	log        *logger.Logger
}

func NewClient(endpoint string) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        logger.Default().WithPrefix("telemetry"),
	}
}

// Ensure Client implements the interface
var _ Messenger = (*Client)(nil)

func (c *Client) Send(ctx context.Context, msg Message) error {
	log := logger.FromContext(ctx).WithPrefix("telemetry").WithField("action", msg.Args.Action)

	body, err := json.Marshal(msg)
	if err != nil {
		log.Error("failed to encode event: %v", err)
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		log.Error("failed to create request: %v", err)
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to send event: %v", err)
		return err
	}
	defer resp.Body.Close()

	log.Debug("event response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("event request failed: status=%d, body=%s", resp.StatusCode, string(respBody))
		return fmt.Errorf("event status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
