// Package forwarder delivers normalized events to the external collector.
// Delivery is best-effort: one synchronous POST, no retry, no backoff.
package forwarder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"lpr-relay/internal/domain/lpr"
)

const maxErrorBody = 4 << 10

// Forwarder posts collector events to a fixed URL. The shared HTTP client is
// safe for concurrent use across request handlers.
type Forwarder struct {
	client *http.Client
	url    string
	log    zerolog.Logger
}

func New(url string, timeout time.Duration, log zerolog.Logger) *Forwarder {
	return &Forwarder{
		client: &http.Client{Timeout: timeout},
		url:    url,
		log:    log,
	}
}

// Forward sends one event. Anything other than an HTTP 200 is an error
// carrying the collector's response body, so the caller can surface it.
func (f *Forwarder) Forward(ctx context.Context, ev lpr.CollectorEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode collector event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build collector request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("post collector event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("collector returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	f.log.Debug().
		Str("external_id", ev.EngineLprExternalID).
		Msg("forwarded event to collector")
	return nil
}
