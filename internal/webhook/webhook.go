package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Forwarder posts a prepared intake record to the alternate delivery path
// (an automation webhook that performs the document generation downstream).
type Forwarder interface {
	Forward(ctx context.Context, payload map[string]string) error
}

// HTTPForwarder posts JSON to a fixed webhook URL.
type HTTPForwarder struct {
	url    string
	client *http.Client
}

// NewHTTPForwarder builds a forwarder for the configured webhook URL.
func NewHTTPForwarder(url string) *HTTPForwarder {
	return &HTTPForwarder{
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Forward delivers the payload. A non-2xx response surfaces the webhook's
// body verbatim.
func (f *HTTPForwarder) Forward(ctx context.Context, payload map[string]string) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serialización del registro fallida: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("el webhook no respondió: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("el webhook respondió con un error: %d %s", resp.StatusCode, body)
	}
	return nil
}
