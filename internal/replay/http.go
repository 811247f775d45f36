package replay

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/schema"
)

// HTTPClient posts submissions to the form endpoint.
type HTTPClient struct {
	client  *http.Client
	encoder *schema.Encoder
	baseURL string
}

// NewHTTPClient creates a new HTTP client with timeout.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		encoder: schema.NewEncoder(),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Health checks GET /healthz.
func (c *HTTPClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", http.NoBody)
	if err != nil {
		return fmt.Errorf("replay.health: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("replay.health: %w: %w", ErrUnhealthy, err)
	}
	defer drain(resp)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("replay.health: %w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	return nil
}

// Submit posts one submission form-encoded to / and classifies the response.
// 200 is a success, 400 a validation rejection and anything else a failure.
func (c *HTTPClient) Submit(ctx context.Context, sub Submission) (Outcome, int, error) {
	form := url.Values{}
	if err := c.encoder.Encode(sub, form); err != nil {
		return Failed, 0, fmt.Errorf("replay.submit: encode: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/", strings.NewReader(form.Encode()))
	if err != nil {
		return Failed, 0, fmt.Errorf("replay.submit: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return Failed, 0, fmt.Errorf("replay.submit: %w", err)
	}
	defer drain(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		return Succeeded, resp.StatusCode, nil
	case http.StatusBadRequest:
		return Rejected, resp.StatusCode, nil
	default:
		return Failed, resp.StatusCode, nil
	}
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
