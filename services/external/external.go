package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nvillanueva/flightboard/types"
)

// Client talks to the external flight API. The API is best-effort
// everywhere it is consulted: callers log failures and move on.
type Client struct {
	apiURL string
	client *http.Client
}

// NewClient returns a client for the external flight API. An empty apiURL
// disables the client; Fetch returns no records and Forward is a no-op.
func NewClient(apiURL string, timeout time.Duration) *Client {
	return &Client{
		apiURL: apiURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch retrieves the external flight list. Any transport failure, decode
// failure, or unexpected response shape yields zero records and an error
// the caller should treat as non-fatal.
func (c *Client) Fetch(ctx context.Context) ([]types.FlightRecord, error) {
	if c.apiURL == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("external API returned status %d", resp.StatusCode)
	}

	var feed types.FlightFeed
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, err
	}

	if feed.Status != "success" {
		return nil, fmt.Errorf("external API returned status %q", feed.Status)
	}

	return feed.AllData, nil
}

// Forward submits a flight record to the external API. Best-effort: the
// local store is the source of truth and a failure here never rolls back
// the local write.
func (c *Client) Forward(ctx context.Context, record types.FlightRecord) error {
	if c.apiURL == "" {
		return nil
	}

	body, err := json.Marshal(record)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("external API returned status %d", resp.StatusCode)
	}

	return nil
}
