// Package raonline is a minimal HTTP client for the RA price-online part
// lookup web service.
package raonline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultBaseURL is the RA customer web service base URL.
	DefaultBaseURL = "https://ra.ae/webservice/customers"

	partInfoEndpoint = "/RaPriceOnlineWebservice.php"
)

// Client is a minimal HTTP client for interacting with the RA price-online
// web service. Calls are strictly one at a time; the client carries no retry
// policy, so any transport failure surfaces to the caller.
type Client struct {
	httpClient *http.Client
	baseURL    string
	login      string
	password   string
	debug      bool
}

// NewClient constructs a new RA price-online client with sane defaults.
// An empty baseURL falls back to DefaultBaseURL.
func NewClient(baseURL, login, password string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		login:      login,
		password:   password,
		debug:      os.Getenv("ENV") == "development",
	}
}

// GetPartInfoItems looks up all known offers for one part-number pattern.
// Response records missing a required field are dropped individually with a
// warning; the call itself still succeeds.
func (c *Client) GetPartInfoItems(ctx context.Context, partNumber, refID string) ([]PartInfoItem, error) {
	req := PartInfoRequest{
		Method:        "GetPartInfoItems",
		Login:         c.login,
		Password:      c.password,
		PartNumber:    partNumber,
		SearchAnalogs: false,
		Language:      "E",
		MinQuantity:   0,
		RefID:         refID,
	}

	var wrapper PartInfoResponse
	if err := c.doRequest(ctx, partInfoEndpoint, req, &wrapper); err != nil {
		return nil, err
	}

	items := make([]PartInfoItem, 0, len(wrapper.Items))
	for _, raw := range wrapper.Items {
		item, err := raw.validate()
		if err != nil {
			log.Warn().
				Str("part_number", partNumber).
				Err(err).
				Msg("[RAONLINE] Dropping malformed offer")
			continue
		}
		items = append(items, *item)
	}
	return items, nil
}

// doRequest performs the HTTP POST to the web service with JSON payloads and
// decodes the JSON response into result.
func (c *Client) doRequest(ctx context.Context, endpoint string, body any, result any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("endpoint", c.baseURL+endpoint).
			RawJSON("request", payload).
			Msg("[RAONLINE] Outgoing request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("endpoint", endpoint).
			Int("status_code", resp.StatusCode).
			RawJSON("response", respBody).
			Msg("[RAONLINE] Incoming response")
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, respBody)
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
