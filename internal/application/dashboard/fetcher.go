package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shoprank/backend/internal/domain/listing"
)

const maxPayloadSize = 10 * 1024 * 1024

// Payload is the subset of a ranking response the dashboard consumes
type Payload struct {
	Success bool              `json:"success"`
	Total   int               `json:"total"`
	Items   []listing.Listing `json:"items"`
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Note    string            `json:"note"`
}

// Fetcher retrieves a ranking payload for a request path
type Fetcher interface {
	Fetch(ctx context.Context, path string) (*Payload, error)
}

// HTTPFetcher fetches payloads from a ranking API server
type HTTPFetcher struct {
	baseURL string
	client  *http.Client
}

// NewHTTPFetcher creates a fetcher for the server at baseURL
func NewHTTPFetcher(baseURL string, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Fetch issues a GET and decodes the body whatever the status code.
// Error responses carry a message the controller shows to the user.
func (f *HTTPFetcher) Fetch(ctx context.Context, path string) (*Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("dashboard: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dashboard: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadSize))
	if err != nil {
		return nil, fmt.Errorf("dashboard: read response: %w", err)
	}

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("dashboard: decode response (status %d): %w", resp.StatusCode, err)
	}
	return &payload, nil
}
