// Package apiclient fetches source configurations from the sources service.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jonesrussell/newspipe/internal/logger"
	"github.com/jonesrussell/newspipe/internal/sources"
)

// DefaultTimeout bounds one sources request.
const DefaultTimeout = 10 * time.Second

// Client fetches source configurations over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Interface
}

// New creates a sources API client.
func New(baseURL string, log logger.Interface) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     log,
	}
}

// Fetch retrieves the configured sources from the sources service.
func (c *Client) Fetch(ctx context.Context) ([]sources.Source, error) {
	url := c.baseURL + "/api/sources"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create sources request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sources: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sources service returned status %d", resp.StatusCode)
	}

	var configs []sources.Source
	if decodeErr := json.NewDecoder(resp.Body).Decode(&configs); decodeErr != nil {
		return nil, fmt.Errorf("failed to decode sources response: %w", decodeErr)
	}

	c.logger.Debug("Fetched sources", "count", len(configs), "url", url)
	return configs, nil
}
