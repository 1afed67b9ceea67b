// Package discovery walks configured listing pages, filters the anchors they
// expose, and feeds accepted article candidates through extraction into the
// ingest pipeline.
package discovery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jonesrussell/newspipe/internal/logger"
)

// Rendering defaults: mobile viewport with a few scrolls so lazily loaded
// listing content is present in the returned HTML.
const (
	defaultRenderScrolls = 5
	defaultRenderWaitSec = 0.5
	renderTimeout        = 30 * time.Second
)

// Renderer fetches listing pages through a rendering service that executes
// the page's JavaScript before returning HTML. Used for sources flagged
// render: true.
type Renderer struct {
	endpoint   string
	httpClient *http.Client
	logger     logger.Interface
}

// NewRenderer creates a renderer client for the given service endpoint.
func NewRenderer(endpoint string, log logger.Interface) *Renderer {
	return &Renderer{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: renderTimeout},
		logger:     log,
	}
}

// renderRequest is the body sent to the rendering service.
type renderRequest struct {
	URL     string  `json:"url"`
	Scrolls int     `json:"scrolls"`
	Wait    float64 `json:"wait"`
}

// Render returns the fully rendered HTML for a listing page.
func (r *Renderer) Render(ctx context.Context, pageURL string) ([]byte, error) {
	body, err := json.Marshal(renderRequest{
		URL:     pageURL,
		Scrolls: defaultRenderScrolls,
		Wait:    defaultRenderWaitSec,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal render request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create render request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("render service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("render service returned status %d for %s", resp.StatusCode, pageURL)
	}

	html, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read rendered page: %w", err)
	}

	r.logger.Debug("Rendered listing page", "url", pageURL, "bytes", len(html))
	return html, nil
}
