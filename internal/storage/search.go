package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonesrussell/newspipe/internal/domain"
)

// LatestBatch returns the most recently started batch summary, or ErrNotFound
// when no batch has been persisted yet.
func (s *Storage) LatestBatch(ctx context.Context) (*domain.BatchSummary, error) {
	if s.client == nil {
		return nil, ErrNoClient
	}

	ctx, cancel := s.createContextWithTimeout(ctx, DefaultSearchTimeout)
	defer cancel()

	query := map[string]any{
		"size": 1,
		"sort": []map[string]any{
			{"started_at": map[string]any{"order": "desc"}},
		},
	}

	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.opts.BatchesIndex),
		s.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, wrapTransportErr("LatestBatch", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, wrapResponseErr("LatestBatch", res.StatusCode, res.String())
	}

	var envelope struct {
		Hits struct {
			Hits []struct {
				Source domain.BatchSummary `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if decodeErr := json.NewDecoder(res.Body).Decode(&envelope); decodeErr != nil {
		return nil, fmt.Errorf("error decoding search response: %w", decodeErr)
	}

	if len(envelope.Hits.Hits) == 0 {
		return nil, ErrNotFound
	}
	return &envelope.Hits.Hits[0].Source, nil
}
