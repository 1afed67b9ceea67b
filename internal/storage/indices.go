package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// LinksMapping is the index mapping for link observation documents.
var LinksMapping = map[string]any{
	"mappings": map[string]any{
		"properties": map[string]any{
			"id":             map[string]any{"type": "keyword"},
			"articleId":      map[string]any{"type": "keyword"},
			"sourceId":       map[string]any{"type": "keyword"},
			"categoryId":     map[string]any{"type": "keyword"},
			"batchId":        map[string]any{"type": "keyword"},
			"batchStartedAt": map[string]any{"type": "date"},
			"crawledAt":      map[string]any{"type": "date"},
			"position":       map[string]any{"type": "integer"},
		},
	},
}

// ArticlesMapping is the index mapping for merged article documents.
var ArticlesMapping = map[string]any{
	"mappings": map[string]any{
		"properties": map[string]any{
			"id":           map[string]any{"type": "keyword"},
			"sourceId":     map[string]any{"type": "keyword"},
			"categoryIds":  map[string]any{"type": "keyword"},
			"title":        map[string]any{"type": "text"},
			"authors":      map[string]any{"type": "keyword"},
			"description":  map[string]any{"type": "text"},
			"text":         map[string]any{"type": "text"},
			"clusterText":  map[string]any{"type": "text"},
			"imageUrl":     map[string]any{"type": "keyword"},
			"publishDate":  map[string]any{"type": "date"},
			"url":          map[string]any{"type": "keyword"},
			"canonicalUrl": map[string]any{"type": "keyword"},
			"ampUrl":       map[string]any{"type": "keyword"},
			"firstSeenAt":  map[string]any{"type": "date"},
			"lastSeenAt":   map[string]any{"type": "date"},
		},
	},
}

// BatchesMapping is the index mapping for batch summary documents. The stats
// blob is stored but not indexed; its shape belongs to the crawl engine.
var BatchesMapping = map[string]any{
	"mappings": map[string]any{
		"properties": map[string]any{
			"id":                   map[string]any{"type": "keyword"},
			"started_at":           map[string]any{"type": "date"},
			"ended_at":             map[string]any{"type": "date"},
			"link_count":           map[string]any{"type": "long"},
			"link_count_by_source": map[string]any{"type": "object"},
			"stats":                map[string]any{"type": "object", "enabled": false},
		},
	},
}

// EnsureIndices creates the three output indices when they do not exist yet.
func (s *Storage) EnsureIndices(ctx context.Context) error {
	indices := map[string]map[string]any{
		s.opts.LinksIndex:    LinksMapping,
		s.opts.ArticlesIndex: ArticlesMapping,
		s.opts.BatchesIndex:  BatchesMapping,
	}

	for name, mapping := range indices {
		exists, err := s.IndexExists(ctx, name)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if createErr := s.CreateIndex(ctx, name, mapping); createErr != nil {
			return createErr
		}
	}
	return nil
}

// CreateIndex creates an index with the given mapping.
func (s *Storage) CreateIndex(ctx context.Context, index string, mapping map[string]any) error {
	if s.client == nil {
		return ErrNoClient
	}

	ctx, cancel := s.createContextWithTimeout(ctx, DefaultIndexTimeout)
	defer cancel()

	body, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	res, err := s.client.Indices.Create(
		index,
		s.client.Indices.Create.WithContext(ctx),
		s.client.Indices.Create.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return wrapTransportErr("CreateIndex", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return wrapResponseErr("CreateIndex", res.StatusCode, res.String())
	}

	s.logger.Info("Created index", "index", index)
	return nil
}

// DeleteIndex deletes an index.
func (s *Storage) DeleteIndex(ctx context.Context, index string) error {
	if s.client == nil {
		return ErrNoClient
	}

	ctx, cancel := s.createContextWithTimeout(ctx, DefaultIndexTimeout)
	defer cancel()

	res, err := s.client.Indices.Delete(
		[]string{index},
		s.client.Indices.Delete.WithContext(ctx),
	)
	if err != nil {
		return wrapTransportErr("DeleteIndex", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return wrapResponseErr("DeleteIndex", res.StatusCode, res.String())
	}

	s.logger.Info("Deleted index", "index", index)
	return nil
}

// IndexExists checks if an index exists.
func (s *Storage) IndexExists(ctx context.Context, index string) (bool, error) {
	if s.client == nil {
		return false, ErrNoClient
	}

	res, err := s.client.Indices.Exists(
		[]string{index},
		s.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return false, wrapTransportErr("IndexExists", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, wrapResponseErr("IndexExists", res.StatusCode, res.String())
	}
}

// ListIndices returns the names of all non-system indices.
func (s *Storage) ListIndices(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, ErrNoClient
	}

	res, err := s.client.Cat.Indices(
		s.client.Cat.Indices.WithContext(ctx),
		s.client.Cat.Indices.WithFormat("json"),
	)
	if err != nil {
		return nil, wrapTransportErr("ListIndices", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, wrapResponseErr("ListIndices", res.StatusCode, res.String())
	}

	var rows []struct {
		Index string `json:"index"`
	}
	if decodeErr := json.NewDecoder(res.Body).Decode(&rows); decodeErr != nil {
		return nil, fmt.Errorf("error decoding indices: %w", decodeErr)
	}

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.Index)
	}
	return names, nil
}
