package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// wrapTransportErr classifies a transport-level failure as ErrUnavailable.
func wrapTransportErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err)
}

// wrapResponseErr classifies an Elasticsearch error response by status code.
func wrapResponseErr(op string, statusCode int, body string) error {
	switch statusCode {
	case http.StatusConflict:
		return fmt.Errorf("%w: %s: %s", ErrConflict, op, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, op)
	default:
		return fmt.Errorf("%w: %s: status %d: %s", ErrUnavailable, op, statusCode, body)
	}
}

// CreateOrReplace writes a document under the given id, replacing any
// existing document wholesale. Used for link observations and batch
// summaries, which are write-once records.
func (s *Storage) CreateOrReplace(ctx context.Context, index, id string, document any) error {
	if s.client == nil {
		return ErrNoClient
	}

	ctx, cancel := s.createContextWithTimeout(ctx, DefaultIndexTimeout)
	defer cancel()

	body, err := json.Marshal(document)
	if err != nil {
		s.logOperationError("CreateOrReplace", index, id, err)
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	res, err := s.client.Index(
		index,
		bytes.NewReader(body),
		s.client.Index.WithContext(ctx),
		s.client.Index.WithDocumentID(id),
	)
	if err != nil {
		s.logOperationError("CreateOrReplace", index, id, err)
		return wrapTransportErr("CreateOrReplace", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		s.logOperationError("CreateOrReplace", index, id, fmt.Errorf("status %d", res.StatusCode))
		return wrapResponseErr("CreateOrReplace", res.StatusCode, res.String())
	}

	s.logger.Debug("Document written",
		"index", index,
		"docID", id,
	)
	return nil
}

// GetDocument retrieves a document's source by id.
func (s *Storage) GetDocument(ctx context.Context, index, id string, document any) error {
	if s.client == nil {
		return ErrNoClient
	}

	res, err := s.client.Get(
		index,
		id,
		s.client.Get.WithContext(ctx),
	)
	if err != nil {
		s.logOperationError("GetDocument", index, id, err)
		return wrapTransportErr("GetDocument", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return wrapResponseErr("GetDocument", res.StatusCode, res.String())
	}

	var envelope struct {
		Source json.RawMessage `json:"_source"`
	}
	if decodeErr := json.NewDecoder(res.Body).Decode(&envelope); decodeErr != nil {
		s.logOperationError("GetDocument", index, id, decodeErr)
		return fmt.Errorf("error decoding document: %w", decodeErr)
	}

	if unmarshalErr := json.Unmarshal(envelope.Source, document); unmarshalErr != nil {
		return fmt.Errorf("error decoding document source: %w", unmarshalErr)
	}
	return nil
}
