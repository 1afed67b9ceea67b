package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// AtomicUpsert applies a scripted insert-or-update as one atomic operation.
// The update body must carry both the conditional script and the upsert
// document, so the store either creates the document or runs the script —
// never a partial mix. Version conflicts are retried server-side up to the
// configured budget; once exhausted the call fails with ErrConflict and the
// caller decides whether to retry.
func (s *Storage) AtomicUpsert(ctx context.Context, index, id string, update any) error {
	if s.client == nil {
		return ErrNoClient
	}

	ctx, cancel := s.createContextWithTimeout(ctx, DefaultIndexTimeout)
	defer cancel()

	body, err := json.Marshal(update)
	if err != nil {
		s.logOperationError("AtomicUpsert", index, id, err)
		return fmt.Errorf("failed to marshal update: %w", err)
	}

	res, err := s.client.Update(
		index,
		id,
		bytes.NewReader(body),
		s.client.Update.WithContext(ctx),
		s.client.Update.WithRetryOnConflict(s.opts.UpsertRetryOnConflict),
	)
	if err != nil {
		s.logOperationError("AtomicUpsert", index, id, err)
		return wrapTransportErr("AtomicUpsert", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		s.logOperationError("AtomicUpsert", index, id, fmt.Errorf("status %d", res.StatusCode))
		return wrapResponseErr("AtomicUpsert", res.StatusCode, res.String())
	}

	s.logger.Debug("Document upserted",
		"index", index,
		"docID", id,
	)
	return nil
}
