package storage

import (
	"context"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/jonesrussell/newspipe/internal/logger"
)

// Constants for timeout durations
const (
	DefaultIndexTimeout          = 10 * time.Second
	DefaultSearchTimeout         = 10 * time.Second
	DefaultTestConnectionTimeout = 5 * time.Second
)

// Storage implements document and index operations against Elasticsearch.
type Storage struct {
	client *es.Client
	logger logger.Interface
	opts   Options
}

// NewStorage creates a storage instance around an existing client.
func NewStorage(client *es.Client, log logger.Interface, opts Options) *Storage {
	return &Storage{
		client: client,
		logger: log,
		opts:   opts,
	}
}

// Options returns the storage options, including configured index names.
func (s *Storage) Options() Options {
	return s.opts
}

// createContextWithTimeout bounds one store call.
func (s *Storage) createContextWithTimeout(
	ctx context.Context,
	timeout time.Duration,
) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// TestConnection verifies connectivity to the store.
func (s *Storage) TestConnection(ctx context.Context) error {
	if s.client == nil {
		return ErrNoClient
	}

	ctx, cancel := s.createContextWithTimeout(ctx, DefaultTestConnectionTimeout)
	defer cancel()

	res, err := s.client.Ping(s.client.Ping.WithContext(ctx))
	if err != nil {
		return wrapTransportErr("Ping", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return wrapResponseErr("Ping", res.StatusCode, res.String())
	}
	return nil
}

// logOperationError logs a failed store operation with its identifying fields.
func (s *Storage) logOperationError(op, index, id string, err error) {
	s.logger.Error("Storage operation failed",
		"operation", op,
		"index", index,
		"docID", id,
		"error", err,
	)
}
