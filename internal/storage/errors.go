package storage

import "errors"

var (
	// ErrConflict indicates a version conflict on an atomic upsert after the
	// store exhausted its own retry budget. Retryable by the caller.
	ErrConflict = errors.New("version conflict")
	// ErrUnavailable indicates the store could not be reached or returned a
	// transport-level failure.
	ErrUnavailable = errors.New("store unavailable")
	// ErrNotFound indicates the requested document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrNoClient indicates the Elasticsearch client is not initialized.
	ErrNoClient = errors.New("elasticsearch client is not initialized")
)
