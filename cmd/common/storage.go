package common

import (
	"context"
	"fmt"

	"github.com/jonesrussell/newspipe/internal/config"
	"github.com/jonesrussell/newspipe/internal/logger"
	"github.com/jonesrussell/newspipe/internal/storage"
)

// CreateStorage connects to Elasticsearch and verifies the connection.
func CreateStorage(ctx context.Context, cfg *config.Config, log logger.Interface) (*storage.Storage, error) {
	client, err := storage.NewClient(&cfg.Elasticsearch, log)
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	store := storage.NewStorage(client, log, storageOptions(cfg))
	if err := store.TestConnection(ctx); err != nil {
		return nil, fmt.Errorf("verify elasticsearch connection: %w", err)
	}
	return store, nil
}

// storageOptions maps configuration onto storage options, falling back to
// defaults for anything unset.
func storageOptions(cfg *config.Config) storage.Options {
	opts := storage.DefaultOptions()
	if cfg.Elasticsearch.LinksIndex != "" {
		opts.LinksIndex = cfg.Elasticsearch.LinksIndex
	}
	if cfg.Elasticsearch.ArticlesIndex != "" {
		opts.ArticlesIndex = cfg.Elasticsearch.ArticlesIndex
	}
	if cfg.Elasticsearch.BatchesIndex != "" {
		opts.BatchesIndex = cfg.Elasticsearch.BatchesIndex
	}
	if cfg.Elasticsearch.UpsertRetryOnConflict > 0 {
		opts.UpsertRetryOnConflict = cfg.Elasticsearch.UpsertRetryOnConflict
	}
	return opts
}
