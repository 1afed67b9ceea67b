// Package storage provides Elasticsearch storage for crawl output: link
// observations, merged articles, and batch summaries.
package storage

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/jonesrussell/newspipe/internal/config"
	"github.com/jonesrussell/newspipe/internal/logger"
)

// NewClient creates a new Elasticsearch client from configuration and
// verifies connectivity with a ping.
func NewClient(cfg *config.ElasticsearchConfig, log logger.Interface) (*es.Client, error) {
	if cfg == nil {
		return nil, errors.New("elasticsearch configuration is required")
	}

	if len(cfg.Addresses) > 0 {
		log.Debug("Connecting to Elasticsearch", "addresses", cfg.Addresses)
	}

	client, err := es.NewClient(*buildClientConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	res, err := client.Ping()
	if err != nil {
		return nil, fmt.Errorf("failed to ping Elasticsearch: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error pinging Elasticsearch: %s", res.String())
	}

	return client, nil
}

// buildClientConfig creates an Elasticsearch client configuration.
func buildClientConfig(cfg *config.ElasticsearchConfig) *es.Config {
	clientConfig := es.Config{
		Addresses: cfg.Addresses,
		Transport: buildTransport(cfg),
	}

	if cfg.APIKey != "" {
		clientConfig.APIKey = cfg.APIKey
	} else if cfg.Username != "" && cfg.Password != "" {
		clientConfig.Username = cfg.Username
		clientConfig.Password = cfg.Password
	}

	return &clientConfig
}

// buildTransport creates an HTTP transport with TLS configuration.
func buildTransport(cfg *config.ElasticsearchConfig) *http.Transport {
	transport := &http.Transport{}

	if cfg.TLSInsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{
			//nolint:gosec // InsecureSkipVerify is configurable for development/testing environments
			InsecureSkipVerify: true,
		}
	}

	return transport
}
