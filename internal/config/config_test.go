package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newspipe/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, []string{"http://localhost:9200"}, cfg.Elasticsearch.Addresses)
	assert.Equal(t, "links", cfg.Elasticsearch.LinksIndex)
	assert.Equal(t, "articles", cfg.Elasticsearch.ArticlesIndex)
	assert.Equal(t, "batches", cfg.Elasticsearch.BatchesIndex)
	assert.Equal(t, 8, cfg.Crawler.Parallelism)
	assert.Equal(t, 30*time.Second, cfg.Crawler.RequestTimeout)
	assert.Equal(t, "info", string(cfg.Logger.Level))
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
app:
  environment: production
  sources_api_url: http://sources:5500
crawler:
  parallelism: 4
  user_agent: newspipe-test/1.0
elasticsearch:
  addresses:
    - http://es1:9200
    - http://es2:9200
  links_index: links-v2
logger:
  level: debug
  encoding: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Environment)
	assert.Equal(t, "http://sources:5500", cfg.App.SourcesAPIURL)
	assert.Equal(t, 4, cfg.Crawler.Parallelism)
	assert.Equal(t, "newspipe-test/1.0", cfg.Crawler.UserAgent)
	assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, cfg.Elasticsearch.Addresses)
	assert.Equal(t, "links-v2", cfg.Elasticsearch.LinksIndex)
	assert.Equal(t, "debug", string(cfg.Logger.Level))
	assert.Equal(t, "json", cfg.Logger.Encoding)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
