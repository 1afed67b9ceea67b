// Package config provides configuration management for the crawler service.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jonesrussell/newspipe/internal/logger"
)

// Default configuration values.
const (
	defaultESAddress         = "http://localhost:9200"
	defaultSourcesFile       = "sources.yml"
	defaultParallelism       = 8
	defaultRequestTimeoutSec = 30
	defaultRequestDelayMs    = 100
	defaultUserAgent         = "newspipe/1.0"
	defaultUpsertRetries     = 3
	defaultServerPort        = 8060
	defaultLogLevel          = "info"
)

// Config is the unified configuration for all commands.
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Crawler       CrawlerConfig       `mapstructure:"crawler"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Server        ServerConfig        `mapstructure:"server"`
	Logger        logger.Config       `mapstructure:"logger"`
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string `mapstructure:"environment"`
	// SourcesFile is the YAML file sources are loaded from when no sources
	// API is configured.
	SourcesFile string `mapstructure:"sources_file"`
	// SourcesAPIURL, when set, takes precedence over SourcesFile.
	SourcesAPIURL string `mapstructure:"sources_api_url"`
}

// CrawlerConfig holds crawl-run configuration.
type CrawlerConfig struct {
	Parallelism    int           `mapstructure:"parallelism"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	RequestDelay   time.Duration `mapstructure:"request_delay"`
	UserAgent      string        `mapstructure:"user_agent"`
	// RenderURL is the endpoint of the rendering service used for sources
	// flagged render: true. Empty disables rendering.
	RenderURL string `mapstructure:"render_url"`
	// Schedule is the cron spec used by the scheduler command.
	Schedule string `mapstructure:"schedule"`
}

// ElasticsearchConfig holds Elasticsearch connection configuration.
type ElasticsearchConfig struct {
	Addresses             []string `mapstructure:"addresses"`
	Username              string   `mapstructure:"username"`
	Password              string   `mapstructure:"password"`
	APIKey                string   `mapstructure:"api_key"`
	TLSInsecureSkipVerify bool     `mapstructure:"tls_insecure_skip_verify"`
	LinksIndex            string   `mapstructure:"links_index"`
	ArticlesIndex         string   `mapstructure:"articles_index"`
	BatchesIndex          string   `mapstructure:"batches_index"`
	UpsertRetryOnConflict int      `mapstructure:"upsert_retry_on_conflict"`
}

// ServerConfig holds the status HTTP server configuration.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// Load reads configuration from the given file (optional) and environment
// variables prefixed with NEWSPIPE_.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("NEWSPIPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/newspipe")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Running on defaults and environment alone is fine.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers default values for every key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.sources_file", defaultSourcesFile)

	v.SetDefault("crawler.parallelism", defaultParallelism)
	v.SetDefault("crawler.request_timeout", defaultRequestTimeoutSec*time.Second)
	v.SetDefault("crawler.request_delay", defaultRequestDelayMs*time.Millisecond)
	v.SetDefault("crawler.user_agent", defaultUserAgent)

	v.SetDefault("elasticsearch.addresses", []string{defaultESAddress})
	v.SetDefault("elasticsearch.links_index", "links")
	v.SetDefault("elasticsearch.articles_index", "articles")
	v.SetDefault("elasticsearch.batches_index", "batches")
	v.SetDefault("elasticsearch.upsert_retry_on_conflict", defaultUpsertRetries)

	v.SetDefault("server.port", defaultServerPort)

	v.SetDefault("logger.level", defaultLogLevel)
	v.SetDefault("logger.encoding", "console")
}
