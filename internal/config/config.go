// Package config loads and validates crawler configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Scrape   ScrapeConfig   `mapstructure:"scrape"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Headless HeadlessConfig `mapstructure:"headless"`
	Store    StoreConfig    `mapstructure:"store"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Archive  ArchiveConfig  `mapstructure:"archive"`
	Publish  PublishConfig  `mapstructure:"publish"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// ScrapeConfig governs batch orchestration and filtering.
type ScrapeConfig struct {
	WindowDays        int  `mapstructure:"window_days"`
	BatchSize         int  `mapstructure:"batch_size"`
	WaitForCompletion bool `mapstructure:"wait_for_completion"`
	FeedLimit         int  `mapstructure:"feed_limit"`
}

// HTTPConfig configures the plain HTTP fetcher.
type HTTPConfig struct {
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	MaxBodyBytes   int    `mapstructure:"max_body_bytes"`
	UserAgent      string `mapstructure:"user_agent"`
}

// HeadlessConfig configures the headless browser fetcher.
type HeadlessConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	NavTimeoutSec int  `mapstructure:"nav_timeout_seconds"`
	SettleMs      int  `mapstructure:"settle_ms"`
}

// StoreConfig selects and configures the notice snapshot store.
type StoreConfig struct {
	Driver       string `mapstructure:"driver"`
	LookbackDays int    `mapstructure:"lookback_days"`
	Dynamo       DynamoConfig
	Postgres     PostgresConfig
}

// DynamoConfig holds DynamoDB connection settings.
type DynamoConfig struct {
	Region    string `mapstructure:"region"`
	Table     string `mapstructure:"table"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// PostgresConfig controls access to the relational store.
type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

// NotifyConfig selects the alert channel for scrape failures.
type NotifyConfig struct {
	Driver   string `mapstructure:"driver"`
	TopicARN string `mapstructure:"topic_arn"`
	Region   string `mapstructure:"region"`
}

// ArchiveConfig sets paths and content types for raw page persistence.
type ArchiveConfig struct {
	Driver      string `mapstructure:"driver"`
	GCSBucket   string `mapstructure:"gcs_bucket"`
	Prefix      string `mapstructure:"prefix"`
	ContentType string `mapstructure:"content_type"`
}

// PublishConfig holds metadata for run-event publishing.
type PublishConfig struct {
	Driver    string `mapstructure:"driver"`
	ProjectID string `mapstructure:"project_id"`
	TopicName string `mapstructure:"topic_name"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("NOTICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Store.Dynamo = unmarshalDynamo(v)
	cfg.Store.Postgres = PostgresConfig{DSN: v.GetString("store.postgres.dsn")}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func unmarshalDynamo(v *viper.Viper) DynamoConfig {
	return DynamoConfig{
		Region:    v.GetString("store.dynamo.region"),
		Table:     v.GetString("store.dynamo.table"),
		Endpoint:  v.GetString("store.dynamo.endpoint"),
		AccessKey: v.GetString("store.dynamo.access_key"),
		SecretKey: v.GetString("store.dynamo.secret_key"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("scrape.window_days", 30)
	v.SetDefault("scrape.batch_size", 10)
	v.SetDefault("scrape.wait_for_completion", true)
	v.SetDefault("scrape.feed_limit", 20)
	v.SetDefault("http.timeout_seconds", 15)
	v.SetDefault("http.max_body_bytes", 5*1024*1024)
	v.SetDefault("http.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36")
	v.SetDefault("headless.enabled", true)
	v.SetDefault("headless.nav_timeout_seconds", 25)
	v.SetDefault("headless.settle_ms", 2000)
	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.lookback_days", 90)
	v.SetDefault("store.dynamo.region", "ap-northeast-2")
	v.SetDefault("store.dynamo.table", "notices")
	v.SetDefault("notify.driver", "log")
	v.SetDefault("notify.region", "ap-northeast-2")
	v.SetDefault("archive.driver", "noop")
	v.SetDefault("archive.prefix", "pages")
	v.SetDefault("archive.content_type", "text/html; charset=utf-8")
	v.SetDefault("publish.driver", "noop")
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Scrape.WindowDays <= 0 {
		return fmt.Errorf("scrape.window_days must be > 0")
	}
	if c.Scrape.BatchSize <= 0 {
		return fmt.Errorf("scrape.batch_size must be > 0")
	}
	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout_seconds must be > 0")
	}
	if c.Store.LookbackDays < c.Scrape.WindowDays {
		return fmt.Errorf("store.lookback_days must be >= scrape.window_days")
	}
	switch c.Store.Driver {
	case "memory", "postgres":
	case "dynamo":
		if c.Store.Dynamo.Table == "" {
			return fmt.Errorf("store.dynamo.table must be set for the dynamo driver")
		}
	default:
		return fmt.Errorf("store.driver must be one of memory, dynamo, postgres")
	}
	switch c.Notify.Driver {
	case "log":
	case "sns":
		if c.Notify.TopicARN == "" {
			return fmt.Errorf("notify.topic_arn must be set for the sns driver")
		}
	default:
		return fmt.Errorf("notify.driver must be one of log, sns")
	}
	switch c.Archive.Driver {
	case "noop":
	case "gcs":
		if c.Archive.GCSBucket == "" {
			return fmt.Errorf("archive.gcs_bucket must be set for the gcs driver")
		}
	default:
		return fmt.Errorf("archive.driver must be one of noop, gcs")
	}
	switch c.Publish.Driver {
	case "noop", "memory":
	case "pubsub":
		if c.Publish.ProjectID == "" || c.Publish.TopicName == "" {
			return fmt.Errorf("publish.project_id and publish.topic_name must be set for the pubsub driver")
		}
	default:
		return fmt.Errorf("publish.driver must be one of noop, memory, pubsub")
	}
	return nil
}

// FetchTimeout converts the HTTP timeout config into a duration.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// SettleDelay is how long the headless fetcher waits after the target
// selector appears before capturing the page.
func (c Config) SettleDelay() time.Duration {
	return time.Duration(c.Headless.SettleMs) * time.Millisecond
}
