package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// maxPageSize is the hard cap on listing page sizes.
const maxPageSize = 100

var contentKinds = []string{"prayers", "saints", "apparitions"}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	RabbitMQ  RabbitMQConfig  `yaml:"rabbitmq"`
	Feeds     FeedsConfig     `yaml:"feeds"`
	Languages LanguagesConfig `yaml:"languages"`
	Content   ContentConfig   `yaml:"content"`
	Search    SearchConfig    `yaml:"search"`
	Import    ImportConfig    `yaml:"import"`
	LogLevel  string          `yaml:"log_level"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	Debug           bool          `yaml:"debug"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	WarmCache       bool          `yaml:"warm_cache"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

type RabbitMQConfig struct {
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

// Enabled reports whether import events should be published.
func (r RabbitMQConfig) Enabled() bool {
	return r.URL != ""
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// URL returns the connection string in URL form, as golang-migrate expects.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type FeedsConfig struct {
	Timeout   time.Duration         `yaml:"timeout"`
	UserAgent string                `yaml:"user_agent"`
	Retry     RetryConfig           `yaml:"retry"`
	Sources   map[string]FeedSource `yaml:"sources"`
}

// FeedSource holds the external feed URLs of one content kind. URLs is keyed
// by language code and overrides URL.
type FeedSource struct {
	URL  string            `yaml:"url"`
	URLs map[string]string `yaml:"urls"`
}

// URLFor returns the feed URL for kind and language, or "" when none is configured.
func (f FeedsConfig) URLFor(kind, language string) string {
	src, ok := f.Sources[kind]
	if !ok {
		return ""
	}
	if u := src.URLs[strings.ToLower(language)]; u != "" {
		return u
	}
	return src.URL
}

type RetryConfig struct {
	MaxAttempts    int           `yaml:"max_attempts"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
}

type LanguagesConfig struct {
	Supported []string `yaml:"supported"`
	Default   string   `yaml:"default"`
}

type ContentConfig struct {
	DefaultPageSize int `yaml:"default_page_size"`
	MaxPageSize     int `yaml:"max_page_size"`
}

type SearchConfig struct {
	SuggestLimit   int `yaml:"suggest_limit"`
	FullLimit      int `yaml:"full_limit"`
	MaxQueryLength int `yaml:"max_query_length"`
}

type ImportConfig struct {
	Interval time.Duration `yaml:"interval"`
	Timeout  time.Duration `yaml:"timeout"`
	Kinds    []string      `yaml:"kinds"`
}

// Load reads the YAML file at path, expands ${VAR} references, applies
// defaults and finally the environment overrides.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	cfg.applyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Parse decodes raw YAML and applies defaults. Environment overrides are not applied.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 60 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "devotional"
	}
	if c.RabbitMQ.RoutingKey == "" {
		c.RabbitMQ.RoutingKey = "content"
	}
	if c.RabbitMQ.QueueName == "" {
		c.RabbitMQ.QueueName = "content_imports"
	}
	if c.Feeds.Timeout == 0 {
		c.Feeds.Timeout = 30 * time.Second
	}
	if c.Feeds.UserAgent == "" {
		c.Feeds.UserAgent = "Devotional/1.0"
	}
	if c.Feeds.Retry.MaxAttempts == 0 {
		c.Feeds.Retry.MaxAttempts = 1
	}
	if c.Feeds.Retry.InitialBackoff == 0 {
		c.Feeds.Retry.InitialBackoff = 1 * time.Second
	}
	if c.Feeds.Retry.MaxBackoff == 0 {
		c.Feeds.Retry.MaxBackoff = 30 * time.Second
	}
	if c.Feeds.Sources == nil {
		c.Feeds.Sources = make(map[string]FeedSource)
	}
	if len(c.Languages.Supported) == 0 {
		c.Languages.Supported = []string{"en", "es", "pt", "fr", "it", "de", "pl"}
	}
	if c.Content.DefaultPageSize == 0 {
		c.Content.DefaultPageSize = 30
	}
	if c.Content.MaxPageSize == 0 {
		c.Content.MaxPageSize = maxPageSize
	}
	if c.Search.SuggestLimit == 0 {
		c.Search.SuggestLimit = 40
	}
	if c.Search.FullLimit == 0 {
		c.Search.FullLimit = 120
	}
	if c.Search.MaxQueryLength == 0 {
		c.Search.MaxQueryLength = 200
	}
	if c.Import.Timeout == 0 {
		c.Import.Timeout = 5 * time.Minute
	}
	if len(c.Import.Kinds) == 0 {
		c.Import.Kinds = append([]string(nil), contentKinds...)
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// applyEnv layers DEFAULT_LANGUAGE and the {KIND}_EXTERNAL_URL[_{LANG}]
// variables over the file configuration.
func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("DEFAULT_LANGUAGE"); ok && strings.TrimSpace(v) != "" {
		c.Languages.Default = strings.ToLower(strings.TrimSpace(v))
	}

	for _, kind := range contentKinds {
		src := c.Feeds.Sources[kind]
		prefix := strings.ToUpper(kind) + "_EXTERNAL_URL"

		if v, ok := lookup(prefix); ok && v != "" {
			src.URL = v
		}
		for _, lang := range c.Languages.Supported {
			key := prefix + "_" + strings.ToUpper(strings.ReplaceAll(lang, "-", "_"))
			if v, ok := lookup(key); ok && v != "" {
				if src.URLs == nil {
					src.URLs = make(map[string]string)
				}
				src.URLs[strings.ToLower(lang)] = v
			}
		}

		if src.URL != "" || len(src.URLs) > 0 {
			c.Feeds.Sources[kind] = src
		}
	}
}

func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port: invalid port %d", c.Server.Port)
	}
	if c.Content.MaxPageSize < 1 || c.Content.MaxPageSize > maxPageSize {
		return fmt.Errorf("content.max_page_size: must be between 1 and %d", maxPageSize)
	}
	if c.Content.DefaultPageSize < 1 || c.Content.DefaultPageSize > c.Content.MaxPageSize {
		return fmt.Errorf("content.default_page_size: must be between 1 and %d", c.Content.MaxPageSize)
	}
	if c.Feeds.Retry.MaxAttempts < 1 {
		return errors.New("feeds.retry.max_attempts: must be at least 1")
	}
	for _, kind := range c.Import.Kinds {
		if !slices.Contains(contentKinds, kind) {
			return fmt.Errorf("import.kinds: unknown kind %q", kind)
		}
	}
	return nil
}
