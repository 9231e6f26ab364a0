package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Server
	Port     int
	Env      string
	LogLevel string

	// CORS
	AllowedOrigins []string

	// Storage
	StoreBackend  string // file, redis or postgres
	CacheDir      string
	RedisURL      string
	PostgresURL   string
	ClickHouseURL string // optional prediction log

	// Worker pool
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration

	Providers ProviderConfig
}

// ProviderConfig decides which acquisition sources are built. A live
// provider with an empty key is not attempted at all.
type ProviderConfig struct {
	SGO            APIConfig     `yaml:"sgo"`
	RapidAPI       APIConfig     `yaml:"rapidapi"`
	ESPN           ScrapeConfig  `yaml:"espn"`
	TennisAbstract ScrapeConfig  `yaml:"tennis_abstract"`
	Timeout        time.Duration `yaml:"timeout"`
	UserAgent      string        `yaml:"user_agent"`
}

type APIConfig struct {
	APIKey    string   `yaml:"api_key"`
	Endpoints []string `yaml:"endpoints"`
	Host      string   `yaml:"host"`
	RateLimit float64  `yaml:"rate_limit"` // requests per second
}

type ScrapeConfig struct {
	Enabled  bool   `yaml:"enabled"`
	URL      string `yaml:"url"`
	Headless bool   `yaml:"headless"`
}

// Enabled reports whether the provider has a credential.
func (c APIConfig) Enabled() bool { return strings.TrimSpace(c.APIKey) != "" }

const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// DefaultProviders returns the provider settings used when nothing is configured.
func DefaultProviders() ProviderConfig {
	return ProviderConfig{
		SGO: APIConfig{
			Endpoints: []string{
				"https://api.sportsgameodds.com/v2/events",
				"https://api.sgo.click/api/v3/matches/today",
				"https://api.sgo.click/api/v3/matches",
			},
			RateLimit: 1,
		},
		RapidAPI: APIConfig{
			Endpoints: []string{"https://api-tennis.p.rapidapi.com/matches"},
			Host:      "api-tennis.p.rapidapi.com",
			RateLimit: 1,
		},
		ESPN:           ScrapeConfig{Enabled: true, URL: "https://www.espn.com/tennis/schedule"},
		TennisAbstract: ScrapeConfig{Enabled: true, URL: "https://www.tennisabstract.com/cgi-bin/player.cgi"},
		Timeout:        5 * time.Second,
		UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
	}
}

// Load loads configuration from environment variables, layered over an
// optional YAML provider file named by CONFIG_FILE.
func Load() (*Config, error) {
	cfg := &Config{
		Port:     getEnvInt("PORT", 8080),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StoreBackend:  strings.ToLower(getEnv("STORE_BACKEND", BackendFile)),
		CacheDir:      getEnv("CACHE_DIR", "tennis_cache"),
		RedisURL:      getEnv("REDIS_URL", ""),
		PostgresURL:   getEnv("POSTGRES_URL", ""),
		ClickHouseURL: getEnv("CLICKHOUSE_URL", ""),

		WorkerCount:   getEnvInt("WORKER_COUNT", 4),
		QueueSize:     getEnvInt("QUEUE_SIZE", 256),
		BatchSize:     getEnvInt("BATCH_SIZE", 100),
		FlushInterval: getEnvDuration("FLUSH_INTERVAL", 5*time.Second),

		Providers: DefaultProviders(),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	for _, o := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	if path := getEnv("CONFIG_FILE", ""); path != "" {
		if err := loadProviderFile(path, &cfg.Providers); err != nil {
			return nil, err
		}
	}

	// Credentials and toggles from the environment win over the file.
	p := &cfg.Providers
	p.SGO.APIKey = getEnv("SGO_API_KEY", p.SGO.APIKey)
	p.RapidAPI.APIKey = getEnv("RAPIDAPI_KEY", p.RapidAPI.APIKey)
	p.Timeout = getEnvDuration("PROVIDER_TIMEOUT", p.Timeout)
	p.ESPN.Enabled = getEnvBool("SCRAPE_ENABLED", p.ESPN.Enabled)
	p.ESPN.Headless = getEnvBool("SCRAPE_HEADLESS", p.ESPN.Headless)
	p.TennisAbstract.Enabled = getEnvBool("SCRAPE_HISTORY", p.TennisAbstract.Enabled)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case BackendFile:
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("missing required environment variable: %s", "REDIS_URL")
		}
	case BackendPostgres:
		if c.PostgresURL == "" {
			return fmt.Errorf("missing required environment variable: %s", "POSTGRES_URL")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.Providers.Timeout <= 0 {
		return fmt.Errorf("provider timeout must be positive, got %s", c.Providers.Timeout)
	}
	return nil
}

func loadProviderFile(path string, into *ProviderConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var file struct {
		Providers ProviderConfig `yaml:"providers"`
	}
	file.Providers = *into
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	*into = file.Providers
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
