package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pfrederiksen/cpbl-games/internal/game"
	"github.com/pfrederiksen/cpbl-games/internal/logger"
	"github.com/pfrederiksen/cpbl-games/internal/scraper"
	"github.com/pfrederiksen/cpbl-games/internal/storage"
)

// EnvPrefix is prepended to every environment key, e.g. CPBL_USER_AGENT
const EnvPrefix = "CPBL"

// Setting keys
const (
	KeyBaseURL      = "base_url"
	KeyUserAgent    = "user_agent"
	KeyTimeout      = "timeout"
	KeyMaxRPS       = "max_rps"
	KeyRetries      = "retries"
	KeyLogLevel     = "log.level"
	KeyLogFormat    = "log.format"
	KeyLogFile      = "log.file"
	KeyCacheBackend = "cache.backend"
	KeyCacheDir     = "cache.dir"
	KeyRedisURL     = "cache.redis_url"
	KeyMetricsFile  = "metrics.file"
)

// DefaultCacheDir holds the file cache
const DefaultCacheDir = "~/.local/share/cpbl-games"

// Config is the resolved configuration shared by all commands
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	MaxRPS    float64
	Retries   int

	LogLevel  string
	LogFormat string
	LogFile   string

	CacheBackend string
	CacheDir     string
	RedisURL     string

	MetricsFile string
}

// New returns a viper instance with defaults and env binding applied
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyBaseURL, game.BaseURL)
	v.SetDefault(KeyUserAgent, scraper.UserAgent)
	v.SetDefault(KeyTimeout, scraper.Timeout)
	v.SetDefault(KeyMaxRPS, 0.0)
	v.SetDefault(KeyRetries, 0)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, string(logger.FormatText))
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyCacheBackend, storage.BackendNone)
	v.SetDefault(KeyCacheDir, DefaultCacheDir)
	v.SetDefault(KeyRedisURL, "")
	v.SetDefault(KeyMetricsFile, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// ReadFiles loads an optional .env from the working directory and then the
// config file, if one is given. A missing .env is not an error.
func ReadFiles(v *viper.Viper, configFile string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	if configFile == "" {
		return nil
	}
	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config %s: %w", configFile, err)
	}
	return nil
}

// Resolve reads the settings out of v and validates them
func Resolve(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		BaseURL:      strings.TrimRight(v.GetString(KeyBaseURL), "/"),
		UserAgent:    v.GetString(KeyUserAgent),
		Timeout:      v.GetDuration(KeyTimeout),
		MaxRPS:       v.GetFloat64(KeyMaxRPS),
		Retries:      v.GetInt(KeyRetries),
		LogLevel:     v.GetString(KeyLogLevel),
		LogFormat:    v.GetString(KeyLogFormat),
		LogFile:      v.GetString(KeyLogFile),
		CacheBackend: strings.ToLower(v.GetString(KeyCacheBackend)),
		CacheDir:     v.GetString(KeyCacheDir),
		RedisURL:     v.GetString(KeyRedisURL),
		MetricsFile:  v.GetString(KeyMetricsFile),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load builds a Config from defaults, files and the environment
func Load(configFile string) (*Config, error) {
	v := New()
	if err := ReadFiles(v, configFile); err != nil {
		return nil, err
	}
	return Resolve(v)
}

// Validate checks ranges and enumerations
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.MaxRPS < 0 {
		return fmt.Errorf("max_rps must not be negative, got %g", c.MaxRPS)
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must not be negative, got %d", c.Retries)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := logger.ParseFormat(c.LogFormat); err != nil {
		return err
	}
	switch c.CacheBackend {
	case "", storage.BackendNone, storage.BackendFile:
	case storage.BackendRedis:
		if c.RedisURL == "" {
			return errors.New("cache.redis_url is required for the redis cache")
		}
	default:
		return fmt.Errorf("unknown cache backend: %s", c.CacheBackend)
	}
	return nil
}
