// Package config содержит загрузку и валидацию конфигурации.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// FetchMode определяет способ получения страниц
const (
	FetchModeBrowser = "browser"
	FetchModeHTTP    = "http"
)

// Config представляет конфигурацию приложения
type Config struct {
	// Database
	DBPath string

	// Metadata API
	OMDBAPIKey  string
	OMDBBaseURL string
	OMDBTimeout time.Duration

	// Sources
	ListingBaseURL string
	RatingsBaseURL string
	ListingPages   int

	// Fetcher
	FetchMode  string
	BrowserURL string

	// Pipeline policy
	FreshnessDays  int
	MinRatingVotes int

	// Logging
	LogLevel string

	// HTTP Client
	HTTPClientConfig HTTPClientConfig

	// Request delay
	RequestDelay time.Duration

	// App Data Directory
	AppDataDir string
}

// HTTPClientConfig представляет конфигурацию HTTP клиента
type HTTPClientConfig struct {
	MaxIdleConns          int
	MaxIdleConnsPerHost   int
	IdleConnTimeout       time.Duration
	TLSHandshakeTimeout   time.Duration
	ResponseHeaderTimeout time.Duration
	DisableKeepAlives     bool
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// Загружаем .env файл если он существует
	_ = godotenv.Load()

	config := &Config{
		DBPath:         getEnv("DB_PATH", "./data/movies.db"),
		OMDBAPIKey:     getEnv("OMDB_API_KEY", ""),
		OMDBBaseURL:    getEnv("OMDB_BASE_URL", "http://www.omdbapi.com"),
		OMDBTimeout:    getEnvDuration("OMDB_TIMEOUT", 30*time.Second),
		ListingBaseURL: getEnv("LISTING_BASE_URL", "https://ww.yesmovies.ag"),
		RatingsBaseURL: getEnv("RATINGS_BASE_URL", "https://www.imdb.com"),
		ListingPages:   getEnvInt("LISTING_PAGES", 5),
		FetchMode:      getEnv("FETCH_MODE", FetchModeBrowser),
		BrowserURL:     getEnv("BROWSER_URL", "http://127.0.0.1:9222"),
		FreshnessDays:  getEnvInt("FRESHNESS_DAYS", 3),
		MinRatingVotes: getEnvInt("MIN_RATING_VOTES", 1000),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		HTTPClientConfig: HTTPClientConfig{
			MaxIdleConns:          getEnvInt("HTTP_MAX_IDLE_CONNS", 100),
			MaxIdleConnsPerHost:   getEnvInt("HTTP_MAX_IDLE_CONNS_PER_HOST", 10),
			IdleConnTimeout:       getEnvDuration("HTTP_IDLE_CONN_TIMEOUT", 90*time.Second),
			TLSHandshakeTimeout:   getEnvDuration("HTTP_TLS_HANDSHAKE_TIMEOUT", 10*time.Second),
			ResponseHeaderTimeout: getEnvDuration("HTTP_RESPONSE_HEADER_TIMEOUT", 30*time.Second),
			DisableKeepAlives:     getEnvBool("HTTP_DISABLE_KEEP_ALIVES", false),
		},
		RequestDelay: getEnvDuration("REQUEST_DELAY", 2*time.Second),
		AppDataDir:   getEnv("APP_DATA_DIR", "./data"),
	}

	// Валидация обязательных полей
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if c.OMDBAPIKey == "" {
		return fmt.Errorf("OMDB_API_KEY is required")
	}

	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH is required")
	}

	if c.FetchMode != FetchModeBrowser && c.FetchMode != FetchModeHTTP {
		return fmt.Errorf("FETCH_MODE must be %q or %q", FetchModeBrowser, FetchModeHTTP)
	}

	if c.FetchMode == FetchModeBrowser && c.BrowserURL == "" {
		return fmt.Errorf("BROWSER_URL is required in browser fetch mode")
	}

	if c.ListingPages <= 0 {
		return fmt.Errorf("LISTING_PAGES must be positive")
	}

	if c.FreshnessDays < 0 {
		return fmt.Errorf("FRESHNESS_DAYS must not be negative")
	}

	if c.MinRatingVotes < 0 {
		return fmt.Errorf("MIN_RATING_VOTES must not be negative")
	}

	return nil
}

// getEnv получает переменную окружения с значением по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает переменную окружения как int
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDuration получает переменную окружения как time.Duration
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvBool получает переменную окружения как bool
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
