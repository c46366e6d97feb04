package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	API     APIConfig
	Cache   CacheConfig
	Storage StorageConfig
	Env     string
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type CacheConfig struct {
	TTL time.Duration
}

type StorageConfig struct {
	Path string
}

func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	config := &Config{
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://127.0.0.1:8000/api"),
			Timeout: time.Duration(getEnvAsInt("API_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Cache: CacheConfig{
			TTL: time.Duration(getEnvAsInt("CACHE_TTL_MINUTES", 5)) * time.Minute,
		},
		Storage: StorageConfig{
			Path: getEnv("STORAGE_PATH", defaultStoragePath()),
		},
		Env: getEnv("ENV", "development"),
	}

	return config, nil
}

// IsProduction reports whether the app runs with production settings.
// The response cache is only active in production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "storefront.db"
	}
	return filepath.Join(home, ".storefront", "storefront.db")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
