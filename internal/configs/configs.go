// Package configs loads service configuration from the environment, with
// .env file support for local development.
package configs

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Providers ProviderConfig
	Cache     CacheConfig
}

type ServerConfig struct {
	Port        int
	FrontendURL string
}

type ProviderConfig struct {
	EtherscanAPIKey    string
	GoPlusAPIKey       string
	HTTPTimeoutSeconds int
}

type CacheConfig struct {
	TTLSeconds int
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:        getEnvInt("BACKEND_PORT", 8000),
			FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		},
		Providers: ProviderConfig{
			EtherscanAPIKey:    os.Getenv("ETHERSCAN_API_KEY"),
			GoPlusAPIKey:       os.Getenv("GOPLUS_API_KEY"),
			HTTPTimeoutSeconds: getEnvInt("HTTP_TIMEOUT_SECONDS", 30),
		},
		Cache: CacheConfig{
			TTLSeconds: getEnvInt("CACHE_TTL_SECONDS", 600),
		},
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
