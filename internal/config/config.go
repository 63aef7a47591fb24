// Package config loads runtime settings from the environment, with an
// optional .env file for development setups.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings for the client
type Config struct {
	// APIBaseURL is the backend base URL including the /api prefix
	APIBaseURL string
	// Token is the bearer token sent on every request
	Token string
	// DevMode skips auth so the client can talk to a local backend
	DevMode bool
	// DataDir overrides where the snapshot cache and lock file live.
	// Empty means the platform default.
	DataDir string
	// Theme selects the color theme by name
	Theme string
	// Debug enables the bubbletea debug log file
	Debug bool
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in first if present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		APIBaseURL: getEnv("PLANDECK_API_URL", "http://localhost:3001/api"),
		Token:      getEnv("PLANDECK_TOKEN", ""),
		DevMode:    getEnvAsBool("PLANDECK_DEV", false),
		DataDir:    getEnv("PLANDECK_DATA_DIR", ""),
		Theme:      getEnv("PLANDECK_THEME", "default"),
		Debug:      getEnvAsBool("PLANDECK_DEBUG", false),
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return defaultVal
		}
		return b
	}
	return defaultVal
}
