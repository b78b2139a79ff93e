package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         int
	LogLevel     string
	OpenAIAPIKey string
	OpenAIModel  string
	DatabaseURL  string
	NatsURL      string
	NatsToken    string
	APIToken     string
}

// Load reads configuration from the environment, with a .env file as a
// convenience for local development.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file, using environment variables only")
	}

	return Config{
		Port:         envInt("INSIGHT_PORT", 8760),
		LogLevel:     envStr("LOG_LEVEL", "info"),
		OpenAIAPIKey: envStr("OPENAI_API_KEY", ""),
		OpenAIModel:  envStr("INSIGHT_MODEL", "gpt-4o"),
		DatabaseURL:  envStr("DATABASE_URL", ""),
		NatsURL:      envStr("NATS_URL", ""),
		NatsToken:    envStr("NATS_TOKEN", ""),
		APIToken:     envStr("INSIGHT_API_TOKEN", ""),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
