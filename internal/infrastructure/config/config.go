package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8000"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=720h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Mongo MongoConfig
	Redis RedisConfig
	AI    AIConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=chatbot_builder"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// AIConfig points the passthrough adapter at an OpenAI-compatible
// completion endpoint. An empty APIKey is valid: the adapter degrades to
// static fallback replies instead of refusing to start.
type AIConfig struct {
	APIKey  string        `env:"GROQ_API_KEY"`
	BaseURL string        `env:"GROQ_BASE_URL, default=https://api.groq.com/openai/v1"`
	Model   string        `env:"GROQ_MODEL,    default=gemma2-9b-it"`
	Timeout time.Duration `env:"GROQ_TIMEOUT,  default=30s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
