package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`

	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Resend  ResendConfig
}

type SessionConfig struct {
	// CookieName is the session cookie the edge redirector checks for and
	// the guard resolves sessions from.
	CookieName string        `env:"SESSION_COOKIE, default=SESSION"`
	TTL        time.Duration `env:"SESSION_TTL,    default=24h"`
	// MockAuth switches login to the table-driven authenticator so the
	// portal can run without its account database.
	MockAuth bool `env:"SESSION_MOCK_AUTH, default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=interlock_portal"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type ResendConfig struct {
	// APIKey enables email delivery of notifications when set.
	APIKey string `env:"RESEND_API_KEY"`
	From   string `env:"RESEND_FROM, default=noreply@ddp-portal.example"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
