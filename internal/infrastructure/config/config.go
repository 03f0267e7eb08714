package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Mongo   MongoConfig
	Redis   RedisConfig
	OAuth   OAuthConfig
	Webhook WebhookConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=hostcraft"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// OAuthConfig points at the external identity provider. The defaults target
// Discord; any provider speaking the authorization-code flow works.
type OAuthConfig struct {
	ClientID     string `env:"OAUTH_CLIENT_ID"`
	ClientSecret string `env:"OAUTH_CLIENT_SECRET"`
	RedirectURL  string `env:"OAUTH_REDIRECT_URL, default=http://localhost:8080/auth/callback"`
	AuthURL      string `env:"OAUTH_AUTH_URL,     default=https://discord.com/oauth2/authorize"`
	TokenURL     string `env:"OAUTH_TOKEN_URL,    default=https://discord.com/api/oauth2/token"`
	UserInfoURL  string `env:"OAUTH_USERINFO_URL, default=https://discord.com/api/users/@me"`
}

// WebhookConfig controls outbound order notifications. An empty URL disables
// delivery entirely.
type WebhookConfig struct {
	URL     string `env:"WEBHOOK_URL"`
	Workers int    `env:"WEBHOOK_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
