package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port         string        `envconfig:"PORT" default:"5000"`
	MongoURI     string        `envconfig:"MONGODB_URI" default:"mongodb://localhost:27017"`
	DatabaseName string        `envconfig:"DATABASE_NAME" default:"ilaDb"`
	TokenSecret  string        `envconfig:"ACCESS_TOKEN_SECRET" required:"true"`
	TokenTTL     time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"1h"`
	StripeSecret string        `envconfig:"PAYMENT_SECRET_KEY" required:"true"`
	Origin       string        `envconfig:"CORS_ORIGIN" default:"*"`

	// SMTP is optional; status-change notifications are skipped when unset.
	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
}

// Load reads .env when present, then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, err
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
