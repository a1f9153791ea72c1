package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type App struct {
	Port     string `envconfig:"PORT" default:"8080"`
	DataFile string `envconfig:"DATA_FILE" default:"data.json"`

	// Admin auth. ADMIN_PASSWORD_HASH (bcrypt) takes precedence over the
	// plain ADMIN_PASSWORD when set.
	AdminPassword     string        `envconfig:"ADMIN_PASSWORD" default:"admin123"`
	AdminPasswordHash string        `envconfig:"ADMIN_PASSWORD_HASH"`
	TokenTTL          time.Duration `envconfig:"ADMIN_TOKEN_TTL" default:"4h"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`

	// Notifications are skipped when unset.
	AdminNotifyEmail string `envconfig:"ADMIN_NOTIFY_EMAIL"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
