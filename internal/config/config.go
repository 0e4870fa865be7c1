// Package config loads service configuration from the environment.
package config

import (
	"github.com/kelseyhightower/envconfig"
)

// App is the full configuration of the gymhub service.
type App struct {
	// Network
	HTTPAddr string `envconfig:"GYMHUB_HTTP_ADDR" default:":8080"`
	// Storage
	DBPath string `envconfig:"GYMHUB_DB_PATH" default:"gymhub.db"`
	// Upstream backend
	APIBaseURL string `envconfig:"GYMHUB_API_BASE_URL" default:"http://localhost:9000"`
	// Auth
	JWTSecret    string `envconfig:"GYMHUB_JWT_SECRET" required:"true"`
	JWTExpireMin int    `envconfig:"GYMHUB_JWT_EXPIRE_MIN" default:"60"`
	CSRFKey      string `envconfig:"GYMHUB_CSRF_KEY" required:"true"`
	// Email
	ResendAPIKey string `envconfig:"GYMHUB_RESEND_API_KEY"`
	EmailFrom    string `envconfig:"GYMHUB_EMAIL_FROM" default:"GymHub <noreply@gymhub.example>"`
	// Environment: development or production
	Env string `envconfig:"GYMHUB_ENV" default:"development"`
	// Public base URL used in verification links
	PublicBaseURL string `envconfig:"GYMHUB_PUBLIC_BASE_URL" default:"http://localhost:8080"`
}

// IsProduction reports whether the service runs with production hardening
// (secure cookies, real email sender).
func (a App) IsProduction() bool {
	return a.Env == "production"
}

// Load reads the configuration from the environment.
func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
