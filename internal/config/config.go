// Package config loads process configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all server configuration.
type Config struct {
	Port           int      `envconfig:"PORT" default:"3000"`
	DatabaseURL    string   `envconfig:"LEMS_DATABASE_URL" default:"file:lems.db"`
	AuthToken      string   `envconfig:"LEMS_AUTH_TOKEN"`
	AllowedOrigins []string `envconfig:"LEMS_ALLOWED_ORIGINS" default:"http://localhost:3000,https://lems.onrender.com"`
	StaticDir      string   `envconfig:"LEMS_STATIC_DIR" default:"build"`
	AppsScriptURL  string   `envconfig:"APPS_SCRIPT_URL"`
	FeedbackFanout int      `envconfig:"LEMS_FEEDBACK_FANOUT" default:"8"`
	Verbose        bool     `envconfig:"LEMS_VERBOSE"`
}

// Load reads configuration from the environment. A missing .env file is not
// an error; explicit environment variables win over .env entries.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
