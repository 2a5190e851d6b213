package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the CLI needs to build a client, loaded from
// environment variables.
type Config struct {
	AppEnv        string        `env:"APP_ENV" envDefault:"development"`
	AccessToken   string        `env:"GJW_ACCESS_TOKEN,required,notEmpty"`
	APIBaseURL    string        `env:"GJW_API_BASE_URL" envDefault:"https://api.ganjingworld.com/v1"`
	UploadBaseURL string        `env:"GJW_UPLOAD_BASE_URL" envDefault:"https://upload.ganjingworld.com/v1"`
	Language      string        `env:"GJW_LANGUAGE" envDefault:"en"`
	PollInterval  time.Duration `env:"GJW_POLL_INTERVAL" envDefault:"5s"`
	MaxWait       time.Duration `env:"GJW_MAX_WAIT" envDefault:"10m"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
